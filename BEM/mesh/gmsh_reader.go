package mesh

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	gmshTriangle3 = 2 // 3-node triangle
	gmshTriangle6 = 9 // 6-node second order triangle, corner nodes first
)

// readGmsh22 reads the surface triangles of an ASCII Gmsh 2.2 file. Volume,
// line and point elements are skipped.
func readGmsh22(ls *lineScanner) (*SurfaceMesh, error) {
	sm := NewSurfaceMesh()
	for ls.Scan() {
		line := ls.Text()
		if line == "" {
			continue
		}
		var err error
		switch line {
		case "$MeshFormat":
			err = readGmshFormat(ls)
		case "$Nodes":
			err = readGmshNodes(ls, sm)
		case "$Elements":
			err = readGmshElements(ls, sm)
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				err = skipSection(ls, "$End"+line[1:])
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return sm, nil
}

func readGmshFormat(ls *lineScanner) error {
	if !ls.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(ls.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	return skipSection(ls, "$EndMeshFormat")
}

func readGmshNodes(ls *lineScanner, sm *SurfaceMesh) error {
	numNodes, err := readCount(ls, "Nodes")
	if err != nil {
		return err
	}
	sm.Vertices = make([]r3.Vec, 0, numNodes)
	for i := 0; i < numNodes; i++ {
		if !ls.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(ls.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", ls.Text())
		}
		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node ID %q", parts[0])
		}
		x, err := parseVec(parts[1:4])
		if err != nil {
			return err
		}
		if err = sm.AddNode(nodeID, x); err != nil {
			return err
		}
	}
	return skipSection(ls, "$EndNodes")
}

func readGmshElements(ls *lineScanner, sm *SurfaceMesh) error {
	numElements, err := readCount(ls, "Elements")
	if err != nil {
		return err
	}
	for i := 0; i < numElements; i++ {
		if !ls.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(ls.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line: %s", ls.Text())
		}
		ints, err := parseInts(parts)
		if err != nil {
			return err
		}
		elemType, numTags := ints[1], ints[2]
		if elemType != gmshTriangle3 && elemType != gmshTriangle6 {
			continue
		}
		nodeStart := 3 + numTags
		if len(ints) < nodeStart+3 {
			return fmt.Errorf("element %d: expected 3 nodes, got %d", ints[0], len(ints)-nodeStart)
		}
		var physTag int
		if numTags > 0 {
			physTag = ints[3]
		}
		nodes := [3]int{ints[nodeStart], ints[nodeStart+1], ints[nodeStart+2]}
		if err = sm.AddTriangle(nodes, physTag); err != nil {
			return fmt.Errorf("element %d: %w", ints[0], err)
		}
	}
	return skipSection(ls, "$EndElements")
}

func readCount(ls *lineScanner, section string) (n int, err error) {
	if !ls.Scan() {
		return 0, fmt.Errorf("unexpected EOF in %s", section)
	}
	if n, err = strconv.Atoi(ls.Text()); err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s count %q", section, ls.Text())
	}
	return
}

func skipSection(ls *lineScanner, endMarker string) error {
	for ls.Scan() {
		if ls.Text() == endMarker {
			return nil
		}
	}
	return fmt.Errorf("missing %s", endMarker)
}

func parseVec(parts []string) (x r3.Vec, err error) {
	var f [3]float64
	for i := range f {
		if f[i], err = strconv.ParseFloat(parts[i], 64); err != nil {
			return x, fmt.Errorf("invalid coordinate %q", parts[i])
		}
	}
	return r3.Vec{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseInts(parts []string) (ints []int, err error) {
	ints = make([]int, len(parts))
	for i, p := range parts {
		if ints[i], err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
	}
	return
}
