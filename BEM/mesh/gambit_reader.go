package mesh

import (
	"fmt"
	"strconv"
	"strings"
)

const gambitTriangle = 3

// readGambitSurface reads the triangle cells of a Gambit neutral file
func readGambitSurface(ls *lineScanner) (*SurfaceMesh, error) {
	var (
		sm           = NewSurfaceMesh()
		numnp, nelem int
		err          error
	)
	// Control info: the values follow the NUMNP/NELEM header line
	for ls.Scan() {
		line := ls.Text()
		if strings.Contains(line, "NUMNP") && strings.Contains(line, "NELEM") {
			if !ls.Scan() {
				return nil, fmt.Errorf("unexpected EOF after control header")
			}
			values := strings.Fields(ls.Text())
			if len(values) < 2 {
				return nil, fmt.Errorf("invalid control info line")
			}
			if numnp, err = strconv.Atoi(values[0]); err != nil {
				return nil, fmt.Errorf("invalid NUMNP %q", values[0])
			}
			if nelem, err = strconv.Atoi(values[1]); err != nil {
				return nil, fmt.Errorf("invalid NELEM %q", values[1])
			}
			break
		}
	}

	for ls.Scan() {
		line := ls.Text()
		switch {
		case strings.Contains(line, "NODAL COORDINATES"):
			for i := 0; i < numnp; i++ {
				if !ls.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(ls.Text())
				if len(fields) < 4 {
					return nil, fmt.Errorf("invalid node line: %s", ls.Text())
				}
				nodeID, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid node ID %q", fields[0])
				}
				x, err := parseVec(fields[1:4])
				if err != nil {
					return nil, err
				}
				if err = sm.AddNode(nodeID, x); err != nil {
					return nil, err
				}
			}
		case strings.Contains(line, "ELEMENTS/CELLS"):
			for i := 0; i < nelem; i++ {
				if !ls.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				ints, err := parseInts(strings.Fields(ls.Text()))
				if err != nil {
					return nil, err
				}
				if len(ints) < 3 {
					return nil, fmt.Errorf("invalid element line: %s", ls.Text())
				}
				gambitType, numNodes := ints[1], ints[2]
				if gambitType != gambitTriangle {
					continue
				}
				if numNodes != 3 || len(ints) < 6 {
					return nil, fmt.Errorf("element %d: expected 3 nodes", ints[0])
				}
				if err = sm.AddTriangle([3]int{ints[3], ints[4], ints[5]}, 0); err != nil {
					return nil, fmt.Errorf("element %d: %w", ints[0], err)
				}
			}
		}
	}
	return sm, nil
}
