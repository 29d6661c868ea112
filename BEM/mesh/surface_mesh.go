package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gorwg/utils"
)

// SurfaceMesh is the raw geometry of a triangulated surface as read from a
// mesh file: a vertex array and vertex index triples, both 0-based.
type SurfaceMesh struct {
	Vertices     []r3.Vec
	Triangles    [][3]int
	PhysicalTags []int       // Per triangle physical group, 0 when absent
	NodeIDMap    map[int]int // Node ID in the file -> index into Vertices
}

func NewSurfaceMesh() *SurfaceMesh {
	return &SurfaceMesh{
		NodeIDMap: make(map[int]int),
	}
}

// AddNode appends a vertex carrying the file's node ID
func (sm *SurfaceMesh) AddNode(nodeID int, x r3.Vec) error {
	if _, exists := sm.NodeIDMap[nodeID]; exists {
		return fmt.Errorf("duplicate node ID %d", nodeID)
	}
	sm.NodeIDMap[nodeID] = len(sm.Vertices)
	sm.Vertices = append(sm.Vertices, x)
	return nil
}

// AddTriangle appends a triangle given by the file's node IDs
func (sm *SurfaceMesh) AddTriangle(nodeIDs [3]int, tag int) error {
	var tri [3]int
	for i, id := range nodeIDs {
		idx, ok := sm.NodeIDMap[id]
		if !ok {
			return fmt.Errorf("triangle references unknown node %d", id)
		}
		tri[i] = idx
	}
	sm.Triangles = append(sm.Triangles, tri)
	sm.PhysicalTags = append(sm.PhysicalTags, tag)
	return nil
}

func (sm *SurfaceMesh) NumVertices() int { return len(sm.Vertices) }
func (sm *SurfaceMesh) NumPanels() int   { return len(sm.Triangles) }

// Validate checks that every vertex is finite and every triangle references
// three distinct vertices spanning a non-zero area
func (sm *SurfaceMesh) Validate() error {
	nv := len(sm.Vertices)
	for iv, x := range sm.Vertices {
		if utils.IsNan(x) {
			return fmt.Errorf("vertex %d: non-finite coordinates %v", iv, x)
		}
	}
	for np, tri := range sm.Triangles {
		for _, iv := range tri {
			if iv < 0 || iv >= nv {
				return fmt.Errorf("panel %d: vertex index %d out of range [0,%d)", np, iv, nv)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			return fmt.Errorf("panel %d: repeated vertex in %v", np, tri)
		}
		v0, v1, v2 := sm.Vertices[tri[0]], sm.Vertices[tri[1]], sm.Vertices[tri[2]]
		if r3.Norm(r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0))) == 0 {
			return fmt.Errorf("panel %d: zero area, vertices %v are collinear or coincident", np, tri)
		}
	}
	return nil
}

// LoadError reports malformed or unreadable mesh geometry
type LoadError struct {
	File string
	Line int // 0 when not tied to a line
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type MeshFormat uint8

const (
	FormatUnknown MeshFormat = iota
	FormatGMSH
	FormatComsol
	FormatGambit
)

var extensionMap = map[string]MeshFormat{
	".msh":    FormatGMSH,
	".mphtxt": FormatComsol,
	".neu":    FormatGambit,
}

// FormatFromExtension matches the file extension case insensitively
func FormatFromExtension(filename string) MeshFormat {
	return extensionMap[strings.ToLower(filepath.Ext(filename))]
}

// ReadMeshFile reads a surface mesh, choosing the reader from the extension
func ReadMeshFile(filename string) (*SurfaceMesh, error) {
	format := FormatFromExtension(filename)
	if format == FormatUnknown {
		ext := filepath.Ext(filename)
		if len(ext) == 0 {
			return nil, &LoadError{File: filename, Err: fmt.Errorf("invalid extension")}
		}
		return nil, &LoadError{File: filename, Err: fmt.Errorf("unknown extension %s", ext[1:])}
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, &LoadError{File: filename, Err: err}
	}
	defer file.Close()
	return ReadMesh(file, filename, format)
}

// ReadMesh reads a surface mesh of the given format from r; name labels errors
func ReadMesh(r io.Reader, name string, format MeshFormat) (sm *SurfaceMesh, err error) {
	ls := newLineScanner(r, name)
	switch format {
	case FormatGMSH:
		sm, err = readGmsh22(ls)
	case FormatComsol:
		sm, err = readComsol(ls)
	case FormatGambit:
		sm, err = readGambitSurface(ls)
	default:
		return nil, &LoadError{File: name, Err: fmt.Errorf("unsupported mesh format")}
	}
	if err == nil {
		err = ls.scanner.Err()
	}
	if err == nil && len(sm.Triangles) == 0 {
		err = fmt.Errorf("no triangular panels found")
	}
	if err == nil {
		err = sm.Validate()
	}
	if err != nil {
		return nil, ls.wrap(err)
	}
	return sm, nil
}

type lineScanner struct {
	scanner *bufio.Scanner
	name    string
	line    int
}

func newLineScanner(r io.Reader, name string) *lineScanner {
	return &lineScanner{scanner: bufio.NewScanner(r), name: name}
}

func (ls *lineScanner) Scan() bool {
	if ls.scanner.Scan() {
		ls.line++
		return true
	}
	return false
}

func (ls *lineScanner) Text() string {
	return strings.TrimSpace(ls.scanner.Text())
}

// nextNonBlank advances to the next non blank line
func (ls *lineScanner) nextNonBlank() bool {
	for ls.Scan() {
		if len(ls.Text()) != 0 {
			return true
		}
	}
	return false
}

func (ls *lineScanner) wrap(err error) error {
	if _, ok := err.(*LoadError); ok {
		return err
	}
	return &LoadError{File: ls.name, Line: ls.line, Err: err}
}
