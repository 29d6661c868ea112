package rwg

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1.e-12

// Unit square split along the (0,0)-(1,1) diagonal
func squareMesh() ([]r3.Vec, [][3]int) {
	return []r3.Vec{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		[][3]int{{0, 1, 2}, {0, 2, 3}}
}

// Four panels fanned around a raised apex over the unit square
func fanMesh() ([]r3.Vec, [][3]int) {
	return []r3.Vec{{X: 0.5, Y: 0.5, Z: 0.2}, {}, {X: 1}, {X: 1, Y: 1}, {Y: 1}},
		[][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1}}
}

// Closed, slightly irregular octahedron
func octahedronMesh() ([]r3.Vec, [][3]int) {
	V := []r3.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}
	for i := range V {
		V[i].X += 0.1 * float64((i*7)%5-2) / 2
		V[i].Y += 0.1 * float64((i*7+3)%5-2) / 2
		V[i].Z += 0.1 * float64((i*7+6)%5-2) / 2
	}
	return V, [][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
}

func newByHand(t *testing.T, build func() ([]r3.Vec, [][3]int)) *RWGObject {
	t.Helper()
	obj, err := NewRWGObjectFromLists(build())
	require.NoError(t, err)
	return obj
}

const squareGmsh = `$MeshFormat
2.2 0 8
$EndMeshFormat
$Nodes
4
1 0 0 0
2 1 0 0
3 1 1 0
4 0 1 0
$EndNodes
$Elements
2
1 2 2 0 1 1 2 3
2 2 2 0 1 1 3 4
$EndElements
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func formatNode(id int, x r3.Vec) string {
	return fmt.Sprintf("%d %.17g %.17g %.17g\n", id, x.X, x.Y, x.Z)
}

// A gmsh 2.2 triangle line, vertex indices are 0-based
func formatTri(id int, p [3]int) string {
	return fmt.Sprintf("%d 2 2 0 1 %d %d %d\n", id, p[0]+1, p[1]+1, p[2]+1)
}
