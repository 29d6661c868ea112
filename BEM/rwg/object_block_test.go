package rwg

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gorwg/geometry3D"
)

func TestDecodeObjectBlock(t *testing.T) {
	text := `  MESHFILE sphere.msh

# the dielectric core
  MATERIAL CONST_EPS_4
  INSIDE Shell
  DISPLACED 0 0 2
  rotated 90 about 0 0 1
ENDOBJECT
OBJECT Next
`
	r := bufio.NewReader(strings.NewReader(text))
	cfg, lines, err := DecodeObjectBlock(r, "Core")
	require.NoError(t, err)
	assert.Equal(t, 8, lines)
	assert.Equal(t, "Core", cfg.Label)
	assert.Equal(t, "sphere.msh", cfg.MeshFile)
	assert.Equal(t, "CONST_EPS_4", cfg.Material)
	assert.Equal(t, "Shell", cfg.Inside)

	// Displace first, then rotate
	assert.True(t, geometry3D.NearlyEqual(r3.Vec{Y: 1, Z: 2}, cfg.OTGT.Apply(r3.Vec{X: 1}), tol))

	// The reader is left at the next section
	rest, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "OBJECT Next\n", rest)
}

func TestDecodeObjectBlockMinimal(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("MESHFILE plate.msh\nENDOBJECT"))
	cfg, lines, err := DecodeObjectBlock(r, "")
	require.NoError(t, err)
	assert.Equal(t, 2, lines)
	assert.Equal(t, "plate.msh", cfg.MeshFile)
	assert.Empty(t, cfg.Material)
	assert.True(t, cfg.OTGT.IsIdentity())
	assert.Equal(t, geometry3D.Transform{}, cfg.OTGT)
}

func TestDecodeObjectBlockErrors(t *testing.T) {
	tests := []struct {
		name, text string
		line       int
	}{
		{"missing argument", "MESHFILE\nENDOBJECT\n", 1},
		{"extra argument", "MESHFILE a.msh b.msh\nENDOBJECT\n", 1},
		{"material arguments", "MESHFILE a.msh\nMATERIAL\nENDOBJECT\n", 2},
		{"bad transform", "MESHFILE a.msh\n\nDISPLACED 1 2\nENDOBJECT\n", 3},
		{"junk after transform", "MESHFILE a.msh\nROTATED 10 ABOUT 0 0 1 x\nENDOBJECT\n", 2},
		{"unknown keyword", "MESHFILE a.msh\nCOLOR red\nENDOBJECT\n", 2},
		{"no ENDOBJECT", "MESHFILE a.msh\n# trailing comment\n", 2},
		{"no MESHFILE", "MATERIAL PEC\nENDOBJECT\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeObjectBlock(bufio.NewReader(strings.NewReader(tt.text)), "X")
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "%v", err)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestReadObjectBlock(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "square.msh", squareGmsh)
	text := "MESHFILE " + path + "\nMATERIAL VACUUM\nINSIDE Box\nDISPLACED 0 0 5\nENDOBJECT\n"

	obj, lines, err := ReadObjectBlock(bufio.NewReader(strings.NewReader(text)), "Plate")
	require.NoError(t, err)
	assert.Equal(t, 5, lines)
	assert.Equal(t, "Plate", obj.Label)
	assert.Equal(t, "Box", obj.ContainingObjectLabel)
	assert.False(t, obj.MP.IsPEC())
	assert.Equal(t, 2, obj.NumBFs)
	for _, v := range obj.Vertices {
		assert.InDelta(t, 5., v.Z, tol)
	}
	assert.False(t, obj.IsTransformed())

	_, _, err = ReadObjectBlock(bufio.NewReader(strings.NewReader("MESHFILE "+path+"\nMATERIAL GOLD\nENDOBJECT\n")), "Plate")
	assert.Error(t, err)
}

func TestObjectKeyword(t *testing.T) {
	assert.Equal(t, KW_ENDOBJECT, NewObjectKeyword("endobject"))
	assert.Equal(t, KW_UNKNOWN, NewObjectKeyword("OBJECT"))
	assert.Equal(t, "MESHFILE", KW_MESHFILE.String())
}
