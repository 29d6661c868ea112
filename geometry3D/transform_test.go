package geometry3D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1.e-12

func assertVecNear(t *testing.T, want, got r3.Vec, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, NearlyEqual(want, got, tol), "want %v, got %v %v", want, got, msgAndArgs)
}

func TestTriangleNormal(t *testing.T) {
	zHat, area := TriangleNormal(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
	assert.InDelta(t, 0.5, area, tol)
	assertVecNear(t, r3.Vec{Z: 1}, zHat)
	// Reversed winding flips the normal
	zHat, _ = TriangleNormal(r3.Vec{}, r3.Vec{Y: 1}, r3.Vec{X: 1})
	assertVecNear(t, r3.Vec{Z: -1}, zHat)
	// Degenerate triangle has no area and no normal
	zHat, area = TriangleNormal(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 2})
	assert.Equal(t, 0., area)
	assert.Equal(t, r3.Vec{}, zHat)

	c := Centroid(r3.Vec{}, r3.Vec{X: 3}, r3.Vec{Y: 3})
	assertVecNear(t, r3.Vec{X: 1, Y: 1}, c)
	assert.InDelta(t, math.Sqrt(5), BoundingRadius(c, r3.Vec{}, r3.Vec{X: 3}, r3.Vec{Y: 3}), tol)
}

func TestTransformApply(t *testing.T) {
	var zero Transform
	assert.True(t, zero.IsIdentity())
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	assert.Equal(t, p, zero.Apply(p))

	rot, err := NewRotation(90, r3.Vec{Z: 1})
	require.NoError(t, err)
	assertVecNear(t, r3.Vec{Y: 1}, rot.Apply(r3.Vec{X: 1}))

	gt := Compose(rot, NewDisplacement(r3.Vec{X: 1}))
	assertVecNear(t, r3.Vec{X: 1, Y: 1}, gt.Apply(r3.Vec{X: 1}))
	assertVecNear(t, r3.Vec{X: 1}, gt.UnApply(r3.Vec{X: 1, Y: 1}))

	_, err = NewRotation(10, r3.Vec{})
	assert.Error(t, err)
}

func TestTransformComposeInverse(t *testing.T) {
	r1, _ := NewRotation(33, r3.Vec{X: 1, Y: 1})
	r2, _ := NewRotation(-71, r3.Vec{X: 0.2, Z: 1})
	g1 := Compose(NewDisplacement(r3.Vec{X: 1, Y: -2, Z: 0.5}), r1)
	g2 := Compose(r2, NewDisplacement(r3.Vec{Z: 3}))
	g12 := Compose(g1, g2)
	pts := []r3.Vec{{X: 1}, {Y: 1}, {X: -2, Y: 0.3, Z: 4}, {}}
	for _, p := range pts {
		assertVecNear(t, g2.Apply(g1.Apply(p)), g12.Apply(p))
		assertVecNear(t, p, g12.UnApply(g12.Apply(p)))
		assertVecNear(t, p, g12.Inverse().Apply(g12.Apply(p)))
		assertVecNear(t, p, g1.Then(g1.Inverse()).Apply(p))
	}
	cp := append([]r3.Vec(nil), pts...)
	g12.ApplyAll(cp)
	g12.UnApplyAll(cp)
	for i := range pts {
		assertVecNear(t, pts[i], cp[i])
	}
}

func TestParseTransform(t *testing.T) {
	gt, err := ParseTransform("DISPLACED 1 2 3")
	require.NoError(t, err)
	assertVecNear(t, r3.Vec{X: 1, Y: 2, Z: 3}, gt.Apply(r3.Vec{}))

	gt, err = ParseTransform("rotated 90 about 0 0 1 DISPLACED 0 0 1")
	require.NoError(t, err)
	assertVecNear(t, r3.Vec{Y: 1, Z: 1}, gt.Apply(r3.Vec{X: 1}))

	// Clauses apply in order: displacement first, then rotation
	gt, err = ParseTransform("DISPLACED 1 0 0 ROTATED 90 ABOUT 0 0 1")
	require.NoError(t, err)
	assertVecNear(t, r3.Vec{Y: 1}, gt.Apply(r3.Vec{}))

	gt, n, err := ParseTransformTokens([]string{"DISPLACED", "1", "1", "1", "ENDOBJECT"})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assertVecNear(t, r3.Vec{X: 1, Y: 1, Z: 1}, gt.Translation)

	for _, bad := range []string{
		"",
		"DISPLACED 1 2",
		"DISPLACED 1 2 x",
		"ROTATED",
		"ROTATED 30 0 0 1",
		"ROTATED 30 ABOUT 0 0",
		"ROTATED 30 ABOUT 0 0 0",
		"SCALED 2",
		"DISPLACED 1 2 3 junk",
	} {
		_, err = ParseTransform(bad)
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "expected ParseError for %q, got %v", bad, err)
	}
}

func TestTransformString(t *testing.T) {
	assert.Equal(t, "DISPLACED 0 0 0", Identity().String())
	g, err := ParseTransform("ROTATED 40 ABOUT 1 2 3 DISPLACED -1 0.5 2")
	require.NoError(t, err)
	theta, axis := g.AngleAxis()
	assert.InDelta(t, 40, theta, 1.e-9)
	assertVecNear(t, r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3}), axis)
	g2, err := ParseTransform(g.String())
	require.NoError(t, err)
	p := r3.Vec{X: 0.3, Y: -7, Z: 1}
	assert.True(t, NearlyEqual(g.Apply(p), g2.Apply(p), 1.e-9))
}
