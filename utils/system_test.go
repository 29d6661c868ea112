package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestIsNan(t *testing.T) {
	assert.False(t, IsNan(1.))
	assert.True(t, IsNan(math.NaN()))
	assert.True(t, IsNan([]float64{0, math.Inf(-1)}))
	assert.False(t, IsNan([]r3.Vec{{X: 1}, {Y: 2}}))
	assert.True(t, IsNan([]r3.Vec{{X: 1}, {Z: math.NaN()}}))
	assert.False(t, IsNan("not a number"))
	assert.Contains(t, GetMemUsage(), "Alloc = ")
}
