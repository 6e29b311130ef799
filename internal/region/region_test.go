package region

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcarmo/go-texc/internal/color"
)

func pts(cs ...[3]float32) []color.RgbFloat {
	out := make([]color.RgbFloat, len(cs))
	for i, c := range cs {
		out[i] = color.RgbFloat{R: c[0], G: c[1], B: c[2]}
	}
	return out
}

func TestRegionBoundingBox(t *testing.T) {
	r := New(pts([3]float32{0.2, 0.8, 0.1}, [3]float32{0.9, 0.1, 0.5}, [3]float32{0.4, 0.4, 0.9}))
	assert.Equal(t, color.RgbFloat{R: 0.2, G: 0.1, B: 0.1}, r.Min)
	assert.Equal(t, color.RgbFloat{R: 0.9, G: 0.8, B: 0.9}, r.Max)
}

func TestRegionIsSingular(t *testing.T) {
	r := New(pts([3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, 0.5, 0.5}))
	assert.True(t, r.IsSingular())

	r2 := New(pts([3]float32{0.5, 0.5, 0.5}, [3]float32{0.5, 0.5, 0.51}))
	assert.False(t, r2.IsSingular())
}

func TestRegionCenter(t *testing.T) {
	r := New(pts([3]float32{0, 0, 0}, [3]float32{1, 1, 1}))
	assert.Equal(t, color.RgbFloat{R: 0.5, G: 0.5, B: 0.5}, r.Center())
}

func TestDiagonalPairsAreOppositeCorners(t *testing.T) {
	r := New(pts([3]float32{0, 0, 0}, [3]float32{1, 1, 1}))
	diagonals := r.DiagonalPairs()
	require.Len(t, diagonals, 4)
	for _, d := range diagonals {
		// Every coordinate of A must be the opposite extreme of B.
		assert.True(t, d.A.R != d.B.R && d.A.G != d.B.G && d.A.B != d.B.B)
	}
}

func TestPrincipalAxisIsUnitLength(t *testing.T) {
	samples := pts(
		[3]float32{0.1, 0.1, 0.1},
		[3]float32{0.9, 0.9, 0.9},
		[3]float32{0.5, 0.5, 0.5},
		[3]float32{0.2, 0.8, 0.3},
	)
	axis := PrincipalAxis(samples)
	n := math.Sqrt(float64(axis.R*axis.R + axis.G*axis.G + axis.B*axis.B))
	assert.InDelta(t, 1.0, n, 1e-4)
}

func TestPrincipalAxisAlongObviousGradient(t *testing.T) {
	// Samples vary only along R; the axis should point (almost) purely
	// along R.
	samples := pts(
		[3]float32{0.0, 0.5, 0.5},
		[3]float32{0.25, 0.5, 0.5},
		[3]float32{0.5, 0.5, 0.5},
		[3]float32{0.75, 0.5, 0.5},
		[3]float32{1.0, 0.5, 0.5},
	)
	axis := PrincipalAxis(samples)
	assert.Greater(t, math.Abs(float64(axis.R)), math.Abs(float64(axis.G)))
	assert.Greater(t, math.Abs(float64(axis.R)), math.Abs(float64(axis.B)))
}

func TestPrincipalAxisSingularFallsBack(t *testing.T) {
	samples := pts([3]float32{0.3, 0.3, 0.3}, [3]float32{0.3, 0.3, 0.3})
	axis := PrincipalAxis(samples)
	n := math.Sqrt(float64(axis.R*axis.R + axis.G*axis.G + axis.B*axis.B))
	assert.InDelta(t, 1.0, n, 1e-4)
}
