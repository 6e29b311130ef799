// Package region computes axis-aligned bounding regions over color sample
// points and estimates a principal axis via the power method, the
// groundwork the cluster-fit solver projects samples onto.
package region

import (
	"math"

	"github.com/rcarmo/go-texc/internal/color"
)

// Region is the axis-aligned bounding box of a set of sample points.
type Region struct {
	Min, Max color.RgbFloat
}

// New computes the componentwise min/max bounding region of points.
// Panics if points is empty; callers always supply at least one sample.
func New(points []color.RgbFloat) Region {
	r := Region{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.R = color.Min(r.Min.R, p.R)
		r.Min.G = color.Min(r.Min.G, p.G)
		r.Min.B = color.Min(r.Min.B, p.B)
		r.Max.R = color.Max(r.Max.R, p.R)
		r.Max.G = color.Max(r.Max.G, p.G)
		r.Max.B = color.Max(r.Max.B, p.B)
	}
	return r
}

// IsSingular reports whether every sample collapsed to a single point
// (min == max).
func (r Region) IsSingular() bool {
	return r.Min.Equal(r.Max)
}

// Center returns (min+max)/2.
func (r Region) Center() color.RgbFloat {
	return r.Min.Add(r.Max).Scale(0.5)
}

// DiagonalPair is one of the four pairs of opposite corners of an AABB.
type DiagonalPair struct {
	A, B color.RgbFloat
}

// DiagonalPairs yields the four pairs of opposite corners of the region's
// bounding box. This enumeration seeds cluster-fit's principal-axis
// estimate: each diagonal is a candidate axis, and the one with the
// greatest projected sample variance wins.
func (r Region) DiagonalPairs() [4]DiagonalPair {
	min, max := r.Min, r.Max
	return [4]DiagonalPair{
		{color.RgbFloat{R: min.R, G: min.G, B: min.B}, color.RgbFloat{R: max.R, G: max.G, B: max.B}},
		{color.RgbFloat{R: max.R, G: min.G, B: min.B}, color.RgbFloat{R: min.R, G: max.G, B: max.B}},
		{color.RgbFloat{R: min.R, G: max.G, B: min.B}, color.RgbFloat{R: max.R, G: min.G, B: max.B}},
		{color.RgbFloat{R: min.R, G: min.G, B: max.B}, color.RgbFloat{R: max.R, G: max.G, B: min.B}},
	}
}

// PrincipalAxis computes the dominant eigenvector of the 3x3 sample
// covariance by ten iterations of the power method, seeded with the
// diagonal of the bounding box whose projected variance is greatest. If the
// iteration's update has length < 1e-6, the seed diagonal (normalized) is
// returned instead. The result is always unit length.
func PrincipalAxis(points []color.RgbFloat) color.RgbFloat {
	r := New(points)
	diagonals := r.DiagonalPairs()

	bestAxis := diagonals[0].B.Sub(diagonals[0].A)
	bestVariance := float32(-1)
	for _, d := range diagonals {
		axis := d.B.Sub(d.A)
		if normSq(axis) < 1e-12 {
			continue
		}
		n := normalize(axis)
		v := projectedVariance(points, n)
		if v > bestVariance {
			bestVariance = v
			bestAxis = axis
		}
	}

	seed := bestAxis
	if normSq(seed) < 1e-12 {
		// Degenerate (single point): any unit axis works, nothing will
		// ever be projected onto it with nonzero spread.
		return color.RgbFloat{R: 1}
	}
	seed = normalize(seed)

	mean := meanOf(points)
	centered := make([]color.RgbFloat, len(points))
	for i, p := range points {
		centered[i] = p.Sub(mean)
	}

	axis := seed
	for i := 0; i < 10; i++ {
		next := covarianceApply(centered, axis)
		if normSq(next) < 1e-12 {
			return seed
		}
		axis = normalize(next)
	}

	return axis
}

func covarianceApply(centered []color.RgbFloat, axis color.RgbFloat) color.RgbFloat {
	var acc color.RgbFloat
	for _, p := range centered {
		proj := dot(p, axis)
		acc = acc.Add(p.Scale(proj))
	}
	return acc
}

func projectedVariance(points []color.RgbFloat, axis color.RgbFloat) float32 {
	mean := meanOf(points)
	var variance float32
	for _, p := range points {
		proj := dot(p.Sub(mean), axis)
		variance += proj * proj
	}
	return variance
}

func meanOf(points []color.RgbFloat) color.RgbFloat {
	var sum color.RgbFloat
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(points)))
}

func dot(a, b color.RgbFloat) float32 {
	return a.R*b.R + a.G*b.G + a.B*b.B
}

func normSq(a color.RgbFloat) float32 {
	return dot(a, a)
}

func normalize(a color.RgbFloat) color.RgbFloat {
	n := float32(math.Sqrt(float64(normSq(a))))
	if n == 0 {
		return a
	}
	return a.Scale(1 / n)
}

