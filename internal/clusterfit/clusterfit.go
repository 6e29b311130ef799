// Package clusterfit implements the endpoint-optimization algorithm shared
// by every BC1 palette mode: partition samples, sorted along their
// principal axis, into contiguous clusters and solve a closed-form weighted
// least-squares system for the two endpoints of an I-element palette.
package clusterfit

import (
	"math"
	"sort"

	"github.com/rcarmo/go-texc/internal/color"
	"github.com/rcarmo/go-texc/internal/region"
)

// Remap canonicalizes a candidate endpoint pair — e.g. quantizing both to
// Rgb565 and ordering them so the chosen block mode is representable. It is
// called on every candidate, including the seed.
type Remap func(c0, c1 color.RgbFloat) (color.RgbFloat, color.RgbFloat)

// ErrorFunc scores a palette-sample pair; for BC1 this is the Yiq
// perceptual distance.
type ErrorFunc func(sample, palette color.RgbFloat) float32

// Result is the best endpoint pair, per-sample palette indices, and the
// summed error found.
type Result struct {
	C0, C1  color.RgbFloat
	Indices []int
	Error   float32
}

// Fit runs the cluster-fit search described in the block codec's
// endpoint-optimization contract: samples up to N points of dimension 3,
// paletteSize the number of palette entries (3 or 4 for BC1).
func Fit(samples []color.RgbFloat, paletteSize int, remap Remap, errFn ErrorFunc) Result {
	n := len(samples)

	axis := region.PrincipalAxis(samples)
	order := make([]int, n)
	proj := make([]float32, n)
	for i, s := range samples {
		order[i] = i
		proj[i] = dot(s, axis)
	}
	sort.SliceStable(order, func(a, b int) bool { return proj[order[a]] < proj[order[b]] })

	bbox := region.New(samples)
	bestC0, bestC1 := remap(bbox.Min, bbox.Max)
	bestIndices := make([]int, n)
	bestError := float32(0)
	{
		palette := buildPalette(bestC0, bestC1, paletteSize)
		for i, s := range samples {
			idx, e := nearest(s, palette, errFn)
			bestIndices[i] = idx
			bestError += e
		}
	}

	// cuts[1..paletteSize) are the sorted-order positions of the I-1 cluster
	// boundaries; cuts[0] is unused. Enumeration mirrors the original
	// cluster-fit odometer: advance the rightmost movable cut, then reset
	// every cut to its right to sit immediately after it (keeping clusters
	// contiguous and non-empty), and only stop once no cut can advance.
	cuts := make([]int, paletteSize)
	for i := 1; i < paletteSize; i++ {
		cuts[i] = i - 1
	}

	for {
		weights := make([]float32, n)
		for i := 0; i < n; i++ {
			idx := 0
			for _, c := range cuts[1:] {
				if i > c {
					idx++
				}
			}
			t := float32(idx) / float32(paletteSize-1)
			weights[order[i]] = t
		}

		if c0, c1, ok := solveEndpoints(weights, samples); ok {
			c0, c1 = remap(c0, c1)
			palette := buildPalette(c0, c1, paletteSize)

			totalError := float32(0)
			indices := make([]int, n)
			for i := 0; i < n; i++ {
				s := samples[order[i]]
				idx, e := nearest(s, palette, errFn)
				indices[order[i]] = idx
				totalError += e
			}

			if totalError < bestError {
				bestError = totalError
				bestC0, bestC1 = c0, c1
				bestIndices = indices
			}
		}

		advanced := false
		for i := paletteSize - 1; i >= 1; i-- {
			max := n - (paletteSize - i) - 1
			if cuts[i] < max {
				cuts[i]++
				for j := i + 1; j < paletteSize; j++ {
					cuts[j] = cuts[j-1] + 1
				}
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
	}

	return Result{C0: bestC0, C1: bestC1, Indices: bestIndices, Error: bestError}
}

func solveEndpoints(weights []float32, samples []color.RgbFloat) (c0, c1 color.RgbFloat, ok bool) {
	var a, b, c float32
	var x, y color.RgbFloat
	for i, w := range weights {
		u := 1 - w
		s := samples[i]
		a += u * u
		b += u * w
		c += w * w
		x = x.Add(s.Scale(u))
		y = y.Add(s.Scale(w))
	}

	d := a*c - b*b
	if float32(math.Abs(float64(d))) < 1e-8 {
		return color.RgbFloat{}, color.RgbFloat{}, false
	}
	invD := 1 / d

	c0 = x.Scale(c).Sub(y.Scale(b)).Scale(invD)
	c1 = y.Scale(a).Sub(x.Scale(b)).Scale(invD)
	return c0, c1, true
}

func buildPalette(c0, c1 color.RgbFloat, paletteSize int) []color.RgbFloat {
	p := make([]color.RgbFloat, paletteSize)
	p[0] = c0
	for i := 1; i < paletteSize-1; i++ {
		t := float32(i) / float32(paletteSize-1)
		p[i] = color.Lerp(c0, c1, t)
	}
	p[paletteSize-1] = c1
	return p
}

func nearest(s color.RgbFloat, palette []color.RgbFloat, errFn ErrorFunc) (int, float32) {
	bestIdx := 0
	bestErr := float32(math.MaxFloat32)
	for i, p := range palette {
		e := errFn(s, p)
		if e < bestErr {
			bestErr = e
			bestIdx = i
		}
	}
	return bestIdx, bestErr
}

func dot(a, b color.RgbFloat) float32 {
	return a.R*b.R + a.G*b.G + a.B*b.B
}
