// Package bc implements the BC1 block encoder/decoder and the wire shapes
// of the other BCn block variants (BC2-BC5) named in the codec's external
// interface. Only BC1 has a working encode/decode path; the others are
// structural stand-ins for the out-of-scope block formats.
package bc

import (
	"errors"

	"github.com/rcarmo/go-texc/internal/clusterfit"
	"github.com/rcarmo/go-texc/internal/color"
	"github.com/rcarmo/go-texc/internal/region"
)

// ErrInvalidBlockData is returned when a byte slice handed to a
// *FromAspects constructor has the wrong length for that block's format.
var ErrInvalidBlockData = errors.New("bc: invalid block byte length")

// Block is implemented by every BCn block shape. Aspects returns the
// block's serialized byte fields in the wire order the container's
// super-block traversal feeds to the entropy coder (§Glossary: Aspect).
type Block interface {
	Aspects() []byte
}

// Bc1Block is the fixed 8-byte BC1 tuple: two packed Rgb565 endpoints and
// sixteen 2-bit palette indices.
type Bc1Block struct {
	Color0, Color1 color.Rgb565
	Texels         [4]byte
}

// Aspects returns the 8 bytes in aspect order: color0 low, color0 high,
// color1 low, color1 high, then texel rows 0..4.
func (b Bc1Block) Aspects() []byte {
	c0 := b.Color0.Bytes()
	c1 := b.Color1.Bytes()
	return []byte{c0[0], c0[1], c1[0], c1[1], b.Texels[0], b.Texels[1], b.Texels[2], b.Texels[3]}
}

// Bc1BlockFromAspects reconstructs a block from its 8-byte aspect
// serialization.
func Bc1BlockFromAspects(data []byte) (Bc1Block, error) {
	if len(data) != 8 {
		return Bc1Block{}, ErrInvalidBlockData
	}
	return Bc1Block{
		Color0: color.Rgb565FromBytes([2]byte{data[0], data[1]}),
		Color1: color.Rgb565FromBytes([2]byte{data[2], data[3]}),
		Texels: [4]byte{data[4], data[5], data[6], data[7]},
	}, nil
}

// FourColorMode reports whether the block decodes with the 4-color palette
// (bits(color0) > bits(color1)) as opposed to the 3-color+black palette.
func (b Bc1Block) FourColorMode() bool {
	return b.Color0.Bits() > b.Color1.Bits()
}

// Tile is a 4x4 grid of RgbFloat texels, row-major.
type Tile [4][4]color.RgbFloat

// black is the 3-color mode's sentinel fourth palette entry.
var black = color.RgbFloat{}

// DecodeBlock expands an 8-byte BC1 block to its 4x4 RgbFloat tile.
func DecodeBlock(b Bc1Block) Tile {
	c0 := b.Color0.ToFloat()
	c1 := b.Color1.ToFloat()

	var palette [4]color.RgbFloat
	if b.FourColorMode() {
		palette = [4]color.RgbFloat{c0, color.Lerp(c0, c1, 1.0/3), color.Lerp(c0, c1, 2.0/3), c1}
	} else {
		palette = [4]color.RgbFloat{c0, color.Lerp(c0, c1, 0.5), c1, black}
	}

	var tile Tile
	for row := 0; row < 4; row++ {
		packed := b.Texels[row]
		for col := 0; col < 4; col++ {
			idx := (packed >> uint(col*2)) & 3
			tile[row][col] = palette[idx]
		}
	}
	return tile
}

// EncodeBlock compresses a 4x4 RgbFloat tile to an 8-byte BC1 block,
// selecting whichever of the 4-color and 3-color+alpha palette modes
// minimizes total perceptual error.
func EncodeBlock(tile Tile) Bc1Block {
	samples := flatten(tile)

	bbox := region.New(samples)
	if bbox.IsSingular() {
		c := color.QuantizeRgbFloat(samples[0])
		return Bc1Block{Color0: c, Color1: c, Texels: [4]byte{}}
	}

	fourColor := clusterfit.Fit(samples, 4, remapFourColor, color.PerceptualDistance)
	threeColor := clusterfit.Fit(samples, 3, remapThreeColor, color.PerceptualDistance)

	var winner clusterfit.Result
	var q0, q1 color.Rgb565
	if fourColor.Error <= threeColor.Error {
		winner = fourColor
		q0, q1 = canonicalizeFourColor(winner.C0, winner.C1)
	} else {
		winner = threeColor
		q0, q1 = canonicalizeThreeColor(winner.C0, winner.C1)
	}

	var texels [4]byte
	for row := 0; row < 4; row++ {
		var packed byte
		for col := 0; col < 4; col++ {
			idx := winner.Indices[row*4+col]
			packed |= byte(idx&3) << uint(col*2)
		}
		texels[row] = packed
	}

	return Bc1Block{Color0: q0, Color1: q1, Texels: texels}
}

func flatten(tile Tile) []color.RgbFloat {
	samples := make([]color.RgbFloat, 0, 16)
	for _, row := range tile {
		samples = append(samples, row[:]...)
	}
	return samples
}

// remapFourColor and remapThreeColor are the Remap functions cluster-fit
// calls on every candidate pair: quantize, disambiguate a bit-equal pair,
// and order the endpoints so the winning mode is representable.
func remapFourColor(c0, c1 color.RgbFloat) (color.RgbFloat, color.RgbFloat) {
	q0, q1 := canonicalizeFourColor(c0, c1)
	return q0.ToFloat(), q1.ToFloat()
}

func remapThreeColor(c0, c1 color.RgbFloat) (color.RgbFloat, color.RgbFloat) {
	q0, q1 := canonicalizeThreeColor(c0, c1)
	return q0.ToFloat(), q1.ToFloat()
}

func canonicalizeFourColor(c0, c1 color.RgbFloat) (color.Rgb565, color.Rgb565) {
	q0, q1 := disambiguate(color.QuantizeRgbFloat(c0), color.QuantizeRgbFloat(c1))
	if !(q0.Bits() > q1.Bits()) {
		q0, q1 = q1, q0
	}
	return q0, q1
}

func canonicalizeThreeColor(c0, c1 color.RgbFloat) (color.Rgb565, color.Rgb565) {
	q0, q1 := disambiguate(color.QuantizeRgbFloat(c0), color.QuantizeRgbFloat(c1))
	if !(q0.Bits() < q1.Bits()) {
		q0, q1 = q1, q0
	}
	return q0, q1
}

// disambiguate flips the low bit of the second endpoint when a nonsingular
// tile's endpoints quantize to the same Rgb565 value, so the mode-selecting
// bit comparison always has a well-defined answer.
func disambiguate(q0, q1 color.Rgb565) (color.Rgb565, color.Rgb565) {
	if q0 == q1 {
		q1 ^= 1
	}
	return q0, q1
}
