// Package color implements the fixed-point and floating-point color
// primitives shared by the block encoder and the cluster-fit solver:
// Rgb565, RgbFloat, RgbaFloat and the Yiq perceptual metric.
package color

import "math"

// Rgb565 is a packed 16-bit RGB value with 5/6/5 channel widths. Bit
// equality is value equality; ordering is the integer value of the packed
// bits (used only to canonicalize endpoint order in the block codec).
type Rgb565 uint16

const (
	rMask, rShift, rBits = 0xF800, 11, 5
	gMask, gShift, gBits = 0x07E0, 5, 6
	bMask, bShift, bBits = 0x001F, 0, 5
)

// Bits returns the packed 16-bit value.
func (c Rgb565) Bits() uint16 { return uint16(c) }

// Bytes packs c into its 2-byte little-endian wire representation.
func (c Rgb565) Bytes() [2]byte {
	return [2]byte{byte(c), byte(c >> 8)}
}

// Rgb565FromBytes unpacks a little-endian 2-byte value. Exact: lossless
// round-trip with Bytes.
func Rgb565FromBytes(b [2]byte) Rgb565 {
	return Rgb565(uint16(b[0]) | uint16(b[1])<<8)
}

// channel extracts a raw channel value given its mask/shift.
func (c Rgb565) channel(mask uint16, shift uint) uint16 {
	return (uint16(c) & mask) >> shift
}

// ToFloat unpacks c to an RgbFloat in [0,1], each channel scaled by its
// own bit width's maximum value.
func (c Rgb565) ToFloat() RgbFloat {
	r := c.channel(rMask, rShift)
	g := c.channel(gMask, gShift)
	b := c.channel(bMask, bShift)
	return RgbFloat{
		R: float32(r) / float32((1<<rBits)-1),
		G: float32(g) / float32((1<<gBits)-1),
		B: float32(b) / float32((1<<bBits)-1),
	}
}

// ExpandRGBA expands c to 8-bit-per-channel RGBA via bit replication
// (top bits repeated into the low bits of the widened channel), the same
// expansion a renderer's texture sampler performs. Alpha is always opaque;
// BC1 carries no alpha information of its own.
func (c Rgb565) ExpandRGBA() (r, g, b, a byte) {
	rv := c.channel(rMask, rShift)
	gv := c.channel(gMask, gShift)
	bv := c.channel(bMask, bShift)
	r = byte(rv<<3 | rv>>2)
	g = byte(gv<<2 | gv>>4)
	b = byte(bv<<3 | bv>>2)
	a = 255
	return
}

// QuantizeRgbFloat quantizes c to Rgb565. Each channel of width w bits maps
// via round_clamp(c * (2^w - 1)) clamped to [0, 2^w - 1].
func QuantizeRgbFloat(c RgbFloat) Rgb565 {
	r := quantizeChannel(c.R, rBits)
	g := quantizeChannel(c.G, gBits)
	b := quantizeChannel(c.B, bBits)
	return Rgb565(r<<rShift | g<<gShift | b<<bShift)
}

func quantizeChannel(v float32, bits uint) uint16 {
	maxVal := float32((1 << bits) - 1)
	scaled := v * maxVal
	rounded := int32(math.Round(float64(scaled)))
	if rounded < 0 {
		rounded = 0
	}
	if rounded > int32(maxVal) {
		rounded = int32(maxVal)
	}
	return uint16(rounded)
}

// WrappingAdd adds two Rgb565 values treating each channel as its own
// modulus (mod 32, mod 64, mod 32). Used by residual-encoding experiments;
// not part of the baseline encode path.
func WrappingAdd(a, b Rgb565) Rgb565 {
	r := WrapAdd(a.channel(rMask, rShift), b.channel(rMask, rShift), uint16(1<<rBits))
	g := WrapAdd(a.channel(gMask, gShift), b.channel(gMask, gShift), uint16(1<<gBits))
	bb := WrapAdd(a.channel(bMask, bShift), b.channel(bMask, bShift), uint16(1<<bBits))
	return Rgb565(r<<rShift | g<<gShift | bb<<bShift)
}

// WrappingSub subtracts two Rgb565 values treating each channel as its own
// modulus (mod 32, mod 64, mod 32).
func WrappingSub(a, b Rgb565) Rgb565 {
	r := WrapSub(a.channel(rMask, rShift), b.channel(rMask, rShift), uint16(1<<rBits))
	g := WrapSub(a.channel(gMask, gShift), b.channel(gMask, gShift), uint16(1<<gBits))
	bb := WrapSub(a.channel(bMask, bShift), b.channel(bMask, bShift), uint16(1<<bBits))
	return Rgb565(r<<rShift | g<<gShift | bb<<bShift)
}

// RgbFloat is a triple of 32-bit floats in [0,1]. All internal metric
// computation uses this representation.
type RgbFloat struct {
	R, G, B float32
}

// Add returns a+b componentwise.
func (a RgbFloat) Add(b RgbFloat) RgbFloat {
	return RgbFloat{a.R + b.R, a.G + b.G, a.B + b.B}
}

// Sub returns a-b componentwise.
func (a RgbFloat) Sub(b RgbFloat) RgbFloat {
	return RgbFloat{a.R - b.R, a.G - b.G, a.B - b.B}
}

// Scale returns a*s componentwise.
func (a RgbFloat) Scale(s float32) RgbFloat {
	return RgbFloat{a.R * s, a.G * s, a.B * s}
}

// Lerp interpolates from a to b by t in [0,1].
func Lerp(a, b RgbFloat, t float32) RgbFloat {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// Equal reports exact componentwise equality.
func (a RgbFloat) Equal(b RgbFloat) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B
}

// RgbaFloat is a quadruple of 32-bit floats in [0,1].
type RgbaFloat struct {
	R, G, B, A float32
}

// Yiq is the perceptual color space used only for distance computation.
type Yiq struct {
	Y, I, Q float32
}

// FromRgbFloat computes the Yiq projection of an RgbFloat via the standard
// NTSC YIQ transform matrix.
func FromRgbFloat(c RgbFloat) Yiq {
	return Yiq{
		Y: 0.299*c.R + 0.587*c.G + 0.114*c.B,
		I: 0.596*c.R - 0.275*c.G - 0.321*c.B,
		Q: 0.212*c.R - 0.523*c.G + 0.311*c.B,
	}
}

// Distance returns the perceptual distance between two Yiq points:
// sqrt((dY)^2 + 0.25*((dI)^2 + (dQ)^2)).
func Distance(a, b Yiq) float32 {
	dy := a.Y - b.Y
	di := a.I - b.I
	dq := a.Q - b.Q
	return float32(math.Sqrt(float64(dy*dy + 0.25*(di*di+dq*dq))))
}

// PerceptualDistance is a convenience wrapper computing the Yiq distance
// between two RgbFloat samples directly; this is the error function BC1's
// cluster fit uses.
func PerceptualDistance(a, b RgbFloat) float32 {
	return Distance(FromRgbFloat(a), FromRgbFloat(b))
}
