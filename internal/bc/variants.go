package bc

// This file holds the wire shapes of the other BCn block variants named in
// the codec's external interface. Their internal structure is analogous to
// BC1; only the shape is given here, no encoder/decoder — BC2/BC3/BC4/BC5
// are out of this codec's core scope and are treated as external
// collaborators, same as the pixel loader and the neural color predictor.

// Bc4Block is a single-channel block: two 8-bit endpoints plus 48 bits of
// 3-bit indices (16 texels). Endpoint ordering selects a 6-interpolated or
// 4-interpolated+{0,1} palette, matching the BCn block-format family BC1
// belongs to.
type Bc4Block struct {
	Endpoint0, Endpoint1 uint8
	Indices              [6]byte // 16 x 3-bit indices, packed LSB-first
}

// Aspects returns the 8 raw bytes of the block.
func (b Bc4Block) Aspects() []byte {
	out := make([]byte, 0, 8)
	out = append(out, b.Endpoint0, b.Endpoint1)
	return append(out, b.Indices[:]...)
}

// Bc4BlockFromAspects reconstructs a Bc4Block from its 8-byte serialization.
func Bc4BlockFromAspects(data []byte) (Bc4Block, error) {
	if len(data) != 8 {
		return Bc4Block{}, ErrInvalidBlockData
	}
	var b Bc4Block
	b.Endpoint0, b.Endpoint1 = data[0], data[1]
	copy(b.Indices[:], data[2:8])
	return b, nil
}

// Bc2Block packs 8 bytes of 4-bit alpha (row-major, 16 texels) ahead of an
// 8-byte BC1-style color block that is always forced to 4-color mode.
type Bc2Block struct {
	Alpha [8]byte
	Color Bc1Block
}

// Aspects returns the 16 raw bytes: alpha plane, then the color block.
func (b Bc2Block) Aspects() []byte {
	out := make([]byte, 0, 16)
	out = append(out, b.Alpha[:]...)
	return append(out, b.Color.Aspects()...)
}

// Bc3Block pairs an 8-byte BC4 single-channel alpha block with an 8-byte
// BC1 color block.
type Bc3Block struct {
	Alpha Bc4Block
	Color Bc1Block
}

// Aspects returns the 16 raw bytes: the BC4 alpha block, then the color
// block.
func (b Bc3Block) Aspects() []byte {
	out := make([]byte, 0, 16)
	out = append(out, b.Alpha.Aspects()...)
	return append(out, b.Color.Aspects()...)
}

// Bc5Block is two BC4 blocks, one per channel (typically R and G of a
// tangent-space normal map).
type Bc5Block struct {
	R, G Bc4Block
}

// Aspects returns the 16 raw bytes: the R channel block, then the G
// channel block.
func (b Bc5Block) Aspects() []byte {
	out := make([]byte, 0, 16)
	out = append(out, b.R.Aspects()...)
	return append(out, b.G.Aspects()...)
}
