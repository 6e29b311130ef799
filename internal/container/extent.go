package container

import "fmt"

// Dimensions tags which axes of a RawSize triple are meaningful. It is
// stored as the third radix digit (base 5) of the container's
// configuration word.
type Dimensions uint32

const (
	D1 Dimensions = iota
	D2
	D3
	D1Array
	D2Array
)

func (d Dimensions) String() string {
	switch d {
	case D1:
		return "D1"
	case D2:
		return "D2"
	case D3:
		return "D3"
	case D1Array:
		return "D1Array"
	case D2Array:
		return "D2Array"
	default:
		return fmt.Sprintf("Dimensions(%d)", uint32(d))
	}
}

// Extent describes the block-grid shape of a texture: which axes are
// meaningful, and their sizes in blocks (for array dimensions one slot
// holds the layer count: raw_size.y for D1Array, raw_size.z for D2Array).
type Extent struct {
	Dim     Dimensions
	RawSize [3]uint32
}

// NewD1 returns a one-dimensional extent of the given block width.
func NewD1(width uint32) Extent {
	return Extent{Dim: D1, RawSize: [3]uint32{width, 1, 1}}
}

// NewD2 returns a two-dimensional extent.
func NewD2(width, height uint32) Extent {
	return Extent{Dim: D2, RawSize: [3]uint32{width, height, 1}}
}

// NewD3 returns a three-dimensional extent.
func NewD3(width, height, depth uint32) Extent {
	return Extent{Dim: D3, RawSize: [3]uint32{width, height, depth}}
}

// NewD1Array returns a one-dimensional array extent; the layer count is
// canonically stored in the raw-size triple's second slot so the third
// slot can stay 1 as the format requires.
func NewD1Array(width, layers uint32) Extent {
	return Extent{Dim: D1Array, RawSize: [3]uint32{width, layers, 1}}
}

// NewD2Array returns a two-dimensional array extent.
func NewD2Array(width, height, layers uint32) Extent {
	return Extent{Dim: D2Array, RawSize: [3]uint32{width, height, layers}}
}

// Validate checks that the raw-size triple's unused axes are exactly 1,
// per the dimension tag.
func (e Extent) Validate() error {
	switch e.Dim {
	case D1:
		if e.RawSize[1] != 1 || e.RawSize[2] != 1 {
			return fmt.Errorf("%w: D1 extent requires size[1]==size[2]==1, got %v", ErrInvalidExtent, e.RawSize)
		}
	case D2:
		if e.RawSize[2] != 1 {
			return fmt.Errorf("%w: D2 extent requires size[2]==1, got %v", ErrInvalidExtent, e.RawSize)
		}
	case D1Array:
		if e.RawSize[2] != 1 {
			return fmt.Errorf("%w: D1Array extent requires size[2]==1, got %v", ErrInvalidExtent, e.RawSize)
		}
	case D3, D2Array:
		// every axis is independently meaningful
	default:
		return fmt.Errorf("%w: unknown dimension tag %d", ErrInvalidExtent, e.Dim)
	}
	return nil
}

// Width, Height and Depth return the three raw-size slots. For D2Array,
// Depth is the layer count; for D1Array, Height is.
func (e Extent) Width() uint32  { return e.RawSize[0] }
func (e Extent) Height() uint32 { return e.RawSize[1] }
func (e Extent) Depth() uint32  { return e.RawSize[2] }

// BlockCount returns the total number of blocks in the grid.
func (e Extent) BlockCount() uint64 {
	return uint64(e.RawSize[0]) * uint64(e.RawSize[1]) * uint64(e.RawSize[2])
}

// gridHeight is the axis the super-block scheduler treats as "height" for
// 2D tiling purposes: for D1/D1Array it collapses to 1, matching those
// dimensions' single row of blocks.
func (e Extent) gridHeight() uint32 {
	switch e.Dim {
	case D1, D1Array:
		return 1
	default:
		return e.RawSize[1]
	}
}

// gridDepth is the number of independent 2D planes the scheduler slices
// the grid into: the array layer count (stored in whichever raw-size slot
// is left unconstrained by Validate), the 3D depth, or 1.
func (e Extent) gridDepth() uint32 {
	switch e.Dim {
	case D3, D2Array:
		return e.RawSize[2]
	case D1Array:
		return e.RawSize[1]
	default:
		return 1
	}
}

// gridWidth is the axis length the scheduler treats as "width".
func (e Extent) gridWidth() uint32 {
	return e.RawSize[0]
}
