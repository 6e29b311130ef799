// Package texc implements a lossy-then-lossless texture codec: BC1 block
// compression over 4x4 tiles, followed by a Z-order-traversed,
// super-block-partitioned LZW entropy stage, framed by a stable container
// format that lets a reader decompress any single super-block without
// touching the rest of the file.
package texc

import (
	"fmt"
	"io"

	"github.com/rcarmo/go-texc/internal/bc"
	"github.com/rcarmo/go-texc/internal/color"
	"github.com/rcarmo/go-texc/internal/container"
)

// Re-exported error sentinels, so callers never need to import the
// internal packages directly to use errors.Is against them.
var (
	ErrInvalidMagic      = container.ErrInvalidMagic
	ErrUnsupportedFormat = container.ErrUnsupportedFormat
	ErrInvalidExtent     = container.ErrInvalidExtent
	ErrInvalidLZWCode    = container.ErrInvalidLZWCode
	ErrInvalidBlockData  = bc.ErrInvalidBlockData
)

// Block is the fixed 8-byte BC1 tuple.
type Block = bc.Bc1Block

// Tile is a 4x4 grid of RgbFloat texels, row-major.
type Tile = bc.Tile

// RgbFloat is a triple of [0,1] floats.
type RgbFloat = color.RgbFloat

// Extent describes a block grid's shape and dimensionality.
type Extent = container.Extent

// Header is the container's fixed leading structure.
type Header = container.Header

// Dimension tags, re-exported for constructing an Extent without an
// internal import.
const (
	D1      = container.D1
	D2      = container.D2
	D3      = container.D3
	D1Array = container.D1Array
	D2Array = container.D2Array
)

// NewExtentD1, NewExtentD2, NewExtentD3, NewExtentD1Array and
// NewExtentD2Array build extents of the corresponding dimensionality.
func NewExtentD1(width uint32) Extent                      { return container.NewD1(width) }
func NewExtentD2(width, height uint32) Extent              { return container.NewD2(width, height) }
func NewExtentD3(width, height, depth uint32) Extent       { return container.NewD3(width, height, depth) }
func NewExtentD1Array(width, layers uint32) Extent         { return container.NewD1Array(width, layers) }
func NewExtentD2Array(width, height, layers uint32) Extent { return container.NewD2Array(width, height, layers) }

// EncodeBlock compresses a 4x4 tile of texels to a single BC1 block.
func EncodeBlock(tile Tile) Block {
	return bc.EncodeBlock(tile)
}

// DecodeBlock expands a BC1 block back to its 4x4 tile of texels.
func DecodeBlock(b Block) Tile {
	return bc.DecodeBlock(b)
}

// Compress writes a complete container: header, super-block index, and
// every super-block's LZW-compressed, Z-order-traversed payload.
// footprintW/footprintH are the super-block size in blocks (1024x1024 for
// the baseline profile); footprintID is the value recorded in the
// header's configuration word so a matching profile can be looked up on
// read.
func Compress(extent Extent, footprintW, footprintH uint16, footprintID uint32, blocks []Block, w io.Writer) error {
	if err := extent.Validate(); err != nil {
		return fmt.Errorf("texc: %w", err)
	}
	return container.Compress(extent, footprintW, footprintH, footprintID, blocks, w)
}

// EncodeParallel is Compress with super-blocks compressed concurrently.
func EncodeParallel(extent Extent, footprintW, footprintH uint16, footprintID uint32, blocks []Block, w io.Writer) error {
	if err := extent.Validate(); err != nil {
		return fmt.Errorf("texc: %w", err)
	}
	return container.EncodeParallel(extent, footprintW, footprintH, footprintID, blocks, w)
}

// Decompress parses a container and decodes every super-block into a
// freshly allocated block grid. The caller must already know the
// footprint the container's profile uses (see internal/config.Profile).
func Decompress(r io.ReaderAt, size int64, footprintW, footprintH uint16) (Extent, []Block, error) {
	return container.Decompress(r, size, footprintW, footprintH)
}

// DecodeParallel is Decompress with super-blocks decoded concurrently.
func DecodeParallel(r io.ReaderAt, size int64, footprintW, footprintH uint16) (Extent, []Block, error) {
	return container.DecodeParallel(r, size, footprintW, footprintH)
}

// ReadHeader parses just a container's fixed 20-byte header, for callers
// that want to inspect format/extent before committing to a full decode.
func ReadHeader(r io.Reader) (Header, error) {
	return container.ReadHeader(r)
}

// ReadSuperBlockIndex reads count little-endian u64 offsets immediately
// following the header, without touching any payload bytes.
func ReadSuperBlockIndex(r io.ReaderAt, count uint64) ([]uint64, error) {
	buf := make([]byte, count*8)
	if _, err := r.ReadAt(buf, container.HeaderSize); err != nil {
		return nil, fmt.Errorf("texc: read super-block index: %w", err)
	}
	offsets := make([]uint64, count)
	for i := range offsets {
		offsets[i] = leUint64(buf[i*8 : i*8+8])
	}
	return offsets, nil
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// CompressSuperBlock compresses one super-block's region in isolation,
// for callers scheduling the grid's super-blocks across a worker pool
// themselves.
func CompressSuperBlock(extent Extent, footprintW, footprintH uint16, sx, sy, sz uint32, blocks []Block) []byte {
	geom := container.NewGeometry(extent, footprintW, footprintH)
	return container.CompressSuperBlock(extent, geom, sx, sy, sz, blocks)
}

// DecompressSuperBlock decodes one super-block's already-extracted
// payload bytes into blocks, the counterpart to CompressSuperBlock.
func DecompressSuperBlock(extent Extent, footprintW, footprintH uint16, sx, sy, sz uint32, payload []byte, blocks []Block) error {
	geom := container.NewGeometry(extent, footprintW, footprintH)
	return container.DecompressSuperBlock(extent, geom, sx, sy, sz, payload, blocks)
}
