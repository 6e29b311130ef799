package container

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcarmo/go-texc/internal/bc"
	"github.com/rcarmo/go-texc/internal/color"
)

func sampleBlocks(n int) []bc.Bc1Block {
	blocks := make([]bc.Bc1Block, n)
	for i := range blocks {
		c0 := color.QuantizeRgbFloat(color.RgbFloat{R: float32(i%7) / 7, G: 0.5, B: float32((i*3)%5) / 5})
		c1 := color.QuantizeRgbFloat(color.RgbFloat{R: 1 - float32(i%7)/7, G: 0.2, B: float32(i%5) / 5})
		blocks[i] = bc.EncodeBlock(bc.Tile{
			{c0.ToFloat(), c0.ToFloat(), c1.ToFloat(), c1.ToFloat()},
			{c0.ToFloat(), c0.ToFloat(), c1.ToFloat(), c1.ToFloat()},
			{c1.ToFloat(), c1.ToFloat(), c0.ToFloat(), c0.ToFloat()},
			{c1.ToFloat(), c1.ToFloat(), c0.ToFloat(), c0.ToFloat()},
		})
	}
	return blocks
}

func TestCompressDecompressRoundTripsSmallGrid(t *testing.T) {
	extent := NewD2(6, 5)
	blocks := sampleBlocks(int(extent.BlockCount()))

	var buf bytes.Buffer
	require.NoError(t, Compress(extent, 4, 4, 0, blocks, &buf))

	gotExtent, gotBlocks, err := Decompress(bytes.NewReader(buf.Bytes()), int64(buf.Len()), 4, 4)
	require.NoError(t, err)

	assert.Equal(t, extent, gotExtent)
	assert.Equal(t, blocks, gotBlocks)
}

func TestCompressDecompressSingleSuperBlockCoversWholeGrid(t *testing.T) {
	extent := NewD2(4, 4)
	blocks := sampleBlocks(16)

	var buf bytes.Buffer
	require.NoError(t, Compress(extent, 1024, 1024, 0, blocks, &buf))

	gotExtent, gotBlocks, err := Decompress(bytes.NewReader(buf.Bytes()), int64(buf.Len()), 1024, 1024)
	require.NoError(t, err)
	assert.Equal(t, extent, gotExtent)
	assert.Equal(t, blocks, gotBlocks)
}

func TestEncodeParallelMatchesSequentialCompress(t *testing.T) {
	extent := NewD2(10, 9)
	blocks := sampleBlocks(int(extent.BlockCount()))

	var sequential, parallel bytes.Buffer
	require.NoError(t, Compress(extent, 4, 4, 0, blocks, &sequential))
	require.NoError(t, EncodeParallel(extent, 4, 4, 0, blocks, &parallel))

	seqExtent, seqBlocks, err := Decompress(bytes.NewReader(sequential.Bytes()), int64(sequential.Len()), 4, 4)
	require.NoError(t, err)
	parExtent, parBlocks, err := DecodeParallel(bytes.NewReader(parallel.Bytes()), int64(parallel.Len()), 4, 4)
	require.NoError(t, err)

	assert.Equal(t, seqExtent, parExtent)
	assert.Equal(t, seqBlocks, parBlocks)
}

func TestDecodeParallelRoundTripsAgainstCompress(t *testing.T) {
	extent := NewD2(20, 17)
	blocks := sampleBlocks(int(extent.BlockCount()))

	var buf bytes.Buffer
	require.NoError(t, Compress(extent, 8, 8, 0, blocks, &buf))

	gotExtent, gotBlocks, err := DecodeParallel(bytes.NewReader(buf.Bytes()), int64(buf.Len()), 8, 8)
	require.NoError(t, err)
	assert.Equal(t, extent, gotExtent)
	assert.Equal(t, blocks, gotBlocks)
}

func TestCompressRejectsMismatchedBlockCount(t *testing.T) {
	extent := NewD2(4, 4)
	var buf bytes.Buffer
	err := Compress(extent, 4, 4, 0, sampleBlocks(10), &buf)
	assert.Error(t, err)
}

func TestDecompressRejectsBadMagic(t *testing.T) {
	data := make([]byte, HeaderSize)
	_, _, err := Decompress(bytes.NewReader(data), int64(len(data)), 1024, 1024)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestGeometryIndexIsBijectiveOverGrid(t *testing.T) {
	extent := NewD2(100, 40)
	geom := NewGeometry(extent, 16, 16)

	seen := make(map[uint64]bool)
	for sy := uint32(0); sy < geom.CountY; sy++ {
		for sx := uint32(0); sx < geom.CountX; sx++ {
			idx := geom.Index(sx, sy, 0)
			assert.False(t, seen[idx])
			seen[idx] = true

			gotX, gotY, gotZ := geom.Coords(idx)
			assert.Equal(t, [3]uint32{sx, sy, 0}, [3]uint32{gotX, gotY, gotZ})
		}
	}
	assert.EqualValues(t, geom.Count(), len(seen))
}

func TestRegionAtClipsRightAndBottomEdges(t *testing.T) {
	extent := NewD2(10, 10)
	geom := NewGeometry(extent, 4, 4)

	last := geom.RegionAt(geom.CountX-1, geom.CountY-1)
	assert.Equal(t, uint16(2), last.Width)
	assert.Equal(t, uint16(2), last.Height)

	first := geom.RegionAt(0, 0)
	assert.Equal(t, uint16(4), first.Width)
	assert.Equal(t, uint16(4), first.Height)
}
