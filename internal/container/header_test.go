package container

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrips(t *testing.T) {
	h := Header{
		Format:      FormatBC1,
		FootprintID: 3,
		MipLevels:   5,
		Extent:      NewD2(4096, 2048),
	}

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, HeaderSize, n)

	got, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	data := make([]byte, HeaderSize)
	_, err := ReadHeader(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestReadHeaderRejectsUnsupportedFormat(t *testing.T) {
	h := Header{Format: FormatBC3, Extent: NewD2(16, 16), MipLevels: 1}
	var buf bytes.Buffer
	_, err := h.WriteTo(&buf)
	require.NoError(t, err)

	_, err = ReadHeader(&buf)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadHeaderRejectsInconsistentExtent(t *testing.T) {
	// D1 requires size[1]==size[2]==1; hand-craft a header that violates it.
	h := Header{Format: FormatBC1, Extent: Extent{Dim: D1, RawSize: [3]uint32{64, 2, 1}}}

	var buf bytes.Buffer
	_, err := h.WriteTo(&buf)
	assert.ErrorIs(t, err, ErrInvalidExtent)
	assert.Equal(t, 0, buf.Len())

	// WriteTo refuses it, so put the same raw-size triple on the wire by hand.
	var raw [HeaderSize]byte
	binary.LittleEndian.PutUint32(raw[0:4], Magic)
	binary.LittleEndian.PutUint32(raw[4:8], encodeConfigWord(FormatBC1, 0, D1, 1))
	binary.LittleEndian.PutUint32(raw[8:12], 64)
	binary.LittleEndian.PutUint32(raw[12:16], 2)
	binary.LittleEndian.PutUint32(raw[16:20], 1)
	_, err = ReadHeader(bytes.NewReader(raw[:]))
	assert.ErrorIs(t, err, ErrInvalidExtent)
}

func TestConfigWordRoundTripsAllFields(t *testing.T) {
	format, footprintID, dim, mipLevels := decodeConfigWord(encodeConfigWord(FormatBC1, 17, D2Array, 12))
	assert.Equal(t, FormatBC1, format)
	assert.Equal(t, uint32(17), footprintID)
	assert.Equal(t, D2Array, dim)
	assert.Equal(t, uint32(12), mipLevels)
}

func TestReadHeaderRejectsShortInput(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)
}
