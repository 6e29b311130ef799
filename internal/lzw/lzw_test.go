package lzw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcarmo/go-texc/internal/lzw/bitio"
)

func compress(data []byte) []byte {
	w := bitio.NewWriter()
	enc := NewEncoder()
	for _, b := range data {
		enc.Encode(b, w)
	}
	enc.Finish(w)
	return w.Flush()
}

func decompress(t *testing.T, data []byte, n int) []byte {
	t.Helper()
	r := bitio.NewReader(data)
	dec := NewDecoder()
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b, err := dec.DecodeNext(r)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

// The reference scenario from the entropy coder's testable properties:
// repeated short runs should round-trip through compress/decompress.
func TestRoundTripsReferenceVector(t *testing.T) {
	data := []byte{
		1, 1, 2, 1, 1, 2, 3, 1, 2, 1, 1, 1, 2, 1, 1, 3, 3, 1, 1, 1, 2,
	}

	compressed := compress(data)
	decoded := decompress(t, compressed, len(data))
	assert.Equal(t, data, decoded)
}

// Against a fresh encoder the dictionary holds only the 256 single-byte
// base codes, so the first codeword emitted for any input needs
// bits.Len(255) = 8 bits, not 9: width(total) counts codes 0..total-1, and
// the first emission's total is exactly alphabetSize. See DESIGN.md's LZW
// entry for why this is the width that was actually implemented.
func TestFirstCodewordWidthIsEightBits(t *testing.T) {
	enc := NewEncoder()
	assert.Equal(t, uint(8), enc.width())

	data := []byte{
		1, 1, 2, 1, 1, 2, 3, 1, 2, 1, 1, 1, 2, 1, 1, 3, 3, 1, 1, 1, 2,
	}
	w := bitio.NewWriter()
	for _, b := range data {
		enc.Encode(b, w)
	}
	enc.Finish(w)
	stream := w.Flush()

	r := bitio.NewReader(stream)
	first, ok := r.ReadBits(8)
	require.True(t, ok)
	assert.Equal(t, uint32(1), first)
}

func TestRoundTripsAllByteValues(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	compressed := compress(data)
	decoded := decompress(t, compressed, len(data))
	assert.Equal(t, data, decoded)
}

func TestRoundTripsSingleByte(t *testing.T) {
	data := []byte{42}
	compressed := compress(data)
	decoded := decompress(t, compressed, 1)
	assert.Equal(t, data, decoded)
}

func TestRoundTripsEmptyInputProducesEmptyStream(t *testing.T) {
	compressed := compress(nil)
	assert.Empty(t, compressed)
}

func TestRoundTripsLongRunsOfOneByte(t *testing.T) {
	data := make([]byte, 512)
	for i := range data {
		data[i] = 7
	}

	compressed := compress(data)
	assert.Less(t, len(compressed), len(data))

	decoded := decompress(t, compressed, len(data))
	assert.Equal(t, data, decoded)
}

func TestDecodeNextFailsOnTruncatedStream(t *testing.T) {
	data := []byte{1, 1, 2, 3}
	compressed := compress(data)

	// Drop the final byte so the last codeword cannot be read in full.
	truncated := compressed[:len(compressed)-1]

	r := bitio.NewReader(truncated)
	dec := NewDecoder()
	var err error
	for i := 0; i < len(data)+1 && err == nil; i++ {
		_, err = dec.DecodeNext(r)
	}
	assert.Error(t, err)
}

func TestCompressionGrowsDictionaryAcrossRepeats(t *testing.T) {
	data := []byte{10, 20, 10, 20, 10, 20, 10, 20, 10, 20, 10, 20}
	compressed := compress(data)
	decoded := decompress(t, compressed, len(data))
	assert.Equal(t, data, decoded)
}
