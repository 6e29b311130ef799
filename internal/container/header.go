package container

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic is the four-character "JKL0" tag every container begins with.
const Magic uint32 = 0x304C4B4A

// HeaderSize is the fixed byte length of the header: magic (4) +
// configuration word (4) + raw-size triple (12).
const HeaderSize = 20

// Format is the block codec a container's payload was encoded with.
// Only BC1 has a working implementation; the rest are recognized so a
// reader can reject them cleanly instead of misinterpreting their bytes.
type Format uint32

const (
	FormatBC1 Format = iota
	FormatBC3
	FormatBC4
	FormatBC5
	FormatBC6
	FormatBC7
)

const (
	formatRadix      = 10
	footprintIDRadix = 25
	dimensionsRadix  = 5
)

var (
	// ErrInvalidMagic is returned when a stream's first four bytes do not
	// match Magic.
	ErrInvalidMagic = errors.New("container: invalid magic number")

	// ErrUnsupportedFormat is returned when the configuration word names a
	// block format this codec does not implement.
	ErrUnsupportedFormat = errors.New("container: unsupported format")

	// ErrInvalidExtent is returned when the dimension tag and raw-size
	// triple are mutually inconsistent.
	ErrInvalidExtent = errors.New("container: invalid extent")
)

// Header is the container's fixed leading structure.
type Header struct {
	Format      Format
	FootprintID uint32
	MipLevels   uint32
	Extent      Extent
}

// encodeConfigWord packs format/footprintID/dimensions/mipLevels into the
// mixed-radix configuration word, least-significant digit first: format
// (base 10), footprintID (base 25), dimensions (base 5), mipLevels taking
// whatever remains.
func encodeConfigWord(format Format, footprintID uint32, dim Dimensions, mipLevels uint32) uint32 {
	v := uint32(format)
	v += footprintID * formatRadix
	v += uint32(dim) * formatRadix * footprintIDRadix
	v += mipLevels * formatRadix * footprintIDRadix * dimensionsRadix
	return v
}

// decodeConfigWord is the inverse of encodeConfigWord.
func decodeConfigWord(word uint32) (format Format, footprintID uint32, dim Dimensions, mipLevels uint32) {
	format = Format(word % formatRadix)
	word /= formatRadix
	footprintID = word % footprintIDRadix
	word /= footprintIDRadix
	dim = Dimensions(word % dimensionsRadix)
	word /= dimensionsRadix
	mipLevels = word
	return
}

// WriteTo serializes the header to w in the container's fixed 20-byte
// layout.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	if err := h.Extent.Validate(); err != nil {
		return 0, err
	}

	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], Magic)
	binary.LittleEndian.PutUint32(buf[4:8], encodeConfigWord(h.Format, h.FootprintID, h.Extent.Dim, h.MipLevels))
	binary.LittleEndian.PutUint32(buf[8:12], h.Extent.RawSize[0])
	binary.LittleEndian.PutUint32(buf[12:16], h.Extent.RawSize[1])
	binary.LittleEndian.PutUint32(buf[16:20], h.Extent.RawSize[2])

	n, err := w.Write(buf[:])
	return int64(n), err
}

// ReadHeader parses a 20-byte header from r, validating the magic number,
// format, and extent.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("container: read header: %w", err)
	}

	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != Magic {
		return Header{}, ErrInvalidMagic
	}

	format, footprintID, dim, mipLevels := decodeConfigWord(binary.LittleEndian.Uint32(buf[4:8]))
	if format > FormatBC7 {
		return Header{}, fmt.Errorf("%w: format id %d", ErrUnsupportedFormat, format)
	}
	if format != FormatBC1 {
		return Header{}, fmt.Errorf("%w: %d (only BC1 is implemented)", ErrUnsupportedFormat, format)
	}

	rawSize := [3]uint32{
		binary.LittleEndian.Uint32(buf[8:12]),
		binary.LittleEndian.Uint32(buf[12:16]),
		binary.LittleEndian.Uint32(buf[16:20]),
	}

	extent := Extent{Dim: dim, RawSize: rawSize}
	if err := extent.Validate(); err != nil {
		return Header{}, err
	}

	return Header{Format: format, FootprintID: footprintID, MipLevels: mipLevels, Extent: extent}, nil
}
