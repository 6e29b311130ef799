// Package lzw implements the variable-width, bit-accurate LZW variant the
// container format uses to entropy-code each super-block's block-aspect
// byte stream. Codewords grow by one bit as the dictionary fills and are
// packed least-significant-bit first; the decoder rebuilds the identical
// dictionary from the bit stream alone, so no side channel carries
// dictionary state.
package lzw

import (
	"errors"
	"math/bits"

	"github.com/rcarmo/go-texc/internal/lzw/bitio"
)

// alphabetSize is the number of single-byte base codes, 0..255.
const alphabetSize = 256

// ErrInvalidCode is returned when a decoded codeword refers to a
// dictionary entry that does not yet exist.
var ErrInvalidCode = errors.New("lzw: code exceeds dictionary size")

// entry is a dictionary transition (parent code, next byte) discovered
// during encoding.
type entry struct {
	prefix uint32
	b      byte
}

// Encoder holds one super-block's worth of LZW dictionary state. It is not
// safe for concurrent use and must not be reused across super-blocks.
type Encoder struct {
	entries []entry
	prefix  uint32
	hasPfx  bool
}

// NewEncoder returns a fresh encoder with an empty dictionary.
func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) lookup(prefix uint32, b byte) (uint32, bool) {
	want := entry{prefix: prefix, b: b}
	start := 0
	if prefix >= alphabetSize {
		start = int(prefix - alphabetSize)
	}
	for i := start; i < len(e.entries); i++ {
		if e.entries[i] == want {
			return uint32(i) + alphabetSize, true
		}
	}
	return 0, false
}

// width returns the current codeword width: the number of bits needed to
// represent any of the codes 0..total-1, i.e. ceil(log2(total)) for total
// candidate codes.
func width(total int) uint {
	return uint(bits.Len(uint(total - 1)))
}

func (e *Encoder) width() uint {
	return width(len(e.entries) + alphabetSize)
}

// Encode feeds a single input byte through the dictionary, writing a
// codeword to w whenever the running prefix cannot be extended.
func (e *Encoder) Encode(b byte, w *bitio.Writer) {
	if !e.hasPfx {
		e.prefix = uint32(b)
		e.hasPfx = true
		return
	}

	if code, ok := e.lookup(e.prefix, b); ok {
		e.prefix = code
		return
	}

	w.WriteBits(e.prefix, e.width())
	e.entries = append(e.entries, entry{prefix: e.prefix, b: b})
	e.prefix = uint32(b)
}

// Finish flushes any pending prefix as a final codeword.
func (e *Encoder) Finish(w *bitio.Writer) {
	if !e.hasPfx {
		return
	}
	w.WriteBits(e.prefix, e.width())
	e.hasPfx = false
}

// output is the decoder's last emission: either a single byte or a range
// into the scratch buffer, mirroring the dictionary-entry shapes the
// encoder built.
type output struct {
	isRange bool
	b       byte
	start   int
	end     int
}

// Decoder mirrors Encoder's dictionary growth while consuming bits from a
// bitio.Reader. One Decoder instance belongs to exactly one super-block's
// byte stream.
type Decoder struct {
	scratch []byte
	entries [][2]int // start, end into scratch
	last    output
	hasLast bool
	pending output
	hasPend bool
}

// NewDecoder returns a fresh decoder with an empty dictionary.
func NewDecoder() *Decoder {
	return &Decoder{}
}

func (d *Decoder) width() uint {
	total := len(d.entries) + alphabetSize
	if d.hasLast {
		total++
	}
	return width(total)
}

func (d *Decoder) pushEntry(elem byte) output {
	start := len(d.scratch)
	if d.hasLast {
		if d.last.isRange {
			d.scratch = append(d.scratch, d.scratch[d.last.start:d.last.end]...)
		} else {
			d.scratch = append(d.scratch, d.last.b)
		}
	}
	d.scratch = append(d.scratch, elem)
	end := len(d.scratch)
	d.entries = append(d.entries, [2]int{start, end})
	return output{isRange: true, start: start, end: end}
}

func (d *Decoder) decodeNextRange(r *bitio.Reader) error {
	width := d.width()
	code, ok := r.ReadBits(width)
	if !ok {
		return ErrInvalidCode
	}

	switch {
	case code < alphabetSize:
		elem := byte(code)
		if d.hasLast {
			d.pushEntry(elem)
		}
		d.last = output{isRange: false, b: elem}
		d.hasLast = true
		d.pending = output{isRange: false, b: elem}
		d.hasPend = true

	case int(code)-alphabetSize < len(d.entries):
		se := d.entries[code-alphabetSize]
		first := d.scratch[se[0]]
		if d.hasLast {
			d.pushEntry(first)
		}
		d.last = output{isRange: true, start: se[0], end: se[1]}
		d.hasLast = true
		d.pending = output{isRange: true, start: se[0], end: se[1]}
		d.hasPend = true

	case int(code)-alphabetSize == len(d.entries):
		if !d.hasLast {
			return ErrInvalidCode
		}
		var first byte
		if d.last.isRange {
			first = d.scratch[d.last.start]
		} else {
			first = d.last.b
		}
		next := d.pushEntry(first)
		d.last = next
		d.hasLast = true
		d.pending = next
		d.hasPend = true

	default:
		return ErrInvalidCode
	}

	return nil
}

// DecodeNext returns the next decoded byte, reading and expanding
// additional codewords from r as needed.
func (d *Decoder) DecodeNext(r *bitio.Reader) (byte, error) {
	if d.hasPend {
		if !d.pending.isRange {
			b := d.pending.b
			d.hasPend = false
			return b, nil
		}
		if d.pending.start < d.pending.end {
			b := d.scratch[d.pending.start]
			d.pending.start++
			if d.pending.start >= d.pending.end {
				d.hasPend = false
			}
			return b, nil
		}
		d.hasPend = false
	}

	if err := d.decodeNextRange(r); err != nil {
		return 0, err
	}
	return d.DecodeNext(r)
}

