// Package container implements the on-disk texture container: header,
// super-block index, and independently LZW-compressed super-block
// payloads traversed in Z-order for entropy-coder locality.
package container

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/rcarmo/go-texc/internal/bc"
	"github.com/rcarmo/go-texc/internal/logging"
	"github.com/rcarmo/go-texc/internal/lzw"
	"github.com/rcarmo/go-texc/internal/lzw/bitio"
)

// ErrInvalidLZWCode is returned when a super-block's payload decodes a
// code the entropy coder's dictionary could not yet contain.
var ErrInvalidLZWCode = lzw.ErrInvalidCode

// aspectsPerBlock is the fixed wire width of one BC1 block's serialized
// aspect bytes.
const aspectsPerBlock = 8

// blackBlock is the neutral default a freshly allocated grid is filled
// with before decode writes into it.
var blackBlock = bc.Bc1Block{}

// Compress writes a complete container for the given block grid: header,
// super-block index, then each super-block's Z-order-traversed,
// LZW-compressed payload, in (z,y,x) order.
func Compress(extent Extent, footprintW, footprintH uint16, footprintID uint32, blocks []bc.Bc1Block, w io.Writer) error {
	session := logging.Session(logging.F("session", uuid.New()), logging.F("op", "compress"))
	if extent.BlockCount() != uint64(len(blocks)) {
		return fmt.Errorf("container: block slice length %d does not match extent size %d", len(blocks), extent.BlockCount())
	}

	header := Header{Format: FormatBC1, FootprintID: footprintID, MipLevels: 1, Extent: extent}
	if _, err := header.WriteTo(w); err != nil {
		return fmt.Errorf("container: write header: %w", err)
	}

	geom := NewGeometry(extent, footprintW, footprintH)
	count := geom.Count()

	payloads := make([][]byte, count)
	for sz := uint32(0); sz < geom.GridDepth; sz++ {
		for sy := uint32(0); sy < geom.CountY; sy++ {
			for sx := uint32(0); sx < geom.CountX; sx++ {
				idx := geom.Index(sx, sy, sz)
				region := geom.RegionAt(sx, sy)
				payloads[idx] = compressRegion(extent, region, sz, blocks)
			}
		}
	}

	offsets := make([]uint64, count)
	offset := uint64(HeaderSize) + count*8
	for i, p := range payloads {
		offsets[i] = offset
		offset += uint64(len(p))
	}

	for _, off := range offsets {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], off)
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("container: write index: %w", err)
		}
	}

	for _, p := range payloads {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("container: write payload: %w", err)
		}
	}

	session.Debug("compressed %d super-blocks, %d blocks", count, len(blocks))
	return nil
}

// compressRegion drives one super-block's Z-order traversal through a
// fresh LZW encoder and returns its padded, bit-packed payload.
func compressRegion(extent Extent, region Region, layer uint32, blocks []bc.Bc1Block) []byte {
	writer := bitio.NewWriter()
	enc := lzw.NewEncoder()

	z := NewBoundZCurve(region.Width, region.Height)
	for {
		lx, ly, ok := z.Next()
		if !ok {
			break
		}
		idx := extent.BlockIndex(region.OffX+uint32(lx), region.OffY+uint32(ly), layer)
		for _, b := range blocks[idx].Aspects() {
			enc.Encode(b, writer)
		}
	}
	enc.Finish(writer)
	return writer.Flush()
}

// CompressSuperBlock compresses a single super-block's region independent
// of the rest of the grid, for callers scheduling super-blocks in
// parallel themselves.
func CompressSuperBlock(extent Extent, geom Geometry, sx, sy, sz uint32, blocks []bc.Bc1Block) []byte {
	region := geom.RegionAt(sx, sy)
	return compressRegion(extent, region, sz, blocks)
}

// Decompress parses a complete container, allocates a neutral block grid,
// and decodes every super-block's payload into it. The caller supplies
// the footprint this container's header.FootprintID names — resolving
// that id to a size is a profile-configuration concern (internal/config),
// not something the wire format carries directly.
func Decompress(r io.ReaderAt, size int64, footprintW, footprintH uint16) (Extent, []bc.Bc1Block, error) {
	session := logging.Session(logging.F("session", uuid.New()), logging.F("op", "decompress"))

	header, err := ReadHeader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return Extent{}, nil, err
	}

	blocks := make([]bc.Bc1Block, header.Extent.BlockCount())
	for i := range blocks {
		blocks[i] = blackBlock
	}

	geom := NewGeometry(header.Extent, footprintW, footprintH)
	count := geom.Count()

	offsets := make([]uint64, count)
	indexBytes := make([]byte, count*8)
	if _, err := r.ReadAt(indexBytes, HeaderSize); err != nil {
		return Extent{}, nil, fmt.Errorf("container: read super-block index: %w", err)
	}
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint64(indexBytes[i*8 : i*8+8])
	}

	for sz := uint32(0); sz < geom.GridDepth; sz++ {
		for sy := uint32(0); sy < geom.CountY; sy++ {
			for sx := uint32(0); sx < geom.CountX; sx++ {
				idx := geom.Index(sx, sy, sz)
				start := offsets[idx]
				var end uint64
				if idx+1 < count {
					end = offsets[idx+1]
				} else {
					end = uint64(size)
				}

				payload := make([]byte, end-start)
				if _, err := r.ReadAt(payload, int64(start)); err != nil {
					return Extent{}, nil, fmt.Errorf("container: read super-block (%d,%d,%d): %w", sx, sy, sz, err)
				}

				region := geom.RegionAt(sx, sy)
				if err := decompressRegion(header.Extent, region, sz, payload, blocks); err != nil {
					session.With(logging.F("x", sx), logging.F("y", sy), logging.F("z", sz)).Warn("super-block decode failed: %v", err)
					return Extent{}, nil, fmt.Errorf("container: decode super-block (%d,%d,%d): %w", sx, sy, sz, err)
				}
			}
		}
	}

	session.Debug("decompressed %d super-blocks, %d blocks", count, len(blocks))
	return header.Extent, blocks, nil
}

// decompressRegion decodes one super-block's payload, walking the same
// Z-order path the encoder used, and writes each recovered block back
// into its grid slot.
func decompressRegion(extent Extent, region Region, layer uint32, payload []byte, blocks []bc.Bc1Block) error {
	reader := bitio.NewReader(payload)
	dec := lzw.NewDecoder()

	z := NewBoundZCurve(region.Width, region.Height)
	for {
		lx, ly, ok := z.Next()
		if !ok {
			break
		}

		var aspects [aspectsPerBlock]byte
		for i := range aspects {
			b, err := dec.DecodeNext(reader)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidLZWCode, err)
			}
			aspects[i] = b
		}

		block, err := bc.Bc1BlockFromAspects(aspects[:])
		if err != nil {
			return err
		}

		idx := extent.BlockIndex(region.OffX+uint32(lx), region.OffY+uint32(ly), layer)
		blocks[idx] = block
	}
	return nil
}

// DecompressSuperBlock decodes a single super-block's already-extracted
// payload bytes into blocks, for callers that parallelize reads
// themselves.
func DecompressSuperBlock(extent Extent, geom Geometry, sx, sy, sz uint32, payload []byte, blocks []bc.Bc1Block) error {
	region := geom.RegionAt(sx, sy)
	return decompressRegion(extent, region, sz, payload, blocks)
}

// EncodeParallel compresses each super-block concurrently and assembles
// the final container once every payload is staged, so offsets can be
// patched in a single pass as the write path requires.
func EncodeParallel(extent Extent, footprintW, footprintH uint16, footprintID uint32, blocks []bc.Bc1Block, w io.Writer) error {
	session := logging.Session(logging.F("session", uuid.New()), logging.F("op", "encode-parallel"))
	if extent.BlockCount() != uint64(len(blocks)) {
		return fmt.Errorf("container: block slice length %d does not match extent size %d", len(blocks), extent.BlockCount())
	}

	geom := NewGeometry(extent, footprintW, footprintH)
	count := geom.Count()
	payloads := make([][]byte, count)

	var wg sync.WaitGroup
	for sz := uint32(0); sz < geom.GridDepth; sz++ {
		for sy := uint32(0); sy < geom.CountY; sy++ {
			for sx := uint32(0); sx < geom.CountX; sx++ {
				sx, sy, sz := sx, sy, sz
				idx := geom.Index(sx, sy, sz)
				wg.Add(1)
				go func() {
					defer wg.Done()
					payloads[idx] = CompressSuperBlock(extent, geom, sx, sy, sz, blocks)
					session.With(logging.F("x", sx), logging.F("y", sy), logging.F("z", sz)).Debug("super-block compressed (%d bytes)", len(payloads[idx]))
				}()
			}
		}
	}
	wg.Wait()
	session.Debug("compressed %d super-blocks, %d blocks", count, len(blocks))

	header := Header{Format: FormatBC1, FootprintID: footprintID, MipLevels: 1, Extent: extent}
	if _, err := header.WriteTo(w); err != nil {
		return fmt.Errorf("container: write header: %w", err)
	}

	offsets := make([]uint64, count)
	offset := uint64(HeaderSize) + count*8
	for i, p := range payloads {
		offsets[i] = offset
		offset += uint64(len(p))
	}
	for _, off := range offsets {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], off)
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("container: write index: %w", err)
		}
	}
	for _, p := range payloads {
		if _, err := w.Write(p); err != nil {
			return fmt.Errorf("container: write payload: %w", err)
		}
	}
	return nil
}

// DecodeParallel decodes every super-block concurrently into a shared
// grid. Super-blocks never overlap, so concurrent writes to disjoint
// slices of blocks need no synchronization beyond the WaitGroup barrier.
func DecodeParallel(r io.ReaderAt, size int64, footprintW, footprintH uint16) (Extent, []bc.Bc1Block, error) {
	session := logging.Session(logging.F("session", uuid.New()), logging.F("op", "decode-parallel"))
	header, err := ReadHeader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return Extent{}, nil, err
	}

	blocks := make([]bc.Bc1Block, header.Extent.BlockCount())
	for i := range blocks {
		blocks[i] = blackBlock
	}

	geom := NewGeometry(header.Extent, footprintW, footprintH)
	count := geom.Count()

	offsets := make([]uint64, count)
	indexBytes := make([]byte, count*8)
	if _, err := r.ReadAt(indexBytes, HeaderSize); err != nil {
		return Extent{}, nil, fmt.Errorf("container: read super-block index: %w", err)
	}
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint64(indexBytes[i*8 : i*8+8])
	}

	errs := make([]error, count)
	var wg sync.WaitGroup
	for sz := uint32(0); sz < geom.GridDepth; sz++ {
		for sy := uint32(0); sy < geom.CountY; sy++ {
			for sx := uint32(0); sx < geom.CountX; sx++ {
				sx, sy, sz := sx, sy, sz
				idx := geom.Index(sx, sy, sz)
				start := offsets[idx]
				var end uint64
				if idx+1 < count {
					end = offsets[idx+1]
				} else {
					end = uint64(size)
				}

				wg.Add(1)
				go func() {
					defer wg.Done()
					blockSession := session.With(logging.F("x", sx), logging.F("y", sy), logging.F("z", sz))
					payload := make([]byte, end-start)
					if _, err := r.ReadAt(payload, int64(start)); err != nil {
						errs[idx] = fmt.Errorf("container: read super-block (%d,%d,%d): %w", sx, sy, sz, err)
						blockSession.Warn("super-block read failed: %v", errs[idx])
						return
					}
					if err := DecompressSuperBlock(header.Extent, geom, sx, sy, sz, payload, blocks); err != nil {
						errs[idx] = fmt.Errorf("container: decode super-block (%d,%d,%d): %w", sx, sy, sz, err)
						blockSession.Warn("super-block decode failed: %v", errs[idx])
					}
				}()
			}
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return header.Extent, blocks, err
		}
	}

	session.Debug("decompressed %d super-blocks, %d blocks", count, len(blocks))
	return header.Extent, blocks, nil
}

