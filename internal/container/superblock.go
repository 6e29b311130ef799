package container

// Geometry describes how a block grid partitions into independently
// entropy-coded super-blocks of footprintW x footprintH blocks, clipped
// at the grid's right/bottom edges.
type Geometry struct {
	GridWidth, GridHeight, GridDepth uint32
	FootprintW, FootprintH           uint16
	CountX, CountY                   uint32
}

// NewGeometry derives the super-block tiling for an extent's block grid
// under a given footprint.
func NewGeometry(e Extent, footprintW, footprintH uint16) Geometry {
	gw, gh, gd := e.gridWidth(), e.gridHeight(), e.gridDepth()
	return Geometry{
		GridWidth:  gw,
		GridHeight: gh,
		GridDepth:  gd,
		FootprintW: footprintW,
		FootprintH: footprintH,
		CountX:     ceilDiv(gw, uint32(footprintW)),
		CountY:     ceilDiv(gh, uint32(footprintH)),
	}
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Count is the total number of super-blocks in the grid.
func (g Geometry) Count() uint64 {
	return uint64(g.CountX) * uint64(g.CountY) * uint64(g.GridDepth)
}

// Index returns the (z,y,x)-major index of super-block (sx,sy,sz), the
// order the container's index table and payload concatenation both use.
func (g Geometry) Index(sx, sy, sz uint32) uint64 {
	return uint64(sz)*uint64(g.CountY)*uint64(g.CountX) + uint64(sy)*uint64(g.CountX) + uint64(sx)
}

// Coords is the inverse of Index.
func (g Geometry) Coords(index uint64) (sx, sy, sz uint32) {
	perLayer := uint64(g.CountX) * uint64(g.CountY)
	sz = uint32(index / perLayer)
	rem := index % perLayer
	sy = uint32(rem / uint64(g.CountX))
	sx = uint32(rem % uint64(g.CountX))
	return
}

// Region is one super-block's clipped extent within the block grid:
// origin (OffX, OffY) and size (Width, Height), both in blocks.
type Region struct {
	OffX, OffY    uint32
	Width, Height uint16
}

// RegionAt returns the clipped region super-block (sx, sy) covers.
func (g Geometry) RegionAt(sx, sy uint32) Region {
	offX := sx * uint32(g.FootprintW)
	offY := sy * uint32(g.FootprintH)

	w := uint32(g.FootprintW)
	if offX+w > g.GridWidth {
		w = g.GridWidth - offX
	}
	h := uint32(g.FootprintH)
	if offY+h > g.GridHeight {
		h = g.GridHeight - offY
	}

	return Region{OffX: offX, OffY: offY, Width: uint16(w), Height: uint16(h)}
}

// BlockIndex maps a grid coordinate (x, y, z) to its flat index in the
// row-major block grid.
func (e Extent) BlockIndex(x, y, z uint32) uint64 {
	gw, gh := e.gridWidth(), e.gridHeight()
	return uint64(z)*uint64(gw)*uint64(gh) + uint64(y)*uint64(gw) + uint64(x)
}
