package collision

import (
	"log"

	"gridcollide/internal/handlepool"
	"gridcollide/internal/spatialgrid"
)

// entityMaskPair keeps entity id and mask collocated for data coherency,
// mirroring the original engine's coll_entity_mask_pair.
type entityMaskPair struct {
	entity EntityID
	mask   Mask
}

// Context owns every per-entity array, the spatial grid, the handle pool,
// and the entity id map for one independent collision world. Multiple
// Contexts may be driven concurrently by separate goroutines provided no
// shared mutable state is touched (spec.md §5) — there is no internal
// locking.
type Context struct {
	grid    *spatialgrid.Grid
	handles *handlepool.Pool
	entMap  map[EntityID]handlepool.Handle

	entMask    []entityMaskPair
	boxes      []Box // local-space pose; HalfExtents.Sum()==0 marks static poly rows
	polys      []Polygon
	aabbLocal  []AABB
	aabbWorld  []AABB
	boxWorld   []Box

	updatedSet []handlepool.Handle

	debug *debugState
}

// NewContext creates a collision context over a map of mapSizeX by
// mapSizeY, bucketed into square cells of cellSize. mapSizeX and
// mapSizeY must be exact multiples of cellSize (spec.md invariant 4).
func NewContext(mapSizeX, mapSizeY, cellSize float64) (*Context, error) {
	grid, err := spatialgrid.New(mapSizeX, mapSizeY, cellSize)
	if err != nil {
		return nil, err
	}
	c := &Context{
		grid:    grid,
		handles: handlepool.New(),
		entMap:  make(map[EntityID]handlepool.Handle),
	}
	c.debug = newDebugState(grid.NumCellsX * grid.NumCellsY)
	return c, nil
}

// Close releases every per-context resource. The Context must not be used
// afterward.
func (c *Context) Close() {
	c.grid = nil
	c.handles = nil
	c.entMap = nil
	c.entMask = nil
	c.boxes = nil
	c.polys = nil
	c.aabbLocal = nil
	c.aabbWorld = nil
	c.boxWorld = nil
	c.updatedSet = nil
	c.debug = nil
}

// NumCells returns the total cell count and the per-axis cell counts.
func (c *Context) NumCells() (total, nx, ny int) {
	return len(c.grid.Cells), c.grid.NumCellsX, c.grid.NumCellsY
}

// CellRect returns the world-space rectangle of cell idx.
func (c *Context) CellRect(idx int) (Rect, error) {
	if idx < 0 || idx >= len(c.grid.Cells) {
		return Rect{}, errOutOfRange("cell index", idx, len(c.grid.Cells))
	}
	return c.grid.CellRect(idx), nil
}

// GetEntityData returns a snapshot of id's current shape and mask, or
// false if id is not registered.
func (c *Context) GetEntityData(id EntityID) (EntityData, bool) {
	h, ok := c.entMap[id]
	if !ok {
		return EntityData{}, false
	}
	row, ok := c.handles.IndexOf(h)
	if !ok {
		return EntityData{}, false
	}
	return EntityData{
		Box:      c.boxes[row],
		BoxWorld: c.boxWorld[row],
		Poly:     c.polys[row],
		AABB:     c.aabbWorld[row],
		Mask:     c.entMask[row].mask,
		IsStatic: isStaticRow(c.boxWorld[row]),
	}, true
}

func isStaticRow(boxWorld Box) bool {
	return boxWorld.HalfExtents.Sum() < 1e-5
}

func warnUnknownEntity(op string, id EntityID) {
	log.Printf("collision: %s: entity %d not found, skipping", op, id)
}

func errOutOfRange(what string, idx, n int) error {
	return &outOfRangeError{what: what, idx: idx, n: n}
}

type outOfRangeError struct {
	what string
	idx  int
	n    int
}

func (e *outOfRangeError) Error() string {
	return "collision: " + e.what + " out of range"
}
