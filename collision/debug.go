package collision

import "gridcollide/internal/spatialgrid"

// DebugCollisionMode selects one of DebugCollisions' three render modes
// (spec.md §4.4).
type DebugCollisionMode int

const (
	// DebugCollisionOutline draws every entity's current shape outline,
	// flashing red for entities that collided in the most recent Detect.
	DebugCollisionOutline DebugCollisionMode = iota
	// DebugCollisionHeatmap draws a per-cell heatmap of how many
	// collisions the most recent Detect reported in that cell.
	DebugCollisionHeatmap
	// DebugEntityHeatmap draws a per-cell heatmap of live entity counts.
	DebugEntityHeatmap
)

// DebugRaycastMode selects one of DebugRaycast's three render modes
// (spec.md §4.4).
type DebugRaycastMode int

const (
	// DebugRaycastOutline draws every entity's shape outline, colored by
	// whether the most recent QueryRay hit it, marched past it, or
	// neither.
	DebugRaycastOutline DebugRaycastMode = iota
	// DebugRayhitHeatmap draws a per-cell heatmap of ray-hit counts.
	DebugRayhitHeatmap
	// DebugRaymarchHeatmap draws a per-cell heatmap of ray-march counts.
	DebugRaymarchHeatmap
)

// cellDebugCounters are the per-cell visit/hit counters described in
// spec.md §3 and §4.4, maintained only when the collisiondebug build tag
// is set.
type cellDebugCounters struct {
	raymarches int
	rayhits    int
	collisions int
}

// debugState holds every debug-only buffer: per-cell counters, per-row
// "last touched at generation N" markers used to flash recently-collided
// or recently-ray-hit entities, and the ray log. A nil *debugState is the
// release-build state: every method on it is a guarded no-op, so the
// compiler can fold the whole thing away when debugCollisionEnabled is
// false and newDebugState never allocates one.
type debugState struct {
	cellCounters []cellDebugCounters

	collisionGen  []int64
	rayhitGen     []int64
	raymarchGen   []int64

	detectGen int64
	rayGen    int64

	rays []Ray
}

func newDebugState(numCells int) *debugState {
	if !debugCollisionEnabled {
		return nil
	}
	return &debugState{cellCounters: make([]cellDebugCounters, numCells)}
}

func (d *debugState) onAdd(row int) {
	if d == nil {
		return
	}
	ensureLen(&d.collisionGen, row+1)
	ensureLen(&d.rayhitGen, row+1)
	ensureLen(&d.raymarchGen, row+1)
}

// beginDetect starts a new detect "generation", zeroing the per-cell
// collision counters, and returns the generation id to stamp onto rows
// and cells touched during this Detect() call.
func (d *debugState) beginDetect() int64 {
	if d == nil {
		return 0
	}
	d.detectGen++
	for i := range d.cellCounters {
		d.cellCounters[i].collisions = 0
	}
	return d.detectGen
}

func (d *debugState) markCollisionRows(rowA, rowB int, gen int64) {
	if d == nil {
		return
	}
	d.collisionGen[rowA] = gen
	d.collisionGen[rowB] = gen
}

func (d *debugState) markCollisionAABB(grid *spatialgrid.Grid, aabb AABB) {
	if d == nil {
		return
	}
	rect := grid.HashAABB(aabb)
	for y := rect.MinY; y <= rect.MaxY; y++ {
		for x := rect.MinX; x <= rect.MaxX; x++ {
			d.cellCounters[grid.CellID(x, y)].collisions++
		}
	}
}

func (d *debugState) beginRay(ray Ray) int64 {
	if d == nil {
		return 0
	}
	d.rayGen++
	d.rays = append(d.rays, ray)
	return d.rayGen
}

func (d *debugState) markRaymarchCell(cellID int) {
	if d == nil {
		return
	}
	d.cellCounters[cellID].raymarches++
}

func (d *debugState) markRaymarchRow(row int, gen int64) {
	if d == nil {
		return
	}
	d.raymarchGen[row] = gen
}

func (d *debugState) markRayhitRow(row int, gen int64) {
	if d == nil {
		return
	}
	d.rayhitGen[row] = gen
}

func (d *debugState) markRayhitAABB(grid *spatialgrid.Grid, aabb AABB) {
	if d == nil {
		return
	}
	rect := grid.HashAABB(aabb)
	for y := rect.MinY; y <= rect.MaxY; y++ {
		for x := rect.MinX; x <= rect.MaxX; x++ {
			d.cellCounters[grid.CellID(x, y)].rayhits++
		}
	}
}

// clearRayFrame drops the ray log and raymarch/rayhit counters, called at
// the end of a debug raycast draw, matching the original engine clearing
// its per-frame debug buffers after rendering them.
func (d *debugState) clearRayFrame() {
	if d == nil {
		return
	}
	for i := range d.cellCounters {
		d.cellCounters[i].raymarches = 0
		d.cellCounters[i].rayhits = 0
	}
	d.rays = d.rays[:0]
}

func (d *debugState) resetAll() {
	if d == nil {
		return
	}
	for i := range d.cellCounters {
		d.cellCounters[i] = cellDebugCounters{}
	}
	d.rays = d.rays[:0]
	d.collisionGen = d.collisionGen[:0]
	d.rayhitGen = d.rayhitGen[:0]
	d.raymarchGen = d.raymarchGen[:0]
	d.detectGen = 0
	d.rayGen = 0
}
