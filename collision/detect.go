package collision

import (
	"gridcollide/internal/handlepool"
)

// Detect runs narrow phase over every candidate pair touching an entity
// updated since the last Detect call: each updated handle's occupied
// cells contribute candidate rows, candidates are deduped, and every
// unordered pair that shares a cell and passes the mask test is tested
// once with SAT (spec.md §4.4). The updated set is cleared on return, so
// an entity only re-enters broad phase after another UpdateTransforms
// call touches it. Pairs are returned in detection order, not sorted:
// callers that need a canonical order sort it themselves (spec.md §4.3).
func (c *Context) Detect() []Pair {
	gen := c.debug.beginDetect()

	touched := dedupHandles(c.updatedSet)
	seen := make(map[[2]int]bool)
	var pairs []Pair

	for _, h := range touched {
		rowA, ok := c.handles.IndexOf(h)
		if !ok {
			continue
		}

		rect := c.grid.HashAABB(c.aabbWorld[rowA])
		for y := rect.MinY; y <= rect.MaxY; y++ {
			for x := rect.MinX; x <= rect.MaxX; x++ {
				cell := &c.grid.Cells[c.grid.CellID(x, y)]
				for _, other := range cell.Entities {
					rowB, ok := c.handles.IndexOf(other)
					if !ok || rowB == rowA {
						continue
					}

					key := pairKey(rowA, rowB)
					if seen[key] {
						continue
					}
					seen[key] = true

					if !c.aabbWorld[rowA].Overlaps(c.aabbWorld[rowB]) {
						continue
					}

					maskA := c.entMask[rowA].mask
					maskB := c.entMask[rowB].mask
					if maskA&maskB == 0 {
						continue
					}

					if !c.narrowPhase(rowA, rowB) {
						continue
					}

					c.debug.markCollisionRows(rowA, rowB, gen)
					c.debug.markCollisionAABB(c.grid, c.aabbWorld[rowA])
					c.debug.markCollisionAABB(c.grid, c.aabbWorld[rowB])
					lo, hi := rowA, rowB
					if lo > hi {
						lo, hi = hi, lo
					}
					pairs = append(pairs, Pair{
						A:     c.entMask[lo].entity,
						B:     c.entMask[hi].entity,
						MaskA: c.entMask[lo].mask,
						MaskB: c.entMask[hi].mask,
					})
				}
			}
		}
	}

	c.updatedSet = c.updatedSet[:0]
	return pairs
}

// narrowPhase dispatches rowA/rowB to box-vs-box or box-vs-static-poly SAT
// depending on whether either row is a static polygon (spec.md §4.3).
func (c *Context) narrowPhase(rowA, rowB int) bool {
	staticA := isStaticRow(c.boxWorld[rowA])
	staticB := isStaticRow(c.boxWorld[rowB])

	if staticA && staticB {
		pa := polyFromShape(c.polys[rowA])
		pb := polyFromShape(c.polys[rowB])
		return polyToPoly(pa, nil, pb, nil)
	}
	if staticA {
		pa := polyFromShape(c.polys[rowA])
		pb, xb := boxToPoly(c.boxWorld[rowB])
		return polyToPoly(pa, nil, pb, &xb)
	}
	if staticB {
		pb := polyFromShape(c.polys[rowB])
		pa, xa := boxToPoly(c.boxWorld[rowA])
		return polyToPoly(pa, &xa, pb, nil)
	}

	pa, xa := boxToPoly(c.boxWorld[rowA])
	pb, xb := boxToPoly(c.boxWorld[rowB])
	return polyToPoly(pa, &xa, pb, &xb)
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func dedupHandles(hs []handlepool.Handle) []handlepool.Handle {
	seen := make(map[handlepool.Handle]bool, len(hs))
	out := make([]handlepool.Handle, 0, len(hs))
	for _, h := range hs {
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
