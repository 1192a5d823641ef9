package collision

import (
	"math"
	"sort"

	"gridcollide/internal/scratch"
)

// QueryRay casts ray through the context and returns every hit, sorted
// ascending by T, whose mask shares a bit with mask (spec.md §4.4
// query_ray). Static polygons are never reported by ray queries: the
// original engine's ray narrow-phase only ever tested oriented boxes, and
// this port preserves that behavior rather than "fixing" it.
func (c *Context) QueryRay(ray Ray, mask Mask) []RayHit {
	clipped, ok := clipRayToMap(ray, c.grid.MapRect())
	if !ok {
		return nil
	}

	gen := c.debug.beginRay(ray)

	rows := c.rasterCandidateRows(clipped, gen)

	var hits []RayHit
	for _, row := range rows {
		if isStaticRow(c.boxWorld[row]) {
			continue
		}
		if c.entMask[row].mask&mask == 0 {
			continue
		}
		hit, ok := rayCastBox(c.boxWorld[row], clipped)
		if !ok {
			continue
		}
		hit.Entity = c.entMask[row].entity
		hits = append(hits, hit)
		c.debug.markRayhitRow(row, gen)
		c.debug.markRayhitAABB(c.grid, c.aabbWorld[row])
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

// clipRayToMap clips ray to the grid's logical rectangle, shrinking Len so
// the ray never exits it. Returns false if the ray never enters the
// rectangle within its original length (spec.md §4.4, property 7).
func clipRayToMap(ray Ray, mapRect Rect) (Ray, bool) {
	const epsilon = 1e-9

	tmin, tmax := 0.0, ray.Len

	if math.Abs(ray.Dir.X) < epsilon {
		if ray.Origin.X < mapRect.MinX || ray.Origin.X > mapRect.MaxX {
			return Ray{}, false
		}
	} else {
		t0 := (mapRect.MinX - ray.Origin.X) / ray.Dir.X
		t1 := (mapRect.MaxX - ray.Origin.X) / ray.Dir.X
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return Ray{}, false
		}
	}

	if math.Abs(ray.Dir.Y) < epsilon {
		if ray.Origin.Y < mapRect.MinY || ray.Origin.Y > mapRect.MaxY {
			return Ray{}, false
		}
	} else {
		t0 := (mapRect.MinY - ray.Origin.Y) / ray.Dir.Y
		t1 := (mapRect.MaxY - ray.Origin.Y) / ray.Dir.Y
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return Ray{}, false
		}
	}

	if tmin > tmax || tmax <= 0 {
		return Ray{}, false
	}

	newOrigin := ray.Origin.Add(ray.Dir.Scale(tmin))
	newLen := tmax - tmin
	if newLen <= 0 {
		return Ray{}, false
	}

	return Ray{Origin: newOrigin, Dir: ray.Dir, Len: newLen}, true
}

// rasterCandidateRows walks every grid cell the clipped ray's supercover
// line touches using the error-driven Bresenham variant from spec.md §4.4,
// collecting the deduplicated set of rows occupied by any visited cell.
func (c *Context) rasterCandidateRows(ray Ray, gen int64) []int {
	target := ray.Origin.Add(ray.Dir.Scale(ray.Len))

	x0, y0 := c.grid.HashPoint(Vec2{X: ray.Origin.X, Y: ray.Origin.Y})
	x1, y1 := c.grid.HashPoint(Vec2{X: target.X, Y: target.Y})

	seenCell := scratch.AcquireSeenSet()
	defer scratch.ReleaseSeenSet(seenCell)
	seenRow := scratch.AcquireSeenSet()
	defer scratch.ReleaseSeenSet(seenRow)
	rowsPtr := scratch.AcquireInts()

	visit := func(x, y int) {
		if x < 0 || x >= c.grid.NumCellsX || y < 0 || y >= c.grid.NumCellsY {
			return
		}
		id := c.grid.CellID(x, y)
		if seenCell[id] {
			return
		}
		seenCell[id] = true
		c.debug.markRaymarchCell(id)

		for _, h := range c.grid.Cells[id].Entities {
			row, ok := c.handles.IndexOf(h)
			if !ok || seenRow[row] {
				continue
			}
			seenRow[row] = true
			*rowsPtr = append(*rowsPtr, row)
			c.debug.markRaymarchRow(row, gen)
		}
	}

	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	ed := math.Sqrt(dx*dx + dy*dy)
	if dx+dy == 0 {
		ed = 1
	}

	x, y := x0, y0
	for {
		visit(x, y)
		e2 := err
		if 2*e2 >= -dx {
			if x == x1 {
				break
			}
			if e2+dy < ed {
				visit(x, y+sy)
			}
			err -= dy
			x += sx
		}
		if 2*e2 <= dy {
			if y == y1 {
				break
			}
			if dx-e2 < ed {
				visit(x+sx, y)
			}
			err += dx
			y += sy
		}
	}

	rows := make([]int, len(*rowsPtr))
	copy(rows, *rowsPtr)
	scratch.ReleaseInts(rowsPtr)
	return rows
}
