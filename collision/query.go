package collision

import (
	"gridcollide/internal/geom"
	"gridcollide/internal/scratch"
)

// QuerySphere returns every entity id whose mask shares a bit with mask
// and whose shape overlaps the X-Y circle at center with the given
// radius (spec.md §4.4 query_sphere).
func (c *Context) QuerySphere(center Vec2, radius float64, mask Mask) []EntityID {
	aabb := AABB{
		Min: Vec3{X: center.X - radius, Y: center.Y - radius, Z: negInf()},
		Max: Vec3{X: center.X + radius, Y: center.Y + radius, Z: posInf()},
	}
	rect := c.grid.HashAABB(aabb)

	var out []EntityID
	for _, row := range c.candidateRows(rect) {
		if c.entMask[row].mask&mask == 0 {
			continue
		}
		if !aabb.Overlaps(c.aabbWorld[row]) {
			continue
		}
		if !c.circleHitsRow(center, radius, row) {
			continue
		}
		out = append(out, c.entMask[row].entity)
	}
	return out
}

// QueryPoly returns every entity id whose mask shares a bit with mask and
// whose shape overlaps poly, which is given in world space.
func (c *Context) QueryPoly(poly Polygon, mask Mask) []EntityID {
	aabb := emptyAABB()
	for i := 0; i < poly.Count; i++ {
		v := poly.Verts[i]
		aabb.AddPoint(Vec3{X: v.X, Y: v.Y, Z: 0})
	}
	rect := c.grid.HashAABB(aabb)
	query := polyFromShape(poly)

	var out []EntityID
	for _, row := range c.candidateRows(rect) {
		if c.entMask[row].mask&mask == 0 {
			continue
		}
		if !aabb.Overlaps(c.aabbWorld[row]) {
			continue
		}
		if !c.polyHitsRow(query, row) {
			continue
		}
		out = append(out, c.entMask[row].entity)
	}
	return out
}

// candidateRows gathers the deduplicated set of occupied rows across every
// cell in rect (spec.md: "gather candidate handles from overlapping
// cells, sort/unique").
func (c *Context) candidateRows(rect geom.IRect) []int {
	seen := scratch.AcquireSeenSet()
	defer scratch.ReleaseSeenSet(seen)

	rowsPtr := scratch.AcquireInts()
	for y := rect.MinY; y <= rect.MaxY; y++ {
		for x := rect.MinX; x <= rect.MaxX; x++ {
			cell := &c.grid.Cells[c.grid.CellID(x, y)]
			for _, h := range cell.Entities {
				row, ok := c.handles.IndexOf(h)
				if !ok || seen[row] {
					continue
				}
				seen[row] = true
				*rowsPtr = append(*rowsPtr, row)
			}
		}
	}

	rows := make([]int, len(*rowsPtr))
	copy(rows, *rowsPtr)
	scratch.ReleaseInts(rowsPtr)
	return rows
}

func (c *Context) circleHitsRow(center Vec2, radius float64, row int) bool {
	if isStaticRow(c.boxWorld[row]) {
		p := polyFromShape(c.polys[row])
		return circleToPoly(center, radius, p, nil)
	}
	p, x := boxToPoly(c.boxWorld[row])
	return circleToPoly(center, radius, p, &x)
}

func (c *Context) polyHitsRow(query poly2D, row int) bool {
	if isStaticRow(c.boxWorld[row]) {
		p := polyFromShape(c.polys[row])
		return polyToPoly(query, nil, p, nil)
	}
	p, x := boxToPoly(c.boxWorld[row])
	return polyToPoly(query, nil, p, &x)
}
