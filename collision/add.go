package collision

import "fmt"

// ensureLen grows a per-entity array to at least length n, appending the
// zero value for any new tail rows (spec.md §4.1 growth rule), or leaves
// it untouched if already long enough so an existing reused row can be
// overwritten in place.
func ensureLen[T any](s *[]T, n int) {
	for len(*s) < n {
		var zero T
		*s = append(*s, zero)
	}
}

// AddBoxes registers count dynamic oriented boxes. boxes, ids, masks, and
// transforms must all have the same length.
func (c *Context) AddBoxes(boxes []Box, ids []EntityID, masks []Mask, transforms []Transform) error {
	if len(boxes) != len(ids) || len(ids) != len(masks) || len(masks) != len(transforms) {
		return fmt.Errorf("collision: AddBoxes: mismatched slice lengths (boxes=%d ids=%d masks=%d transforms=%d)",
			len(boxes), len(ids), len(masks), len(transforms))
	}

	for i := range boxes {
		box := boxes[i]
		if box.HalfExtents.Sum() == 0 {
			return fmt.Errorf("collision: AddBoxes: entity %d has zero half-extents; use AddStaticPolys for static geometry", ids[i])
		}

		h := c.handles.NewHandle()
		row, _ := c.handles.IndexOf(h)

		localAABB := boxLocalAABB(box)
		worldTx := transforms[i]
		worldAABB := localAABB.Transform(worldTx)
		worldBox := Box{
			Pose:        worldTx.Mul(box.Pose),
			HalfExtents: box.HalfExtents,
		}

		ensureLen(&c.entMask, row+1)
		ensureLen(&c.boxes, row+1)
		ensureLen(&c.polys, row+1)
		ensureLen(&c.aabbLocal, row+1)
		ensureLen(&c.aabbWorld, row+1)
		ensureLen(&c.boxWorld, row+1)

		c.entMask[row] = entityMaskPair{entity: ids[i], mask: masks[i]}
		c.boxes[row] = box
		c.polys[row] = Polygon{}
		c.aabbLocal[row] = localAABB
		c.aabbWorld[row] = worldAABB
		c.boxWorld[row] = worldBox

		rect := c.grid.HashAABB(worldAABB)
		c.grid.Insert(rect, h)

		c.entMap[ids[i]] = h
		c.debug.onAdd(row)
	}
	return nil
}

// boxLocalAABB computes the AABB of box's 8 corners in local space,
// matching the original engine's sx_aabb_from_box over the general
// (non-axis-aligned-in-world) box shape.
func boxLocalAABB(box Box) AABB {
	ex, ey, ez := box.HalfExtents.X, box.HalfExtents.Y, box.HalfExtents.Z
	out := emptyAABB()
	for _, sx := range [2]float64{-ex, ex} {
		for _, sy := range [2]float64{-ey, ey} {
			for _, sz := range [2]float64{-ez, ez} {
				out.AddPoint(box.Pose.Apply(Vec3{X: sx, Y: sy, Z: sz}))
			}
		}
	}
	return out
}

func emptyAABB() AABB {
	return AABB{
		Min: Vec3{X: posInf(), Y: posInf(), Z: posInf()},
		Max: Vec3{X: negInf(), Y: negInf(), Z: negInf()},
	}
}

// AddStaticPolys registers count static convex polygons. Static polygons
// are supplied already in world space, by convention. polys, ids, and
// masks must all have the same length.
func (c *Context) AddStaticPolys(polys []Polygon, ids []EntityID, masks []Mask) error {
	if len(polys) != len(ids) || len(ids) != len(masks) {
		return fmt.Errorf("collision: AddStaticPolys: mismatched slice lengths (polys=%d ids=%d masks=%d)",
			len(polys), len(ids), len(masks))
	}

	emptyBox := Box{Pose: identityTransform()}

	for i := range polys {
		h := c.handles.NewHandle()
		row, _ := c.handles.IndexOf(h)

		aabb := emptyAABB()
		for v := 0; v < polys[i].Count; v++ {
			p := polys[i].Verts[v]
			aabb.AddPoint(Vec3{X: p.X, Y: p.Y, Z: 0})
		}

		ensureLen(&c.entMask, row+1)
		ensureLen(&c.boxes, row+1)
		ensureLen(&c.polys, row+1)
		ensureLen(&c.aabbLocal, row+1)
		ensureLen(&c.aabbWorld, row+1)
		ensureLen(&c.boxWorld, row+1)

		c.entMask[row] = entityMaskPair{entity: ids[i], mask: masks[i]}
		c.boxes[row] = emptyBox
		c.polys[row] = polys[i]
		c.aabbLocal[row] = aabb
		c.aabbWorld[row] = aabb
		c.boxWorld[row] = emptyBox

		rect := c.grid.HashAABB(aabb)
		c.grid.Insert(rect, h)

		c.entMap[ids[i]] = h
		c.debug.onAdd(row)
	}
	return nil
}
