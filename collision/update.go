package collision

// UpdateTransforms recomputes each entity's transformed AABB and box,
// re-buckets it among the grid cells it enters or leaves, and records it
// in the updated set that the next Detect() call consumes. Unknown ids
// are logged as warnings and skipped (spec.md §7).
func (c *Context) UpdateTransforms(ids []EntityID, transforms []Transform) {
	n := len(ids)
	if len(transforms) < n {
		n = len(transforms)
	}

	for i := 0; i < n; i++ {
		h, ok := c.entMap[ids[i]]
		if !ok {
			warnUnknownEntity("UpdateTransforms", ids[i])
			continue
		}
		row, ok := c.handles.IndexOf(h)
		if !ok {
			warnUnknownEntity("UpdateTransforms", ids[i])
			continue
		}

		localAABB := c.aabbLocal[row]
		prevAABB := c.aabbWorld[row]
		prevRect := c.grid.HashAABB(prevAABB)

		newTx := transforms[i]
		newAABB := localAABB.Transform(newTx)
		newRect := c.grid.HashAABB(newAABB)

		c.aabbWorld[row] = newAABB
		c.boxWorld[row] = Box{
			Pose:        newTx.Mul(c.boxes[row].Pose),
			HalfExtents: c.boxes[row].HalfExtents,
		}

		c.grid.Retarget(prevRect, newRect, h)

		c.updatedSet = append(c.updatedSet, h)
	}
}
