package collision

// Remove drops each entity from the context: its row leaves the grid
// cells it occupied, its handle is released back to the pool, and its id
// is forgotten. Unknown ids are logged and skipped. A removed row's slot
// is left zeroed; the handle pool will hand it back out, generation
// bumped, on a later Add call.
func (c *Context) Remove(ids []EntityID) {
	for _, id := range ids {
		h, ok := c.entMap[id]
		if !ok {
			warnUnknownEntity("Remove", id)
			continue
		}
		row, ok := c.handles.IndexOf(h)
		if !ok {
			warnUnknownEntity("Remove", id)
			continue
		}

		rect := c.grid.HashAABB(c.aabbWorld[row])
		c.grid.Remove(rect, h)

		c.handles.Delete(h)
		delete(c.entMap, id)

		c.boxes[row] = Box{}
		c.boxWorld[row] = Box{}
		c.polys[row] = Polygon{}
		c.aabbLocal[row] = AABB{}
		c.aabbWorld[row] = AABB{}
		c.entMask[row] = entityMaskPair{}
	}
}

// RemoveAll clears every entity, every grid cell, and every debug buffer,
// leaving the context as if freshly created with NewContext.
func (c *Context) RemoveAll() {
	c.handles.Reset()
	c.grid.ClearAll()

	for id := range c.entMap {
		delete(c.entMap, id)
	}

	c.entMask = c.entMask[:0]
	c.boxes = c.boxes[:0]
	c.polys = c.polys[:0]
	c.aabbLocal = c.aabbLocal[:0]
	c.aabbWorld = c.aabbWorld[:0]
	c.boxWorld = c.boxWorld[:0]
	c.updatedSet = c.updatedSet[:0]

	c.debug.resetAll()
}
