// Package spatialgrid implements the uniform-cell bucketing of world-space
// AABBs described in spec.md §4.2: a fixed-size 2D grid whose cells hold
// the handles of every entity whose AABB overlaps them.
package spatialgrid

import (
	"fmt"
	"math"

	"gridcollide/internal/geom"
	"gridcollide/internal/handlepool"
)

// Cell is one rectangular bucket of the grid.
type Cell struct {
	Center  geom.Vec2
	GridPos [2]int
	Entities []handlepool.Handle
}

// Grid is a fixed-size uniform spatial hash over [-size/2, +size/2] on each
// axis.
type Grid struct {
	MapSizeX, MapSizeY, CellSize float64
	NumCellsX, NumCellsY         int
	Cells                        []Cell
}

// New constructs a grid. mapSizeX/mapSizeY must divide evenly by
// cellSize (spec invariant 4: "Grid is exact").
func New(mapSizeX, mapSizeY, cellSize float64) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("spatialgrid: cell size must be positive, got %v", cellSize)
	}
	if !divides(mapSizeX, cellSize) {
		return nil, fmt.Errorf("spatialgrid: map_size_x %v is not an exact multiple of cell_size %v", mapSizeX, cellSize)
	}
	if !divides(mapSizeY, cellSize) {
		return nil, fmt.Errorf("spatialgrid: map_size_y %v is not an exact multiple of cell_size %v", mapSizeY, cellSize)
	}

	numCellsX := int(mapSizeX / cellSize)
	numCellsY := int(mapSizeY / cellSize)

	g := &Grid{
		MapSizeX:  mapSizeX,
		MapSizeY:  mapSizeY,
		CellSize:  cellSize,
		NumCellsX: numCellsX,
		NumCellsY: numCellsY,
		Cells:     make([]Cell, numCellsX*numCellsY),
	}

	ymin := -mapSizeY * 0.5
	for y := 0; y < numCellsY; y++ {
		xmin := -mapSizeX * 0.5
		for x := 0; x < numCellsX; x++ {
			idx := y*numCellsX + x
			g.Cells[idx].GridPos = [2]int{x, y}
			g.Cells[idx].Center = geom.Vec2{
				X: xmin + cellSize*0.5,
				Y: ymin + cellSize*0.5,
			}
			xmin += cellSize
		}
		ymin += cellSize
	}

	return g, nil
}

func divides(total, unit float64) bool {
	if unit == 0 {
		return false
	}
	q := total / unit
	return math.Abs(q-math.Round(q)) < 1e-9
}

// HashPoint maps a world-space X-Y point to clamped integer cell
// coordinates, per spec.md §4.2.
func (g *Grid) HashPoint(p geom.Vec2) (x, y int) {
	hx := p.X/g.CellSize + float64(g.NumCellsX)*0.5
	hy := p.Y/g.CellSize + float64(g.NumCellsY)*0.5
	x = geom.Clamp(int(math.Floor(hx)), 0, g.NumCellsX-1)
	y = geom.Clamp(int(math.Floor(hy)), 0, g.NumCellsY-1)
	return x, y
}

// CellID returns the flat cell index for integer grid coordinates.
func (g *Grid) CellID(x, y int) int {
	return y*g.NumCellsX + x
}

// HashAABB returns the inclusive cell-coordinate rectangle an AABB's X-Y
// extent overlaps.
func (g *Grid) HashAABB(a geom.AABB) geom.IRect {
	minX, minY := g.HashPoint(geom.Vec2{X: a.Min.X, Y: a.Min.Y})
	maxX, maxY := g.HashPoint(geom.Vec2{X: a.Max.X, Y: a.Max.Y})
	return geom.IRect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Insert appends h to the entity list of every cell in rect.
func (g *Grid) Insert(rect geom.IRect, h handlepool.Handle) {
	for y := rect.MinY; y <= rect.MaxY; y++ {
		for x := rect.MinX; x <= rect.MaxX; x++ {
			cell := &g.Cells[g.CellID(x, y)]
			cell.Entities = append(cell.Entities, h)
		}
	}
}

// removeFromCell does a linear scan and swap-removes h; cell order is not
// significant (spec.md §4.2: "order within a cell is irrelevant").
func removeFromCell(cell *Cell, h handlepool.Handle) {
	for i, e := range cell.Entities {
		if e == h {
			last := len(cell.Entities) - 1
			cell.Entities[i] = cell.Entities[last]
			cell.Entities = cell.Entities[:last]
			return
		}
	}
}

// Remove removes h from every cell of rect.
func (g *Grid) Remove(rect geom.IRect, h handlepool.Handle) {
	for y := rect.MinY; y <= rect.MaxY; y++ {
		for x := rect.MinX; x <= rect.MaxX; x++ {
			removeFromCell(&g.Cells[g.CellID(x, y)], h)
		}
	}
}

// Retarget moves h from oldRect to newRect, touching only the cells that
// actually change membership (spec.md §4.2 step 3-4, invariant 2).
func (g *Grid) Retarget(oldRect, newRect geom.IRect, h handlepool.Handle) {
	for y := oldRect.MinY; y <= oldRect.MaxY; y++ {
		for x := oldRect.MinX; x <= oldRect.MaxX; x++ {
			if !newRect.Contains(x, y) {
				removeFromCell(&g.Cells[g.CellID(x, y)], h)
			}
		}
	}
	for y := newRect.MinY; y <= newRect.MaxY; y++ {
		for x := newRect.MinX; x <= newRect.MaxX; x++ {
			if !oldRect.Contains(x, y) {
				g.Cells[g.CellID(x, y)].Entities = append(g.Cells[g.CellID(x, y)].Entities, h)
			}
		}
	}
}

// ClearAll empties every cell's entity list (remove_all support).
func (g *Grid) ClearAll() {
	for i := range g.Cells {
		g.Cells[i].Entities = g.Cells[i].Entities[:0]
	}
}

// CellRect returns the world-space rectangle of cell idx.
func (g *Grid) CellRect(idx int) geom.Rect {
	c := g.Cells[idx].Center
	half := g.CellSize * 0.5
	return geom.Rect{MinX: c.X - half, MinY: c.Y - half, MaxX: c.X + half, MaxY: c.Y + half}
}

// MapRect returns the grid's logical world-space extent
// [-size/2, +size/2] on each axis.
func (g *Grid) MapRect() geom.Rect {
	return geom.Rect{
		MinX: -g.MapSizeX * 0.5, MinY: -g.MapSizeY * 0.5,
		MaxX: g.MapSizeX * 0.5, MaxY: g.MapSizeY * 0.5,
	}
}
