//go:build collisiondebug

package collision

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"gridcollide/internal/spatialgrid"
)

// View converts world-space X-Y coordinates to screen pixels for
// DebugCollisions/DebugRaycast. OriginX/OriginY is the screen position of
// world (0,0); PixelsPerUnit scales world units to pixels.
type View struct {
	OriginX, OriginY float64
	PixelsPerUnit    float64
}

func (v View) toScreen(p Vec2) (float32, float32) {
	return float32(v.OriginX + p.X*v.PixelsPerUnit), float32(v.OriginY - p.Y*v.PixelsPerUnit)
}

// dimScreen draws a full-screen black overlay at the given opacity before
// the debug draw, matching the C original always dimming the underlying
// view before compositing the overlay (spec.md §4.4).
func dimScreen(screen *ebiten.Image, opacity float32) {
	if opacity <= 0 {
		return
	}
	b := screen.Bounds()
	a := clamp01(opacity)
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), color.RGBA{0, 0, 0, uint8(a * 255)}, false)
}

// DebugCollisions draws the grid and, depending on mode, either every
// entity's shape outline (red if it collided this frame), a per-cell
// collision-count heatmap, or a per-cell entity-count heatmap. heatmapLimit
// is the count that maps to full-hot red; ratios are clamped to [0,1]
// rather than normalized against the observed maximum, so callers get a
// stable scale across frames. Built only under the collisiondebug tag.
func (c *Context) DebugCollisions(screen *ebiten.Image, v View, opacity float32, mode DebugCollisionMode, heatmapLimit float32) {
	if c.debug == nil {
		return
	}

	dimScreen(screen, opacity)

	switch mode {
	case DebugCollisionHeatmap:
		for idx := range c.grid.Cells {
			cc := c.debug.cellCounters[idx]
			if cc.collisions == 0 {
				continue
			}
			drawCellHeat(screen, c.grid, v, idx, float32(cc.collisions), heatmapLimit)
		}
		drawGridLines(screen, c.grid, v)

	case DebugEntityHeatmap:
		for idx := range c.grid.Cells {
			n := len(c.grid.Cells[idx].Entities)
			if n == 0 {
				continue
			}
			drawCellHeat(screen, c.grid, v, idx, float32(n), heatmapLimit)
		}
		drawGridLines(screen, c.grid, v)

	default: // DebugCollisionOutline
		drawGridLines(screen, c.grid, v)
		for row := range c.boxWorld {
			if isStaticRow(c.boxWorld[row]) {
				drawPolygon(screen, polyFromShape(c.polys[row]), nil, v, color.RGBA{80, 180, 255, 255})
				continue
			}
			p, x := boxToPoly(c.boxWorld[row])
			highlight := color.RGBA{255, 255, 255, 255}
			if c.debug.collisionGen[row] == c.debug.detectGen && c.debug.detectGen > 0 {
				highlight = color.RGBA{255, 60, 60, 255}
			}
			drawPolygon(screen, p, &x, v, highlight)
		}
	}
}

// DebugRaycast draws the grid and, depending on mode, either every
// entity's shape outline colored by whether the most recent QueryRay hit
// or merely marched past it, a per-cell rayhit-count heatmap, or a
// per-cell raymarch-count heatmap; the ray itself is always drawn. Counters
// and the ray log are cleared at the end of the draw.
func (c *Context) DebugRaycast(screen *ebiten.Image, v View, opacity float32, mode DebugRaycastMode, heatmapLimit float32) {
	if c.debug == nil {
		return
	}

	dimScreen(screen, opacity)

	switch mode {
	case DebugRayhitHeatmap:
		for idx := range c.grid.Cells {
			cc := c.debug.cellCounters[idx]
			if cc.rayhits == 0 {
				continue
			}
			drawCellHeat(screen, c.grid, v, idx, float32(cc.rayhits), heatmapLimit)
		}
		drawGridLines(screen, c.grid, v)

	case DebugRaymarchHeatmap:
		for idx := range c.grid.Cells {
			cc := c.debug.cellCounters[idx]
			if cc.raymarches == 0 {
				continue
			}
			drawCellHeat(screen, c.grid, v, idx, float32(cc.raymarches), heatmapLimit)
		}
		drawGridLines(screen, c.grid, v)

	default: // DebugRaycastOutline
		drawGridLines(screen, c.grid, v)
		for row := range c.boxWorld {
			if isStaticRow(c.boxWorld[row]) {
				drawPolygon(screen, polyFromShape(c.polys[row]), nil, v, color.RGBA{80, 180, 255, 255})
				continue
			}
			p, x := boxToPoly(c.boxWorld[row])
			outline := color.RGBA{255, 255, 255, 255}
			switch {
			case c.debug.rayhitGen[row] == c.debug.rayGen && c.debug.rayGen > 0:
				outline = color.RGBA{255, 60, 60, 255}
			case c.debug.raymarchGen[row] == c.debug.rayGen && c.debug.rayGen > 0:
				outline = color.RGBA{255, 220, 60, 255}
			}
			drawPolygon(screen, p, &x, v, outline)
		}
	}

	for _, ray := range c.debug.rays {
		x0, y0 := v.toScreen(Vec2{X: ray.Origin.X, Y: ray.Origin.Y})
		end := ray.Origin.Add(ray.Dir.Scale(ray.Len))
		x1, y1 := v.toScreen(Vec2{X: end.X, Y: end.Y})
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, color.RGBA{255, 255, 0, 255}, true)
	}

	c.debug.clearRayFrame()
}

func drawCellHeat(screen *ebiten.Image, g *spatialgrid.Grid, v View, idx int, count, limit float32) {
	ratio := 0.0
	if limit > 0 {
		ratio = float64(clamp01(count / limit))
	} else if count > 0 {
		ratio = 1
	}
	rect := g.CellRect(idx)
	x0, y0 := v.toScreen(Vec2{X: rect.MinX, Y: rect.MaxY})
	w := float32((rect.MaxX - rect.MinX) * v.PixelsPerUnit)
	h := float32((rect.MaxY - rect.MinY) * v.PixelsPerUnit)
	vector.DrawFilledRect(screen, x0, y0, w, h, heatColor(ratio, 160), false)
}

func drawGridLines(screen *ebiten.Image, g *spatialgrid.Grid, v View) {
	col := color.RGBA{60, 60, 70, 255}
	mapRect := g.MapRect()
	for x := 0; x <= g.NumCellsX; x++ {
		wx := mapRect.MinX + float64(x)*g.CellSize
		sx0, sy0 := v.toScreen(Vec2{X: wx, Y: mapRect.MinY})
		sx1, sy1 := v.toScreen(Vec2{X: wx, Y: mapRect.MaxY})
		vector.StrokeLine(screen, sx0, sy0, sx1, sy1, 1, col, false)
	}
	for y := 0; y <= g.NumCellsY; y++ {
		wy := mapRect.MinY + float64(y)*g.CellSize
		sx0, sy0 := v.toScreen(Vec2{X: mapRect.MinX, Y: wy})
		sx1, sy1 := v.toScreen(Vec2{X: mapRect.MaxX, Y: wy})
		vector.StrokeLine(screen, sx0, sy0, sx1, sy1, 1, col, false)
	}
}

func drawPolygon(screen *ebiten.Image, p poly2D, tx *xform2D, v View, col color.RGBA) {
	verts := worldVerts(p, tx)
	for i := 0; i < p.count; i++ {
		a := verts[i]
		b := verts[(i+1)%p.count]
		x0, y0 := v.toScreen(a)
		x1, y1 := v.toScreen(b)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, col, true)
	}
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// heatColor interpolates green (cold) to red (hot) in HSV hue space, hue
// 120 down to 0 degrees, matching the conventional heatmap gradient.
func heatColor(t float64, alpha uint8) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	hue := 120 * (1 - t)
	r, g, b := hsvToRGB(hue, 1, 1)
	return color.RGBA{r, g, b, alpha}
}

func hsvToRGB(h, s, val float64) (uint8, uint8, uint8) {
	c := val * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := val - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
