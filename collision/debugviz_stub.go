//go:build !collisiondebug

package collision

import "github.com/hajimehoshi/ebiten/v2"

// View converts world-space X-Y coordinates to screen pixels for
// DebugCollisions/DebugRaycast.
type View struct {
	OriginX, OriginY float64
	PixelsPerUnit    float64
}

// DebugCollisions is a no-op in release builds.
func (c *Context) DebugCollisions(screen *ebiten.Image, v View, opacity float32, mode DebugCollisionMode, heatmapLimit float32) {
}

// DebugRaycast is a no-op in release builds.
func (c *Context) DebugRaycast(screen *ebiten.Image, v View, opacity float32, mode DebugRaycastMode, heatmapLimit float32) {
}
