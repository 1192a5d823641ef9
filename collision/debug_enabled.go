//go:build collisiondebug

package collision

// debugCollisionEnabled gates the per-cell/per-entity debug counters and
// the ray log, the Go build-tag realization of the original engine's
// STRIKE_DEBUG_COLLISION compile flag (spec.md §9).
const debugCollisionEnabled = true
