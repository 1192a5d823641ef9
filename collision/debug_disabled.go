//go:build !collisiondebug

package collision

// debugCollisionEnabled is false in release builds: newDebugState never
// allocates, and every debugState method is a guarded no-op on a nil
// receiver.
const debugCollisionEnabled = false
