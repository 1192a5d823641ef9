// Package scratch provides pooled, reset-on-acquire int slices for the
// candidate-row buffers QuerySphere/QueryPoly/QueryRay build and
// throw away every call. This is the Go stand-in for the original
// engine's scoped temp-allocator push/pop contract: a sync.Pool retains
// the backing array across calls instead of a stack allocator retaining
// the arena.
package scratch

import "sync"

var intSlicePool = sync.Pool{
	New: func() any {
		s := make([]int, 0, 64)
		return &s
	},
}

// AcquireInts returns a pooled, zero-length []int with retained capacity.
func AcquireInts() *[]int {
	p := intSlicePool.Get().(*[]int)
	*p = (*p)[:0]
	return p
}

// ReleaseInts returns s to the pool for reuse by a later AcquireInts call.
func ReleaseInts(s *[]int) {
	if s == nil {
		return
	}
	*s = (*s)[:0]
	intSlicePool.Put(s)
}

var handleSetPool = sync.Pool{
	New: func() any {
		return make(map[int]bool, 64)
	},
}

// AcquireSeenSet returns a pooled, emptied map[int]bool used to dedupe
// candidate rows during a single broadphase gather.
func AcquireSeenSet() map[int]bool {
	m := handleSetPool.Get().(map[int]bool)
	for k := range m {
		delete(m, k)
	}
	return m
}

// ReleaseSeenSet returns m to the pool.
func ReleaseSeenSet(m map[int]bool) {
	if m == nil {
		return
	}
	handleSetPool.Put(m)
}
