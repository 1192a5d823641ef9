// Package collision implements the broad-and-narrow-phase 2.5D collision
// engine: uniform-grid broadphase over dynamic oriented boxes and static
// convex polygons, pairwise overlap detection, and sphere/polygon/ray
// queries.
package collision

import "gridcollide/internal/geom"

// Vec2 is a point or vector on the X-Y plane.
type Vec2 = geom.Vec2

// Vec3 is a point or vector with the Z component the engine carries but
// never tests (spec: collisions are 2.5D, tests run on X-Y only).
type Vec3 = geom.Vec3

// Mat3 is a 3x3 rotation matrix.
type Mat3 = geom.Mat3

// Transform is a rigid-body pose (rotation + translation).
type Transform = geom.Transform

// Rect is an axis-aligned rectangle on the X-Y plane.
type Rect = geom.Rect

// EntityID is an opaque, caller-chosen identifier, unique per Context. The
// engine never generates these; it only maps them to internal handles.
type EntityID uint64

// Mask is a 32-bit caller-defined layer bitmask used to gate interactions:
// any pair or query hit requires (maskA & maskB) != 0.
type Mask uint32

// Box is an oriented box in local space: half-extents plus the local
// rotation+position applied on top of the world Transform passed to
// AddBoxes/UpdateTransforms. AddBoxes rejects HalfExtents summing to zero —
// use AddStaticPolys for static geometry instead. Internally, static
// polygon rows are marked by exactly that zero-half-extent world box; there
// is no separate shape-kind tag.
type Box struct {
	Pose        Transform // the box's pose in local/object space
	HalfExtents Vec3
}

// MaxPolygonVerts bounds static polygon vertex count, matching the
// original engine's fixed 8-vertex convex-polygon shape.
const MaxPolygonVerts = 8

// Polygon is a convex polygon, vertices in CCW order, with precomputed
// edge normals. Static polygons are supplied already in world space.
type Polygon struct {
	Verts [MaxPolygonVerts]Vec2
	Norms [MaxPolygonVerts]Vec2
	Count int
}

// NewPolygon builds a Polygon from CCW vertices, computing each edge's
// outward normal.
func NewPolygon(verts []Vec2) Polygon {
	var p Polygon
	p.Count = len(verts)
	if p.Count > MaxPolygonVerts {
		p.Count = MaxPolygonVerts
	}
	for i := 0; i < p.Count; i++ {
		p.Verts[i] = verts[i]
	}
	for i := 0; i < p.Count; i++ {
		a := p.Verts[i]
		b := p.Verts[(i+1)%p.Count]
		edge := b.Sub(a)
		// outward normal of a CCW edge is (edge.y, -edge.x), normalized.
		n := Vec2{X: edge.Y, Y: -edge.X}
		l := n.Len()
		if l > 1e-12 {
			n = n.Scale(1 / l)
		}
		p.Norms[i] = n
	}
	return p
}

// AABB is an axis-aligned bounding box; Z is carried but never tested.
type AABB = geom.AABB

// Pair is an unordered pairwise overlap result from Detect.
type Pair struct {
	A, B   EntityID
	MaskA  Mask
	MaskB  Mask
}

// Ray is a ray query: origin, normalized direction, and maximum length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
	Len    float64
}

// RayHit is one narrow-phase ray hit, with 0 < T <= the (possibly clipped)
// ray length.
type RayHit struct {
	Entity EntityID
	Normal Vec3
	T      float64
}

// EntityData is a snapshot of an entity's current shape and mask, returned
// by GetEntityData.
type EntityData struct {
	Box      Box
	BoxWorld Box
	Poly     Polygon
	AABB     AABB
	Mask     Mask
	IsStatic bool
}
