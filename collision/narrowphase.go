package collision

import (
	"math"
)

// poly2D is a convex polygon in its own local space, paired with a 2D
// rigid transform (xform2D) that places it on the plane for a SAT test.
// This is the leaf-level narrow-phase representation: a standalone pure
// function over vertex/normal arrays, independent of the Context.
type poly2D struct {
	verts [MaxPolygonVerts]Vec2
	norms [MaxPolygonVerts]Vec2
	count int
}

type xform2D struct {
	pos      Vec2
	cos, sin float64
}

func (x *xform2D) apply(v Vec2) Vec2 {
	if x == nil {
		return v
	}
	return Vec2{
		X: x.cos*v.X - x.sin*v.Y + x.pos.X,
		Y: x.sin*v.X + x.cos*v.Y + x.pos.Y,
	}
}

func (x *xform2D) applyNormal(v Vec2) Vec2 {
	if x == nil {
		return v
	}
	return Vec2{X: x.cos*v.X - x.sin*v.Y, Y: x.sin*v.X + x.cos*v.Y}
}

// sqrtHalf is the fixed corner-normal magnitude used by the box-to-polygon
// conversion below: ±√½ regardless of actual half-extents, per spec.md
// §4.3/§9. This is a deliberately preserved quirk, not a bug: SAT recovers
// its own edge normals from vertex differences, so the stored corner
// normals are not load-bearing for correctness, only the vertex layout is.
const sqrtHalf = 0.70710678118

// boxToPoly converts an oriented box into the 4-vertex polygon + 2D
// transform pair the SAT routine consumes, per spec.md §4.3: vertices at
// (±ex,±ey) in box-local space, fixed ±√½ diagonal corner normals, and the
// rotation recovered from the box's world transform via atan2 of the
// upper-left 2x2 block.
func boxToPoly(box Box) (poly2D, xform2D) {
	ex, ey := box.HalfExtents.X, box.HalfExtents.Y
	p := poly2D{count: 4}
	p.verts[0] = Vec2{X: ex, Y: ey}
	p.norms[0] = Vec2{X: sqrtHalf, Y: sqrtHalf}
	p.verts[1] = Vec2{X: -ex, Y: ey}
	p.norms[1] = Vec2{X: -sqrtHalf, Y: sqrtHalf}
	p.verts[2] = Vec2{X: -ex, Y: -ey}
	p.norms[2] = Vec2{X: -sqrtHalf, Y: -sqrtHalf}
	p.verts[3] = Vec2{X: ex, Y: -ey}
	p.norms[3] = Vec2{X: sqrtHalf, Y: -sqrtHalf}

	theta := box.Pose.Rot.AngleZ()
	x := xform2D{
		pos: Vec2{X: box.Pose.Pos.X, Y: box.Pose.Pos.Y},
		cos: math.Cos(theta),
		sin: math.Sin(theta),
	}
	return p, x
}

func polyFromShape(poly Polygon) poly2D {
	var p poly2D
	p.count = poly.Count
	for i := 0; i < poly.Count; i++ {
		p.verts[i] = poly.Verts[i]
		p.norms[i] = poly.Norms[i]
	}
	return p
}

// worldVerts returns p's vertices transformed into world space by tx (tx
// may be nil for a polygon already given in world space).
func worldVerts(p poly2D, tx *xform2D) [MaxPolygonVerts]Vec2 {
	var out [MaxPolygonVerts]Vec2
	for i := 0; i < p.count; i++ {
		out[i] = tx.apply(p.verts[i])
	}
	return out
}

func worldNorms(p poly2D, tx *xform2D) [MaxPolygonVerts]Vec2 {
	var out [MaxPolygonVerts]Vec2
	for i := 0; i < p.count; i++ {
		out[i] = tx.applyNormal(p.norms[i])
	}
	return out
}

// projectPoly projects verts[0:count] onto axis, returning [min, max].
func projectPoly(verts [MaxPolygonVerts]Vec2, count int, axis Vec2) (float64, float64) {
	min := verts[0].Dot(axis)
	max := min
	for i := 1; i < count; i++ {
		d := verts[i].Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

// polyToPoly is the separating-axis test between two convex polygons,
// each optionally placed by a 2D transform (nil meaning "already in world
// space"). The candidate axes are the perpendiculars of every edge of both
// polygons, taken from consecutive world-space vertices; stored normals are
// not consulted. Treated as a standalone pure leaf function per spec.md §9.
func polyToPoly(p1 poly2D, x1 *xform2D, p2 poly2D, x2 *xform2D) bool {
	v1 := worldVerts(p1, x1)
	v2 := worldVerts(p2, x2)

	separated := func(verts [MaxPolygonVerts]Vec2, count int) bool {
		for i := 0; i < count; i++ {
			edge := verts[(i+1)%count].Sub(verts[i])
			axis := Vec2{X: edge.Y, Y: -edge.X}
			min1, max1 := projectPoly(v1, p1.count, axis)
			min2, max2 := projectPoly(v2, p2.count, axis)
			if max1 < min2 || max2 < min1 {
				return true
			}
		}
		return false
	}
	return !separated(v1, p1.count) && !separated(v2, p2.count)
}

// circleToPoly tests a world-space circle against a convex polygon
// (optionally placed by a 2D transform).
func circleToPoly(center Vec2, radius float64, p poly2D, tx *xform2D) bool {
	verts := worldVerts(p, tx)
	norms := worldNorms(p, tx)

	// separating axis along each of the polygon's stored normals (edge
	// normals for static polygons, the fixed corner normals for boxes).
	for i := 0; i < p.count; i++ {
		min, max := projectPoly(verts, p.count, norms[i])
		d := center.Dot(norms[i])
		if d-radius > max || d+radius < min {
			return false
		}
	}

	// if no edge axis separates, check distance to nearest vertex/edge
	// directly in case the circle center lies outside the polygon near a
	// corner (edge-normal axes alone under-approximate corner regions).
	closest := closestPointOnPolygon(center, verts, p.count)
	if center.Sub(closest).Len() > radius && !pointInPolygon(center, verts, p.count) {
		return false
	}
	return true
}

func pointInPolygon(pt Vec2, verts [MaxPolygonVerts]Vec2, count int) bool {
	inside := true
	for i := 0; i < count; i++ {
		a := verts[i]
		b := verts[(i+1)%count]
		edge := b.Sub(a)
		toPt := pt.Sub(a)
		cross := edge.X*toPt.Y - edge.Y*toPt.X
		if cross < 0 {
			inside = false
			break
		}
	}
	return inside
}

func closestPointOnPolygon(pt Vec2, verts [MaxPolygonVerts]Vec2, count int) Vec2 {
	best := verts[0]
	bestDist := math.Inf(1)
	for i := 0; i < count; i++ {
		a := verts[i]
		b := verts[(i+1)%count]
		c := closestPointOnSegment(pt, a, b)
		d := pt.Sub(c).Len()
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func closestPointOnSegment(pt, a, b Vec2) Vec2 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq < 1e-12 {
		return a
	}
	t := pt.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// rayCastBox performs the OBB ray cast described in spec.md §4.3: the ray
// is transformed into box-local space, a 3-axis slab test accumulates
// tmin/tmax with epsilon 1e-8, and the hit normal is the local slab axis
// that produced tmin rotated back to world space.
func rayCastBox(box Box, ray Ray) (RayHit, bool) {
	const epsilon = 1e-8

	d := box.Pose.InverseApplyVec(ray.Dir)
	p := box.Pose.InverseApply(ray.Origin)
	e := box.HalfExtents

	tmin := 0.0
	tmax := ray.Len
	var n0 Vec3

	axes := [3]*float64{&d.X, &d.Y, &d.Z}
	pAxes := [3]*float64{&p.X, &p.Y, &p.Z}
	eAxes := [3]*float64{&e.X, &e.Y, &e.Z}

	for i := 0; i < 3; i++ {
		di := *axes[i]
		pi := *pAxes[i]
		ei := *eAxes[i]

		if math.Abs(di) < epsilon {
			if pi < -ei || pi > ei {
				return RayHit{}, false
			}
			continue
		}

		invD := 1.0 / di
		s := sign(di)
		eiS := ei * s

		var n Vec3
		setAxis(&n, i, -s)

		t0 := -(eiS + pi) * invD
		t1 := (eiS - pi) * invD

		if t0 > tmin {
			n0 = n
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		if tmin > tmax {
			return RayHit{}, false
		}
	}

	if tmin <= epsilon {
		return RayHit{}, false
	}

	return RayHit{
		Normal: box.Pose.Rot.MulVec3(n0),
		T:      tmin,
	}, true
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func setAxis(v *Vec3, axis int, val float64) {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	case 2:
		v.Z = val
	}
}
