package collision

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestPolyToPolyAxisAlignedOverlap(t *testing.T) {
	square := func(half float64) poly2D {
		return poly2D{
			verts: [8]Vec2{{X: -half, Y: -half}, {X: half, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}},
			norms: [8]Vec2{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}},
			count: 4,
		}
	}

	a := square(0.5)
	xa := xform2D{pos: Vec2{X: 0, Y: 0}, cos: 1, sin: 0}

	cases := []struct {
		name string
		pos  Vec2
		want bool
	}{
		{"centered overlap", Vec2{X: 0.5, Y: 0}, true},
		{"just touching", Vec2{X: 1.0, Y: 0}, true},
		{"separated", Vec2{X: 2.0, Y: 0}, false},
		{"diagonal overlap", Vec2{X: 0.6, Y: 0.6}, true},
		{"diagonal separated", Vec2{X: 1.2, Y: 1.2}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := square(0.5)
			xb := xform2D{pos: c.pos, cos: 1, sin: 0}
			got := polyToPoly(a, &xa, b, &xb)
			if got != c.want {
				t.Errorf("polyToPoly at %+v: got %v, want %v", c.pos, got, c.want)
			}
		})
	}
}

func TestBoxToPolyRotationRecoversFromTransform(t *testing.T) {
	box := Box{
		Pose:        Transform{Pos: Vec3{X: 1, Y: 2}, Rot: identityTransformRotZ(math.Pi / 2)},
		HalfExtents: Vec3{X: 1, Y: 0.5, Z: 0.5},
	}
	_, x := boxToPoly(box)
	if !approxEqual(x.cos, 0, 1e-9) || !approxEqual(x.sin, 1, 1e-9) {
		t.Fatalf("expected 90deg rotation recovered, got cos=%v sin=%v", x.cos, x.sin)
	}
	if x.pos.X != 1 || x.pos.Y != 2 {
		t.Fatalf("expected position carried through, got %+v", x.pos)
	}
}

func identityTransformRotZ(theta float64) Mat3 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

func TestCircleToPolyCornerRegion(t *testing.T) {
	square := poly2D{
		verts: [8]Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
		norms: [8]Vec2{{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}},
		count: 4,
	}

	// a circle centered just past the corner (1,1) at distance slightly
	// more than radius should not collide; slightly less should.
	corner := Vec2{X: 1.3, Y: 1.3}
	dist := corner.Sub(Vec2{X: 1, Y: 1}).Len()

	if circleToPoly(corner, dist*0.9, square, nil) {
		t.Fatalf("expected no hit: radius smaller than corner distance")
	}
	if !circleToPoly(corner, dist*1.1, square, nil) {
		t.Fatalf("expected hit: radius larger than corner distance")
	}
}

func TestRayCastBoxAxisAligned(t *testing.T) {
	box := Box{Pose: identityTransform(), HalfExtents: Vec3{X: 0.5, Y: 0.5, Z: 0.5}}

	ray := Ray{Origin: Vec3{X: -5, Y: 0, Z: 0}, Dir: Vec3{X: 1, Y: 0, Z: 0}, Len: 20}
	hit, ok := rayCastBox(box, ray)
	if !ok {
		t.Fatalf("expected ray to hit box")
	}
	if !approxEqual(hit.T, 4.5, 1e-9) {
		t.Fatalf("expected t=4.5, got %v", hit.T)
	}
	if hit.Normal.X != -1 || hit.Normal.Y != 0 {
		t.Fatalf("expected normal (-1,0,0), got %+v", hit.Normal)
	}
}

func TestRayCastBoxMiss(t *testing.T) {
	box := Box{Pose: identityTransform(), HalfExtents: Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	ray := Ray{Origin: Vec3{X: -5, Y: 5, Z: 0}, Dir: Vec3{X: 1, Y: 0, Z: 0}, Len: 20}
	if _, ok := rayCastBox(box, ray); ok {
		t.Fatalf("expected ray passing beside the box to miss")
	}
}

// S4: ray clipped to the map rectangle lands on the expected entry point
// and shrunken length.
func TestClipRayToMapEntersFromOutside(t *testing.T) {
	mapRect := Rect{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50}
	ray := Ray{Origin: Vec3{X: -60, Y: 0, Z: 0}, Dir: Vec3{X: 1, Y: 0, Z: 0}, Len: 200}

	clipped, ok := clipRayToMap(ray, mapRect)
	if !ok {
		t.Fatalf("expected ray to clip into the map")
	}
	if !approxEqual(clipped.Origin.X, -50, 1e-9) || clipped.Origin.Y != 0 {
		t.Fatalf("expected clipped origin (-50,0), got %+v", clipped.Origin)
	}
	if !approxEqual(clipped.Len, 100, 1e-9) {
		t.Fatalf("expected clipped length 100, got %v", clipped.Len)
	}
}

// S5: a ray entirely outside the map and pointing away never clips in.
func TestClipRayToMapOutsideReturnsFalse(t *testing.T) {
	mapRect := Rect{MinX: -50, MinY: -50, MaxX: 50, MaxY: 50}
	ray := Ray{Origin: Vec3{X: 1000, Y: 1000, Z: 0}, Dir: Vec3{X: 1, Y: 0, Z: 0}, Len: 1}

	if _, ok := clipRayToMap(ray, mapRect); ok {
		t.Fatalf("expected out-of-range ray to fail to clip")
	}
}

func TestQueryRayEndToEnd(t *testing.T) {
	ctx, err := NewContext(100, 100, 10)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	box := Box{Pose: identityTransform(), HalfExtents: Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	if err := ctx.AddBoxes([]Box{box}, []EntityID{1}, []Mask{0xFFFFFFFF}, []Transform{identityTransform()}); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	ray := Ray{Origin: Vec3{X: -60, Y: 0, Z: 0}, Dir: Vec3{X: 1, Y: 0, Z: 0}, Len: 200}
	hits := ctx.QueryRay(ray, 0xFFFFFFFF)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if !approxEqual(hits[0].T, 49.5, 1e-6) {
		t.Fatalf("expected t~=49.5, got %v", hits[0].T)
	}
	if hits[0].Entity != 1 {
		t.Fatalf("expected entity id 1, got %v", hits[0].Entity)
	}
}

// Regression: the supercover DDA traversal must visit the cells a
// genuinely diagonal ray crosses, not just axis-aligned ones (the
// broadphase candidate gathering in rasterCandidateRows had its dy sign
// inverted relative to collision.c's DDA, which silently dropped
// diagonal candidates).
func TestQueryRayDiagonalHitsBox(t *testing.T) {
	ctx, err := NewContext(100, 100, 1)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := ctx.AddBoxes([]Box{unitBox()}, []EntityID{1}, []Mask{0xFFFFFFFF}, []Transform{txAt(3, 3)}); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	diag := math.Sqrt2 / 2
	ray := Ray{Origin: Vec3{X: 0, Y: 0, Z: 0}, Dir: Vec3{X: diag, Y: diag, Z: 0}, Len: 20}
	hits := ctx.QueryRay(ray, 0xFFFFFFFF)
	if len(hits) != 1 || hits[0].Entity != 1 {
		t.Fatalf("expected the diagonal ray to hit the box at (3,3), got %+v", hits)
	}
}

func TestQueryRayOutsideMapReturnsEmpty(t *testing.T) {
	ctx, err := NewContext(100, 100, 10)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	ray := Ray{Origin: Vec3{X: 1000, Y: 1000, Z: 0}, Dir: Vec3{X: 1, Y: 0, Z: 0}, Len: 1}
	if hits := ctx.QueryRay(ray, 0xFFFFFFFF); len(hits) != 0 {
		t.Fatalf("expected no hits, got %d", len(hits))
	}
}
