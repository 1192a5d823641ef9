// Package geom holds the small set of vector/matrix/rect primitives shared
// by the spatial grid and the collision narrow phase. Kept dependency-free
// so both internal/spatialgrid and the public collision package can sit on
// top of it without an import cycle.
package geom

import "math"

// Vec2 is a point or vector on the X-Y plane.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Len() float64         { return math.Sqrt(a.Dot(a)) }

// Vec3 carries the Z component the engine retains for non-collision
// consumers (spec: "Z is carried but tests are 2D on the X-Y plane").
type Vec3 struct {
	X, Y, Z float64
}

func (a Vec3) Add(b Vec3) Vec3      { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3      { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) XY() Vec2             { return Vec2{a.X, a.Y} }

// Sum returns ex+ey+ez, the encoding the original C engine used to flag a
// shape as a static polygon (zero half-extents). Kept as a named helper so
// call sites read as an intent check rather than raw arithmetic.
func (a Vec3) Sum() float64 { return a.X + a.Y + a.Z }

// Mat3 is a row-major 3x3 rotation matrix. Only the upper-left 2x2 block
// ever participates in narrow-phase tests, but the full matrix is carried
// because the engine reserves Z for non-collision consumers.
type Mat3 [3][3]float64

// Identity3 returns the identity rotation.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// RotZ builds a rotation matrix for a rotation of theta radians about Z.
func RotZ(theta float64) Mat3 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

// AngleZ recovers the Z rotation angle from the upper-left 2x2 block via
// atan2, mirroring the original engine's sx_atan2(rot.m21, rot.m11).
func (m Mat3) AngleZ() float64 {
	return math.Atan2(m[1][0], m[0][0])
}

func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transpose of m, which equals its inverse for a
// rotation matrix.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Transform is a rigid body pose: a rotation followed by a translation.
type Transform struct {
	Pos Vec3
	Rot Mat3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rot: Identity3()}
}

// Mul composes transforms the way the original engine's sx_tx3d_mul does:
// the receiver is applied after other, i.e. world = self ∘ other.
func (t Transform) Mul(other Transform) Transform {
	return Transform{
		Pos: t.Rot.MulVec3(other.Pos).Add(t.Pos),
		Rot: t.Rot.Mul(other.Rot),
	}
}

// Apply transforms a point by t.
func (t Transform) Apply(v Vec3) Vec3 {
	return t.Rot.MulVec3(v).Add(t.Pos)
}

// InverseApply transforms a world point into this transform's local space:
// rotation transpose then translation subtraction, per the engine's ray
// cast contract.
func (t Transform) InverseApply(v Vec3) Vec3 {
	return t.Rot.Transpose().MulVec3(v.Sub(t.Pos))
}

// InverseApplyVec rotates a direction vector into local space without
// translating it (used for ray directions).
func (t Transform) InverseApplyVec(v Vec3) Vec3 {
	return t.Rot.Transpose().MulVec3(v)
}

// AABB is an axis-aligned bounding box; Z is carried but never tested.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns an AABB primed for incremental point-adding (inverted
// bounds so the first AddPoint always wins).
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

func (a *AABB) AddPoint(p Vec3) {
	a.Min.X = math.Min(a.Min.X, p.X)
	a.Min.Y = math.Min(a.Min.Y, p.Y)
	a.Min.Z = math.Min(a.Min.Z, p.Z)
	a.Max.X = math.Max(a.Max.X, p.X)
	a.Max.Y = math.Max(a.Max.Y, p.Y)
	a.Max.Z = math.Max(a.Max.Z, p.Z)
}

// Overlaps reports whether two AABBs intersect on the X-Y plane.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}

// Transform returns the AABB of a transformed by tx, computed by
// transforming all eight corners (Z included, matching the original
// engine's general sx_aabb_transform used on 3D boxes).
func (a AABB) Transform(tx Transform) AABB {
	out := EmptyAABB()
	for _, dx := range [2]float64{a.Min.X, a.Max.X} {
		for _, dy := range [2]float64{a.Min.Y, a.Max.Y} {
			for _, dz := range [2]float64{a.Min.Z, a.Max.Z} {
				out.AddPoint(tx.Apply(Vec3{dx, dy, dz}))
			}
		}
	}
	return out
}

// IRect is an inclusive integer cell-coordinate rectangle.
type IRect struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether (x,y) lies within the inclusive rectangle.
func (r IRect) Contains(x, y int) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Rect is an axis-aligned rectangle on the X-Y plane, used for 2D query
// bounds and cell rects returned to callers.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{MinX: inf, MinY: inf, MaxX: -inf, MaxY: -inf}
}

func (r *Rect) AddPoint(p Vec2) {
	r.MinX = math.Min(r.MinX, p.X)
	r.MinY = math.Min(r.MinY, p.Y)
	r.MaxX = math.Max(r.MaxX, p.X)
	r.MaxY = math.Max(r.MaxY, p.Y)
}

func (r Rect) Overlaps(o Rect) bool {
	return r.MinX <= o.MaxX && o.MinX <= r.MaxX && r.MinY <= o.MaxY && o.MinY <= r.MaxY
}

func (r Rect) ContainsPoint(p Vec2) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
