package collision

import "testing"

func unitBox() Box {
	return Box{Pose: identityTransform(), HalfExtents: Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
}

func txAt(x, y float64) Transform {
	return Transform{Pos: Vec3{X: x, Y: y}, Rot: identityTransform().Rot}
}

// S2: two overlapping unit boxes are not reported until one of them has
// gone through an UpdateTransforms call; after that, they are reported
// exactly once.
func TestDetectRequiresUpdateBeforeReporting(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	boxes := []Box{unitBox(), unitBox()}
	ids := []EntityID{0, 1}
	masks := []Mask{0xFFFFFFFF, 0xFFFFFFFF}
	transforms := []Transform{txAt(0, 0), txAt(0.5, 0)}

	if err := ctx.AddBoxes(boxes, ids, masks, transforms); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	if pairs := ctx.Detect(); len(pairs) != 0 {
		t.Fatalf("Detect before any UpdateTransforms: got %d pairs, want 0", len(pairs))
	}

	ctx.UpdateTransforms([]EntityID{0}, []Transform{txAt(0, 0)})

	pairs := ctx.Detect()
	if len(pairs) != 1 {
		t.Fatalf("Detect after UpdateTransforms: got %d pairs, want 1", len(pairs))
	}
	if pairs[0].A != 0 || pairs[0].B != 1 {
		t.Fatalf("unexpected pair: %+v", pairs[0])
	}
}

// S3: overlapping boxes with non-intersecting masks never collide.
func TestDetectMaskGate(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	boxes := []Box{unitBox(), unitBox()}
	ids := []EntityID{0, 1}
	masks := []Mask{0x01, 0x02}
	transforms := []Transform{txAt(0, 0), txAt(0.5, 0)}

	if err := ctx.AddBoxes(boxes, ids, masks, transforms); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}
	ctx.UpdateTransforms(ids, transforms)

	if pairs := ctx.Detect(); len(pairs) != 0 {
		t.Fatalf("Detect with disjoint masks: got %d pairs, want 0", len(pairs))
	}
}

// S6: moving a box re-buckets it out of its old cell and into its new
// cell, touching no other cells.
func TestUpdateTransformsRebucketsGridMembership(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := ctx.AddBoxes([]Box{unitBox()}, []EntityID{0}, []Mask{0xFF}, []Transform{txAt(0, 0)}); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	oldCellIdx := ctx.grid.CellID(25, 25)
	if len(ctx.grid.Cells[oldCellIdx].Entities) != 1 {
		t.Fatalf("expected handle in cell (25,25) before move")
	}

	ctx.UpdateTransforms([]EntityID{0}, []Transform{txAt(16, 0)})

	newCellIdx := ctx.grid.CellID(29, 25)
	if len(ctx.grid.Cells[oldCellIdx].Entities) != 0 {
		t.Fatalf("cell (25,25) should be empty after move, has %d entities", len(ctx.grid.Cells[oldCellIdx].Entities))
	}
	if len(ctx.grid.Cells[newCellIdx].Entities) != 1 {
		t.Fatalf("cell (29,25) should hold the moved handle, has %d", len(ctx.grid.Cells[newCellIdx].Entities))
	}
}

// Self-exclusion and no-duplicate-report: a single updated box never
// collides with itself, and no unordered pair is reported twice.
func TestDetectNeverSelfPairsOrDuplicates(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	boxes := []Box{unitBox(), unitBox(), unitBox()}
	ids := []EntityID{10, 11, 12}
	masks := []Mask{0xFF, 0xFF, 0xFF}
	transforms := []Transform{txAt(0, 0), txAt(0.2, 0), txAt(-0.2, 0)}

	if err := ctx.AddBoxes(boxes, ids, masks, transforms); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}
	ctx.UpdateTransforms(ids, transforms)

	pairs := ctx.Detect()
	seen := make(map[[2]EntityID]int)
	for _, p := range pairs {
		if p.A == p.B {
			t.Fatalf("self pair reported: %+v", p)
		}
		a, b := p.A, p.B
		if a > b {
			a, b = b, a
		}
		seen[[2]EntityID{a, b}]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Fatalf("pair %v reported %d times", k, n)
		}
	}
}

func TestRemoveForgetsEntityAndClearsGrid(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := ctx.AddBoxes([]Box{unitBox()}, []EntityID{0}, []Mask{0xFF}, []Transform{txAt(0, 0)}); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	ctx.Remove([]EntityID{0})

	if _, ok := ctx.GetEntityData(0); ok {
		t.Fatalf("expected removed entity to be gone")
	}

	cellIdx := ctx.grid.CellID(25, 25)
	if len(ctx.grid.Cells[cellIdx].Entities) != 0 {
		t.Fatalf("expected cell (25,25) empty after Remove, has %d", len(ctx.grid.Cells[cellIdx].Entities))
	}
}

func TestGetEntityDataReportsStaticFlag(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	poly := NewPolygon([]Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}})
	if err := ctx.AddStaticPolys([]Polygon{poly}, []EntityID{5}, []Mask{0xFF}); err != nil {
		t.Fatalf("AddStaticPolys: %v", err)
	}

	data, ok := ctx.GetEntityData(5)
	if !ok {
		t.Fatalf("expected entity 5 to exist")
	}
	if !data.IsStatic {
		t.Fatalf("expected static poly entity to report IsStatic=true")
	}

	if err := ctx.AddBoxes([]Box{unitBox()}, []EntityID{6}, []Mask{0xFF}, []Transform{txAt(10, 10)}); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}
	data, ok = ctx.GetEntityData(6)
	if !ok || data.IsStatic {
		t.Fatalf("expected box entity to report IsStatic=false, got %+v ok=%v", data, ok)
	}
}

func TestUnknownEntityOperationsAreSkippedNotFatal(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	// none of these should panic.
	ctx.UpdateTransforms([]EntityID{999}, []Transform{txAt(0, 0)})
	ctx.Remove([]EntityID{999})
}
