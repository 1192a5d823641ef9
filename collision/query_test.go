package collision

import "testing"

func TestQuerySphereFindsOverlappingBoxAndRespectsMask(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	boxes := []Box{unitBox(), unitBox()}
	ids := []EntityID{1, 2}
	masks := []Mask{0x01, 0x02}
	transforms := []Transform{txAt(0, 0), txAt(20, 20)}

	if err := ctx.AddBoxes(boxes, ids, masks, transforms); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	hits := ctx.QuerySphere(Vec2{X: 0, Y: 0}, 2, 0x01)
	if len(hits) != 1 || hits[0] != 1 {
		t.Fatalf("expected only entity 1 in range with matching mask, got %+v", hits)
	}

	if hits := ctx.QuerySphere(Vec2{X: 0, Y: 0}, 2, 0x02); len(hits) != 0 {
		t.Fatalf("expected no hits with disjoint mask, got %+v", hits)
	}

	if hits := ctx.QuerySphere(Vec2{X: 0, Y: 0}, 100, 0x03); len(hits) != 2 {
		t.Fatalf("expected both entities within a large radius, got %+v", hits)
	}
}

func TestQuerySphereCornerMiss(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := ctx.AddBoxes([]Box{unitBox()}, []EntityID{1}, []Mask{0xFF}, []Transform{txAt(0, 0)}); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	// box corner sits at (0.5, 0.5); a small sphere far beyond that corner
	// should not overlap it.
	if hits := ctx.QuerySphere(Vec2{X: 5, Y: 5}, 0.1, 0xFF); len(hits) != 0 {
		t.Fatalf("expected no hits far from the box, got %+v", hits)
	}
}

func TestQueryPolyFindsOverlappingStaticPoly(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	poly := NewPolygon([]Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}})
	if err := ctx.AddStaticPolys([]Polygon{poly}, []EntityID{7}, []Mask{0xFF}); err != nil {
		t.Fatalf("AddStaticPolys: %v", err)
	}

	query := NewPolygon([]Vec2{{X: 0.5, Y: 0.5}, {X: 3, Y: 0.5}, {X: 3, Y: 3}, {X: 0.5, Y: 3}})
	hits := ctx.QueryPoly(query, 0xFF)
	if len(hits) != 1 || hits[0] != 7 {
		t.Fatalf("expected overlapping static poly entity 7, got %+v", hits)
	}

	farQuery := NewPolygon([]Vec2{{X: 50, Y: 50}, {X: 52, Y: 50}, {X: 52, Y: 52}, {X: 50, Y: 52}})
	if hits := ctx.QueryPoly(farQuery, 0xFF); len(hits) != 0 {
		t.Fatalf("expected no hits for a far-away query poly, got %+v", hits)
	}
}

func TestQueryPolyMaskGate(t *testing.T) {
	ctx, err := NewContext(200, 200, 4)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	if err := ctx.AddBoxes([]Box{unitBox()}, []EntityID{3}, []Mask{0x01}, []Transform{txAt(0, 0)}); err != nil {
		t.Fatalf("AddBoxes: %v", err)
	}

	query := NewPolygon([]Vec2{{X: -2, Y: -2}, {X: 2, Y: -2}, {X: 2, Y: 2}, {X: -2, Y: 2}})
	if hits := ctx.QueryPoly(query, 0x02); len(hits) != 0 {
		t.Fatalf("expected no hits with disjoint mask, got %+v", hits)
	}
	if hits := ctx.QueryPoly(query, 0x01); len(hits) != 1 {
		t.Fatalf("expected one hit with matching mask, got %+v", hits)
	}
}
