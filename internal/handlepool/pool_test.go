package handlepool

import "testing"

func TestNewHandleAssignsDistinctRows(t *testing.T) {
	p := New()
	h1 := p.NewHandle()
	h2 := p.NewHandle()

	r1, ok1 := p.IndexOf(h1)
	r2, ok2 := p.IndexOf(h2)
	if !ok1 || !ok2 {
		t.Fatalf("expected both handles valid, got ok1=%v ok2=%v", ok1, ok2)
	}
	if r1 == r2 {
		t.Fatalf("expected distinct rows, got %d and %d", r1, r2)
	}
}

func TestDeleteThenReuseBumpsGeneration(t *testing.T) {
	p := New()
	h1 := p.NewHandle()
	row1, _ := p.IndexOf(h1)

	p.Delete(h1)
	if p.IsValid(h1) {
		t.Fatalf("expected h1 to be invalid after delete")
	}

	h2 := p.NewHandle()
	row2, ok := p.IndexOf(h2)
	if !ok {
		t.Fatalf("expected h2 valid")
	}
	if row2 != row1 {
		t.Fatalf("expected row reuse, got row1=%d row2=%d", row1, row2)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct handles across reuse, generation must differ")
	}
	if p.IsValid(h1) {
		t.Fatalf("stale handle h1 must not validate after row reuse")
	}
}

func TestZeroHandleIsAlwaysInvalid(t *testing.T) {
	p := New()
	var zero Handle
	if p.IsValid(zero) {
		t.Fatalf("zero handle must never validate")
	}
}

func TestResetClearsAllRows(t *testing.T) {
	p := New()
	h := p.NewHandle()
	p.Reset()
	if p.IsValid(h) {
		t.Fatalf("expected handle invalid after reset")
	}
	if p.Count() != 0 {
		t.Fatalf("expected count 0 after reset, got %d", p.Count())
	}
}

func TestCountTracksHighWaterMark(t *testing.T) {
	p := New()
	p.NewHandle()
	h2 := p.NewHandle()
	p.Delete(h2)
	if p.Count() != 2 {
		t.Fatalf("expected count 2 (freed rows still count), got %d", p.Count())
	}
	h3 := p.NewHandle() // reuses freed row, count unchanged
	if p.Count() != 2 {
		t.Fatalf("expected count to stay 2 after reuse, got %d", p.Count())
	}
	_ = h3
}
