package model

import (
	"math"
	"testing"
)

func TestClipToBoxCrossing(t *testing.T) {
	b := box(50, 50, 100, 100)
	s := NewSegment(0, 75, 200, 75, "s")

	tMin, tMax, ok := s.ClipToBox(b)
	if !ok {
		t.Fatal("crossing segment should clip to a non-empty interval")
	}
	if math.Abs(tMin-0.25) > 1e-9 || math.Abs(tMax-0.5) > 1e-9 {
		t.Errorf("interval = [%f, %f], want [0.25, 0.5]", tMin, tMax)
	}
	entry := s.PointAt(tMin)
	exit := s.PointAt(tMax)
	if entry.X != 50 || exit.X != 100 {
		t.Errorf("entry/exit = %v/%v", entry, exit)
	}
}

func TestClipToBoxMiss(t *testing.T) {
	b := box(50, 50, 100, 100)
	if _, _, ok := NewSegment(0, 10, 200, 10, "s").ClipToBox(b); ok {
		t.Error("segment above the box should not clip")
	}
	if _, _, ok := NewSegment(0, 0, 10, 10, "s").ClipToBox(b); ok {
		t.Error("short distant segment should not clip")
	}
}

func TestClipToBoxTouchPoint(t *testing.T) {
	b := box(50, 50, 100, 100)

	// Segment ending exactly on the left edge: degenerate interval at t=1.
	s := NewSegment(0, 75, 50, 75, "s")
	tMin, tMax, ok := s.ClipToBox(b)
	if !ok {
		t.Fatal("edge-touching segment should clip")
	}
	if tMin != tMax || tMax != 1 {
		t.Errorf("interval = [%f, %f], want degenerate at 1", tMin, tMax)
	}

	// Diagonal grazing the (50,50) corner: degenerate interval mid-segment.
	g := NewSegment(0, 100, 100, 0, "g")
	tMin, tMax, ok = g.ClipToBox(b)
	if !ok {
		t.Fatal("corner-grazing segment should clip")
	}
	if math.Abs(tMax-tMin) > 1e-9 {
		t.Errorf("corner graze should be degenerate, got [%f, %f]", tMin, tMax)
	}
	if p := g.PointAt(tMin); math.Abs(p.X-50) > 1e-9 || math.Abs(p.Y-50) > 1e-9 {
		t.Errorf("contact point = %v, want (50,50)", p)
	}
}

func TestClipToBoxInside(t *testing.T) {
	b := box(0, 0, 100, 100)
	s := NewSegment(20, 50, 80, 50, "s")
	tMin, tMax, ok := s.ClipToBox(b)
	if !ok || tMin != 0 || tMax != 1 {
		t.Errorf("fully inside segment: interval [%f, %f] ok=%v, want [0,1]", tMin, tMax, ok)
	}
}

func TestDirection(t *testing.T) {
	s := NewSegment(0, 0, 10, 0, "s")
	d, ok := s.Direction()
	if !ok || d.X != 1 || d.Y != 0 {
		t.Errorf("direction = %v ok=%v", d, ok)
	}
	if _, ok := NewSegment(5, 5, 5, 5, "z").Direction(); ok {
		t.Error("degenerate segment should have no direction")
	}
}

func TestIsParallelTo(t *testing.T) {
	h1 := NewSegment(10, 50, 100, 50, "h1")
	h2 := NewSegment(10, 51, 100, 51, "h2")
	skew := NewSegment(10, 51, 100, 60, "skew")
	zero := NewSegment(5, 5, 5, 5, "zero")

	if !h1.IsParallelTo(h2, DefaultParallelEps) {
		t.Error("horizontal segments should be parallel")
	}
	if h1.IsParallelTo(skew, DefaultParallelEps) {
		t.Error("skew segment should not be parallel")
	}
	if h1.IsParallelTo(zero, DefaultParallelEps) {
		t.Error("degenerate segment is parallel to nothing")
	}
	// Opposite directions are still parallel.
	r := NewSegment(100, 20, 10, 20, "r")
	if !h1.IsParallelTo(r, DefaultParallelEps) {
		t.Error("anti-parallel segments should count as parallel")
	}
}

func TestPerpendicularDistance(t *testing.T) {
	h1 := NewSegment(10, 50, 100, 50, "h1")
	h2 := NewSegment(10, 53, 100, 53, "h2")
	if d := h1.PerpendicularDistance(h2); math.Abs(d-3) > 1e-9 {
		t.Errorf("distance = %f, want 3", d)
	}

	d1 := NewSegment(0, 0, 10, 10, "d1")
	d2 := NewSegment(0, 2, 10, 12, "d2")
	want := 2 / math.Sqrt2
	if d := d1.PerpendicularDistance(d2); math.Abs(d-want) > 1e-9 {
		t.Errorf("diagonal distance = %f, want %f", d, want)
	}
}

func TestOverlapsInDirection(t *testing.T) {
	a := NewSegment(10, 50, 50, 50, "a")
	b := NewSegment(40, 51, 100, 51, "b")
	c := NewSegment(60, 51, 100, 51, "c")

	if !a.OverlapsInDirection(b) {
		t.Error("projections [10,50] and [40,100] should overlap")
	}
	if a.OverlapsInDirection(c) {
		t.Error("projections [10,50] and [60,100] should not overlap")
	}
}

func TestDistanceToBoxEdge(t *testing.T) {
	b := box(50, 50, 150, 100)

	// Horizontal segment 1 unit above the top edge, overlapping in x.
	h := NewSegment(60, 49, 140, 49, "h")
	d, ok := h.DistanceToBoxEdge(b)
	if !ok || math.Abs(d-1) > 1e-9 {
		t.Errorf("distance = %f ok=%v, want 1", d, ok)
	}

	// Vertical segment 2 units left of the box.
	v := NewSegment(48, 60, 48, 90, "v")
	d, ok = v.DistanceToBoxEdge(b)
	if !ok || math.Abs(d-2) > 1e-9 {
		t.Errorf("distance = %f ok=%v, want 2", d, ok)
	}

	// Diagonal segments do not apply.
	if _, ok := NewSegment(60, 45, 140, 48, "diag").DistanceToBoxEdge(b); ok {
		t.Error("diagonal segment should not report an edge distance")
	}
	// No overlap on the free axis.
	if _, ok := NewSegment(10, 49, 40, 49, "off").DistanceToBoxEdge(b); ok {
		t.Error("segment outside the box's x extent should not apply")
	}
}

func TestLengthAndPointAt(t *testing.T) {
	s := NewSegment(0, 0, 30, 40, "s")
	if l := s.Length(); math.Abs(l-50) > 1e-9 {
		t.Errorf("length = %f, want 50", l)
	}
	if p := s.PointAt(0.5); p.X != 15 || p.Y != 20 {
		t.Errorf("midpoint = %v", p)
	}
	if s.StrokeWidth != 1.0 {
		t.Errorf("default stroke width = %f, want 1.0", s.StrokeWidth)
	}
}
