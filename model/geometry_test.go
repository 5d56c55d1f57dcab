package model

import (
	"math"
	"testing"
)

func box(x1, y1, x2, y2 float64) Box {
	return NewBox(x1, y1, x2, y2, "b", CategoryRect)
}

func TestNewBoxNormalizes(t *testing.T) {
	b := NewBox(100, 90, 10, 20, "b", CategoryRect)
	if b.XMin != 10 || b.XMax != 100 || b.YMin != 20 || b.YMax != 90 {
		t.Errorf("coordinates not normalized: %+v", b)
	}
}

func TestOverlapsSymmetric(t *testing.T) {
	pairs := [][2]Box{
		{box(0, 0, 10, 10), box(5, 5, 15, 15)},
		{box(0, 0, 10, 10), box(20, 20, 30, 30)},
		{box(0, 0, 10, 10), box(10, 0, 20, 10)},
		{box(0, 0, 10, 10), box(9.9, 0, 20, 10)},
		{box(0, 0, 100, 100), box(40, 40, 60, 60)},
	}
	for i, p := range pairs {
		ab := p[0].Overlaps(p[1], DefaultOverlapEps)
		ba := p[1].Overlaps(p[0], DefaultOverlapEps)
		if ab != ba {
			t.Errorf("pair %d: Overlaps not symmetric: %v vs %v", i, ab, ba)
		}
	}
}

func TestOverlapsTouchingIsClear(t *testing.T) {
	a := box(0, 0, 10, 10)

	// Exactly touching edges do not overlap.
	if a.Overlaps(box(10, 0, 20, 10), DefaultOverlapEps) {
		t.Error("touching boxes reported as overlapping")
	}
	// Within eps still does not overlap.
	if a.Overlaps(box(9.8, 0, 20, 10), DefaultOverlapEps) {
		t.Error("boxes within eps reported as overlapping")
	}
	// Past eps does.
	if !a.Overlaps(box(9, 0, 20, 10), DefaultOverlapEps) {
		t.Error("clearly overlapping boxes reported as clear")
	}
}

func TestOverlapsSeparatedByEps(t *testing.T) {
	a := box(0, 0, 10, 10)
	// Separated by more than eps on a single axis: never overlapping,
	// regardless of the other axis.
	b := box(11, 0, 20, 10)
	if a.Overlaps(b, DefaultOverlapEps) {
		t.Error("boxes separated on x reported as overlapping")
	}
	c := box(0, 11, 10, 20)
	if a.Overlaps(c, DefaultOverlapEps) {
		t.Error("boxes separated on y reported as overlapping")
	}
}

func TestContains(t *testing.T) {
	outer := box(10, 10, 190, 190)
	inner := box(50, 50, 100, 100)

	if !outer.Contains(inner) {
		t.Error("outer should contain inner")
	}
	if inner.Contains(outer) {
		t.Error("inner should not contain outer")
	}
	if !outer.Contains(outer) {
		t.Error("a box should contain itself")
	}
	// Inclusive: shared edges still count.
	edge := box(10, 10, 100, 100)
	if !outer.Contains(edge) {
		t.Error("containment should be edge-inclusive")
	}
}

func TestMutualContainmentImpliesEquality(t *testing.T) {
	a := box(1, 2, 3, 4)
	b := box(1, 2, 3, 4)
	if !(a.Contains(b) && b.Contains(a)) {
		t.Fatal("identical boxes should mutually contain")
	}
	c := box(1, 2, 3, 5)
	if a.Contains(c) && c.Contains(a) {
		t.Error("distinct boxes must not mutually contain")
	}
}

func TestContainsPointStrict(t *testing.T) {
	b := box(0, 0, 10, 10)
	if !b.ContainsPointStrict(Point{5, 5}, DefaultInteriorEps) {
		t.Error("center should be strictly inside")
	}
	if b.ContainsPointStrict(Point{0, 5}, DefaultInteriorEps) {
		t.Error("edge point is not strictly inside")
	}
	if b.ContainsPointStrict(Point{0.4, 5}, DefaultInteriorEps) {
		t.Error("point within eps of edge is not strictly inside")
	}
}

func TestAtEdge(t *testing.T) {
	b := box(0, 0, 10, 10)
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{0, 5}, true},    // on left edge
		{Point{10.5, 5}, true}, // just outside right edge
		{Point{5, 5}, false},   // deep inside
		{Point{20, 5}, false},  // far away
		{Point{0, 0}, true},    // corner
	}
	for _, c := range cases {
		if got := b.AtEdge(c.p, DefaultEdgeEps); got != c.want {
			t.Errorf("AtEdge(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestExpand(t *testing.T) {
	b := box(10, 10, 20, 20).Expand(2)
	if b.XMin != 8 || b.YMin != 8 || b.XMax != 22 || b.YMax != 22 {
		t.Errorf("unexpected expanded box: %+v", b)
	}
}

func TestPointDistance(t *testing.T) {
	d := Point{0, 0}.Distance(Point{3, 4})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("distance = %f, want 5", d)
	}
}
