package layout

import (
	"math"
	"testing"

	"github.com/boergens/check-svg-collisions/model"
)

func at(x, y float64) *model.Point {
	return &model.Point{X: x, Y: y}
}

func TestResolveAbsoluteAndDefault(t *testing.T) {
	res := Resolve([]Placement{
		{Name: "a", Width: 2, Height: 1, At: at(3, 4)},
		{Name: "loose", Width: 1, Height: 1},
	}, 1.5)

	if len(res.Unresolved) != 0 {
		t.Fatalf("unresolved: %v", res.Unresolved)
	}
	if res.Positions["a"] != (model.Point{X: 3, Y: 4}) {
		t.Errorf("a at %v", res.Positions["a"])
	}
	// No directive at all: origin.
	if res.Positions["loose"] != (model.Point{}) {
		t.Errorf("loose at %v, want origin", res.Positions["loose"])
	}
}

func TestResolveEdgeToEdge(t *testing.T) {
	res := Resolve([]Placement{
		{Name: "a", Width: 2, Height: 1, At: at(0, 0)},
		{Name: "b", Width: 2, Height: 1, Rel: &Relation{Dir: DirBelow, Dist: -1, Ref: "a"}},
		{Name: "c", Width: 4, Height: 1, Rel: &Relation{Dir: DirRight, Dist: 2, Ref: "a"}},
	}, 1.5)

	// Edge-to-edge 1.5 plus both half-heights (0.5 + 0.5).
	b := res.Positions["b"]
	if math.Abs(b.Y-(-2.5)) > 1e-9 || b.X != 0 {
		t.Errorf("b at %v, want (0, -2.5)", b)
	}
	// Explicit distance 2 plus half-widths 1 and 2.
	c := res.Positions["c"]
	if math.Abs(c.X-5) > 1e-9 || c.Y != 0 {
		t.Errorf("c at %v, want (5, 0)", c)
	}
}

func TestResolveChain(t *testing.T) {
	// A chain of relative references resolves across passes regardless of
	// declaration order.
	res := Resolve([]Placement{
		{Name: "d", Width: 1, Height: 1, Rel: &Relation{Dir: DirBelow, Dist: 1, Ref: "c"}},
		{Name: "c", Width: 1, Height: 1, Rel: &Relation{Dir: DirBelow, Dist: 1, Ref: "b"}},
		{Name: "b", Width: 1, Height: 1, Rel: &Relation{Dir: DirBelow, Dist: 1, Ref: "a"}},
		{Name: "a", Width: 1, Height: 1, At: at(0, 10)},
	}, 1.5)

	if len(res.Unresolved) != 0 {
		t.Fatalf("unresolved: %v", res.Unresolved)
	}
	if d := res.Positions["d"]; math.Abs(d.Y-4) > 1e-9 {
		t.Errorf("d at %v, want y=4", d)
	}
}

func TestResolveCompound(t *testing.T) {
	res := Resolve([]Placement{
		{Name: "a", Width: 2, Height: 2, At: at(0, 0)},
		{Name: "b", Width: 2, Height: 2, Rel: &Relation{
			Dir: DirBelow, Dist: 1.5, Cross: DirLeft, CrossDist: 1, Ref: "a",
		}},
	}, 1.5)

	b := res.Positions["b"]
	if math.Abs(b.X-(-3)) > 1e-9 || math.Abs(b.Y-(-3.5)) > 1e-9 {
		t.Errorf("b at %v, want (-3, -3.5)", b)
	}
}

func TestResolveUnresolvedReported(t *testing.T) {
	res := Resolve([]Placement{
		{Name: "a", Width: 1, Height: 1, At: at(0, 0)},
		{Name: "orphan", Width: 1, Height: 1, Rel: &Relation{Dir: DirBelow, Dist: 1, Ref: "ghost"}},
	}, 1.5)

	if len(res.Unresolved) != 1 || res.Unresolved[0] != "orphan" {
		t.Errorf("unresolved = %v, want [orphan]", res.Unresolved)
	}
	if _, ok := res.Positions["orphan"]; ok {
		t.Error("orphan must not receive a position")
	}
}

func TestResolveChainBeyondBound(t *testing.T) {
	// Seven chained nodes: the pass bound of five leaves the tail
	// unresolved, and the tail is reported rather than dropped silently.
	placements := []Placement{{Name: "n0", Width: 1, Height: 1, At: at(0, 0)}}
	names := []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7"}
	for i, name := range names {
		ref := "n0"
		if i > 0 {
			ref = names[i-1]
		}
		placements = append([]Placement{{
			Name: name, Width: 1, Height: 1,
			Rel: &Relation{Dir: DirBelow, Dist: 1, Ref: ref},
		}}, placements...)
	}

	res := Resolve(placements, 1.5)
	if len(res.Unresolved) == 0 {
		t.Error("deep reverse-ordered chain should exceed the pass bound")
	}
	for _, name := range res.Unresolved {
		if _, ok := res.Positions[name]; ok {
			t.Errorf("node %s both resolved and unresolved", name)
		}
	}
}
