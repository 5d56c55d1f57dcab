package model

import "math"

// Canonical tolerance set. Observed snapshots of the checker disagreed on
// some of these (0.5 vs 1.0 overlap, 1.5 vs 2.0 corner); the values below
// are the documented, authoritative choice and are the defaults used by
// rules.DefaultConfig.
const (
	// DefaultOverlapEps is the slack under which two boxes that merely
	// touch, or sit within this distance of each other, still count as
	// non-overlapping. It absorbs rounding noise from upstream renderers.
	DefaultOverlapEps = 0.5

	// DefaultInteriorEps is the margin a point must keep from every edge
	// to count as strictly inside a box.
	DefaultInteriorEps = 0.5

	// DefaultEdgeEps is the tolerance for recognizing a point as sitting
	// on a box edge, i.e. a connector endpoint attaching to the box.
	DefaultEdgeEps = 1.0

	// DefaultCornerEps is the distance within which a segment grazing
	// past a box corner is reported as a corner touch.
	DefaultCornerEps = 2.0

	// DefaultParallelEps bounds the cross product of two unit directions
	// for the segments to count as parallel.
	DefaultParallelEps = 0.001
)

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Dot returns the dot product with another vector.
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Category tags a Box with the kind of rendered element it came from.
type Category string

const (
	CategoryText    Category = "text"
	CategoryRect    Category = "rect"
	CategoryPolygon Category = "polygon"
	CategoryMarker  Category = "marker"
)

// Box is an axis-aligned rectangle with an identity and a category tag.
// Text boxes additionally carry the font metadata their extent was measured
// with; for all other categories FontFamily is empty and FontSize is zero.
// Invariant: XMin <= XMax and YMin <= YMax (NewBox normalizes).
type Box struct {
	XMin, YMin, XMax, YMax float64
	Name                   string
	Category               Category
	FontFamily             string
	FontSize               float64
}

// NewBox creates a box from two corner coordinates, normalizing so that the
// min/max invariant holds.
func NewBox(x1, y1, x2, y2 float64, name string, cat Category) Box {
	return Box{
		XMin:     math.Min(x1, x2),
		YMin:     math.Min(y1, y2),
		XMax:     math.Max(x1, x2),
		YMax:     math.Max(y1, y2),
		Name:     name,
		Category: cat,
	}
}

// Width returns the horizontal extent.
func (b Box) Width() float64 {
	return b.XMax - b.XMin
}

// Height returns the vertical extent.
func (b Box) Height() float64 {
	return b.YMax - b.YMin
}

// Center returns the center point.
func (b Box) Center() Point {
	return Point{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2}
}

// Expand grows the box by margin on all four sides. A negative margin
// shrinks it; callers are responsible for not inverting the box.
func (b Box) Expand(margin float64) Box {
	b.XMin -= margin
	b.YMin -= margin
	b.XMax += margin
	b.YMax += margin
	return b
}

// Overlaps reports whether the two boxes overlap by more than eps on both
// axes. Boxes that merely touch, or sit within eps of each other, do not
// overlap. Symmetric in its arguments.
func (b Box) Overlaps(other Box, eps float64) bool {
	if b.XMax <= other.XMin+eps || other.XMax <= b.XMin+eps {
		return false
	}
	if b.YMax <= other.YMin+eps || other.YMax <= b.YMin+eps {
		return false
	}
	return true
}

// Contains reports whether other lies entirely within b, edges inclusive.
// Contains is not symmetric; a box contains itself.
func (b Box) Contains(other Box) bool {
	return b.XMin <= other.XMin && b.XMax >= other.XMax &&
		b.YMin <= other.YMin && b.YMax >= other.YMax
}

// ContainsPointStrict reports whether p lies strictly inside b by more than
// eps from every edge. Used to distinguish "deep inside" from "at the edge".
func (b Box) ContainsPointStrict(p Point, eps float64) bool {
	return b.XMin+eps < p.X && p.X < b.XMax-eps &&
		b.YMin+eps < p.Y && p.Y < b.YMax-eps
}

// AtEdge reports whether p lies within eps of the box with at least one
// coordinate within eps of one of the four edges, i.e. the point is
// connecting to the box border rather than sitting deep inside or far away.
func (b Box) AtEdge(p Point, eps float64) bool {
	inX := b.XMin-eps <= p.X && p.X <= b.XMax+eps
	inY := b.YMin-eps <= p.Y && p.Y <= b.YMax+eps
	if !inX || !inY {
		return false
	}
	return math.Abs(p.X-b.XMin) <= eps || math.Abs(p.X-b.XMax) <= eps ||
		math.Abs(p.Y-b.YMin) <= eps || math.Abs(p.Y-b.YMax) <= eps
}

// Corners returns the four corner points.
func (b Box) Corners() [4]Point {
	return [4]Point{
		{b.XMin, b.YMin},
		{b.XMax, b.YMin},
		{b.XMin, b.YMax},
		{b.XMax, b.YMax},
	}
}
