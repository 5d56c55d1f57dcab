package model

import "math"

// degenerateLength is the segment length below which no direction can be
// derived.
const degenerateLength = 0.001

// Segment is a straight connector chord. Endpoints are unordered for
// geometric purposes, but an end marker always sits at (X2, Y2).
type Segment struct {
	X1, Y1, X2, Y2 float64
	Name           string
	MarkerEnd      string  // marker template id, empty if none
	StrokeWidth    float64 // defaults to 1.0
}

// NewSegment creates a segment with the default stroke width of 1.0.
func NewSegment(x1, y1, x2, y2 float64, name string) Segment {
	return Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Name: name, StrokeWidth: 1.0}
}

// Start returns the (X1, Y1) endpoint.
func (s Segment) Start() Point {
	return Point{s.X1, s.Y1}
}

// End returns the (X2, Y2) endpoint, the one that owns any end marker.
func (s Segment) End() Point {
	return Point{s.X2, s.Y2}
}

// Length returns the Euclidean length.
func (s Segment) Length() float64 {
	return s.Start().Distance(s.End())
}

// PointAt returns the point at parameter t, where t=0 is Start and t=1 End.
func (s Segment) PointAt(t float64) Point {
	return Point{
		X: s.X1 + t*(s.X2-s.X1),
		Y: s.Y1 + t*(s.Y2-s.Y1),
	}
}

// Direction returns the unit direction vector from Start to End. Degenerate
// segments have no direction and report ok=false.
func (s Segment) Direction() (Point, bool) {
	dx := s.X2 - s.X1
	dy := s.Y2 - s.Y1
	length := math.Sqrt(dx*dx + dy*dy)
	if length < degenerateLength {
		return Point{}, false
	}
	return Point{X: dx / length, Y: dy / length}, true
}

// ClipToBox clips the segment's parameter range [0,1] against the box's four
// half-planes (Liang–Barsky). It returns the surviving sub-interval, or
// ok=false when the segment misses the box entirely. A degenerate interval
// (tMin == tMax) means the segment touches the box at a single point.
//
// This is the one primitive every segment/box relationship query builds on.
func (s Segment) ClipToBox(b Box) (tMin, tMax float64, ok bool) {
	dx := s.X2 - s.X1
	dy := s.Y2 - s.Y1
	tMin, tMax = 0, 1

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0 // parallel to this edge: inside or outside for good
		}
		t := q / p
		if p < 0 {
			if t > tMax {
				return false
			}
			if t > tMin {
				tMin = t
			}
		} else {
			if t < tMin {
				return false
			}
			if t < tMax {
				tMax = t
			}
		}
		return true
	}

	if !clip(-dx, s.X1-b.XMin) {
		return 0, 0, false
	}
	if !clip(dx, b.XMax-s.X1) {
		return 0, 0, false
	}
	if !clip(-dy, s.Y1-b.YMin) {
		return 0, 0, false
	}
	if !clip(dy, b.YMax-s.Y1) {
		return 0, 0, false
	}
	if tMin > tMax {
		return 0, 0, false
	}
	return tMin, tMax, true
}

// IsParallelTo reports whether the two segments are parallel: the cross
// product of their unit directions is below eps. Degenerate segments are
// parallel to nothing.
func (s Segment) IsParallelTo(other Segment, eps float64) bool {
	d1, ok1 := s.Direction()
	d2, ok2 := other.Direction()
	if !ok1 || !ok2 {
		return false
	}
	cross := math.Abs(d1.X*d2.Y - d1.Y*d2.X)
	return cross < eps
}

// PerpendicularDistance returns the perpendicular distance between two
// segments already known to be parallel.
func (s Segment) PerpendicularDistance(other Segment) float64 {
	d, ok := s.Direction()
	if !ok {
		return 0
	}
	px := s.X1 - other.X1
	py := s.Y1 - other.Y1
	return math.Abs(px*(-d.Y) + py*d.X)
}

// projectOntoAxis projects both endpoints onto an axis and returns the
// min/max of the projections.
func (s Segment) projectOntoAxis(axis Point) (float64, float64) {
	p1 := s.X1*axis.X + s.Y1*axis.Y
	p2 := s.X2*axis.X + s.Y2*axis.Y
	return math.Min(p1, p2), math.Max(p1, p2)
}

// OverlapsInDirection reports whether two parallel segments overlap when
// projected onto their shared direction.
func (s Segment) OverlapsInDirection(other Segment) bool {
	d, ok := s.Direction()
	if !ok {
		return false
	}
	min1, max1 := s.projectOntoAxis(d)
	min2, max2 := other.projectOntoAxis(d)
	return max1 > min2 && max2 > min1
}

// DistanceToBoxEdge returns the perpendicular distance from an axis-aligned
// segment to the nearer of the two box edges it runs parallel to, provided
// the segment's span overlaps the box's extent on the free axis. ok=false
// when the segment is not axis-aligned or the spans do not overlap.
func (s Segment) DistanceToBoxEdge(b Box) (float64, bool) {
	d, ok := s.Direction()
	if !ok {
		return 0, false
	}
	horizontal := math.Abs(d.Y) < DefaultParallelEps
	vertical := math.Abs(d.X) < DefaultParallelEps

	switch {
	case horizontal:
		minX := math.Min(s.X1, s.X2)
		maxX := math.Max(s.X1, s.X2)
		if maxX <= b.XMin || minX >= b.XMax {
			return 0, false
		}
		return math.Min(math.Abs(s.Y1-b.YMin), math.Abs(s.Y1-b.YMax)), true
	case vertical:
		minY := math.Min(s.Y1, s.Y2)
		maxY := math.Max(s.Y1, s.Y2)
		if maxY <= b.YMin || minY >= b.YMax {
			return 0, false
		}
		return math.Min(math.Abs(s.X1-b.XMin), math.Abs(s.X1-b.XMax)), true
	}
	return 0, false
}
