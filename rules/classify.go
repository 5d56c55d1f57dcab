package rules

import (
	"math"

	"github.com/boergens/check-svg-collisions/model"
)

// pointContact is the chord length below which a clipped interval counts
// as a single-point contact.
const pointContact = 1e-7

// relation classifies how a segment relates to a box it geometrically
// meets. The classifications are mutually exclusive.
type relation int

const (
	relNone relation = iota
	relContained      // both endpoints strictly inside: legend samples etc.
	relEdgeConnection // the segment attaches to the box border
	relCornerTouch    // grazes a corner without entering the interior
	relPassThrough    // pierces the box
)

// classify builds every segment/box relationship on the parametric clip.
//
//   - no clip interval: the segment misses the box, unless it grazes past
//     a corner within CornerEps, which is a corner touch;
//   - both endpoints strictly inside: contained;
//   - degenerate interval: single-point contact, an edge connection when
//     the contact is one of the segment's own endpoints, otherwise a
//     corner touch;
//   - entry and exit both within EdgeEps of the same box edge: the segment
//     attaches to (or runs along) that edge;
//   - anything else pierces the box.
func classify(seg model.Segment, b model.Box, cfg Config) relation {
	tMin, tMax, ok := seg.ClipToBox(b)
	if !ok {
		if grazesCorner(seg, b, cfg.CornerEps) {
			return relCornerTouch
		}
		return relNone
	}

	if b.ContainsPointStrict(seg.Start(), cfg.InteriorEps) &&
		b.ContainsPointStrict(seg.End(), cfg.InteriorEps) {
		return relContained
	}

	entry := seg.PointAt(tMin)
	exit := seg.PointAt(tMax)

	if entry.Distance(exit) < pointContact {
		if tMin < pointContact || tMax > 1-pointContact {
			return relEdgeConnection
		}
		return relCornerTouch
	}

	// Both clip points within EdgeEps of one edge: the segment attaches
	// to the box there, or rides along the edge without ever leaving its
	// tolerance band.
	if sameEdge(entry, exit, b, cfg.EdgeEps) {
		return relEdgeConnection
	}
	return relPassThrough
}

// sameEdge reports whether both points lie within eps of one common box
// edge.
func sameEdge(p, q model.Point, b model.Box, eps float64) bool {
	near := func(a, edge float64) bool { return math.Abs(a-edge) <= eps }
	switch {
	case near(p.X, b.XMin) && near(q.X, b.XMin):
		return true
	case near(p.X, b.XMax) && near(q.X, b.XMax):
		return true
	case near(p.Y, b.YMin) && near(q.Y, b.YMin):
		return true
	case near(p.Y, b.YMax) && near(q.Y, b.YMax):
		return true
	}
	return false
}

// grazesCorner reports whether the segment passes within eps of one of the
// box's corners. Only consulted when the segment does not meet the box
// itself. The offset is measured along the segment's minor axis at the
// corner's major-axis coordinate.
func grazesCorner(seg model.Segment, b model.Box, eps float64) bool {
	dx := seg.X2 - seg.X1
	dy := seg.Y2 - seg.Y1
	if math.Abs(dx) < 0.001 && math.Abs(dy) < 0.001 {
		return false
	}

	for _, c := range b.Corners() {
		if math.Abs(dx) > math.Abs(dy) {
			t := (c.X - seg.X1) / dx
			if t >= 0 && t <= 1 && math.Abs(seg.Y1+t*dy-c.Y) < eps {
				return true
			}
		} else {
			t := (c.Y - seg.Y1) / dy
			if t >= 0 && t <= 1 && math.Abs(seg.X1+t*dx-c.X) < eps {
				return true
			}
		}
	}
	return false
}

// crossesInterior reports whether the segment's clipped interval against
// the box's strict interior (box shrunk by eps) is non-empty and longer
// than a point, i.e. the segment actually runs through the box rather than
// merely touching its border.
func crossesInterior(seg model.Segment, b model.Box, eps float64) bool {
	inner := b.Expand(-eps)
	if inner.XMin >= inner.XMax || inner.YMin >= inner.YMax {
		return false
	}
	tMin, tMax, ok := seg.ClipToBox(inner)
	if !ok {
		return false
	}
	return seg.PointAt(tMin).Distance(seg.PointAt(tMax)) >= pointContact
}
