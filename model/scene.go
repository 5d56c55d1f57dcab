package model

// MarkerTemplate is a reusable connector-end decoration definition, in
// marker-local units. RefX/RefY is the point within the template that is
// aligned to the segment endpoint the marker is attached to.
type MarkerTemplate struct {
	ID     string
	Width  float64
	Height float64
	RefX   float64
	RefY   float64
}

// RenderedMarker is a marker template instantiated at a specific segment
// endpoint: its axis-aligned collision footprint, the tip point, and the
// owning segment's unit direction at the tip. It borrows the segment and
// the template by name only.
type RenderedMarker struct {
	Owner     string // name of the segment that carries the marker
	Footprint Box    // CategoryMarker
	Tip       Point
	Direction Point // zero vector when the owner segment is degenerate
}

// Scene is the per-file aggregate the rule engine consumes. It is built
// once by a reader and is read-only afterwards.
type Scene struct {
	Texts    []Box     // CategoryText
	Shapes   []Box     // CategoryRect and CategoryPolygon merged
	Segments []Segment
	Markers  map[string]MarkerTemplate
	Rendered []RenderedMarker
	Notices  []string // missing-id and unresolved-layout notices
}

// Kind identifies a reported issue or warning. The vocabulary is closed;
// readers and formatters may rely on exact string values.
type Kind string

const (
	KindShortMarkerSegment      Kind = "short marker segment"
	KindTextOverlap             Kind = "text overlap"
	KindLineThroughText         Kind = "line through text"
	KindTextCrossesBox          Kind = "text crosses box"
	KindTextTooCloseToBox       Kind = "text too close to box"
	KindBoxOverlap              Kind = "box overlap"
	KindLineThroughBox          Kind = "line through box"
	KindLineTouchesCorner       Kind = "line touches corner"
	KindLineThroughMarker       Kind = "line through marker"
	KindLineTouchesMarkerCorner Kind = "line touches marker corner"
	KindParallelTooClose        Kind = "parallel lines too close"
	KindLineTooCloseToEdge      Kind = "line too close to box edge"
)

// Issue reports a rule violation (or, in a warning list, a suspicious but
// tolerated condition) between two named subjects. Purely data; never
// mutated after creation.
type Issue struct {
	Kind     Kind
	SubjectA string
	SubjectB string
	Detail   string // optional, e.g. "15px < 20px"
}
