package rules

import (
	"fmt"
	"strings"

	"github.com/boergens/check-svg-collisions/model"
)

// defaultFontSize substitutes for text boxes whose reader could not supply
// font metadata.
const defaultFontSize = 12

// Check evaluates every rule over the scene and returns the issues and
// warnings found. The scene is not modified. Deterministic: identical
// scenes produce identical results in identical order.
func Check(scene *model.Scene, cfg Config) (issues, warnings []model.Issue) {
	e := &evaluator{scene: scene, cfg: cfg}

	e.checkMarkerSegmentLengths()
	e.checkTextOverlaps()
	e.checkSegmentsThroughTexts()
	e.checkTextsAgainstShapes()
	e.checkShapeOverlaps()
	e.checkSegmentsAgainstShapes()
	e.checkSegmentsAgainstMarkers()
	e.checkParallelClearance()
	e.checkEdgeClearance()

	return e.issues, e.warnings
}

type evaluator struct {
	scene    *model.Scene
	cfg      Config
	issues   []model.Issue
	warnings []model.Issue
}

func (e *evaluator) issue(kind model.Kind, a, b, detail string) {
	e.issues = append(e.issues, model.Issue{Kind: kind, SubjectA: a, SubjectB: b, Detail: detail})
}

func (e *evaluator) warning(kind model.Kind, a, b string) {
	e.warnings = append(e.warnings, model.Issue{Kind: kind, SubjectA: a, SubjectB: b})
}

// checkMarkerSegmentLengths flags marker-terminated segments shorter than
// MarkerLengthRatio times the marker template's width: the arrowhead would
// visually swallow the shaft. The template width is used unscaled; stroke
// width does not enter the threshold.
func (e *evaluator) checkMarkerSegmentLengths() {
	for _, seg := range e.scene.Segments {
		if seg.MarkerEnd == "" {
			continue
		}
		tpl, ok := e.scene.Markers[seg.MarkerEnd]
		if !ok {
			continue
		}
		minLength := tpl.Width * e.cfg.MarkerLengthRatio
		if seg.Length() < minLength {
			e.issue(model.KindShortMarkerSegment, seg.Name, "",
				fmt.Sprintf("%.0fpx < %.0fpx", seg.Length(), minLength))
		}
	}
}

// checkTextOverlaps flags overlapping text pairs. In lenient mode a pair
// of small labels may overlap.
func (e *evaluator) checkTextOverlaps() {
	texts := e.scene.Texts
	for i, t1 := range texts {
		for _, t2 := range texts[i+1:] {
			if !t1.Overlaps(t2, e.cfg.OverlapEps) {
				continue
			}
			if e.cfg.Lenient && e.cfg.isSmallLabel(t1) && e.cfg.isSmallLabel(t2) {
				continue
			}
			e.issue(model.KindTextOverlap, t1.Name, t2.Name, "")
		}
	}
}

// checkSegmentsThroughTexts flags segments running through a text's
// interior. In lenient mode segments attached to a small label are
// allowed to touch it.
func (e *evaluator) checkSegmentsThroughTexts() {
	for _, seg := range e.scene.Segments {
		for _, text := range e.scene.Texts {
			if !crossesInterior(seg, text, e.cfg.InteriorEps) {
				continue
			}
			if e.cfg.Lenient && e.cfg.isSmallLabel(text) && e.segmentAdjacentTo(seg, text) {
				continue
			}
			e.issue(model.KindLineThroughText, seg.Name, text.Name, "")
		}
	}
}

// segmentAdjacentTo reports whether either segment endpoint sits on the
// box's border region.
func (e *evaluator) segmentAdjacentTo(seg model.Segment, b model.Box) bool {
	return b.AtEdge(seg.Start(), e.cfg.EdgeEps) || b.AtEdge(seg.End(), e.cfg.EdgeEps)
}

// checkTextsAgainstShapes flags text that crosses a shape border (partially
// in, partially out), and text sitting closer to a shape border than the
// minimum legible gap.
func (e *evaluator) checkTextsAgainstShapes() {
	for _, text := range e.scene.Texts {
		for _, shape := range e.scene.Shapes {
			if text.Name == shape.Name {
				continue // the same node renders both the box and its label
			}
			if text.Overlaps(shape, e.cfg.OverlapEps) {
				if shape.Contains(text) || text.Contains(shape) {
					continue
				}
				e.issue(model.KindTextCrossesBox, text.Name, shape.Name, "")
				continue
			}
			e.checkLegibleGap(text, shape)
		}
	}
}

// checkLegibleGap flags a text box that is axis-adjacent to a shape with a
// positive gap smaller than the width of a narrow glyph at the text's
// size. Texts without font metadata fall back to a default size; scenes
// without a gap measurer skip the rule entirely.
func (e *evaluator) checkLegibleGap(text, shape model.Box) {
	if e.cfg.LegibleGap == nil {
		return
	}
	if shape.Contains(text) || text.Contains(shape) {
		return
	}
	gap, ok := axisGap(text, shape)
	if !ok {
		return
	}
	size := text.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	minGap := e.cfg.LegibleGap(text.FontFamily, size)
	if minGap <= 0 {
		return
	}
	if gap < minGap {
		e.issue(model.KindTextTooCloseToBox, text.Name, shape.Name,
			fmt.Sprintf("gap %.1f < %.1f", gap, minGap))
	}
}

// axisGap returns the separation between two boxes that overlap on one
// axis and are separated by a positive gap on the other.
func axisGap(a, b model.Box) (float64, bool) {
	xGap := b.XMin - a.XMax
	if g := a.XMin - b.XMax; g > xGap {
		xGap = g
	}
	yGap := b.YMin - a.YMax
	if g := a.YMin - b.YMax; g > yGap {
		yGap = g
	}

	switch {
	case xGap > 0 && yGap <= 0:
		return xGap, true
	case yGap > 0 && xGap <= 0:
		return yGap, true
	}
	return 0, false // overlapping, or diagonal neighbors
}

// checkShapeOverlaps flags shape pairs that overlap without either fully
// containing the other.
func (e *evaluator) checkShapeOverlaps() {
	shapes := e.scene.Shapes
	for i, b1 := range shapes {
		for _, b2 := range shapes[i+1:] {
			if !b1.Overlaps(b2, e.cfg.OverlapEps) {
				continue
			}
			if b1.Contains(b2) || b2.Contains(b1) {
				continue
			}
			e.issue(model.KindBoxOverlap, b1.Name, b2.Name, "")
		}
	}
}

// checkSegmentsAgainstShapes classifies every segment/shape pair: piercing
// is an issue, grazing a corner a warning, containment and edge
// connections are fine.
func (e *evaluator) checkSegmentsAgainstShapes() {
	for _, seg := range e.scene.Segments {
		for _, shape := range e.scene.Shapes {
			switch classify(seg, shape, e.cfg) {
			case relPassThrough:
				e.issue(model.KindLineThroughBox, seg.Name, shape.Name, "")
			case relCornerTouch:
				e.warning(model.KindLineTouchesCorner, seg.Name, shape.Name)
			}
		}
	}
}

// checkSegmentsAgainstMarkers applies the same classification to rendered
// marker footprints. The owning segment is always exempt, as is any
// segment that meets the marker at its tip while pointing away from it
// (arrows legitimately converge tip-to-tip on the same anchor point).
func (e *evaluator) checkSegmentsAgainstMarkers() {
	for _, m := range e.scene.Rendered {
		for _, seg := range e.scene.Segments {
			if seg.Name == m.Owner || strings.HasPrefix(seg.Name, m.Owner+"_seg") {
				continue
			}
			if e.meetsMarkerTip(seg, m) {
				continue
			}
			switch classify(seg, m.Footprint, e.cfg) {
			case relPassThrough:
				e.issue(model.KindLineThroughMarker, seg.Name, m.Footprint.Name, "")
			case relCornerTouch:
				e.warning(model.KindLineTouchesMarkerCorner, seg.Name, m.Footprint.Name)
			}
		}
	}
}

// meetsMarkerTip reports whether one of the segment's endpoints coincides
// with the marker tip while the segment leaves the tip perpendicular to or
// retreating from the marker's outward direction.
func (e *evaluator) meetsMarkerTip(seg model.Segment, m model.RenderedMarker) bool {
	if m.Direction == (model.Point{}) {
		return false
	}
	ends := [2][2]model.Point{
		{seg.Start(), seg.End()},
		{seg.End(), seg.Start()},
	}
	for _, pair := range ends {
		at, other := pair[0], pair[1]
		if at.Distance(m.Tip) > e.cfg.MarkerTipEps {
			continue
		}
		away := model.Point{X: other.X - at.X, Y: other.Y - at.Y}
		if away.Dot(m.Direction) <= 0 {
			return true
		}
	}
	return false
}

// checkParallelClearance flags parallel segments whose projections overlap
// and whose perpendicular distance is below ClearanceFactor times the
// wider stroke.
func (e *evaluator) checkParallelClearance() {
	segs := e.scene.Segments
	for i, s1 := range segs {
		for _, s2 := range segs[i+1:] {
			if !s1.IsParallelTo(s2, e.cfg.ParallelEps) {
				continue
			}
			if !s1.OverlapsInDirection(s2) {
				continue
			}
			stroke := s1.StrokeWidth
			if s2.StrokeWidth > stroke {
				stroke = s2.StrokeWidth
			}
			required := e.cfg.ClearanceFactor * stroke
			if d := s1.PerpendicularDistance(s2); d < required {
				e.issue(model.KindParallelTooClose, s1.Name, s2.Name,
					fmt.Sprintf("%.1fpx < %.1fpx", d, required))
			}
		}
	}
}

// checkEdgeClearance flags axis-aligned segments running closer along a
// shape edge than ClearanceFactor times their stroke width. Segments that
// meet the shape itself are already covered by the pass-through rule.
func (e *evaluator) checkEdgeClearance() {
	for _, seg := range e.scene.Segments {
		for _, shape := range e.scene.Shapes {
			d, ok := seg.DistanceToBoxEdge(shape)
			if !ok {
				continue
			}
			required := e.cfg.ClearanceFactor * seg.StrokeWidth
			// d == 0 is a segment lying on the edge itself; the
			// segment/shape classification already decides that case.
			if d > 0 && d < required {
				e.issue(model.KindLineTooCloseToEdge, seg.Name, shape.Name,
					fmt.Sprintf("%.1fpx < %.1fpx", d, required))
			}
		}
	}
}
