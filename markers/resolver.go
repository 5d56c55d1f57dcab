// Package markers computes the oriented collision footprint of connector-end
// markers (arrowheads and similar decorations) at segment endpoints.
package markers

import (
	"math"

	"github.com/boergens/check-svg-collisions/model"
)

// degenerateLength is the segment length below which no orientation can be
// derived and the marker falls back to a centered, unscaled box.
const degenerateLength = 0.001

// Resolve instantiates tpl at the end of seg. Marker dimensions and the
// reference point scale with the segment's stroke width (the markerUnits
// "strokeWidth" default). The four template corners are oriented along the
// segment direction with the reference point pinned to the (X2, Y2)
// endpoint; the returned footprint is the axis-aligned bounding box of the
// oriented corners, a conservative over-approximation for non-axis-aligned
// segments.
func Resolve(seg model.Segment, tpl model.MarkerTemplate) model.RenderedMarker {
	dx := seg.X2 - seg.X1
	dy := seg.Y2 - seg.Y1
	length := math.Sqrt(dx*dx + dy*dy)

	tip := seg.End()

	if length < degenerateLength {
		halfW := tpl.Width / 2
		halfH := tpl.Height / 2
		return model.RenderedMarker{
			Owner: seg.Name,
			Footprint: model.Box{
				XMin:     tip.X - halfW,
				YMin:     tip.Y - halfH,
				XMax:     tip.X + halfW,
				YMax:     tip.Y + halfH,
				Name:     seg.Name + ":marker",
				Category: model.CategoryMarker,
			},
			Tip: tip,
		}
	}

	scale := seg.StrokeWidth
	width := tpl.Width * scale
	height := tpl.Height * scale
	refX := tpl.RefX * scale
	refY := tpl.RefY * scale

	// Local x-axis is the segment direction, local y its left-hand
	// perpendicular.
	ux, uy := dx/length, dy/length
	px, py := -uy, ux

	corners := [4][2]float64{
		{0, 0},
		{width, 0},
		{width, height},
		{0, height},
	}

	xMin := math.Inf(1)
	yMin := math.Inf(1)
	xMax := math.Inf(-1)
	yMax := math.Inf(-1)
	for _, c := range corners {
		offX := c[0] - refX
		offY := c[1] - refY
		gx := tip.X + offX*ux + offY*px
		gy := tip.Y + offX*uy + offY*py
		xMin = math.Min(xMin, gx)
		yMin = math.Min(yMin, gy)
		xMax = math.Max(xMax, gx)
		yMax = math.Max(yMax, gy)
	}

	return model.RenderedMarker{
		Owner: seg.Name,
		Footprint: model.Box{
			XMin:     xMin,
			YMin:     yMin,
			XMax:     xMax,
			YMax:     yMax,
			Name:     seg.Name + ":marker",
			Category: model.CategoryMarker,
		},
		Tip:       tip,
		Direction: model.Point{X: ux, Y: uy},
	}
}

// ResolveAll instantiates the referenced template for every segment that
// carries a marker-end reference. Segments referencing an unknown template
// are skipped.
func ResolveAll(segments []model.Segment, templates map[string]model.MarkerTemplate) []model.RenderedMarker {
	var rendered []model.RenderedMarker
	for _, seg := range segments {
		if seg.MarkerEnd == "" {
			continue
		}
		tpl, ok := templates[seg.MarkerEnd]
		if !ok {
			continue
		}
		rendered = append(rendered, Resolve(seg, tpl))
	}
	return rendered
}
