package tikzdoc

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/boergens/check-svg-collisions/layout"
	"github.com/boergens/check-svg-collisions/model"
)

// defaultNodeDistance is the edge-to-edge distance in centimeters used
// by relative placements when the figure does not set "node distance".
const defaultNodeDistance = 1.5

// WidthMeasurer supplies rendered text widths in centimeters, keyed by
// the literal text. A nil measurer or a failed measurement falls back to
// the default node width.
type WidthMeasurer interface {
	MeasureWidths(ctx context.Context, texts []string, preamble string) (map[string]float64, error)
}

// Figure is one tikzpicture environment read into a scene.
type Figure struct {
	Label string
	Line  int
	Scene *model.Scene
}

// Open reads a LaTeX file and returns a scene per tikzpicture found.
func Open(ctx context.Context, filename string, m WidthMeasurer) ([]Figure, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	source, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return Parse(ctx, source, m)
}

// Parse extracts every tikzpicture from LaTeX source. Text widths for
// all figures are measured in one batch against the document's own
// preamble; measurement failure degrades to default widths with a
// notice on every figure, never an error.
func Parse(ctx context.Context, source string, m WidthMeasurer) ([]Figure, error) {
	raws := extractFigures(source)
	if len(raws) == 0 {
		return nil, nil
	}
	preamble := extractPreamble(source)

	var texts []string
	seen := make(map[string]bool)
	for _, raw := range raws {
		for _, spec := range parseNodes(raw.content) {
			t := strings.TrimSpace(spec.content)
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			texts = append(texts, t)
		}
	}

	widths := map[string]float64{}
	var measureNotice string
	if m != nil && len(texts) > 0 {
		measured, err := m.MeasureWidths(ctx, texts, preamble)
		if err != nil {
			measureNotice = "  text measurement unavailable, node widths defaulted"
		} else {
			widths = measured
		}
	}

	figures := make([]Figure, 0, len(raws))
	for _, raw := range raws {
		styles := extractStyles(source, raw.content)
		scene := buildScene(raw.content, styles, widths)
		if measureNotice != "" {
			scene.Notices = append(scene.Notices, measureNotice)
		}
		figures = append(figures, Figure{Label: raw.label, Line: raw.line, Scene: scene})
	}
	return figures, nil
}

// decode interprets the raw bytes as UTF-8 and falls back to Latin-1,
// the other encoding LaTeX sources show up in.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding latin-1: %w", err)
	}
	return string(out), nil
}

// rawFigure is a tikzpicture body with its label and source line.
type rawFigure struct {
	label   string
	line    int
	content string
}

// extractFigures locates tikzpicture environments. A figure's label is
// the nearest preceding \subsection title; unlabeled figures are
// numbered in order of appearance.
func extractFigures(source string) []rawFigure {
	const begin = `\begin{tikzpicture}`
	const end = `\end{tikzpicture}`

	var figures []rawFigure
	claimed := make(map[int]bool)
	for from := 0; ; {
		idx := strings.Index(source[from:], begin)
		if idx < 0 {
			return figures
		}
		idx += from
		bodyStart := idx + len(begin)
		endIdx := strings.Index(source[bodyStart:], end)
		if endIdx < 0 {
			return figures
		}

		label, labelAt := precedingSubsection(source[:idx])
		if label != "" && claimed[labelAt] {
			// A title labels only its first figure.
			label = ""
		}
		lineAt := idx
		if label == "" {
			label = fmt.Sprintf("tikzpicture %d", len(figures)+1)
		} else {
			claimed[labelAt] = true
			lineAt = labelAt
		}

		figures = append(figures, rawFigure{
			label:   label,
			line:    strings.Count(source[:lineAt], "\n") + 1,
			content: source[bodyStart : bodyStart+endIdx],
		})
		from = bodyStart + endIdx + len(end)
	}
}

// precedingSubsection returns the title and position of the last
// \subsection before the scanned region ends.
func precedingSubsection(before string) (string, int) {
	const cmd = `\subsection`
	idx := strings.LastIndex(before, cmd)
	if idx < 0 {
		return "", 0
	}
	i := skipSpace(before, idx+len(cmd))
	title, _, ok := braceGroup(before, i)
	if !ok {
		return "", 0
	}
	return strings.TrimSpace(title), idx
}

// extractPreamble returns everything before \begin{document}.
func extractPreamble(source string) string {
	if idx := strings.Index(source, `\begin{document}`); idx >= 0 {
		return source[:idx]
	}
	return ""
}

// buildScene turns one figure body into a scene: nodes become text
// boxes and shape boxes, \draw statements become segments with their
// endpoints trimmed back to the boundary of the node box they attach
// to, so connected endpoints read as edge connections rather than
// interior hits.
func buildScene(figure string, styles map[string]string, widths map[string]float64) *model.Scene {
	scene := &model.Scene{Markers: make(map[string]model.MarkerTemplate)}

	nodeDistance := defaultNodeDistance
	if v, ok := optionValue(figure, "node distance"); ok {
		if d, _, ok := leadingFloat(v); ok {
			nodeDistance = d
		}
	}

	specs := parseNodes(figure)

	// Name anonymous nodes and drop duplicate declarations; the first
	// declaration of a name wins.
	byName := make(map[string]nodeSpec, len(specs))
	var order []string
	for _, spec := range specs {
		if spec.name == "" {
			spec.name = fmt.Sprintf("node_%d", len(order))
		}
		if _, dup := byName[spec.name]; dup {
			continue
		}
		byName[spec.name] = spec
		order = append(order, spec.name)
	}

	type dims struct {
		w, h  float64
		isBox bool
	}
	nodeDims := make(map[string]dims, len(order))
	placements := make([]layout.Placement, 0, len(order))
	for _, name := range order {
		spec := byName[name]
		w, h, isBox := nodeDimensions(spec.options, spec.content, styles, widths)
		nodeDims[name] = dims{w, h, isBox}

		p := layout.Placement{Name: name, Width: w, Height: h, At: spec.at}
		if spec.at == nil {
			if rel, ok := relation(spec.options); ok {
				p.Rel = rel
			}
		}
		placements = append(placements, p)
	}

	result := layout.Resolve(placements, nodeDistance)
	for _, name := range result.Unresolved {
		scene.Notices = append(scene.Notices,
			fmt.Sprintf("  node '%s' has an unresolvable position and was placed nowhere", name))
	}

	nodeBoxes := make(map[string]model.Box, len(order))
	for _, name := range order {
		pos, ok := result.Positions[name]
		if !ok {
			continue
		}
		spec := byName[name]
		d := nodeDims[name]

		var box model.Box
		if spec.at != nil {
			box = anchoredBox(pos, d.w, d.h, spec.options, name, d.isBox)
		} else {
			box = model.NewBox(pos.X-d.w/2, pos.Y-d.h/2, pos.X+d.w/2, pos.Y+d.h/2, name, model.CategoryText)
			if d.isBox {
				box.Category = model.CategoryRect
			}
		}
		nodeBoxes[name] = box

		if d.isBox {
			shape := box
			shape.Category = model.CategoryRect
			scene.Shapes = append(scene.Shapes, shape)
		}
		if strings.TrimSpace(spec.content) != "" {
			text := box
			text.Category = model.CategoryText
			scene.Texts = append(scene.Texts, text)
		}
	}

	for _, d := range parseDraws(figure) {
		scene.Segments = append(scene.Segments, d.segments(result.Positions, nodeBoxes)...)
	}
	return scene
}

// drawSpec is one \draw statement between two node references, with an
// optional relative waypoint and an optional |- orthogonal connector.
type drawSpec struct {
	startRef string
	endRef   string
	offset   *model.Point
	ortho    bool
}

// parseDraws scans a figure body for \draw statements of the forms
//
//	\draw[...] (a) -- (b)
//	\draw[...] (a) |- (b)
//	\draw[...] (a) -- ++(dx,dy) (b)
//	\draw[...] (a) -- ++(dx,dy) |- (b)
func parseDraws(figure string) []drawSpec {
	var draws []drawSpec
	for from := 0; ; {
		idx := strings.Index(figure[from:], `\draw`)
		if idx < 0 {
			return draws
		}
		i := from + idx + len(`\draw`)
		from = i

		i = skipSpace(figure, i)
		if _, next, ok := bracketGroup(figure, i, '[', ']'); ok {
			i = skipSpace(figure, next)
		}

		var d drawSpec
		start, next, ok := bracketGroup(figure, i, '(', ')')
		if !ok {
			continue
		}
		d.startRef = strings.TrimSpace(start)
		i = skipSpace(figure, next)

		switch {
		case strings.HasPrefix(figure[i:], "--"):
			i = skipSpace(figure, i+2)
		case strings.HasPrefix(figure[i:], "|-"):
			d.ortho = true
			i = skipSpace(figure, i+2)
		default:
			continue
		}

		if !d.ortho && strings.HasPrefix(figure[i:], "++") {
			off, next, ok := bracketGroup(figure, i+2, '(', ')')
			if !ok {
				continue
			}
			pt, ok := parseCoordinate(off)
			if !ok {
				continue
			}
			d.offset = &pt
			i = skipSpace(figure, next)
			switch {
			case strings.HasPrefix(figure[i:], "|-"):
				d.ortho = true
				i = skipSpace(figure, i+2)
			case strings.HasPrefix(figure[i:], "--"):
				i = skipSpace(figure, i+2)
			}
		}

		end, next, ok := bracketGroup(figure, i, '(', ')')
		if !ok {
			continue
		}
		d.endRef = strings.TrimSpace(end)
		from = next
		draws = append(draws, d)
	}
}

// segments resolves a draw into scene segments. Endpoints land on node
// anchors (east/west honored, center otherwise), the optional waypoint
// offsets the start, and |- routes vertically then horizontally.
func (d drawSpec) segments(positions map[string]model.Point, boxes map[string]model.Box) []model.Segment {
	startNode, startAnchor := splitAnchor(d.startRef)
	endNode, endAnchor := splitAnchor(d.endRef)

	start, ok := anchorPoint(startNode, startAnchor, positions, boxes)
	if !ok {
		return nil
	}
	end, ok := anchorPoint(endNode, endAnchor, positions, boxes)
	if !ok {
		return nil
	}
	if d.offset != nil {
		start.X += d.offset.X
		start.Y += d.offset.Y
	}

	name := startNode + "→" + endNode

	var segs []model.Segment
	if d.ortho {
		segs = append(segs,
			model.NewSegment(start.X, start.Y, start.X, end.Y, name),
			model.NewSegment(start.X, end.Y, end.X, end.Y, name))
	} else {
		segs = append(segs, model.NewSegment(start.X, start.Y, end.X, end.Y, name))
	}

	if len(segs) > 0 {
		if box, ok := boxes[startNode]; ok {
			segs[0] = trimStart(segs[0], box)
		}
		if box, ok := boxes[endNode]; ok {
			segs[len(segs)-1] = trimEnd(segs[len(segs)-1], box)
		}
	}
	return segs
}

func splitAnchor(ref string) (node, anchor string) {
	if i := strings.IndexByte(ref, '.'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, "center"
}

// anchorPoint resolves a node reference to a coordinate. East and west
// anchors sit on the box's vertical edges at mid height; every other
// anchor resolves to the box center.
func anchorPoint(node, anchor string, positions map[string]model.Point, boxes map[string]model.Box) (model.Point, bool) {
	pos, ok := positions[node]
	if !ok {
		return model.Point{}, false
	}
	box, haveBox := boxes[node]
	if !haveBox {
		return pos, true
	}
	p := box.Center()
	switch anchor {
	case "east":
		p.X = box.XMax
	case "west":
		p.X = box.XMin
	}
	return p, true
}

// trimStart moves a segment's start point out to the boundary of the
// box it departs from, when the start lies strictly inside it.
func trimStart(seg model.Segment, box model.Box) model.Segment {
	if !box.ContainsPointStrict(seg.Start(), 0) {
		return seg
	}
	_, tMax, ok := seg.ClipToBox(box)
	if !ok || tMax >= 1 {
		return seg
	}
	exit := seg.PointAt(tMax)
	seg.X1, seg.Y1 = exit.X, exit.Y
	return seg
}

// trimEnd moves a segment's end point back to the boundary of the box
// it arrives at, when the end lies strictly inside it.
func trimEnd(seg model.Segment, box model.Box) model.Segment {
	if !box.ContainsPointStrict(seg.End(), 0) {
		return seg
	}
	tMin, _, ok := seg.ClipToBox(box)
	if !ok || tMin <= 0 {
		return seg
	}
	entry := seg.PointAt(tMin)
	seg.X2, seg.Y2 = entry.X, entry.Y
	return seg
}
