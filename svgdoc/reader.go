package svgdoc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/unicode/norm"

	"github.com/boergens/check-svg-collisions/markers"
	"github.com/boergens/check-svg-collisions/model"
	"github.com/boergens/check-svg-collisions/pathdata"
	"github.com/boergens/check-svg-collisions/textmetrics"
)

// ErrNoSVGRoot is returned when the document contains no <svg> element.
// The HTML parser accepts any byte stream, so this is the only way a
// non-SVG input announces itself.
var ErrNoSVGRoot = errors.New("no <svg> element found")

// TextMeasurer supplies glyph extents for sizing text boxes. A nil
// measurer falls back to a rough per-rune estimate.
type TextMeasurer interface {
	Measure(text, fontFamily string, size float64) (textmetrics.Extents, error)
}

// Open reads an SVG (or HTML-with-inline-SVG) file into a scene.
func Open(filename string, m TextMeasurer) (*model.Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	scene, err := Parse(data, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// Parse builds a scene from raw document bytes. Every <svg> element in
// the input contributes to the same scene; documents with several inline
// figures are checked as one drawing.
func Parse(data []byte, m TextMeasurer) (*model.Scene, error) {
	cr, err := charset.NewReader(bytes.NewReader(data), "")
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}
	doc, err := html.Parse(cr)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	roots := findSVGRoots(doc)
	if len(roots) == 0 {
		return nil, ErrNoSVGRoot
	}

	b := &builder{
		measurer: m,
		lines:    newLineIndex(data),
		tagSeen:  make(map[string]int),
		inDefs:   make(map[*html.Node]bool),
		scene: &model.Scene{
			Markers: make(map[string]model.MarkerTemplate),
		},
	}
	for _, root := range roots {
		b.collectDefs(root)
	}
	for _, root := range roots {
		b.walk(root)
	}
	b.scene.Rendered = markers.ResolveAll(b.scene.Segments, b.scene.Markers)
	return b.scene, nil
}

// builder accumulates scene entities while walking the parsed tree in
// document order.
type builder struct {
	measurer  TextMeasurer
	lines     *lineIndex
	tagSeen   map[string]int
	elemCount int
	inDefs    map[*html.Node]bool
	scene     *model.Scene
}

// collectDefs marks every descendant of a <defs> element as reusable
// definition content and registers marker templates. Definition content
// never collides; it only renders where referenced.
func (b *builder) collectDefs(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "defs" {
		b.markDefs(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.collectDefs(c)
	}
}

func (b *builder) markDefs(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		b.inDefs[c] = true
		if c.Data == "marker" {
			if id := attr(c, "id"); id != "" {
				b.scene.Markers[id] = model.MarkerTemplate{
					ID:     id,
					Width:  floatAttr(c, "markerWidth", 10),
					Height: floatAttr(c, "markerHeight", 7),
					RefX:   floatAttr(c, "refX", 0),
					RefY:   floatAttr(c, "refY", 0),
				}
			}
		}
		b.markDefs(c)
	}
}

// walk visits every element in document order, including the <svg> root
// and definition content. Names are assigned to all elements so that
// synthetic elem_N numbering is stable regardless of which elements end
// up in the scene.
func (b *builder) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		b.element(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c)
	}
}

func (b *builder) element(n *html.Node) {
	tag := n.Data
	inDefs := b.inDefs[n]
	name := b.name(n, tag, inDefs)
	if inDefs {
		return
	}

	switch tag {
	case "text":
		b.text(n, name)
	case "rect":
		x := floatAttr(n, "x", 0)
		y := floatAttr(n, "y", 0)
		w := floatAttr(n, "width", 0)
		h := floatAttr(n, "height", 0)
		b.scene.Shapes = append(b.scene.Shapes,
			model.NewBox(x, y, x+w, y+h, name, model.CategoryRect))
	case "line":
		seg := model.NewSegment(
			floatAttr(n, "x1", 0), floatAttr(n, "y1", 0),
			floatAttr(n, "x2", 0), floatAttr(n, "y2", 0), name)
		seg.MarkerEnd = markerRef(attr(n, "marker-end"))
		seg.StrokeWidth = floatAttr(n, "stroke-width", 1)
		b.scene.Segments = append(b.scene.Segments, seg)
	case "polygon", "polyline":
		b.polygon(n, name)
	case "path":
		b.path(n, name)
	}
}

// name assigns the element its scene name: the id attribute when
// present, otherwise a synthetic elem_N. Collidable elements without an
// id produce a notice carrying the source line.
func (b *builder) name(n *html.Node, tag string, inDefs bool) string {
	b.elemCount++
	b.tagSeen[tag]++
	line := b.lines.lookup(tag, b.tagSeen[tag])

	if id := attr(n, "id"); id != "" {
		return id
	}
	temp := fmt.Sprintf("elem_%d", b.elemCount)
	if !inDefs && collidable(tag) {
		b.scene.Notices = append(b.scene.Notices,
			fmt.Sprintf("  <%s> at line %s has no id, temporarily named '%s'", tag, line, temp))
	}
	return temp
}

func (b *builder) text(n *html.Node, name string) {
	x := floatAttr(n, "x", 0)
	y := floatAttr(n, "y", 0)
	content := norm.NFC.String(textContent(n))
	fontFamily := attrDefault(n, "font-family", "sans-serif")
	fontSize := numericPrefix(attrDefault(n, "font-size", "12"), 12)
	anchor := attrDefault(n, "text-anchor", "start")

	ext := b.measure(content, fontFamily, fontSize)

	xMin := x
	switch anchor {
	case "middle":
		xMin = x - ext.Width/2
	case "end":
		xMin = x - ext.Width
	}

	label := firstRunes(content, 20)
	if label == "" {
		label = name
	}
	box := model.NewBox(xMin, y-ext.Ascent, xMin+ext.Width, y+ext.Descent,
		label, model.CategoryText)
	box.FontFamily = fontFamily
	box.FontSize = fontSize
	b.scene.Texts = append(b.scene.Texts, box)
}

// measure returns glyph extents, estimating from the rune count when no
// measurer is available or the face fails.
func (b *builder) measure(text, fontFamily string, size float64) textmetrics.Extents {
	if b.measurer != nil {
		if ext, err := b.measurer.Measure(text, fontFamily, size); err == nil {
			return ext
		}
	}
	return textmetrics.Extents{
		Width:   0.6 * size * float64(utf8.RuneCountInString(text)),
		Ascent:  0.8 * size,
		Descent: 0.2 * size,
	}
}

func (b *builder) polygon(n *html.Node, name string) {
	pts := parsePoints(attr(n, "points"))
	if len(pts) == 0 {
		return
	}
	xMin, yMin := pts[0].X, pts[0].Y
	xMax, yMax := xMin, yMin
	for _, p := range pts[1:] {
		if p.X < xMin {
			xMin = p.X
		}
		if p.X > xMax {
			xMax = p.X
		}
		if p.Y < yMin {
			yMin = p.Y
		}
		if p.Y > yMax {
			yMax = p.Y
		}
	}
	b.scene.Shapes = append(b.scene.Shapes,
		model.NewBox(xMin, yMin, xMax, yMax, name, model.CategoryPolygon))
}

// path flattens the path into chords. Multi-chord paths name each chord
// name_segN; the marker reference rides on the final chord only, where
// the marker would actually render.
func (b *builder) path(n *html.Node, name string) {
	d := attr(n, "d")
	if d == "" {
		return
	}
	markerEnd := markerRef(attr(n, "marker-end"))
	strokeWidth := floatAttr(n, "stroke-width", 1)

	chords := pathdata.Flatten(d)
	for i, ch := range chords {
		segName := name
		if len(chords) > 1 {
			segName = fmt.Sprintf("%s_seg%d", name, i)
		}
		seg := model.NewSegment(ch.X1, ch.Y1, ch.X2, ch.Y2, segName)
		seg.StrokeWidth = strokeWidth
		if i == len(chords)-1 {
			seg.MarkerEnd = markerEnd
		}
		b.scene.Segments = append(b.scene.Segments, seg)
	}
}

// findSVGRoots collects topmost <svg> elements; a nested <svg> is part
// of its enclosing figure's coordinate space and is not walked twice.
func findSVGRoots(n *html.Node) []*html.Node {
	if n.Type == html.ElementNode && n.Data == "svg" {
		return []*html.Node{n}
	}
	var roots []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		roots = append(roots, findSVGRoots(c)...)
	}
	return roots
}

func collidable(tag string) bool {
	switch tag {
	case "rect", "line", "path", "polygon", "polyline", "text":
		return true
	}
	return false
}

// attr returns the value of the named attribute, matching the key
// case-insensitively. The HTML parser restores camelCase on known SVG
// attributes only when the element sits in foreign content, so both
// spellings must be accepted.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func attrDefault(n *html.Node, key, def string) string {
	if v := attr(n, key); v != "" {
		return v
	}
	return def
}

func floatAttr(n *html.Node, key string, def float64) float64 {
	v := attr(n, key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// numericPrefix parses the leading number of a value like "12px".
func numericPrefix(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return def
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return def
	}
	return f
}

// markerRef extracts the marker id from a url(#id) reference.
func markerRef(v string) string {
	if strings.HasPrefix(v, "url(#") && strings.HasSuffix(v, ")") {
		return v[5 : len(v)-1]
	}
	return ""
}

func parsePoints(s string) []model.Point {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	var pts []model.Point
	for i := 0; i+1 < len(fields); i += 2 {
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, model.Point{X: x, Y: y})
	}
	return pts
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return strings.TrimSpace(sb.String())
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
