package tikzdoc

import (
	"strings"

	"github.com/boergens/check-svg-collisions/textmetrics"
)

// extractStyles builds the style table visible to a figure: the document
// level \tikzset block first, then style definitions local to the figure,
// which shadow document ones of the same name.
func extractStyles(document, figure string) map[string]string {
	styles := make(map[string]string)
	if idx := strings.Index(document, `\tikzset`); idx >= 0 {
		rest := document[idx+len(`\tikzset`):]
		start := skipSpace(rest, 0)
		if body, _, ok := braceGroup(rest, start); ok {
			collectStyleDefs(body, styles)
		}
	}
	collectStyleDefs(figure, styles)
	return styles
}

// collectStyleDefs scans for "name/.style = {...}" definitions.
func collectStyleDefs(s string, styles map[string]string) {
	const marker = "/.style"
	for from := 0; ; {
		idx := strings.Index(s[from:], marker)
		if idx < 0 {
			return
		}
		idx += from
		from = idx + len(marker)

		// The style name is the identifier run ending at the marker.
		nameStart := idx
		for nameStart > 0 && isWordByte(s[nameStart-1]) {
			nameStart--
		}
		name := s[nameStart:idx]
		if name == "" {
			continue
		}

		i := skipSpace(s, idx+len(marker))
		if i >= len(s) || s[i] != '=' {
			continue
		}
		i = skipSpace(s, i+1)
		body, next, ok := braceGroup(s, i)
		if !ok {
			continue
		}
		styles[name] = body
		from = next
	}
}

// minDimensions resolves minimum width/height and the box flag from a
// node's option list and the applicable styles. Styles apply first;
// explicit options override. A "text width" sets the paragraph box width
// and competes with "minimum width" by taking the larger.
func minDimensions(options string, styles map[string]string) (minWidth, minHeight float64, isBox bool) {
	haveWidth, haveHeight := false, false

	apply := func(src string, markBox bool) {
		if v, ok := optionValue(src, "minimum width"); ok {
			minWidth = parseDimension(v)
			haveWidth = true
			if markBox {
				isBox = true
			}
		}
		if v, ok := optionValue(src, "text width"); ok {
			tw := parseDimension(v)
			if !haveWidth || tw > minWidth {
				minWidth = tw
			}
			haveWidth = true
		}
		if v, ok := optionValue(src, "minimum height"); ok {
			minHeight = parseDimension(v)
			haveHeight = true
		}
	}

	for name, def := range styles {
		if !strings.Contains(options, name) {
			continue
		}
		if strings.Contains(def, "minimum width") || strings.Contains(def, "text width") {
			isBox = true
		}
		apply(def, false)
	}
	apply(options, true)

	if !haveWidth {
		minWidth = 0
	}
	if !haveHeight {
		minHeight = 0
	}
	return minWidth, minHeight, isBox
}

// innerSep is the total padding TikZ adds around node content, two
// default inner seps of about 0.3333em.
const innerSep = 0.28

// nodeDimensions computes a node's outer width and height in
// centimeters. The measured content width (or the default when
// unmeasured) competes with the minimum width; height floors at the
// default text height.
func nodeDimensions(options, content string, styles map[string]string, widths map[string]float64) (w, h float64, isBox bool) {
	minWidth, minHeight, isBox := minDimensions(options, styles)

	measured := textmetrics.DefaultTextWidth
	if key := strings.TrimSpace(content); key != "" {
		if mw, ok := widths[key]; ok {
			measured = mw
		}
	}

	w = measured
	if minWidth > w {
		w = minWidth
	}
	h = 0.5
	if minHeight > h {
		h = minHeight
	}
	return w + innerSep, h + innerSep, isBox
}
