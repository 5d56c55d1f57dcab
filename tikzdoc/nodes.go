package tikzdoc

import (
	"strings"

	"github.com/boergens/check-svg-collisions/layout"
	"github.com/boergens/check-svg-collisions/model"
)

// nodeSpec is one \node statement as written: options verbatim, the
// declared name (empty when anonymous), the content, and the absolute
// coordinate when the node is placed with "at".
type nodeSpec struct {
	name    string
	options string
	content string
	at      *model.Point
}

// parseNodes scans a figure body for \node statements. The grammar
// accepted is
//
//	\node [options] (name) at (x,y) (name) {content}
//
// with every piece but the content optional, the name allowed either
// before or after the coordinate, and options allowed on either side of
// the name.
func parseNodes(figure string) []nodeSpec {
	var specs []nodeSpec
	for from := 0; ; {
		idx := strings.Index(figure[from:], `\node`)
		if idx < 0 {
			return specs
		}
		i := from + idx + len(`\node`)
		from = i

		var spec nodeSpec
		i = skipSpace(figure, i)
		if opts, next, ok := bracketGroup(figure, i, '[', ']'); ok {
			spec.options = opts
			i = skipSpace(figure, next)
		}
		if name, next, ok := bracketGroup(figure, i, '(', ')'); ok {
			spec.name = strings.TrimSpace(name)
			i = skipSpace(figure, next)
		}
		if opts, next, ok := bracketGroup(figure, i, '[', ']'); ok {
			// Options may also follow the name.
			if spec.options != "" {
				spec.options += ", "
			}
			spec.options += opts
			i = skipSpace(figure, next)
		}
		if strings.HasPrefix(figure[i:], "at") {
			j := skipSpace(figure, i+2)
			coord, next, ok := bracketGroup(figure, j, '(', ')')
			if !ok {
				continue
			}
			pt, ok := parseCoordinate(coord)
			if !ok {
				continue
			}
			spec.at = &pt
			i = skipSpace(figure, next)
			if spec.name == "" {
				if name, next, ok := bracketGroup(figure, i, '(', ')'); ok {
					spec.name = strings.TrimSpace(name)
					i = skipSpace(figure, next)
				}
			}
		}
		content, next, ok := braceGroup(figure, i)
		if !ok {
			continue
		}
		spec.content = content
		from = next
		specs = append(specs, spec)
	}
}

// relation reads a relative placement out of a node's options. Compound
// forms ("below left = 1.5 and 1 of ref") are tried first, then the
// simple form ("below = of ref"). ok is false when the options carry no
// placement directive at all, in which case the node sits at the origin.
func relation(options string) (rel *layout.Relation, ok bool) {
	if r := compoundRelation(options); r != nil {
		return r, true
	}
	if r := simpleRelation(options); r != nil {
		return r, true
	}
	for _, dir := range []string{"below", "above", "left", "right"} {
		if _, found := optionValue(options, dir); found {
			// A directive we could not resolve; the node stays unplaced.
			return &layout.Relation{Dir: direction(dir), Dist: -1}, true
		}
	}
	return nil, false
}

// simpleRelation parses "below = of ref" and "below = <dist> of ref"
// forms. The distance, when present, may carry a unit.
func simpleRelation(options string) *layout.Relation {
	for _, dir := range []string{"below", "above", "left", "right"} {
		v, found := optionValue(options, dir)
		if !found {
			continue
		}
		dist := -1.0
		if _, n, ok := leadingFloat(v); ok {
			dist = parseDimension(v)
			v = strings.TrimSpace(trimUnit(v[n:]))
		}
		ref := v
		if rest, cut := strings.CutPrefix(v, "of"); cut {
			ref = strings.TrimSpace(rest)
		}
		name, _ := identifier(ref, 0)
		if name == "" {
			continue
		}
		return &layout.Relation{Dir: direction(dir), Dist: dist, Ref: name}
	}
	return nil
}

// trimUnit strips a leading length unit, if any.
func trimUnit(s string) string {
	for _, unit := range []string{"cm", "mm", "pt", "em"} {
		if strings.HasPrefix(s, unit) {
			return s[len(unit):]
		}
	}
	return s
}

// compoundRelation parses "below left = <v> and <h> of <ref>" forms.
func compoundRelation(options string) *layout.Relation {
	for _, vert := range []string{"below", "above"} {
		for _, horiz := range []string{"left", "right"} {
			v, found := optionValue(options, vert+" "+horiz)
			if !found {
				continue
			}
			_, n, ok := leadingFloat(v)
			if !ok {
				continue
			}
			vDist := parseDimension(v)
			rest := strings.TrimSpace(trimUnit(v[n:]))
			rest, cut := strings.CutPrefix(rest, "and")
			if !cut {
				continue
			}
			rest = strings.TrimSpace(rest)
			_, n, ok = leadingFloat(rest)
			if !ok {
				continue
			}
			hDist := parseDimension(rest)
			rest = strings.TrimSpace(trimUnit(rest[n:]))
			rest, cut = strings.CutPrefix(rest, "of")
			if !cut {
				continue
			}
			ref, _ := identifier(strings.TrimSpace(rest), 0)
			if ref == "" {
				continue
			}
			return &layout.Relation{
				Dir:       direction(vert),
				Dist:      vDist,
				Cross:     direction(horiz),
				CrossDist: hDist,
				Ref:       ref,
			}
		}
	}
	return nil
}

func direction(word string) layout.Direction {
	switch word {
	case "above":
		return layout.DirAbove
	case "below":
		return layout.DirBelow
	case "left":
		return layout.DirLeft
	case "right":
		return layout.DirRight
	}
	return layout.DirNone
}

// anchoredBox places an absolutely positioned node's box around its
// coordinate, honoring bare left/right anchor options and above/below
// shifts the way diagram sources actually combine them.
func anchoredBox(at model.Point, w, h float64, options, name string, isBox bool) model.Box {
	var xMin, xMax float64
	switch {
	case hasBareOption(options, "right"):
		xMin, xMax = at.X, at.X+w
	case hasBareOption(options, "left"):
		xMin, xMax = at.X-w, at.X
	default:
		xMin, xMax = at.X-w/2, at.X+w/2
	}

	var yMin, yMax float64
	switch {
	case strings.Contains(options, "above") && !strings.Contains(options, "below"):
		yMin, yMax = at.Y, at.Y+h
	case strings.Contains(options, "below") && !strings.Contains(options, "above"):
		yMin, yMax = at.Y-h, at.Y
	default:
		yMin, yMax = at.Y-h/2, at.Y+h/2
	}

	cat := model.CategoryText
	if isBox {
		cat = model.CategoryRect
	}
	return model.NewBox(xMin, yMin, xMax, yMax, name, cat)
}
