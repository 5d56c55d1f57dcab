package tikzdoc

import (
	"strconv"
	"strings"

	"github.com/boergens/check-svg-collisions/model"
	"github.com/boergens/check-svg-collisions/textmetrics"
)

// skipSpace advances i past whitespace.
func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

// bracketGroup reads a flat group delimited by open/close starting at
// s[i] == open. Returns the content without delimiters and the index
// just past the closing byte.
func bracketGroup(s string, i int, open, close byte) (string, int, bool) {
	if i >= len(s) || s[i] != open {
		return "", i, false
	}
	end := strings.IndexByte(s[i+1:], close)
	if end < 0 {
		return "", i, false
	}
	return s[i+1 : i+1+end], i + 2 + end, true
}

// braceGroup reads a balanced {...} group starting at s[i] == '{'.
func braceGroup(s string, i int) (string, int, bool) {
	if i >= len(s) || s[i] != '{' {
		return "", i, false
	}
	depth := 1
	j := i + 1
	for j < len(s) && depth > 0 {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
		}
		j++
	}
	if depth != 0 {
		return "", i, false
	}
	return s[i+1 : j-1], j, true
}

// parseCoordinate parses "x, y" into a point.
func parseCoordinate(s string) (model.Point, bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return model.Point{}, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return model.Point{}, false
	}
	return model.Point{X: x, Y: y}, true
}

// leadingFloat parses the leading decimal number of s and returns the
// number of bytes it spans.
func leadingFloat(s string) (float64, int, bool) {
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, 0, false
	}
	return f, end, true
}

// parseDimension converts a TikZ length like "2cm", "1.5em" or "12pt"
// into centimeters. A bare number is centimeters; an unparseable value
// is one centimeter.
func parseDimension(s string) float64 {
	s = strings.TrimSpace(s)
	value, n, ok := leadingFloat(s)
	if !ok {
		return 1.0
	}
	switch {
	case strings.HasPrefix(s[n:], "em"):
		return value * 0.4
	case strings.HasPrefix(s[n:], "pt"):
		return value * textmetrics.PtToCm
	case strings.HasPrefix(s[n:], "mm"):
		return value * 0.1
	}
	return value
}

// identifier reads a run of word characters starting at i.
func identifier(s string, i int) (string, int) {
	j := i
	for j < len(s) && isWordByte(s[j]) {
		j++
	}
	return s[i:j], j
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// optionValue extracts "value" from the first "key = value" occurrence
// in an option list, with the value delimited by a comma or a closing
// bracket or brace.
func optionValue(opts, key string) (string, bool) {
	idx := strings.Index(opts, key)
	if idx < 0 {
		return "", false
	}
	rest := opts[idx+len(key):]
	rest = rest[skipSpace(rest, 0):]
	if !strings.HasPrefix(rest, "=") {
		return "", false
	}
	rest = rest[1:]
	if end := strings.IndexAny(rest, ",]}"); end >= 0 {
		rest = rest[:end]
	}
	v := strings.TrimSpace(rest)
	if v == "" {
		return "", false
	}
	return v, true
}

// hasBareOption reports whether an option list carries key as a
// standalone comma-separated entry, as opposed to inside a "key=value"
// pair or another word.
func hasBareOption(opts, key string) bool {
	for _, part := range strings.Split(opts, ",") {
		if strings.TrimSpace(part) == key {
			return true
		}
	}
	return false
}
