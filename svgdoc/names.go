package svgdoc

import "strconv"

// tagCount keys a line index entry: the Nth occurrence of a tag in the
// raw document.
type tagCount struct {
	tag string
	n   int
}

// lineIndex maps tag occurrences back to source line numbers. The HTML
// parser does not preserve positions, so the raw bytes are scanned once
// up front; the builder then counts tag occurrences in document order
// and looks each one up here.
type lineIndex struct {
	at map[tagCount]int
}

// newLineIndex scans data for opening tags and records the line number
// of each occurrence. Closing tags and comments do not match because the
// byte after '<' is not a tag character.
func newLineIndex(data []byte) *lineIndex {
	idx := &lineIndex{at: make(map[tagCount]int)}
	counts := make(map[string]int)

	line := 1
	for i := 0; i < len(data); i++ {
		switch {
		case data[i] == '\n':
			line++
		case data[i] == '<':
			j := i + 1
			for j < len(data) && isTagByte(data[j]) {
				j++
			}
			if j == i+1 {
				continue
			}
			if j < len(data) && !isTagEnd(data[j]) {
				continue
			}
			tag := string(data[i+1 : j])
			counts[tag]++
			idx.at[tagCount{tag, counts[tag]}] = line
		}
	}
	return idx
}

// lookup returns the source line of the Nth occurrence of tag, or "?"
// when the occurrence was not seen in the raw scan.
func (ix *lineIndex) lookup(tag string, n int) string {
	if ln, ok := ix.at[tagCount{tag, n}]; ok {
		return strconv.Itoa(ln)
	}
	return "?"
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

func isTagEnd(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}
