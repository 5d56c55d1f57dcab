package pathdata

import "strconv"

// token is either a single-letter path command or a numeric argument.
type token struct {
	cmd   byte // 0 for numbers
	value float64
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Z', 'z',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
		return true
	}
	return false
}

func isNumberChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E'
}

// tokenize splits a path data string into command and number tokens.
// Anything that is neither is dropped; a malformed number run is dropped
// too, so a junk token never aborts the remaining stream.
func tokenize(d string) []token {
	var tokens []token
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case isCommand(c):
			tokens = append(tokens, token{cmd: c})
			i++
		case c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+':
			j := i + 1
			for j < len(d) && isNumberChar(d[j]) {
				// A sign not following an exponent starts a new number
				// ("10-20" is two tokens).
				if (d[j] == '-' || d[j] == '+') && d[j-1] != 'e' && d[j-1] != 'E' {
					break
				}
				j++
			}
			if v, err := strconv.ParseFloat(d[i:j], 64); err == nil {
				tokens = append(tokens, token{value: v})
			}
			i = j
		default:
			i++
		}
	}
	return tokens
}
