package pathdata

// Chord is one straight piece of a flattened path.
type Chord struct {
	X1, Y1, X2, Y2 float64
}

// flattener walks the token stream keeping the current point and the
// subpath start point, the two pieces of state the path grammar requires.
type flattener struct {
	tokens []token
	i      int

	curX, curY     float64
	startX, startY float64

	chords []Chord
}

// Flatten converts a path data string into an ordered list of straight
// chords. Move commands relocate the pen without drawing; close draws back
// to the subpath start only if the pen has moved; every curve and arc
// command contributes the single chord to its endpoint.
func Flatten(d string) []Chord {
	f := &flattener{tokens: tokenize(d)}
	f.run()
	return f.chords
}

// numbers returns the next n numeric arguments, or ok=false if the stream
// ends or a command letter appears before n numbers were read. On failure
// nothing is consumed; the caller skips its command and parsing continues.
func (f *flattener) numbers(n int) ([]float64, bool) {
	if f.i+n > len(f.tokens) {
		return nil, false
	}
	args := make([]float64, n)
	for k := 0; k < n; k++ {
		t := f.tokens[f.i+k]
		if t.cmd != 0 {
			return nil, false
		}
		args[k] = t.value
	}
	f.i += n
	return args, true
}

func (f *flattener) emit(x1, y1, x2, y2 float64) {
	f.chords = append(f.chords, Chord{X1: x1, Y1: y1, X2: x2, Y2: y2})
}

// lineTo draws a chord from the current point to (x, y) and advances.
func (f *flattener) lineTo(x, y float64) {
	f.emit(f.curX, f.curY, x, y)
	f.curX, f.curY = x, y
}

func (f *flattener) run() {
	for f.i < len(f.tokens) {
		t := f.tokens[f.i]
		f.i++

		if t.cmd == 0 {
			// Bare number pair: implicit line-to continuing the path.
			if y, ok := f.numbers(1); ok {
				f.lineTo(t.value, y[0])
			}
			continue
		}

		relative := t.cmd >= 'a'
		switch t.cmd {
		case 'M', 'm':
			if args, ok := f.numbers(2); ok {
				if relative {
					f.curX += args[0]
					f.curY += args[1]
				} else {
					f.curX, f.curY = args[0], args[1]
				}
				f.startX, f.startY = f.curX, f.curY
			}

		case 'L', 'l':
			if args, ok := f.numbers(2); ok {
				x, y := args[0], args[1]
				if relative {
					x += f.curX
					y += f.curY
				}
				f.lineTo(x, y)
			}

		case 'H', 'h':
			if args, ok := f.numbers(1); ok {
				x := args[0]
				if relative {
					x += f.curX
				}
				f.lineTo(x, f.curY)
			}

		case 'V', 'v':
			if args, ok := f.numbers(1); ok {
				y := args[0]
				if relative {
					y += f.curY
				}
				f.lineTo(f.curX, y)
			}

		case 'Z', 'z':
			if f.curX != f.startX || f.curY != f.startY {
				f.lineTo(f.startX, f.startY)
			}
			f.curX, f.curY = f.startX, f.startY

		case 'C', 'c':
			f.curveTo(6, relative)
		case 'S', 's':
			f.curveTo(4, relative)
		case 'Q', 'q':
			f.curveTo(4, relative)
		case 'T', 't':
			f.curveTo(2, relative)
		case 'A', 'a':
			f.curveTo(7, relative)
		}
	}
}

// curveTo handles every curve and arc command: of the nargs arguments only
// the trailing endpoint pair is used, the rest (control points, radii,
// rotation, flags) is read past and discarded.
func (f *flattener) curveTo(nargs int, relative bool) {
	args, ok := f.numbers(nargs)
	if !ok {
		return
	}
	x, y := args[nargs-2], args[nargs-1]
	if relative {
		x += f.curX
		y += f.curY
	}
	f.lineTo(x, y)
}
