package textmetrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Extents describes a measured string at a font size. Ascent and Descent
// are the face's, not the string's: a text box extends the full line
// height regardless of which glyphs it holds.
type Extents struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Face measures strings against an embedded font's glyph metrics. Figures
// reference fonts by family name, but for collision purposes the metrics
// of one well-proportioned sans face approximate them all; the family
// name is accepted and ignored.
//
// A Face is safe for concurrent use.
type Face struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFace loads the embedded font.
func NewFace() (*Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}
	return &Face{font: f, faces: make(map[float64]font.Face)}, nil
}

// faceAt returns a cached face for the size. Callers must hold mu for the
// duration of their use of the face; font.Face drawing state is not
// concurrency safe.
func (f *Face) faceAt(size float64) (font.Face, error) {
	if face, ok := f.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 1 point == 1 pixel, SVG user units
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("sizing face to %g: %w", size, err)
	}
	f.faces[size] = face
	return face, nil
}

// Measure returns the extents of text at the given size. fontFamily is
// accepted for interface completeness and ignored.
func (f *Face) Measure(text string, fontFamily string, size float64) (Extents, error) {
	_ = fontFamily
	f.mu.Lock()
	defer f.mu.Unlock()

	face, err := f.faceAt(size)
	if err != nil {
		return Extents{}, err
	}
	advance := font.MeasureString(face, text)
	metrics := face.Metrics()
	return Extents{
		Width:   fixedToFloat(advance),
		Ascent:  fixedToFloat(metrics.Ascent),
		Descent: fixedToFloat(metrics.Descent),
	}, nil
}

// LegibleGap returns the minimum gap that still reads as separation
// between a label and a neighboring border: the width of an en dash at
// the given size. fontFamily is ignored, matching Measure.
func (f *Face) LegibleGap(fontFamily string, size float64) float64 {
	ext, err := f.Measure("–", fontFamily, size)
	if err != nil {
		return 0
	}
	return ext.Width
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
