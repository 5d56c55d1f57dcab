package rules

import "github.com/boergens/check-svg-collisions/model"

// GapFunc returns the minimum legible gap between a text box and an
// adjacent shape border for the given font, typically the width of a
// narrow representative glyph (an en dash) at that size. A nil GapFunc or
// a non-positive return disables the clearance rule for that text.
type GapFunc func(fontFamily string, fontSize float64) float64

// Config holds the tolerances and options for a rule evaluation. The zero
// value is not useful; start from DefaultConfig.
type Config struct {
	// OverlapEps is the slack under which touching boxes count as clear.
	OverlapEps float64
	// InteriorEps is the margin for "strictly inside" endpoint tests.
	InteriorEps float64
	// EdgeEps is the tolerance for endpoint-connects-to-edge recognition.
	EdgeEps float64
	// CornerEps is the distance within which a passing segment counts as
	// touching a box corner.
	CornerEps float64
	// ParallelEps bounds the direction cross product for parallelism.
	ParallelEps float64

	// MarkerLengthRatio is the minimum segment length in multiples of the
	// marker template's unscaled width (rule: short marker segment).
	MarkerLengthRatio float64
	// ClearanceFactor multiplies stroke widths into the minimum clearance
	// between parallel segments and between segments and box edges.
	ClearanceFactor float64
	// MarkerTipEps is the distance within which a segment endpoint counts
	// as meeting a rendered marker's tip.
	MarkerTipEps float64

	// Lenient skips text-overlap findings when both participants are
	// small labels, and line-through-text findings for segments attached
	// to small labels.
	Lenient bool
	// SmallLabelWidth / SmallLabelHeight bound what counts as a small
	// label in lenient mode.
	SmallLabelWidth  float64
	SmallLabelHeight float64

	// LegibleGap supplies the minimum text-to-border clearance; nil
	// disables that rule.
	LegibleGap GapFunc
}

// DefaultConfig returns the canonical tolerance set.
func DefaultConfig() Config {
	return Config{
		OverlapEps:        model.DefaultOverlapEps,
		InteriorEps:       model.DefaultInteriorEps,
		EdgeEps:           model.DefaultEdgeEps,
		CornerEps:         model.DefaultCornerEps,
		ParallelEps:       model.DefaultParallelEps,
		MarkerLengthRatio: 2.0,
		ClearanceFactor:   3.0,
		MarkerTipEps:      2.0,
		SmallLabelWidth:   60,
		SmallLabelHeight:  20,
	}
}

// TikZConfig returns tolerances scaled to centimeter coordinates. SVG
// scenes measure in pixels where a unit is small; TikZ scenes measure in
// centimeters where the default tolerances would swallow whole nodes.
func TikZConfig() Config {
	c := DefaultConfig()
	c.OverlapEps = 0.01
	c.InteriorEps = 0.01
	c.EdgeEps = 0.02
	c.CornerEps = 0.05
	c.MarkerTipEps = 0.05
	c.SmallLabelWidth = 1.5
	c.SmallLabelHeight = 0.6
	return c
}

// isSmallLabel reports whether a text box is narrow enough to be exempted
// in lenient mode.
func (c Config) isSmallLabel(b model.Box) bool {
	return b.Width() < c.SmallLabelWidth && b.Height() < c.SmallLabelHeight
}
