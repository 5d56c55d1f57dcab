// Package textmetrics measures rendered text extents.
//
// Two measurers are provided. Face measures strings against an embedded
// font's glyph metrics and serves the SVG dialect, where coordinates are
// pixels and a close approximation is good enough. LatexMeasurer shells
// out to a TeX engine and serves the TikZ dialect, where node text is
// typeset by the document's own preamble and only the engine knows the
// true widths. Both degrade rather than fail: callers fall back to fixed
// default extents and surface a warning when measurement is unavailable.
package textmetrics
