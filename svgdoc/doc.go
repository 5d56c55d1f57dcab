// Package svgdoc reads SVG documents into scenes for collision checking.
//
// The parser is deliberately lenient: hand-authored and tool-generated
// SVG alike is accepted, as is SVG embedded inline in an HTML page. Only
// the geometry the collision rules care about is extracted; presentation
// attributes beyond stroke-width and font sizing are ignored.
package svgdoc
