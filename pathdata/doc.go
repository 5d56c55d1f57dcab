// Package pathdata flattens the SVG path mini-language into straight
// chords for collision checking.
//
// The flattening is deliberately lossy: every curve and arc command is
// approximated by a single chord from the current point to the command's
// endpoint, so curvature itself is never checked for collisions, only the
// chord connecting a curve's ends. Unrecognized tokens are skipped without
// aborting the rest of the stream; bare number pairs continue the path as
// implicit line-to commands.
package pathdata
