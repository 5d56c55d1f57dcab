// Package tikzdoc reads TikZ figures out of LaTeX documents into scenes
// for collision checking.
//
// The reader is a hand-written scanner over the LaTeX source. It
// understands the subset of TikZ that diagram figures actually use:
// \tikzset style tables, \node with absolute or relative placement,
// and \draw connectors between named nodes, including |- orthogonal
// routing. Everything else in the document is ignored.
//
// All coordinates are in centimeters, TikZ's default unit. Node text is
// sized through an external width measurer when one is available and
// falls back to a fixed default width otherwise.
package tikzdoc
