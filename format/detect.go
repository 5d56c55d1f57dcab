// Package format provides input dialect detection for the collision
// checker.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Dialect represents a supported figure source dialect.
type Dialect int

const (
	// Unknown indicates an unrecognized input.
	Unknown Dialect = iota
	// SVG indicates a standalone SVG document.
	SVG
	// TikZ indicates a LaTeX document containing tikzpicture figures.
	TikZ
	// HTML indicates an HTML page with inline SVG islands.
	HTML
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case SVG:
		return "SVG"
	case TikZ:
		return "TikZ"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Detect determines the dialect from the filename extension.
func Detect(filename string) Dialect {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg":
		return SVG
	case ".tex", ".latex":
		return TikZ
	case ".html", ".htm", ".xhtml":
		return HTML
	default:
		return Unknown
	}
}

// DetectContent sniffs the dialect from file content, for inputs whose
// extension says nothing.
func DetectContent(data []byte) Dialect {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	switch {
	case bytes.Contains(head, []byte(`\begin{tikzpicture}`)) ||
		bytes.Contains(head, []byte(`\documentclass`)):
		return TikZ
	case bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<!DOCTYPE html")):
		// An <svg> inside an HTML page is still best read as HTML.
		return HTML
	case bytes.Contains(head, []byte("<svg")):
		return SVG
	}
	return Unknown
}
