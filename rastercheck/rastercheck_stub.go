//go:build !ocr

// Package rastercheck gives legibility feedback on an already-rendered
// raster of a figure: it runs OCR over the image and reports which of
// the expected labels could not be read back.
//
// This is the stub implementation used when the "ocr" build tag is not
// set; FindLabels returns ErrNotEnabled. To enable recognition, rebuild
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package rastercheck

import "errors"

// ErrNotEnabled is returned when recognition is requested but OCR
// support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// FindLabels returns ErrNotEnabled.
func FindLabels(imagePath string, labels []string) (Result, error) {
	return Result{}, ErrNotEnabled
}
