//go:build ocr

// Package rastercheck gives legibility feedback on an already-rendered
// raster of a figure: it runs OCR over the image and reports which of
// the expected labels could not be read back.
//
// This package wraps the Tesseract OCR engine via gosseract and requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// The collision checker itself never renders and never requires this
// package; it exists for callers that rasterize figures as part of
// their pipeline.
package rastercheck

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// FindLabels runs OCR over the raster at imagePath and partitions the
// expected labels into those the recognizer read back and those it did
// not. Comparison ignores case, whitespace and punctuation; a missing
// label is a legibility signal, not proof of absence.
func FindLabels(imagePath string, labels []string) (Result, error) {
	data, err := preprocess(imagePath)
	if err != nil {
		return Result{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return Result{}, fmt.Errorf("setting image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognizing text: %w", err)
	}

	return matchLabels(text, labels), nil
}
