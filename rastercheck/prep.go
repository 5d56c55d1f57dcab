package rastercheck

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
)

// Result partitions the expected labels by whether the OCR pass could
// read them back from the raster.
type Result struct {
	Found   []string
	Missing []string
}

// preprocess loads the raster and prepares it for recognition.
// Grayscale conversion and a 2x upscale make small label glyphs
// resolvable for the engine.
func preprocess(path string) ([]byte, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	gray := imaging.Grayscale(img)
	scaled := imaging.Resize(gray, gray.Bounds().Dx()*2, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// matchLabels compares normalized label text against the normalized
// recognizer output.
func matchLabels(text string, labels []string) Result {
	haystack := normalize(text)
	var res Result
	for _, label := range labels {
		needle := normalize(label)
		if needle != "" && strings.Contains(haystack, needle) {
			res.Found = append(res.Found, label)
		} else {
			res.Missing = append(res.Missing, label)
		}
	}
	return res
}

// normalize lowercases and keeps only letters and digits, so that OCR
// artifacts in spacing and punctuation do not mask a match.
func normalize(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
