//go:build !ocr

package rastercheck

import (
	"errors"
	"testing"
)

func TestFindLabelsDisabled(t *testing.T) {
	_, err := FindLabels("fig.png", []string{"label"})
	if err == nil {
		t.Fatal("expected error when OCR is disabled")
	}
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("got %v; want ErrNotEnabled", err)
	}
}
