package textmetrics

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// PtToCm converts TeX points into centimeters.
	PtToCm = 0.0352778

	// DefaultTextWidth is the width in centimeters assumed for a node
	// text that could not be measured.
	DefaultTextWidth = 0.5
)

// LatexMeasurer measures text widths by compiling a throwaway document
// with the figure's own preamble and reading back \settowidth results.
// The zero value runs "pdflatex" from PATH.
type LatexMeasurer struct {
	// Command overrides the TeX engine binary.
	Command string
}

// MeasureWidths returns the rendered width in centimeters for each input
// string. Multi-line strings (separated by \\) measure as their widest
// line. The returned map may be missing entries the engine failed to
// typeset; callers substitute DefaultTextWidth for those. Cancelling the
// context kills the engine; there is no internal timeout.
func (m *LatexMeasurer) MeasureWidths(ctx context.Context, texts []string, preamble string) (map[string]float64, error) {
	if len(texts) == 0 {
		return map[string]float64{}, nil
	}

	command := m.Command
	if command == "" {
		command = "pdflatex"
	}

	dir, err := os.MkdirTemp("", "measure-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	doc := buildMeasureDocument(texts, preamble)
	texPath := filepath.Join(dir, "measure.tex")
	if err := os.WriteFile(texPath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("writing measurement document: %w", err)
	}

	cmd := exec.CommandContext(ctx, command, "-interaction=nonstopmode", "measure.tex")
	cmd.Dir = dir
	// The engine exits nonzero on any warning; only the widths file tells
	// us whether measurement actually succeeded.
	_ = cmd.Run()

	data, err := os.ReadFile(filepath.Join(dir, "widths.txt"))
	if err != nil {
		return nil, fmt.Errorf("measurement produced no widths: %w", err)
	}

	byIndex := parseWidthsFile(string(data))
	widths := make(map[string]float64, len(byIndex))
	for i, w := range byIndex {
		if i >= 0 && i < len(texts) {
			widths[texts[i]] = w
		}
	}
	return widths, nil
}

// buildMeasureDocument emits one \settowidth per text line, written to
// widths.txt as "textIndex,lineIndex,<dimen>".
func buildMeasureDocument(texts []string, preamble string) string {
	var b strings.Builder
	b.WriteString(preamble)
	b.WriteString("\n\\begin{document}\n")
	b.WriteString("\\newwrite\\widthfile\n")
	b.WriteString("\\immediate\\openout\\widthfile=widths.txt\n")

	for i, text := range texts {
		for j, line := range strings.Split(text, `\\`) {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			// TeX control sequences cannot contain digits.
			name := "w" + numToLetters(i) + "x" + numToLetters(j)
			fmt.Fprintf(&b, "\\newlength{\\%s}\n", name)
			fmt.Fprintf(&b, "\\settowidth{\\%s}{%s}\n", name, line)
			fmt.Fprintf(&b, "\\immediate\\write\\widthfile{%d,%d,\\the\\%s}\n", i, j, name)
		}
	}

	b.WriteString("\\immediate\\closeout\\widthfile\n")
	b.WriteString("\\end{document}\n")
	return b.String()
}

// parseWidthsFile reads "textIndex,lineIndex,123.4pt" lines and returns
// the maximum width per text index, converted to centimeters. Lines that
// do not parse are skipped.
func parseWidthsFile(data string) map[int]float64 {
	widths := make(map[int]float64)
	for _, line := range strings.Split(data, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ",", 3)
		if len(parts) < 3 {
			continue
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		dimen := strings.TrimSuffix(parts[2], "pt")
		pt, err := strconv.ParseFloat(dimen, 64)
		if err != nil {
			continue
		}
		cm := pt * PtToCm
		if cm > widths[idx] {
			widths[idx] = cm
		}
	}
	return widths
}

// numToLetters renders n in letters only (0 -> a, 25 -> z, 26 -> aa).
func numToLetters(n int) string {
	var letters []byte
	for {
		letters = append(letters, byte('a'+n%26))
		n = n/26 - 1
		if n < 0 {
			break
		}
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters)
}
