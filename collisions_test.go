package collisions

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boergens/check-svg-collisions/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const overlappingSVG = `<svg xmlns="http://www.w3.org/2000/svg">
<rect id="a" x="0" y="0" width="50" height="40"/>
<rect id="b" x="30" y="10" width="50" height="40"/>
</svg>`

const cleanSVG = `<svg xmlns="http://www.w3.org/2000/svg">
<rect id="a" x="0" y="0" width="50" height="40"/>
<rect id="b" x="100" y="10" width="50" height="40"/>
</svg>`

func TestCheckSVGFile(t *testing.T) {
	path := writeFile(t, "fig.svg", overlappingSVG)

	reports := Open(path).Check(context.Background())
	if len(reports) != 1 {
		t.Fatalf("got %d reports; want 1", len(reports))
	}
	r := reports[0]
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.File != path || r.Figure != "" {
		t.Errorf("report identity: %+v", r)
	}
	if r.Shapes != 2 {
		t.Errorf("shape count %d; want 2", r.Shapes)
	}
	if len(r.Issues) != 1 || r.Issues[0].Kind != model.KindBoxOverlap {
		t.Fatalf("issues: %+v", r.Issues)
	}
	if got := ExitCode(reports); got != 1 {
		t.Errorf("exit code %d; want 1", got)
	}
}

func TestCheckCleanFile(t *testing.T) {
	path := writeFile(t, "fig.svg", cleanSVG)

	reports := Open(path).Check(context.Background())
	if len(reports[0].Issues) != 0 {
		t.Errorf("clean file reported issues: %+v", reports[0].Issues)
	}
	if got := ExitCode(reports); got != 0 {
		t.Errorf("exit code %d; want 0", got)
	}
	if reports[0].Status() != "OK" {
		t.Errorf("status %q; want OK", reports[0].Status())
	}
}

const tikzDocument = `\documentclass{article}
\usepackage{tikz}
\begin{document}
\subsection{FIG. 1 Pipeline}
\begin{tikzpicture}
\node[minimum width=2cm, minimum height=1cm] (a) at (0,0) {In};
\node[minimum width=2cm, minimum height=1cm] (b) at (0.5,0) {Out};
\end{tikzpicture}
\end{document}`

func TestCheckTikZFile(t *testing.T) {
	path := writeFile(t, "paper.tex", tikzDocument)

	reports := Open(path).Check(context.Background())
	if len(reports) != 1 {
		t.Fatalf("got %d reports; want 1", len(reports))
	}
	r := reports[0]
	if r.Err != nil {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	if r.Figure != "FIG. 1 Pipeline" || r.Line != 4 {
		t.Errorf("figure identity: %q line %d", r.Figure, r.Line)
	}

	// Two boxes half a unit apart must overlap without containment.
	found := false
	for _, issue := range r.Issues {
		if issue.Kind == model.KindBoxOverlap {
			found = true
		}
	}
	if !found {
		t.Errorf("missing box overlap: %+v", r.Issues)
	}
}

func TestCheckMissingFile(t *testing.T) {
	reports := Open(filepath.Join(t.TempDir(), "absent.svg")).Check(context.Background())
	if len(reports) != 1 || reports[0].Err == nil {
		t.Fatalf("expected a single error report: %+v", reports)
	}
	// File errors never flip the exit code.
	if got := ExitCode(reports); got != 0 {
		t.Errorf("exit code %d; want 0", got)
	}
}

func TestCheckAllPreservesOrder(t *testing.T) {
	first := writeFile(t, "one.svg", overlappingSVG)
	second := writeFile(t, "two.svg", cleanSVG)

	reports := CheckAll(context.Background(), []string{first, second}, 4, nil)
	if len(reports) != 2 {
		t.Fatalf("got %d reports; want 2", len(reports))
	}
	if reports[0].File != first || reports[1].File != second {
		t.Errorf("report order: %s, %s", reports[0].File, reports[1].File)
	}
}

func TestFormatReport(t *testing.T) {
	r := Report{
		File:     "fig.svg",
		Texts:    3,
		Shapes:   2,
		Segments: 4,
		Issues: []model.Issue{
			{Kind: model.KindBoxOverlap, SubjectA: "a", SubjectB: "b"},
			{Kind: model.KindShortMarkerSegment, SubjectA: "shaft", Detail: "15px < 20px"},
		},
		Warnings: []model.Issue{
			{Kind: model.KindLineTouchesCorner, SubjectA: "conn", SubjectB: "box"},
		},
		Notices: []string{"  <rect> at line 2 has no id, temporarily named 'elem_2'"},
	}

	out := FormatReport(r, true)
	for _, want := range []string{
		"fig.svg 3t/2s/4l: ISSUES (2) [MISSING IDs: 1]",
		"  - BOX OVERLAP: a / b",
		"  - SHORT MARKER SEGMENT: shaft / 15px < 20px",
		"  - WARNING line touches corner: conn / box",
		"has no id",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatReportError(t *testing.T) {
	r := Report{File: "broken.svg", Err: errors.New("no <svg> element found")}
	out := FormatReport(r, false)
	if !strings.Contains(out, "broken.svg: ERROR") || !strings.Contains(out, "no <svg> element") {
		t.Errorf("error block:\n%s", out)
	}
}

func TestSummary(t *testing.T) {
	clean := []Report{{File: "a.svg"}}
	if got := Summary(clean); got != "Result: No issues detected" {
		t.Errorf("clean summary %q", got)
	}

	mixed := []Report{
		{File: "a.svg", Issues: []model.Issue{{Kind: model.KindTextOverlap}}},
		{File: "b.svg", Warnings: []model.Issue{{Kind: model.KindLineTouchesCorner}, {Kind: model.KindLineTouchesCorner}}},
	}
	if got := Summary(mixed); got != "Result: 1 issue(s), 2 warning(s)" {
		t.Errorf("mixed summary %q", got)
	}
}

func TestLenientOption(t *testing.T) {
	c := Open("x.svg").Lenient()
	if cfg := c.config(0); !cfg.Lenient {
		t.Error("Lenient() not applied to config")
	}
}
