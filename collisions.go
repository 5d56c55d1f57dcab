// Package collisions provides a fluent API for checking vector diagrams
// for layout defects: overlapping labels, connectors piercing shapes,
// crowded borders and the rest of the rule set in the rules package.
//
// Basic usage:
//
//	reports := collisions.Open("figure.svg").Check(ctx)
//	for _, r := range reports {
//	    fmt.Print(collisions.FormatReport(r, false))
//	}
//	os.Exit(collisions.ExitCode(reports))
//
// With options:
//
//	reports := collisions.Open("paper.tex").
//	    Lenient().
//	    WithMeasurer(&textmetrics.LatexMeasurer{}).
//	    Check(ctx)
//
// For advanced use cases, the lower-level svgdoc, tikzdoc and rules
// packages are also available.
package collisions

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/boergens/check-svg-collisions/format"
	"github.com/boergens/check-svg-collisions/model"
	"github.com/boergens/check-svg-collisions/rules"
	"github.com/boergens/check-svg-collisions/svgdoc"
	"github.com/boergens/check-svg-collisions/textmetrics"
	"github.com/boergens/check-svg-collisions/tikzdoc"
)

// Checker checks one input file. Configure it with the option methods,
// then call Check.
type Checker struct {
	path     string
	cfg      *rules.Config
	lenient  bool
	measurer tikzdoc.WidthMeasurer
}

// Open prepares a checker for the given file. The dialect is chosen by
// extension, with content sniffing as fallback.
func Open(path string) *Checker {
	return &Checker{path: path}
}

// Path returns the file this checker was opened for.
func (c *Checker) Path() string {
	return c.path
}

// Lenient enables the small-label exemptions of the rule set.
func (c *Checker) Lenient() *Checker {
	c.lenient = true
	return c
}

// WithConfig replaces the dialect-default tolerance set entirely.
func (c *Checker) WithConfig(cfg rules.Config) *Checker {
	c.cfg = &cfg
	return c
}

// WithMeasurer supplies an external text-width measurer for TikZ inputs.
// Without one, node widths fall back to the default.
func (c *Checker) WithMeasurer(m tikzdoc.WidthMeasurer) *Checker {
	c.measurer = m
	return c
}

// Check reads the file and evaluates the rules. An SVG file yields one
// report; a LaTeX file yields one report per tikzpicture. A file that
// cannot be read yields a single report with Err set; Check never
// returns an empty slice.
func (c *Checker) Check(ctx context.Context) []Report {
	switch c.dialect() {
	case format.TikZ:
		return c.checkTikZ(ctx)
	case format.SVG, format.HTML:
		return []Report{c.checkSVG()}
	default:
		return []Report{{File: c.path, Err: fmt.Errorf("%s: unrecognized input format", c.path)}}
	}
}

func (c *Checker) dialect() format.Dialect {
	if d := format.Detect(c.path); d != format.Unknown {
		return d
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return format.Unknown
	}
	return format.DetectContent(data)
}

func (c *Checker) checkSVG() Report {
	report := Report{File: c.path}

	face, err := sharedFace()
	if err != nil {
		report.Err = err
		return report
	}
	scene, err := svgdoc.Open(c.path, face)
	if err != nil {
		report.Err = err
		return report
	}

	cfg := c.config(format.SVG)
	if cfg.LegibleGap == nil {
		cfg.LegibleGap = face.LegibleGap
	}
	fillReport(&report, scene, cfg)
	return report
}

func (c *Checker) checkTikZ(ctx context.Context) []Report {
	figures, err := tikzdoc.Open(ctx, c.path, c.measurer)
	if err != nil {
		return []Report{{File: c.path, Err: err}}
	}
	if len(figures) == 0 {
		return []Report{{File: c.path, Err: fmt.Errorf("%s: no tikzpicture environments found", c.path)}}
	}

	cfg := c.config(format.TikZ)
	reports := make([]Report, 0, len(figures))
	for _, fig := range figures {
		report := Report{File: c.path, Figure: fig.Label, Line: fig.Line}
		fillReport(&report, fig.Scene, cfg)
		reports = append(reports, report)
	}
	return reports
}

// config resolves the effective tolerance set: an explicit WithConfig
// wins, otherwise the dialect default, with the Lenient flag applied on
// top either way.
func (c *Checker) config(d format.Dialect) rules.Config {
	var cfg rules.Config
	switch {
	case c.cfg != nil:
		cfg = *c.cfg
	case d == format.TikZ:
		cfg = rules.TikZConfig()
	default:
		cfg = rules.DefaultConfig()
	}
	if c.lenient {
		cfg.Lenient = true
	}
	return cfg
}

func fillReport(report *Report, scene *model.Scene, cfg rules.Config) {
	report.Texts = len(scene.Texts)
	report.Shapes = len(scene.Shapes)
	report.Segments = len(scene.Segments)
	report.Notices = scene.Notices
	report.Issues, report.Warnings = rules.Check(scene, cfg)
}

var (
	faceOnce sync.Once
	face     *textmetrics.Face
	faceErr  error
)

// sharedFace lazily loads the embedded font once for the whole process;
// the face is safe for concurrent use across files.
func sharedFace() (*textmetrics.Face, error) {
	faceOnce.Do(func() {
		face, faceErr = textmetrics.NewFace()
	})
	return face, faceErr
}

// CheckAll checks files concurrently through a bounded worker pool and
// returns their reports in input order. Files are fully independent;
// jobs <= 0 means one worker per CPU. configure, when non-nil, is
// applied to every file's checker before it runs.
func CheckAll(ctx context.Context, paths []string, jobs int, configure func(*Checker)) []Report {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	perFile := make([][]Report, len(paths))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				c := Open(paths[i])
				if configure != nil {
					configure(c)
				}
				perFile[i] = c.Check(ctx)
			}
		}()
	}
	for i := range paths {
		indices <- i
	}
	close(indices)
	wg.Wait()

	var reports []Report
	for _, rs := range perFile {
		reports = append(reports, rs...)
	}
	return reports
}
