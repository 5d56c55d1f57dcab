// Command check-svg-collisions checks vector diagrams for layout
// defects: overlapping labels, connectors piercing shapes, crowded
// borders. It accepts SVG files, LaTeX files with tikzpicture figures,
// and HTML pages with inline SVG; directories are scanned for all
// three.
//
// Tolerances can be overridden through the environment, for example
// COLLISIONS_OVERLAP_EPS=1.0.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"

	collisions "github.com/boergens/check-svg-collisions"
	"github.com/boergens/check-svg-collisions/format"
	"github.com/boergens/check-svg-collisions/rules"
	"github.com/boergens/check-svg-collisions/textmetrics"
)

// overrides are tolerance replacements read from the environment.
// Pointer fields distinguish "unset" from an explicit zero.
type overrides struct {
	OverlapEps        *float64 `envconfig:"OVERLAP_EPS"`
	InteriorEps       *float64 `envconfig:"INTERIOR_EPS"`
	EdgeEps           *float64 `envconfig:"EDGE_EPS"`
	CornerEps         *float64 `envconfig:"CORNER_EPS"`
	MarkerLengthRatio *float64 `envconfig:"MARKER_LENGTH_RATIO"`
	ClearanceFactor   *float64 `envconfig:"CLEARANCE_FACTOR"`
	MarkerTipEps      *float64 `envconfig:"MARKER_TIP_EPS"`
}

func (o overrides) any() bool {
	return o.OverlapEps != nil || o.InteriorEps != nil || o.EdgeEps != nil ||
		o.CornerEps != nil || o.MarkerLengthRatio != nil ||
		o.ClearanceFactor != nil || o.MarkerTipEps != nil
}

// apply lays the set overrides over a base config.
func (o overrides) apply(cfg rules.Config) rules.Config {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.OverlapEps, o.OverlapEps)
	set(&cfg.InteriorEps, o.InteriorEps)
	set(&cfg.EdgeEps, o.EdgeEps)
	set(&cfg.CornerEps, o.CornerEps)
	set(&cfg.MarkerLengthRatio, o.MarkerLengthRatio)
	set(&cfg.ClearanceFactor, o.ClearanceFactor)
	set(&cfg.MarkerTipEps, o.MarkerTipEps)
	return cfg
}

func main() {
	verbose := flag.Bool("v", false, "show element counts per figure")
	jobs := flag.Int("jobs", 0, "number of files to check concurrently (0 = number of CPUs)")
	lenient := flag.Bool("lenient", false, "exempt small labels from overlap rules")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	files, err := collectFiles(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		fmt.Println("No input files found")
		os.Exit(1)
	}

	var env overrides
	if err := envconfig.Process("collisions", &env); err != nil {
		log.Fatalf("reading environment overrides: %v", err)
	}

	configure := func(c *collisions.Checker) {
		if *lenient {
			c.Lenient()
		}
		c.WithMeasurer(&textmetrics.LatexMeasurer{})
		if env.any() {
			base := rules.DefaultConfig()
			if format.Detect(c.Path()) == format.TikZ {
				base = rules.TikZConfig()
			}
			c.WithConfig(env.apply(base))
		}
	}

	fmt.Println("Checking figures for collisions")
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))

	reports := collisions.CheckAll(context.Background(), files, *jobs, configure)

	lastFile := ""
	for _, r := range reports {
		if r.Figure != "" && r.File != lastFile {
			fmt.Printf("\n%s:\n", r.File)
		}
		lastFile = r.File
		fmt.Print(collisions.FormatReport(r, *verbose))
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(collisions.Summary(reports))

	os.Exit(collisions.ExitCode(reports))
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [flags] file-or-directory ...

Checks figures for problematic element interactions:
  - text overlapping text
  - lines passing through text or unconnected boxes
  - text crossing or crowding box borders
  - boxes overlapping without containment
  - arrowheads colliding with other lines

Inputs: .svg, .tex/.latex (tikzpicture figures), .html with inline SVG.
Directories are scanned recursively.

Flags:
`, filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

// collectFiles expands directory arguments into the checkable files they
// contain; plain file arguments pass through regardless of extension.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && format.Detect(path) != format.Unknown {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", arg, err)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
