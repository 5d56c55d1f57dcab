// Package layout resolves diagram node positions that are declared relative
// to other nodes, via fixed-point relaxation over a bounded number of
// passes.
//
// A node's placement is either an absolute coordinate, a relation to a
// named reference node ("below of ref", possibly compound "below left = v
// and h of ref"), or nothing at all, in which case the node defaults to the
// origin. Requested distances are edge-to-edge and are converted into
// center-to-center offsets using the half dimensions of both nodes, so
// every node's own dimensions must be known before resolution starts.
//
// Nodes whose reference chain cannot be satisfied within the pass bound are
// returned explicitly in Result.Unresolved; callers surface them as
// notices rather than silently dropping them from checks.
package layout

import (
	"sort"

	"github.com/boergens/check-svg-collisions/model"
)

// maxPasses bounds the relaxation. Reference chains deeper than this are
// reported as unresolved.
const maxPasses = 5

// Direction of a relative placement.
type Direction int

const (
	DirNone Direction = iota
	DirAbove
	DirBelow
	DirLeft
	DirRight
)

// Relation places a node relative to a named reference node. Dist is the
// requested edge-to-edge distance; a negative Dist means "use the default
// node distance". For compound placements ("below left = v and h of ref"),
// Dir holds the vertical part, Cross the horizontal part, and CrossDist
// the horizontal distance.
type Relation struct {
	Dir       Direction
	Dist      float64
	Cross     Direction
	CrossDist float64
	Ref       string
}

// Placement is one node's declared position and dimensions.
type Placement struct {
	Name          string
	Width, Height float64
	At            *model.Point // absolute position, if declared
	Rel           *Relation    // relative position, if declared
}

// Result of a resolution run.
type Result struct {
	Positions  map[string]model.Point
	Unresolved []string // sorted names that did not resolve within the bound
}

// Resolve computes center positions for all placements. defaultDistance is
// the edge-to-edge distance used by relations that do not carry their own.
func Resolve(placements []Placement, defaultDistance float64) Result {
	positions := make(map[string]model.Point, len(placements))
	dims := make(map[string][2]float64, len(placements))

	for _, p := range placements {
		dims[p.Name] = [2]float64{p.Width, p.Height}
		switch {
		case p.At != nil:
			positions[p.Name] = *p.At
		case p.Rel == nil:
			// No positioning directive at all: the node sits at the origin.
			positions[p.Name] = model.Point{}
		}
	}

	for pass := 0; pass < maxPasses; pass++ {
		progress := false
		for _, p := range placements {
			if _, done := positions[p.Name]; done || p.Rel == nil {
				continue
			}
			ref, ok := positions[p.Rel.Ref]
			if !ok {
				continue
			}
			refDims, ok := dims[p.Rel.Ref]
			if !ok {
				continue
			}
			positions[p.Name] = place(ref, refDims, [2]float64{p.Width, p.Height}, *p.Rel, defaultDistance)
			progress = true
		}
		if !progress {
			break
		}
	}

	var unresolved []string
	for _, p := range placements {
		if _, ok := positions[p.Name]; !ok {
			unresolved = append(unresolved, p.Name)
		}
	}
	sort.Strings(unresolved)

	return Result{Positions: positions, Unresolved: unresolved}
}

// place converts an edge-to-edge relation into a center position. The y
// axis grows upward here; readers whose coordinate system grows downward
// flip directions before building placements.
func place(ref model.Point, refDims, curDims [2]float64, rel Relation, defaultDistance float64) model.Point {
	dist := rel.Dist
	if dist < 0 {
		dist = defaultDistance
	}

	pos := ref
	switch rel.Dir {
	case DirBelow:
		pos.Y = ref.Y - dist - refDims[1]/2 - curDims[1]/2
	case DirAbove:
		pos.Y = ref.Y + dist + refDims[1]/2 + curDims[1]/2
	case DirLeft:
		pos.X = ref.X - dist - refDims[0]/2 - curDims[0]/2
	case DirRight:
		pos.X = ref.X + dist + refDims[0]/2 + curDims[0]/2
	}

	crossDist := rel.CrossDist
	if crossDist < 0 {
		crossDist = defaultDistance
	}
	switch rel.Cross {
	case DirLeft:
		pos.X = ref.X - crossDist - refDims[0]/2 - curDims[0]/2
	case DirRight:
		pos.X = ref.X + crossDist + refDims[0]/2 + curDims[0]/2
	}

	return pos
}
