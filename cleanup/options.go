package cleanup

import (
	"github.com/notargets/gopattern/utils"
)

var log = utils.NamedLogger("cleanup")

// Options for one clean up pass. The delimiters pin vertices so nothing collapses or relaxes across them.
type Options struct {
	MinEdgeLength   float64 // chain edges shorter than this are collapsed
	RelaxIterations int
	NeighborRadius  int     // rings of vertices around the chain that are smoothed
	NeighborSmooth  float64 // smoothing strength in [0,1]

	DelimitIntersections bool // vertices where more than two selected edges meet
	DelimitSeams         bool // vertices on an unselected seam that borders faces
	DelimitBoundary      bool // vertices where an unselected boundary edge meets the chain
	RemovePoles          bool // split non manifold vertices on the chain first

	Progress utils.Progress
}

const (
	relaxFactor  = 0.2
	smoothPasses = 10
)

// Bounds are the accepted ranges of the numeric options
var Bounds = map[string][2]float64{
	"MinEdgeLength":   {0, 0.1},
	"RelaxIterations": {0, 100},
	"NeighborRadius":  {0, 5},
	"NeighborSmooth":  {0, 1},
}

func DefaultOptions() Options {
	return Options{
		MinEdgeLength:        0.002,
		RelaxIterations:      1,
		NeighborRadius:       1,
		NeighborSmooth:       0.8,
		DelimitIntersections: true,
		DelimitSeams:         true,
		DelimitBoundary:      true,
	}
}

// SmoothFactor maps the smoothing strength to the per pass factor s^4/2, gentle at low values
func (opt Options) SmoothFactor() float64 {
	return utils.POW(utils.Clamp(opt.NeighborSmooth, 0, 1), 4) / 2
}
