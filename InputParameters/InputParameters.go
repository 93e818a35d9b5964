package InputParameters

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/notargets/gopattern/cleanup"
	"github.com/notargets/gopattern/export"
	"github.com/notargets/gopattern/types"
)

var ErrOutOfBounds = errors.New("parameter out of bounds")

// CleanupParameters configure the clean up edges pass
type CleanupParameters struct {
	MinEdgeLength        float64 `json:"MinEdgeLength"`
	RelaxIterations      int     `json:"RelaxIterations"`
	NeighborRadius       int     `json:"NeighborRadius"`
	NeighborSmooth       float64 `json:"NeighborSmooth"`
	DelimitIntersections bool    `json:"DelimitIntersections"`
	DelimitSeams         bool    `json:"DelimitSeams"`
	DelimitBoundary      bool    `json:"DelimitBoundary"`
	RemovePoles          bool    `json:"RemovePoles"`
	Boundary             bool    `json:"Boundary"` // clean up the boundary instead of the seam chain
}

// Parameters obtained from the YAML input file. ghodss/yaml reads them through the json tags.
type PatternParameters struct {
	Title             string            `json:"Title"`
	UnwrapMethod      string            `json:"UnwrapMethod"`
	WorkOnDuplicate   bool              `json:"WorkOnDuplicate"`
	ApplyModifiers    bool              `json:"ApplyModifiers"`
	Modifiers         []string          `json:"Modifiers"` // triangulate, weld, scale:<f>
	UseRemesh         bool              `json:"UseRemesh"`
	RemeshTriangles   int               `json:"RemeshTriangles"`
	SeamMaxEdgeLength float64           `json:"SeamMaxEdgeLength"` // zero leaves the seams alone
	Bevel             string            `json:"Bevel"`
	BevelWidth        float64           `json:"BevelWidth"`
	IslandOffset      float64           `json:"IslandOffset"`
	AreaCorrection    string            `json:"AreaCorrection"`
	PackMargin        float64           `json:"PackMargin"`
	MarkerMode        string            `json:"MarkerMode"`
	OutputFormat      string            `json:"OutputFormat"`
	PageSize          string            `json:"PageSize"`
	PageOverlap       int               `json:"PageOverlap"` // pixels
	DocumentSize      float64           `json:"DocumentSize"`
	Cleanup           CleanupParameters `json:"Cleanup"`
}

// Defaults returns the parameters used for anything the input file leaves out
func Defaults() (pp *PatternParameters) {
	opt := cleanup.DefaultOptions()
	return &PatternParameters{
		Title:           "pattern",
		UnwrapMethod:    types.UnwrapAngleBased.String(),
		WorkOnDuplicate: true,
		RemeshTriangles: 5000,
		Bevel:           types.BevelSplit.String(),
		AreaCorrection:  types.CorrectGlobal.String(),
		PackMargin:      0.02,
		MarkerMode:      types.MarkersAuto.String(),
		OutputFormat:    types.OutputSVG.String(),
		PageSize:        "A4",
		PageOverlap:     20,
		DocumentSize:    1024,
		Cleanup: CleanupParameters{
			MinEdgeLength:        opt.MinEdgeLength,
			RelaxIterations:      opt.RelaxIterations,
			NeighborRadius:       opt.NeighborRadius,
			NeighborSmooth:       opt.NeighborSmooth,
			DelimitIntersections: opt.DelimitIntersections,
			DelimitSeams:         opt.DelimitSeams,
			DelimitBoundary:      opt.DelimitBoundary,
		},
	}
}

// Parse overlays the YAML document on the current values, so parse into Defaults() to fill the gaps
func (pp *PatternParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, pp); err != nil {
		return errors.Wrap(err, "parsing parameters")
	}
	return pp.Validate()
}

func inBounds(name string, val float64) (err error) {
	b := cleanup.Bounds[name]
	if val < b[0] || val > b[1] {
		err = errors.Wrapf(ErrOutOfBounds, "%s = %g not in [%g,%g]", name, val, b[0], b[1])
	}
	return
}

// Validate checks every option name and numeric range, reporting all problems at once
func (pp *PatternParameters) Validate() (err error) {
	_, e := types.NewUnwrapMethod(pp.UnwrapMethod)
	err = multierr.Append(err, e)
	_, e = types.NewBevelKind(pp.Bevel)
	err = multierr.Append(err, e)
	_, e = types.NewAreaCorrection(pp.AreaCorrection)
	err = multierr.Append(err, e)
	_, e = types.NewMarkerMode(pp.MarkerMode)
	err = multierr.Append(err, e)
	_, e = types.NewOutputFormat(pp.OutputFormat)
	err = multierr.Append(err, e)
	_, _, e = export.PagePixels(pp.PageSize)
	err = multierr.Append(err, e)
	_, e = pp.ParseModifiers()
	err = multierr.Append(err, e)

	c := pp.Cleanup
	err = multierr.Combine(err,
		inBounds("MinEdgeLength", c.MinEdgeLength),
		inBounds("RelaxIterations", float64(c.RelaxIterations)),
		inBounds("NeighborRadius", float64(c.NeighborRadius)),
		inBounds("NeighborSmooth", c.NeighborSmooth),
	)
	for name, val := range map[string]float64{
		"SeamMaxEdgeLength": pp.SeamMaxEdgeLength,
		"BevelWidth":        pp.BevelWidth,
		"IslandOffset":      pp.IslandOffset,
		"PackMargin":        pp.PackMargin,
		"PageOverlap":       float64(pp.PageOverlap),
	} {
		if val < 0 {
			err = multierr.Append(err, errors.Wrapf(ErrOutOfBounds, "%s = %g is negative", name, val))
		}
	}
	if pp.DocumentSize <= 0 {
		err = multierr.Append(err, errors.Wrapf(ErrOutOfBounds, "DocumentSize = %g must be positive", pp.DocumentSize))
	}
	if pp.UseRemesh && pp.RemeshTriangles <= 0 {
		err = multierr.Append(err, errors.Wrapf(ErrOutOfBounds, "RemeshTriangles = %d must be positive",
			pp.RemeshTriangles))
	}
	return
}

// Modifier is one parsed entry of the Modifiers list
type Modifier struct {
	Name  string
	Value float64
}

func (pp *PatternParameters) ParseModifiers() (mods []Modifier, err error) {
	for _, entry := range pp.Modifiers {
		name, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(entry)), ":")
		mod := Modifier{Name: name}
		switch name {
		case "triangulate", "weld":
			if hasArg {
				return nil, errors.Errorf("modifier %q takes no argument", entry)
			}
		case "scale":
			if mod.Value, err = strconv.ParseFloat(arg, 64); err != nil || mod.Value <= 0 {
				return nil, errors.Errorf("modifier %q needs a positive scale factor", entry)
			}
		default:
			return nil, errors.Errorf("unknown modifier %q, known are triangulate, weld, scale:<f>", entry)
		}
		mods = append(mods, mod)
	}
	return
}

// CleanupOptions converts the clean up block for the cleanup package
func (pp *PatternParameters) CleanupOptions() cleanup.Options {
	c := pp.Cleanup
	return cleanup.Options{
		MinEdgeLength:        c.MinEdgeLength,
		RelaxIterations:      c.RelaxIterations,
		NeighborRadius:       c.NeighborRadius,
		NeighborSmooth:       c.NeighborSmooth,
		DelimitIntersections: c.DelimitIntersections,
		DelimitSeams:         c.DelimitSeams,
		DelimitBoundary:      c.DelimitBoundary,
		RemovePoles:          c.RemovePoles,
	}
}

func (pp *PatternParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	fmt.Printf("[%s]\t\t= Unwrap Method\n", pp.UnwrapMethod)
	fmt.Printf("%v\t\t\t= Work On Duplicate\n", pp.WorkOnDuplicate)
	fmt.Printf("%v %v\t\t= Apply Modifiers\n", pp.ApplyModifiers, pp.Modifiers)
	fmt.Printf("%v [%d]\t\t= Remesh Triangles\n", pp.UseRemesh, pp.RemeshTriangles)
	fmt.Printf("%8.5f\t\t= Seam Max Edge Length\n", pp.SeamMaxEdgeLength)
	fmt.Printf("[%s] %8.5f\t= Bevel\n", pp.Bevel, pp.BevelWidth)
	fmt.Printf("%8.5f\t\t= Island Offset\n", pp.IslandOffset)
	fmt.Printf("[%s]\t\t= Area Correction\n", pp.AreaCorrection)
	fmt.Printf("[%s]\t\t\t= Marker Mode\n", pp.MarkerMode)
	fmt.Printf("[%s] %s, overlap %dpx\t= Output\n", pp.OutputFormat, pp.PageSize, pp.PageOverlap)
	fmt.Printf("%8.2f\t\t= Document Size\n", pp.DocumentSize)
	c := pp.Cleanup
	fmt.Printf("Cleanup: min edge %g, relax %d, radius %d, smooth %g, delimit i/s/b %v/%v/%v, poles %v\n",
		c.MinEdgeLength, c.RelaxIterations, c.NeighborRadius, c.NeighborSmooth,
		c.DelimitIntersections, c.DelimitSeams, c.DelimitBoundary, c.RemovePoles)
}
