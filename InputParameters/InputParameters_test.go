package InputParameters

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

var sample = []byte(`
Title: "shirt front"
UnwrapMethod: conformal
ApplyModifiers: true
Modifiers: [triangulate, "scale:0.01"]
UseRemesh: false
MarkerMode: seam
OutputFormat: tiles
PageSize: Letter
PageOverlap: 40
Cleanup:
  MinEdgeLength: 0.01
  RelaxIterations: 4
  DelimitSeams: false
`)

func TestParse(t *testing.T) {
	{
		pp := Defaults()
		require.NoError(t, pp.Validate())
		pp.Print()
	}
	{ // The file overrides the defaults it names
		pp := Defaults()
		require.NoError(t, pp.Parse(sample))
		pp.Print()
		assert.Equal(t, "shirt front", pp.Title)
		assert.Equal(t, "conformal", pp.UnwrapMethod)
		assert.Equal(t, "seam", pp.MarkerMode)
		assert.Equal(t, 40, pp.PageOverlap)
		assert.Equal(t, 1024., pp.DocumentSize)
		assert.True(t, pp.WorkOnDuplicate)
		assert.Equal(t, 0.01, pp.Cleanup.MinEdgeLength)
		assert.Equal(t, 4, pp.Cleanup.RelaxIterations)
		assert.Equal(t, 0.8, pp.Cleanup.NeighborSmooth)
		assert.False(t, pp.Cleanup.DelimitSeams)
		assert.True(t, pp.Cleanup.DelimitBoundary)

		mods, err := pp.ParseModifiers()
		require.NoError(t, err)
		assert.Equal(t, []Modifier{{Name: "triangulate"}, {Name: "scale", Value: 0.01}}, mods)

		opt := pp.CleanupOptions()
		assert.Equal(t, 0.01, opt.MinEdgeLength)
		assert.False(t, opt.DelimitSeams)
	}
	{ // Every problem is reported
		pp := Defaults()
		err := pp.Parse([]byte(`
UnwrapMethod: magic
PageSize: B7
Cleanup:
  MinEdgeLength: 0.5
  NeighborRadius: 9
`))
		require.Error(t, err)
		errs := multierr.Errors(err)
		assert.Len(t, errs, 4)
		var bounds int
		for _, e := range errs {
			if errors.Is(e, ErrOutOfBounds) {
				bounds++
			}
		}
		assert.Equal(t, 2, bounds)
	}
	{
		pp := Defaults()
		pp.Modifiers = []string{"subdivide"}
		assert.Error(t, pp.Validate())
		pp.Modifiers = []string{"weld:2"}
		assert.Error(t, pp.Validate())
		pp.Modifiers = []string{"scale:-1"}
		assert.Error(t, pp.Validate())
		pp.Modifiers = nil
		pp.DocumentSize = 0
		assert.Error(t, pp.Validate())
	}
	{
		pp := Defaults()
		assert.Error(t, pp.Parse([]byte("Title: [unterminated")))
	}
}
