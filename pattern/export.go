package pattern

import (
	"github.com/pkg/errors"

	"github.com/notargets/gopattern/InputParameters"
	"github.com/notargets/gopattern/boundary"
	"github.com/notargets/gopattern/cleanup"
	"github.com/notargets/gopattern/export"
	"github.com/notargets/gopattern/markers"
	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/types"
	"github.com/notargets/gopattern/utils"
)

/*
Layout traces the boundary of every island of a flattened mesh, generates the alignment markers and lays both
out as a document. The scale is DocumentSize times the mesh's UV to world ratio, 1 when it has none.
*/
func Layout(m *mesh.Mesh, pp *InputParameters.PatternParameters) (doc *export.Document, outlines [][]boundary.Group,
	marks []markers.Marker, err error) {
	if !m.HasUV {
		return nil, nil, nil, errors.Wrapf(ErrNoUVLayer, "mesh %q cannot be exported", m.Name)
	}
	var mode types.MarkerMode
	if mode, err = types.NewMarkerMode(pp.MarkerMode); err != nil {
		return
	}
	islands := m.BuildTopology().Islands(m)
	outlines = boundary.TraceAll(m, islands)
	marks = markers.Generate(m, mode)
	ratio, ok := m.Attribute(mesh.AttrUVtoWorldScale)
	if !ok {
		ratio = 1
	}
	doc = export.NewDocument(m.Name, outlines, marks, pp.DocumentSize*ratio)
	return
}

// Export writes the pattern document in the configured format and returns the files written
func Export(m *mesh.Mesh, pp *InputParameters.PatternParameters, path string) (files []string, err error) {
	var (
		format types.OutputFormat
		doc    *export.Document
	)
	if format, err = types.NewOutputFormat(pp.OutputFormat); err != nil {
		return
	}
	if doc, _, _, err = Layout(m, pp); err != nil {
		return
	}
	switch format {
	case types.OutputTiles:
		return doc.SaveTiles(path, pp.PageSize, pp.PageOverlap)
	case types.OutputDXF:
		err = doc.SaveDXF(path)
	default:
		err = doc.SaveSVG(path)
	}
	if err == nil {
		files = []string{path}
	}
	return
}

/*
Cleanup runs the clean up edges pass on the non star seam chain, or on the boundary edges when the parameters
ask for it.
*/
func Cleanup(m *mesh.Mesh, pp *InputParameters.PatternParameters, progress utils.Progress) (res cleanup.Result,
	err error) {
	var sel mesh.IndexSet
	if pp.Cleanup.Boundary {
		sel = cleanup.SelectBoundary(m)
	} else {
		sel = cleanup.SelectSeamChain(m)
	}
	if sel.Len() == 0 {
		log.Warnf("%q: nothing selected to clean up", m.Name)
		return
	}
	opt := pp.CleanupOptions()
	opt.Progress = progress
	return cleanup.Run(m, sel, opt)
}
