package export

import (
	"github.com/pkg/errors"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

const (
	layerOutline = "OUTLINE"
	layerMarkers = "MARKERS"
)

/*
SaveDXF writes the outlines as polylines and the markers as lines with text on their own layer.
DXF is y up, so the document is flipped back with the same scale and origin at the bottom left.
*/
func (doc *Document) SaveDXF(path string) (err error) {
	d := dxf.NewDrawing()
	d.AddLayer(layerOutline, dxf.DefaultColor, dxf.DefaultLineType, true)
	d.AddLayer(layerMarkers, color.Red, dxf.DefaultLineType, false)
	flip := func(y float64) float64 { return doc.Height - y }

	if err = d.ChangeLayer(layerOutline); err != nil {
		return errors.Wrap(err, "selecting outline layer")
	}
	for _, p := range doc.Paths {
		pts := p.Points
		if p.Closed && len(pts) > 1 {
			pts = pts[:len(pts)-1]
		}
		verts := make([][]float64, len(pts))
		for i, pt := range pts {
			verts[i] = []float64{pt.X, flip(pt.Y)}
		}
		if _, err = d.LwPolyline(p.Closed, verts...); err != nil {
			return errors.Wrapf(err, "island %d outline", p.Island)
		}
	}
	if err = d.ChangeLayer(layerMarkers); err != nil {
		return errors.Wrap(err, "selecting marker layer")
	}
	for _, tk := range doc.Ticks {
		if _, err = d.Line(tk.From.X, flip(tk.From.Y), 0, tk.To.X, flip(tk.To.Y), 0); err != nil {
			return errors.Wrap(err, "marker tick")
		}
		if _, err = d.Text(tk.Label, tk.LabelPos.X, flip(tk.LabelPos.Y), 0, FontSize); err != nil {
			return errors.Wrap(err, "marker label")
		}
	}
	if err = d.SaveAs(path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	log.Infof("wrote %s: %d outlines, %d markers", path, len(doc.Paths), len(doc.Ticks))
	return
}
