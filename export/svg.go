package export

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"

	"github.com/notargets/gopattern/utils"
)

var (
	outlineStyle = fmt.Sprintf("fill:%s;fill-opacity:0.5;stroke:%s;stroke-width:1;stroke-linejoin:round",
		utils.HexColor(utils.GetColor(utils.White)), utils.HexColor(utils.GetColor(utils.Black)))
	openStyle = fmt.Sprintf("fill:none;stroke:%s;stroke-width:1;stroke-dasharray:4,2",
		utils.HexColor(utils.GetColor(utils.Red)))
)

// errWriter keeps the first write error, svgo does not report them
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (n int, err error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, ew.err = ew.w.Write(p)
	return n, ew.err
}

func pathData(p Path) string {
	var sb strings.Builder
	for i, pt := range p.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.3f,%.3f ", cmd, pt.X, pt.Y)
	}
	if p.Closed {
		sb.WriteString("Z")
	}
	return strings.TrimSpace(sb.String())
}

func (doc *Document) draw(canvas *svg.SVG) {
	canvas.Title(doc.Name)
	island := -1
	for _, p := range doc.Paths {
		if p.Island != island {
			if island >= 0 {
				canvas.Gend()
			}
			island = p.Island
			canvas.Gid(fmt.Sprintf("island-%d", island))
		}
		style := outlineStyle
		if !p.Closed {
			style = openStyle
		}
		canvas.Path(pathData(p), "style=\""+style+"\"")
	}
	if island >= 0 {
		canvas.Gend()
	}
	if len(doc.Ticks) == 0 {
		return
	}
	canvas.Gid("markers")
	for _, tk := range doc.Ticks {
		d := fmt.Sprintf("M%.3f,%.3f L%.3f,%.3f", tk.From.X, tk.From.Y, tk.To.X, tk.To.Y)
		canvas.Path(d, fmt.Sprintf(`style="fill:none;stroke:%s;stroke-width:2"`, tk.Color))
		canvas.Text(int(math.Round(tk.LabelPos.X)), int(math.Round(tk.LabelPos.Y)), tk.Label,
			fmt.Sprintf(`style="fill:%s;font-size:%gpx;font-family:sans-serif;text-anchor:%s;dominant-baseline:%s"`,
				tk.Color, FontSize, tk.Anchor, tk.Baseline))
	}
	canvas.Gend()
}

// WriteSVG writes the whole document as one SVG drawing
func (doc *Document) WriteSVG(w io.Writer) (err error) {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(int(math.Ceil(doc.Width)), int(math.Ceil(doc.Height)))
	doc.draw(canvas)
	canvas.End()
	return errors.Wrap(ew.err, "writing svg")
}

// WriteTile writes the window of the document covered by one page
func (doc *Document) WriteTile(w io.Writer, t Tile) (err error) {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Startview(t.W, t.H, t.X, t.Y, t.W, t.H)
	doc.draw(canvas)
	canvas.End()
	return errors.Wrapf(ew.err, "writing page %d,%d", t.Col, t.Row)
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	var file *os.File
	if file, err = os.Create(path); err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	bw := bufio.NewWriter(file)
	if err = write(bw); err == nil {
		err = bw.Flush()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return
}

func (doc *Document) SaveSVG(path string) error {
	return writeFile(path, doc.WriteSVG)
}

/*
SaveTiles writes one SVG per page next to path, named <base>_r<row>_c<col>.svg, and returns the file names.
*/
func (doc *Document) SaveTiles(path, pageName string, overlap int) (files []string, err error) {
	var (
		w, h  int
		tiles []Tile
	)
	if w, h, err = PagePixels(pageName); err != nil {
		return
	}
	if tiles, err = Tiles(doc.Width, doc.Height, w, h, overlap); err != nil {
		return
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, t := range tiles {
		name := fmt.Sprintf("%s_r%d_c%d.svg", base, t.Row, t.Col)
		if err = writeFile(name, func(w io.Writer) error { return doc.WriteTile(w, t) }); err != nil {
			return
		}
		files = append(files, name)
	}
	log.Infof("wrote %d %s pages for %q", len(files), pageName, doc.Name)
	return
}
