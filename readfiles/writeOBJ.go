package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/notargets/gopattern/mesh"
)

func WriteOBJFile(filename string, m *mesh.Mesh) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return errors.Wrapf(err, "unable to create file %s", filename)
	}
	if err = WriteOBJ(file, m); err != nil {
		file.Close()
		return errors.Wrapf(err, "writing %s", filename)
	}
	return file.Close()
}

// WriteOBJ writes the mesh in the format ReadOBJ understands, wire seam edges become line elements
func WriteOBJ(w io.Writer, m *mesh.Mesh) (err error) {
	var (
		bw = bufio.NewWriter(w)
		tp = m.BuildTopology()
		ff = func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	)
	fmt.Fprintf(bw, "# gopattern\no %s\n", m.Name)
	for _, name := range m.AttributeNames() {
		fmt.Fprintf(bw, "#@attr %s %s\n", name, ff(m.Attributes[name]))
	}
	for _, p := range m.Verts {
		fmt.Fprintf(bw, "v %s %s %s\n", ff(p.X), ff(p.Y), ff(p.Z))
	}
	if m.HasUV {
		for _, face := range m.Faces {
			for _, uv := range face.UVs {
				fmt.Fprintf(bw, "vt %s %s\n", ff(uv.X), ff(uv.Y))
			}
		}
	}
	var t int
	for _, face := range m.Faces {
		fmt.Fprint(bw, "f")
		for _, v := range face.Verts {
			if m.HasUV {
				t++
				fmt.Fprintf(bw, " %d/%d", v+1, t)
			} else {
				fmt.Fprintf(bw, " %d", v+1)
			}
		}
		fmt.Fprintln(bw)
	}
	for e, edge := range m.Edges {
		a, b := edge.Verts[0]+1, edge.Verts[1]+1
		switch {
		case tp.IsWireEdge(e) && edge.Seam:
			fmt.Fprintf(bw, "l %d %d\n", a, b)
		case tp.IsWireEdge(e):
			fmt.Fprintf(bw, "#@edge %d %d\n", a, b)
		case edge.Seam:
			fmt.Fprintf(bw, "#@seam %d %d\n", a, b)
		}
	}
	return bw.Flush()
}
