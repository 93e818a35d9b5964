package readfiles

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gopattern/mesh"
	"github.com/notargets/gopattern/utils"
)

var log = utils.NamedLogger("readfiles")

/*
Wavefront OBJ with the extensions this tool needs to carry seams and object attributes through a file:

	l a b ...         polyline elements, every segment is a seam edge
	#@seam a b        seam flag on an edge that also borders faces
	#@edge a b        wire edge without a seam flag
	#@attr Name value custom object attribute (InitialVolume, UVtoWorldScale)

Plain OBJ readers ignore the #@ records as comments. Normals, groups, materials and smoothing records are skipped.
*/
func ReadOBJFile(filename string, verbose bool) (m *mesh.Mesh, err error) {
	var file *os.File
	if verbose {
		log.Infof("Reading OBJ file named: %s", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, errors.Wrapf(err, "unable to open file %s", filename)
	}
	defer file.Close()
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if m, err = ReadOBJ(file, name); err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	if verbose {
		log.Infof("%v", m)
	}
	return
}

type objReader struct {
	m        *mesh.Mesh
	uvs      []r2.Vec
	lineNo   int
	faceUVs  int
	seams    [][2]int
	wires    [][2]int
	polyline [][2]int
}

func ReadOBJ(r io.Reader, name string) (m *mesh.Mesh, err error) {
	var (
		or      = &objReader{m: mesh.NewMesh(name)}
		scanner = bufio.NewScanner(r)
	)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		or.lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err = or.parseLine(line); err != nil {
			return nil, errors.Wrapf(err, "line %d", or.lineNo)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	m = or.m
	for _, pairs := range [][][2]int{or.polyline, or.seams} {
		for _, p := range pairs {
			e := m.AddEdge(p[0], p[1])
			m.Edges[e].Seam = true
		}
	}
	for _, p := range or.wires {
		m.AddEdge(p[0], p[1])
	}
	m.HasUV = len(m.Faces) > 0 && or.faceUVs == len(m.Faces)
	if !m.HasUV && or.faceUVs > 0 {
		log.Warnf("%d of %d faces carry UVs, ignoring the partial UV layer", or.faceUVs, len(m.Faces))
		for f := range m.Faces {
			m.Faces[f].UVs = nil
		}
	}
	return
}

func (or *objReader) parseLine(line string) (err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		var x [3]float64
		if x, err = parseFloats3(fields[1:]); err != nil {
			return
		}
		or.m.AddVertex(r3.Vec{X: x[0], Y: x[1], Z: x[2]})
	case "vt":
		if len(fields) < 3 {
			return errors.Errorf("vt needs 2 coordinates, have %d", len(fields)-1)
		}
		var u, v float64
		if u, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return
		}
		if v, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return
		}
		or.uvs = append(or.uvs, r2.Vec{X: u, Y: v})
	case "f":
		return or.parseFace(fields[1:])
	case "l":
		if len(fields) < 3 {
			return errors.Errorf("line element needs 2 vertices, have %d", len(fields)-1)
		}
		var prev int
		for i, tok := range fields[1:] {
			var v int
			if v, _, err = or.parseCorner(tok); err != nil {
				return
			}
			if i > 0 && v != prev {
				or.polyline = append(or.polyline, [2]int{prev, v})
			}
			prev = v
		}
	case "o":
		if len(fields) > 1 {
			or.m.Name = strings.Join(fields[1:], " ")
		}
	case "#@seam", "#@edge":
		if len(fields) != 3 {
			return errors.Errorf("%s needs 2 vertices", fields[0])
		}
		var a, b int
		if a, _, err = or.parseCorner(fields[1]); err != nil {
			return
		}
		if b, _, err = or.parseCorner(fields[2]); err != nil {
			return
		}
		if fields[0] == "#@seam" {
			or.seams = append(or.seams, [2]int{a, b})
		} else {
			or.wires = append(or.wires, [2]int{a, b})
		}
	case "#@attr":
		if len(fields) != 3 {
			return errors.New("#@attr needs a name and a value")
		}
		var val float64
		if val, err = strconv.ParseFloat(fields[2], 64); err != nil {
			return
		}
		or.m.Attributes[fields[1]] = val
	}
	return
}

func (or *objReader) parseFace(tokens []string) (err error) {
	var (
		verts = make([]int, len(tokens))
		uvs   = make([]r2.Vec, len(tokens))
		hasUV = true
	)
	for i, tok := range tokens {
		var t int
		if verts[i], t, err = or.parseCorner(tok); err != nil {
			return
		}
		if t < 0 {
			hasUV = false
			continue
		}
		uvs[i] = or.uvs[t]
	}
	if !hasUV {
		uvs = nil
	} else {
		or.faceUVs++
	}
	_, err = or.m.AddFace(verts, uvs)
	return
}

// parseCorner reads "v", "v/t", "v//n" or "v/t/n" and returns zero based indices, t is -1 when absent
func (or *objReader) parseCorner(tok string) (v, t int, err error) {
	parts := strings.Split(tok, "/")
	if v, err = resolveIndex(parts[0], len(or.m.Verts)); err != nil {
		return
	}
	t = -1
	if len(parts) > 1 && parts[1] != "" {
		if t, err = resolveIndex(parts[1], len(or.uvs)); err != nil {
			return
		}
	}
	return
}

func resolveIndex(tok string, count int) (idx int, err error) {
	var i int
	if i, err = strconv.Atoi(tok); err != nil {
		return -1, errors.Wrapf(err, "bad index %q", tok)
	}
	switch {
	case i > 0:
		idx = i - 1
	case i < 0:
		idx = count + i
	default:
		return -1, errors.New("OBJ indices start at 1")
	}
	if idx < 0 || idx >= count {
		return -1, errors.Errorf("index %s out of range, %d defined", tok, count)
	}
	return
}

func parseFloats3(tokens []string) (x [3]float64, err error) {
	if len(tokens) < 3 {
		return x, errors.Errorf("need 3 coordinates, have %d", len(tokens))
	}
	for i := 0; i < 3; i++ {
		if x[i], err = strconv.ParseFloat(tokens[i], 64); err != nil {
			return
		}
	}
	return
}
