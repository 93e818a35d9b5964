package export

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

const (
	PixelsPerInch = 96.
	CmPerInch     = 2.54
)

// PageSizes maps a page format name to its width and height in centimeters
var PageSizes = map[string][2]float64{
	"A0":      {84.1, 118.9},
	"A1":      {59.4, 84.1},
	"A2":      {42.0, 59.4},
	"A3":      {29.7, 42.0},
	"A4":      {21.0, 29.7},
	"A5":      {14.8, 21.0},
	"A6":      {10.5, 14.8},
	"Letter":  {21.59, 27.94},
	"Legal":   {21.59, 35.56},
	"Tabloid": {27.94, 43.18},
}

// PageNames returns the known page formats in sorted order
func PageNames() (names []string) {
	for name := range PageSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// PagePixels returns the size of a named page at PixelsPerInch, the name is matched case insensitively
func PagePixels(name string) (w, h int, err error) {
	for key, size := range PageSizes {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			w = int(math.Round(size[0] / CmPerInch * PixelsPerInch))
			h = int(math.Round(size[1] / CmPerInch * PixelsPerInch))
			return
		}
	}
	err = errors.Errorf("unknown page size %q, known sizes are %s", name, strings.Join(PageNames(), ", "))
	return
}

// Tile is one printed page, a window of the document at X,Y of the page size
type Tile struct {
	Col, Row int
	X, Y     int
	W, H     int
}

/*
Tiles covers a width x height document with pages of w x h pixels. Neighbouring pages share overlap pixels
so the printed sheets can be taped together. Pages are ordered row by row from the top left.
*/
func Tiles(width, height float64, w, h, overlap int) (tiles []Tile, err error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("page size %dx%d must be positive", w, h)
	}
	if overlap < 0 || overlap >= w || overlap >= h {
		return nil, errors.Errorf("page overlap %d must be in [0,%d)", overlap, min(w, h))
	}
	count := func(extent float64, page int) int {
		step := page - overlap
		n := int(math.Ceil((extent - float64(overlap)) / float64(step)))
		return max(n, 1)
	}
	nc, nr := count(width, w), count(height, h)
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			tiles = append(tiles, Tile{
				Col: c, Row: r,
				X: c * (w - overlap), Y: r * (h - overlap),
				W: w, H: h,
			})
		}
	}
	return
}
