package utils

import (
	"fmt"
	"image/color"
	"math"
)

type ColorName uint8

const (
	White ColorName = iota
	Blue
	Red
	Green
	Black
)

func GetColor(name ColorName) (c color.RGBA) {
	switch name {
	case White:
		c = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	case Blue:
		c = color.RGBA{R: 50, G: 0, B: 255, A: 0}
	case Red:
		c = color.RGBA{R: 255, G: 0, B: 50, A: 0}
	case Green:
		c = color.RGBA{R: 25, G: 255, B: 25, A: 0}
	case Black:
		c = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	}
	return
}

/*
HSVToRGB converts hue, saturation and value, each in [0,1], to an opaque RGBA color.
A hue of 1 wraps to 0.
*/
func HSVToRGB(h, s, v float64) (c color.RGBA) {
	h = h - math.Floor(h)
	s = Clamp(s, 0, 1)
	v = Clamp(v, 0, 1)
	var (
		h6     = h * 6
		sector = int(h6) % 6
		f      = h6 - math.Floor(h6)
		p      = v * (1 - s)
		q      = v * (1 - s*f)
		t      = v * (1 - s*(1-f))
	)
	var r, g, b float64
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	to8 := func(x float64) uint8 { return uint8(math.Round(x * 255)) }
	return color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: 255}
}

// HexColor renders c as #rrggbb
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
