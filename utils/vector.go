package utils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Normalize3 returns the unit vector along v, ok is false when v is shorter than GEOMTOL
func Normalize3(v r3.Vec) (u r3.Vec, ok bool) {
	l := r3.Norm(v)
	if l < GEOMTOL || math.IsNaN(l) {
		return r3.Vec{}, false
	}
	return r3.Scale(1/l, v), true
}

func Normalize2(v r2.Vec) (u r2.Vec, ok bool) {
	l := r2.Norm(v)
	if l < GEOMTOL || math.IsNaN(l) {
		return r2.Vec{}, false
	}
	return r2.Scale(1/l, v), true
}

func Lerp3(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

func Mid3(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

func Mean3(pts []r3.Vec) (c r3.Vec) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(pts)), c)
}

func Mean2(pts []r2.Vec) (c r2.Vec) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		c = r2.Add(c, p)
	}
	return r2.Scale(1/float64(len(pts)), c)
}

// Perp2 rotates v a quarter turn clockwise
func Perp2(v r2.Vec) r2.Vec {
	return r2.Vec{X: v.Y, Y: -v.X}
}
