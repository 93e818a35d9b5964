package utils

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMath(t *testing.T) {
	assert.Equal(t, 16., POW(2, 4))
	assert.Equal(t, 0.25, POW(2, -2))
	assert.InDelta(t, math.Pow(1.5, 11), POW(1.5, 11), 1.e-9)
	assert.Equal(t, 1., Clamp(3, 0, 1))
	assert.Equal(t, 0., Clamp(-3, 0, 1))
}

func TestVectors(t *testing.T) {
	u, ok := Normalize3(r3.Vec{X: 3, Y: 4})
	assert.True(t, ok)
	assert.InDelta(t, 0.6, u.X, 1.e-12)
	_, ok = Normalize3(r3.Vec{})
	assert.False(t, ok)
	_, ok = Normalize2(r2.Vec{X: 1.e-12})
	assert.False(t, ok)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5}, Mid3(r3.Vec{}, r3.Vec{X: 1, Y: 1}))
	assert.Equal(t, r2.Vec{X: 1, Y: 1}, Mean2([]r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 2}}))
	assert.Equal(t, r2.Vec{X: 0, Y: -1}, Perp2(r2.Vec{X: 1, Y: 0}))
}

func TestColors(t *testing.T) {
	assert.Equal(t, "#ff0000", HexColor(HSVToRGB(0, 1, 1)))
	assert.Equal(t, "#00ff00", HexColor(HSVToRGB(1./3, 1, 1)))
	assert.Equal(t, "#0000ff", HexColor(HSVToRGB(2./3, 1, 1)))
	assert.Equal(t, "#ff0000", HexColor(HSVToRGB(1, 1, 1)))
	assert.Equal(t, "#ffffff", HexColor(HSVToRGB(0.3, 0, 1)))
}

func TestSparse(t *testing.T) {
	A := NewDOK(2, 3, "A")
	A.Add(0, 0, 1)
	A.Add(0, 0, 1)
	A.Set(1, 2, 4)
	assert.Panics(t, func() { A.Set(2, 0, 1) })
	C := A.ToCSR()
	assert.Equal(t, 2, C.NNZ())
	assert.Equal(t, []float64{2, 12}, C.MulVec([]float64{1, 2, 3}))
	assert.Equal(t, []float64{2, 0, 4}, C.MulTransVec([]float64{1, 1}))
	assert.Equal(t, []float64{2, 4}, C.RowSums())
}

func TestLogger(t *testing.T) {
	l := NamedLogger("test")
	assert.Same(t, l, NamedLogger("test"))
	assert.NoError(t, SetLogLevel("debug"))
	assert.True(t, l.IsLevelEnabled(logrus.DebugLevel))
	assert.Error(t, SetLogLevel("loud"))
	assert.NoError(t, SetLogLevel("info"))
}
