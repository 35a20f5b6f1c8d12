package geom

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Distance(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 50, Height: 50}

	tests := []struct {
		name     string
		p        Point
		expected float64
	}{
		{"inside", Point{X: 120, Y: 120}, 0},
		{"on edge", Point{X: 100, Y: 130}, 0},
		{"on corner", Point{X: 150, Y: 150}, 0},
		{"left, vertically aligned", Point{X: 70, Y: 120}, 30},
		{"right, vertically aligned", Point{X: 160, Y: 100}, 10},
		{"above, horizontally aligned", Point{X: 125, Y: 60}, 40},
		{"below, horizontally aligned", Point{X: 150, Y: 175}, 25},
		{"diagonal 3-4-5 to corner", Point{X: 97, Y: 96}, 5},
		{"diagonal to bottom right", Point{X: 156, Y: 158}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, r.Distance(tt.p), 0.001)
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 475, Y: 825, Width: 50, Height: 50}

	assert.True(t, r.Contains(Point{X: 500, Y: 850}))
	assert.True(t, r.Contains(Point{X: 475, Y: 825}), "top-left corner is inside")
	assert.True(t, r.Contains(Point{X: 525, Y: 875}), "bottom-right corner is inside")
	assert.False(t, r.Contains(Point{X: 474.9, Y: 850}))
	assert.False(t, r.Contains(Point{X: 500, Y: 875.1}))
}

func TestRect_Intersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name     string
		b        Rect
		expected bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"contained", Rect{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 10, Height: 10}, false},
		{"disjoint", Rect{X: 20, Y: 20, Width: 5, Height: 5}, false},
		{"empty", Rect{X: 5, Y: 5, Width: 0, Height: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.Intersects(tt.b))
			assert.Equal(t, tt.expected, tt.b.Intersects(a))
		})
	}
}

func TestRect_ScaleNormalize(t *testing.T) {
	px := Rect{X: 0, Y: 614, Width: 1920, Height: 466}
	scene := Size{Width: 1920, Height: 1080}

	n := px.Normalize(scene)
	assert.InDelta(t, 0.0, n.X, 1e-9)
	assert.InDelta(t, 614.0/1080, n.Y, 1e-9)
	assert.InDelta(t, 1.0, n.Width, 1e-9)

	back := n.Scale(scene)
	assert.InDelta(t, px.Y, back.Y, 1e-9)
	assert.InDelta(t, px.Height, back.Height, 1e-9)
}

func TestRect_RandomPoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	zone := Rect{X: 0, Y: 0.7, Width: 1, Height: 0.3}

	for i := 0; i < 200; i++ {
		p := zone.RandomPoint(rng)
		assert.True(t, zone.Contains(p), "point %v should fall inside %v", p, zone)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, -1.0, Clamp(-3, -1, 1))
	assert.Equal(t, 1.0, Clamp(2, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 1))
}
