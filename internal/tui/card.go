package tui

import (
	"math"

	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/geom"
)

// Card proportions match the raster renderer so both hosts show the
// same silhouette.
const (
	cardHalfW = 0.5
	cardHalfH = 0.7
)

const trailCapacity = 120

// cardCorners walks the face counter-clockwise from the lower-left, in
// card-local coordinates with y pointing up.
var cardCorners = [4]geom.Vec3{
	{-cardHalfW, -cardHalfH, 0},
	{cardHalfW, -cardHalfH, 0},
	{cardHalfW, cardHalfH, 0},
	{-cardHalfW, cardHalfH, 0},
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.drawCard()
}

// drawCard projects the visible panel onto the canvas: the quad
// outline, a diagonal marker when the back shows, and the corner trail
// left by recent flips.
func (m *Model) drawCard() {
	fr := m.ctrl.Frame()

	var sx, sy [4]int
	for i := range cardCorners {
		sx[i], sy[i] = m.projectCorner(fr, i)
	}
	for i := range sx {
		j := (i + 1) % 4
		m.canvas.DrawLine(sx[i], sy[i], sx[j], sy[j])
	}
	if fr.Face == flip.Back {
		m.canvas.DrawLine(sx[0], sy[0], sx[2], sy[2])
	}

	for _, pt := range m.trail {
		m.canvas.Set(pt.x, pt.y)
	}

	pw, ph := m.canvas.PixelSize()
	m.canvas.Set(pw/2, ph/2)
}

// projectCorner maps one card-local corner through the visible panel's
// pose to canvas pixels.
func (m *Model) projectCorner(fr flip.Frame, i int) (int, int) {
	pose := fr.Current
	if fr.Face == flip.Back {
		pose = fr.Opposite
	}
	pw, ph := m.canvas.PixelSize()
	scale := 0.32 * float64(ph)
	p := pose.ApplyPoint(cardCorners[i])
	x := pw/2 + int(math.Round(p[0]*scale))
	y := ph/2 - int(math.Round(p[1]*scale))
	return x, y
}
