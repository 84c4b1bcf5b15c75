package gui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/geom"
)

// Card proportions and inset match the offscreen renderer.
const (
	cardHalfW   = 0.5
	cardHalfH   = 0.7
	borderInset = 0.92
	stripeTrim  = 0.28
)

// whitePixel is the flat source for colored triangles.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

// drawCard fills the background and draws the visible panel: a gold
// border quad, the face quad inset inside it, and a diagonal stripe
// when the back shows.
func (g *Game) drawCard(screen *ebiten.Image) {
	fr := g.ctrl.Frame()

	screen.Fill(g.palette.Background)

	m := fr.Current
	face := g.palette.FrontColor
	if fr.Face == flip.Back {
		m = fr.Opposite
		face = g.palette.BackColor
	}

	scale := 0.35 * math.Min(screenW, screenH)

	outer := projectQuad(m, [4]geom.Vec3{
		{-cardHalfW, -cardHalfH, 0}, {cardHalfW, -cardHalfH, 0},
		{cardHalfW, cardHalfH, 0}, {-cardHalfW, cardHalfH, 0},
	}, scale)
	fillQuad(screen, outer, g.palette.EdgeColor)

	hw, hh := cardHalfW*borderInset, cardHalfH*borderInset
	inner := projectQuad(m, [4]geom.Vec3{
		{-hw, -hh, 0}, {hw, -hh, 0},
		{hw, hh, 0}, {-hw, hh, 0},
	}, scale)
	fillQuad(screen, inner, face)

	if fr.Face == flip.Back {
		t := stripeTrim
		stripe := projectQuad(m, [4]geom.Vec3{
			{-hw, -hh + t, 0}, {-hw + t, -hh, 0},
			{hw, hh - t, 0}, {hw - t, hh, 0},
		}, scale)
		fillQuad(screen, stripe, g.palette.EdgeColor)
	}
}

// projectQuad poses four card-local corners and maps them to screen
// pixels, y flipped so card y points up.
func projectQuad(m geom.Mat4, corners [4]geom.Vec3, scale float64) [4][2]float32 {
	var out [4][2]float32
	for i, c := range corners {
		p := m.ApplyPoint(c)
		out[i][0] = float32(screenW/2 + p[0]*scale)
		out[i][1] = float32(screenH/2 - p[1]*scale)
	}
	return out
}

// fillQuad draws a convex quad as two triangles over the white pixel.
func fillQuad(dst *ebiten.Image, quad [4][2]float32, clr color.NRGBA) {
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255

	vs := make([]ebiten.Vertex, 4)
	for i, q := range quad {
		vs[i] = ebiten.Vertex{
			DstX: q[0], DstY: q[1],
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	is := []uint16{0, 1, 2, 0, 2, 3}
	dst.DrawTriangles(vs, is, whitePixel, nil)
}
