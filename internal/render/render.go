// Package render rasterizes published animation frames into images and
// encodes scripted runs as animated WebP.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/flipdeck/flipdeck/internal/flip"
	"github.com/flipdeck/flipdeck/internal/geom"
)

// Card proportions in world units; the projection scales them to the frame.
const (
	cardW       = 1.0
	cardH       = 1.4
	borderInset = 0.92
	stripeTrim  = 0.28
)

// Options shape one rasterized frame. Zero fields fall back to defaults.
type Options struct {
	Width       int
	Height      int
	Supersample int

	FrontColor color.NRGBA
	BackColor  color.NRGBA
	EdgeColor  color.NRGBA
	Background color.NRGBA
}

func DefaultOptions() Options {
	return Options{
		Width:       480,
		Height:      360,
		Supersample: 3,
		FrontColor:  color.NRGBA{0xf2, 0xea, 0xd8, 0xff},
		BackColor:   color.NRGBA{0x2b, 0x3a, 0x67, 0xff},
		EdgeColor:   color.NRGBA{0xd4, 0xa0, 0x4c, 0xff},
		Background:  color.NRGBA{0x0a, 0x0a, 0x0a, 0xff},
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Supersample <= 0 {
		o.Supersample = def.Supersample
	}
	if o.FrontColor.A == 0 {
		o.FrontColor = def.FrontColor
	}
	if o.BackColor.A == 0 {
		o.BackColor = def.BackColor
	}
	if o.EdgeColor.A == 0 {
		o.EdgeColor = def.EdgeColor
	}
	if o.Background.A == 0 {
		o.Background = def.Background
	}
	return o
}

// Rasterize draws the visible face of the posed card onto a fresh image,
// supersampled and filtered down for clean edges.
func Rasterize(fr flip.Frame, opts Options) *image.NRGBA {
	opts = opts.withDefaults()
	ss := opts.Supersample
	w, h := opts.Width*ss, opts.Height*ss

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = opts.Background.R
		img.Pix[i+1] = opts.Background.G
		img.Pix[i+2] = opts.Background.B
		img.Pix[i+3] = opts.Background.A
	}

	// Current poses the front panel, Opposite the back one; draw whichever
	// faces the viewer.
	m := fr.Current
	face := opts.FrontColor
	if fr.Face == flip.Back {
		m = fr.Opposite
		face = opts.BackColor
	}

	scale := 0.35 * float64(minInt(opts.Width, opts.Height)) * float64(ss)
	hw, hh := cardW/2, cardH/2

	outer := projectQuad(m, [4]geom.Vec3{
		{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0},
	}, w, h, scale)
	fillQuad(img, outer, opts.EdgeColor)

	in := borderInset
	inner := projectQuad(m, [4]geom.Vec3{
		{-hw * in, -hh * in, 0}, {hw * in, -hh * in, 0},
		{hw * in, hh * in, 0}, {-hw * in, hh * in, 0},
	}, w, h, scale)
	fillQuad(img, inner, face)

	if fr.Face == flip.Back {
		t := stripeTrim
		stripe := projectQuad(m, [4]geom.Vec3{
			{-hw, -hh + t, 0}, {-hw + t, -hh, 0},
			{hw, hh - t, 0}, {hw - t, hh, 0},
		}, w, h, scale)
		fillQuad(img, stripe, opts.EdgeColor)
	}

	if ss > 1 {
		img = downsample(img, opts.Width, opts.Height)
	}
	return img
}

func projectQuad(m geom.Mat4, corners [4]geom.Vec3, w, h int, scale float64) [4][2]float64 {
	var out [4][2]float64
	for i, c := range corners {
		p := m.ApplyPoint(c)
		out[i] = [2]float64{float64(w)/2 + p[0]*scale, float64(h)/2 - p[1]*scale}
	}
	return out
}

func fillQuad(img *image.NRGBA, quad [4][2]float64, col color.NRGBA) {
	b := img.Bounds()
	minX, minY := quad[0][0], quad[0][1]
	maxX, maxY := minX, minY
	for _, q := range quad[1:] {
		if q[0] < minX {
			minX = q[0]
		}
		if q[0] > maxX {
			maxX = q[0]
		}
		if q[1] < minY {
			minY = q[1]
		}
		if q[1] > maxY {
			maxY = q[1]
		}
	}

	x0 := maxInt(int(minX), b.Min.X)
	y0 := maxInt(int(minY), b.Min.Y)
	x1 := minInt(int(maxX)+1, b.Max.X)
	y1 := minInt(int(maxY)+1, b.Max.Y)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if insideQuad(quad, float64(x)+0.5, float64(y)+0.5) {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

// insideQuad tests the point against each edge; all cross products sharing a
// sign means the point sits inside the convex quad, whichever way the
// projection wound it.
func insideQuad(q [4][2]float64, x, y float64) bool {
	sign := 0.0
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		cross := (q[j][0]-q[i][0])*(y-q[i][1]) - (q[j][1]-q[i][1])*(x-q[i][0])
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

func downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
