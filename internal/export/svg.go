package export

import (
	"fmt"
	"strings"

	"github.com/flipdeck/flipdeck/internal/flip"
)

// XY is one point of a plotted trajectory, in data space.
type XY struct {
	X, Y float64
}

// CurveToSVG renders the easing curve as an SVG polyline, with a dashed
// guide at the knee height so the snap/settle split is visible.
func CurveToSVG(snapTime, snapTravel float64, samples, width, height int, strokeColor string) string {
	if samples < 2 {
		return ""
	}

	pts := make([]XY, 0, samples+1)
	for i, f := range flip.Curve(snapTime, snapTravel, samples) {
		pts = append(pts, XY{X: float64(i) / float64(samples), Y: f})
	}
	return TrajectoryToSVG(pts, width, height, strokeColor, snapTravel)
}

// TrajectoryToSVG creates an SVG from trajectory data, with optional dashed
// horizontal guides at the given data-space heights.
func TrajectoryToSVG(points []XY, width, height int, strokeColor string, guides ...float64) string {
	if len(points) < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	for _, g := range guides {
		if g < minY {
			minY = g
		}
		if g > maxY {
			maxY = g
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toY := func(y float64) float64 {
		return float64(height) - (y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, g := range guides {
		y := toY(g)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333" stroke-width="1" stroke-dasharray="4 4"/>
`, y, width, y))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := toY(p.Y)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
