package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/episim/internal/sim"
)

// Palette is cycled through for compartments in label order.
var Palette = []string{"#4fc3f7", "#ff8a65", "#81c784", "#e57373", "#ba68c8", "#ffd54f"}

// SeriesToSVG draws every compartment of series as a polyline over time on
// a shared population axis. Series with fewer than two samples render empty.
func SeriesToSVG(series *sim.Series, width, height int) string {
	if series == nil || series.Len() < 2 || width <= 0 || height <= 0 {
		return ""
	}

	minT, maxT := series.T[0], series.T[len(series.T)-1]
	maxY := 0.0
	for _, vals := range series.Values {
		for _, v := range vals {
			if v > maxY {
				maxY = v
			}
		}
	}

	rangeT := maxT - minT
	if rangeT == 0 {
		rangeT = 1
	}
	if maxY == 0 {
		maxY = 1
	}
	maxY *= 1.05

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for i, label := range series.Labels {
		color := Palette[i%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, label, color))

		for k, v := range series.Values[i] {
			x := (series.T[k] - minT) / rangeT * float64(width)
			y := float64(height) - v/maxY*float64(height)

			if k == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 8+i*28, 16, color, label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSVG writes SeriesToSVG output to w.
func WriteSVG(w io.Writer, series *sim.Series, width, height int) error {
	svg := SeriesToSVG(series, width, height)
	if svg == "" {
		return fmt.Errorf("series has too few samples to plot")
	}
	_, err := io.WriteString(w, svg)
	return err
}
