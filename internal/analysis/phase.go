package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/episim/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait holds a 2D trajectory through compartment space.
type PhasePortrait struct {
	XLabel, YLabel string
	Points         []Point
}

// NewPhasePortrait pairs two compartments of a series sample by sample.
func NewPhasePortrait(series *sim.Series, xLabel, yLabel string) (*PhasePortrait, error) {
	xs := series.Get(xLabel)
	if xs == nil {
		return nil, fmt.Errorf("unknown compartment %q (have %v)", xLabel, series.Labels)
	}
	ys := series.Get(yLabel)
	if ys == nil {
		return nil, fmt.Errorf("unknown compartment %q (have %v)", yLabel, series.Labels)
	}

	portrait := &PhasePortrait{
		XLabel: xLabel,
		YLabel: yLabel,
		Points: make([]Point, len(xs)),
	}
	for i := range xs {
		portrait.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return portrait, nil
}

// PhasePortraitToASCII renders the portrait on a width x height grid.
func PhasePortraitToASCII(portrait *PhasePortrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	// Populations are non-negative, so both axes start at 0.
	var maxX, maxY float64
	for _, p := range portrait.Points {
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	rangeX, rangeY := maxX, maxY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for row := 0; row < height; row++ {
		canvas[row][0] = '│'
	}
	for col := 0; col < width; col++ {
		canvas[height-1][col] = '─'
	}
	canvas[height-1][0] = '└'

	for _, p := range portrait.Points {
		col := int(p.X / rangeX * float64(width-1))
		row := height - 1 - int(p.Y/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}
	start := portrait.Points[0]
	col := int(start.X / rangeX * float64(width-1))
	row := height - 1 - int(start.Y/rangeY*float64(height-1))
	if row >= 0 && row < height && col >= 0 && col < width {
		canvas[row][col] = 'o'
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (max %.0f)\n", portrait.YLabel, maxY)
	for _, r := range canvas {
		sb.WriteString(string(r))
		sb.WriteRune('\n')
	}
	fmt.Fprintf(&sb, "%*s\n", width, fmt.Sprintf("%s (max %.0f)", portrait.XLabel, maxX))
	return sb.String()
}
