package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/sim"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

func compareIntegrators(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd, args[0])
	if err != nil {
		return err
	}
	methods := args[1:]

	start := time.Now()
	ref, diffs, err := sim.Compare(cmd.Context(), sc.SimConfig(), methods, 0)
	if err != nil {
		return err
	}
	logger.Debug("compare finished", zap.Strings("methods", methods), zap.Duration("elapsed", time.Since(start)))

	labels := ref.Meta.Dims
	fmt.Println(headerStyle.Render(fmt.Sprintf("comparing integrators for %s (dt=%g, days=%g)", ref.Meta.Model, ref.Dt, float64(ref.Steps)*ref.Dt)))
	fmt.Println(dimStyle.Render("max |x - x_rk4| over the run"))
	fmt.Println()

	var hdr strings.Builder
	fmt.Fprintf(&hdr, "%-12s  %-5s  %-12s  %-12s", "integrator", "order", "drift", "peak_I")
	for _, l := range labels {
		fmt.Fprintf(&hdr, "  %-12s", "Δ"+l)
	}
	fmt.Println(headerStyle.Render(hdr.String()))
	fmt.Println(strings.Repeat("-", lipgloss.Width(hdr.String())))

	for i, d := range diffs {
		name := d.Method
		if requested := strings.ToLower(strings.TrimSpace(methods[i])); requested != d.Method {
			name = fmt.Sprintf("%s→%s", requested, d.Method)
		}
		order := integrators.Lookup(d.Method).Order()
		peak := metrics.Summarize(d.Result)["peak_I"]

		fmt.Printf("%-12s  %-5d  %12.3e  %12.1f", name, order, d.Result.Drift, peak)
		for _, l := range labels {
			fmt.Printf("  %12.3e", d.MaxAbs[l])
		}
		fmt.Println()
	}

	if best := mostAccurate(diffs, methods); best != "" {
		fmt.Println()
		fmt.Println(bestStyle.Render("closest to rk4: " + best))
	}
	return nil
}

// mostAccurate names the non-reference method with the smallest worst-case
// deviation.
func mostAccurate(diffs []sim.MethodDiff, requested []string) string {
	best := ""
	bestErr := 0.0
	for i, d := range diffs {
		if d.Method == integrators.MethodRK4.String() {
			continue
		}
		worst := 0.0
		for _, v := range d.MaxAbs {
			worst = max(worst, v)
		}
		if best == "" || worst < bestErr {
			best, bestErr = requested[i], worst
		}
	}
	return best
}
