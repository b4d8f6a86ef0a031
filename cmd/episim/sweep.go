package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/episim/internal/optim"
)

var (
	sweepAxes   []string
	sweepMetric string
)

func sweepParams(cmd *cobra.Command, args []string) error {
	model := ""
	if len(args) > 0 {
		model = args[0]
	}
	if len(sweepAxes) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	sc, err := buildScenario(cmd, model)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sweepAxes))
	ranges := make([][]float64, 0, len(sweepAxes))
	for _, axis := range sweepAxes {
		name, values, err := parseAxis(axis)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	out, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), sc, sweepMetric)
	if err != nil {
		return err
	}
	logger.Debug("sweep finished", zap.Int("points", len(out.Points)), zap.String("metric", sweepMetric))

	fmt.Printf("sweep %s over %s minimising %s (%d points)\n\n", sc.Model, strings.Join(names, ", "), sweepMetric, len(out.Points))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+sweepMetric)
	for _, pt := range out.Points {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", pt.Params[n])
		}
		fmt.Fprintf(w, "%.6g\n", pt.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(bestStyle.Render("best:"))
	for _, n := range names {
		fmt.Printf(" %s=%g", n, out.Best.Params[n])
	}
	fmt.Printf("  %s=%.6g\n", sweepMetric, out.Best.Value)
	return nil
}

// parseAxis reads "name=v1,v2,..." or "name=start:stop:step".
func parseAxis(axis string) (string, []float64, error) {
	name, list, ok := strings.Cut(axis, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(list) == "" {
		return "", nil, fmt.Errorf("invalid --param %q: want name=v1,v2 or name=start:stop:step", axis)
	}

	if parts := strings.Split(list, ":"); len(parts) == 3 {
		var bounds [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return "", nil, fmt.Errorf("invalid --param %q: %w", axis, err)
			}
			bounds[i] = v
		}
		start, stop, step := bounds[0], bounds[1], bounds[2]
		if step <= 0 || stop < start {
			return "", nil, fmt.Errorf("invalid --param %q: need start <= stop and step > 0", axis)
		}
		n := int(math.Floor((stop-start)/step+1e-9)) + 1
		values := make([]float64, n)
		for i := range values {
			values[i] = start + float64(i)*step
		}
		return name, values, nil
	}

	var values []float64
	for _, p := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid --param %q: %w", axis, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}
