package sim

import (
	"context"
	"math"
	"strings"

	"github.com/san-kum/episim/internal/integrators"
)

// MethodDiff is one method's deviation from the reference run.
type MethodDiff struct {
	Method string
	Result *Result
	// MaxAbs is the largest absolute difference per compartment over the
	// whole series.
	MaxAbs map[string]float64
}

// Compare runs base once per method, plus RK4 as the reference, and reports
// each method's deviation from the reference. Methods resolve the way Run
// resolves them, so an unknown name compares RK4 against itself.
func Compare(ctx context.Context, base Config, methods []string, workers int) (*Result, []MethodDiff, error) {
	cfgs := make([]Config, 0, len(methods)+1)
	ref := base
	ref.Integrator = integrators.MethodRK4.String()
	cfgs = append(cfgs, ref)
	for _, m := range methods {
		cfg := base
		cfg.Integrator = strings.TrimSpace(m)
		cfgs = append(cfgs, cfg)
	}

	results, err := RunAll(ctx, cfgs, workers)
	if err != nil {
		return nil, nil, err
	}

	reference := results[0]
	diffs := make([]MethodDiff, 0, len(methods))
	for _, res := range results[1:] {
		diffs = append(diffs, MethodDiff{
			Method: res.Meta.Method,
			Result: res,
			MaxAbs: MaxAbsDiff(reference, res),
		})
	}
	return reference, diffs, nil
}

// MaxAbsDiff compares two runs sample by sample over their common length.
func MaxAbsDiff(a, b *Result) map[string]float64 {
	out := make(map[string]float64, len(a.Series.Labels))
	n := min(a.Series.Len(), b.Series.Len())
	for i, label := range a.Series.Labels {
		other := b.Series.Get(label)
		if other == nil {
			continue
		}
		mine := a.Series.Values[i]
		var worst float64
		for k := 0; k < n; k++ {
			worst = math.Max(worst, math.Abs(mine[k]-other[k]))
		}
		out[label] = worst
	}
	return out
}
