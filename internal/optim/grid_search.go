package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/dynamo"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/sim"
)

// GridSearch evaluates every combination of parameter values and keeps the
// one that minimises a KPI.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Point is one evaluated grid cell.
type Point struct {
	Params dynamo.Params
	Value  float64
}

type Outcome struct {
	Best   Point
	Points []Point
}

// derivedBy lists the engine rates a scenario derives from a sweepable input.
// A fixed rate shadows the swept input, so the cell drops it unless the
// rate is swept too.
var derivedBy = map[string]string{
	"R0": "beta",
	"D":  "gamma",
}

// Search sets each grid cell's values on a copy of base, validates the
// result, resolves it into engine params and minimises the named metric
// from metrics.Summarize.
func (g *GridSearch) Search(ctx context.Context, base *config.Scenario, metricName string) (*Outcome, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("grid search: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}

	out := &Outcome{Best: Point{Value: math.Inf(1)}}
	if err := g.searchRecursive(ctx, 0, dynamo.Params{}, base, metricName, out); err != nil {
		return nil, err
	}
	if out.Best.Params == nil {
		return nil, fmt.Errorf("grid search: metric %q not produced for model %s", metricName, base.Model)
	}
	return out, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current dynamo.Params,
	base *config.Scenario,
	metricName string,
	out *Outcome,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		sc := base.Clone()
		for k, v := range current {
			if rate, ok := derivedBy[k]; ok && !current.Has(rate) {
				delete(sc.Params, rate)
			}
			sc.Set(k, v)
		}
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("grid cell %v: %w", current, err)
		}

		res, err := sim.Run(sc.SimConfig())
		if err != nil {
			return err
		}

		val, ok := metrics.Summarize(res)[metricName]
		if !ok {
			return nil
		}
		pt := Point{Params: current.Clone(), Value: val}
		out.Points = append(out.Points, pt)
		if val < out.Best.Value {
			out.Best = pt
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := current.Clone()
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, base, metricName, out); err != nil {
			return err
		}
	}
	return nil
}
