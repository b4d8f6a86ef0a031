package sim

import (
	"math"

	"github.com/san-kum/episim/internal/dynamo"
)

// Stabilize corrects a freshly integrated state in place. Non-finite and
// negative compartments become 0. If the total then differs from n by more
// than max(1e-9*n, 1e-9), the difference is added to the first compartment,
// which is clamped again. The first compartment absorbs the correction for
// every model, including SIRD and SIRV.
func Stabilize(x dynamo.State, n float64) dynamo.State {
	for i := range x {
		x[i] = nonneg(x[i])
	}
	if len(x) == 0 {
		return x
	}

	drift := n - x.Sum()
	tol := math.Max(1e-9*n, 1e-9)
	if !math.IsNaN(drift) && !math.IsInf(drift, 0) && math.Abs(drift) > tol {
		x[0] = nonneg(x[0] + drift)
	}
	return x
}

func nonneg(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
