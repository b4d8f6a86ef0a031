package dynamo

import (
	"math"
	"sort"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total population across all compartments.
func (s State) Sum() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum
}

// Params is a read-only parameter record for one run. Keys follow the usual
// epidemiological names: N, I0, beta, gamma, sigma, mu, nu, measures, dt, T.
type Params map[string]float64

// Float returns the value for key, or def when it is absent or not finite.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// Has reports whether key holds a finite value.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Derivative is the right-hand side of an autonomous ODE with its
// parameters already bound.
type Derivative func(x State) State

// Integrator advances x by one fixed step h. Implementations must not
// mutate x and must return a freshly allocated vector of the same length.
type Integrator interface {
	Step(f Derivative, x State, h float64) State
}
