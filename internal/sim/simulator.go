package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/episim/internal/dynamo"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/models"
)

const (
	DefaultModel      = "SIR"
	DefaultIntegrator = "rk4"

	DefaultN  = 1_000_000
	DefaultI0 = 10
	DefaultDt = 0.5
	DefaultT  = 180

	MinDt = 1e-6

	// MaxSteps bounds the series a single run allocates.
	MaxSteps = 1 << 27
)

// Inputs are the sanitized scalars a run is driven by.
type Inputs struct {
	N     float64
	I0    float64
	Dt    float64
	T     float64
	Steps int

	// StepCount is floor(T/dt) in float64, before any int conversion.
	StepCount float64
}

// Sanitize resolves N, I0, dt and T to safe values. It never fails.
func Sanitize(p dynamo.Params) Inputs {
	in := Inputs{
		N:  math.Max(1, p.Float("N", DefaultN)),
		Dt: math.Max(MinDt, p.Float("dt", DefaultDt)),
		I0: math.Max(0, p.Float("I0", DefaultI0)),
	}
	in.T = math.Max(in.Dt, p.Float("T", DefaultT))
	in.StepCount = math.Max(1, math.Floor(in.T/in.Dt))
	in.Steps = int(math.Min(in.StepCount, MaxSteps))
	return in
}

// Run integrates one model from t=0 to T with a fixed step. An unknown model
// is an error, as is a step count above MaxSteps; an unknown integrator
// silently falls back to RK4. Run shares nothing between calls and is safe to
// call concurrently.
func Run(cfg Config) (*Result, error) {
	modelID := cfg.Model
	if modelID == "" {
		modelID = DefaultModel
	}
	kind, err := models.Lookup(modelID)
	if err != nil {
		return nil, err
	}

	methodID := cfg.Integrator
	if methodID == "" {
		methodID = DefaultIntegrator
	}
	method := integrators.Lookup(methodID)
	integ := method.Integrator()

	params := cfg.Params
	if params == nil {
		params = dynamo.Params{}
	}
	in := Sanitize(params)
	if in.StepCount > MaxSteps {
		return nil, fmt.Errorf("%w: T/dt gives %.0f steps, limit is %d", dynamo.ErrTooManySteps, in.StepCount, MaxSteps)
	}

	initParams := params.Clone()
	initParams["N"] = in.N
	initParams["I0"] = in.I0
	x := kind.Init(initParams)
	for i := range x {
		x[i] = nonneg(x[i])
	}

	// The derivative sees the caller's params with only N, dt and T replaced.
	deriveParams := params.Clone()
	deriveParams["N"] = in.N
	deriveParams["dt"] = in.Dt
	deriveParams["T"] = in.T
	f := kind.Derivative(deriveParams)

	dims := kind.Dims()
	series := Series{
		T:      make([]float64, in.Steps+1),
		Labels: dims,
		Values: make([][]float64, len(dims)),
	}
	for i := range series.Values {
		series.Values[i] = make([]float64, in.Steps+1)
		series.Values[i][0] = x[i]
	}

	for k := 1; k <= in.Steps; k++ {
		x = Stabilize(integ.Step(f, x, in.Dt), in.N)

		series.T[k] = float64(k) * in.Dt
		for i := range x {
			series.Values[i][k] = x[i]
		}
	}

	return &Result{
		Series: series,
		Meta: Meta{
			Model:  kind.String(),
			Method: method.String(),
			Dims:   kind.Dims(),
		},
		Drift: math.Abs(x.Sum() - in.N),
		Steps: in.Steps,
		N:     in.N,
		Dt:    in.Dt,
	}, nil
}
