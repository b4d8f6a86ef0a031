package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/episim/internal/dynamo"
)

func baselineParams() dynamo.Params {
	return dynamo.Params{"N": 1_000_000, "I0": 10, "beta": 0.5, "gamma": 0.2, "dt": 0.5, "T": 180}
}

func TestRunSIRScenario(t *testing.T) {
	res, err := Run(Config{Model: "SIR", Integrator: "rk4", Params: baselineParams()})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Series.Len() != 361 {
		t.Errorf("expected 361 samples, got %d", res.Series.Len())
	}
	if s0 := res.Series.Get("S")[0]; math.Abs(s0-999990) > 1e-9 {
		t.Errorf("expected S[0] = 999990, got %f", s0)
	}
	if i0 := res.Series.Get("I")[0]; i0 != 10 {
		t.Errorf("expected I[0] = 10, got %f", i0)
	}
	if r0 := res.Series.Get("R")[0]; r0 != 0 {
		t.Errorf("expected R[0] = 0, got %f", r0)
	}
	if res.Drift >= 1 {
		t.Errorf("expected drift < 1, got %f", res.Drift)
	}
	if res.Meta.Model != "SIR" || res.Meta.Method != "rk4" {
		t.Errorf("unexpected meta: %+v", res.Meta)
	}
	if res.Steps != 360 {
		t.Errorf("expected 360 steps, got %d", res.Steps)
	}
}

func TestRunSEIRScenario(t *testing.T) {
	p := baselineParams()
	p["sigma"] = 0.25

	res, err := Run(Config{Model: "SEIR", Params: p})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := []string{"S", "E", "I", "R"}
	if len(res.Meta.Dims) != len(want) {
		t.Fatalf("expected dims %v, got %v", want, res.Meta.Dims)
	}
	for i := range want {
		if res.Meta.Dims[i] != want[i] {
			t.Errorf("dims[%d] = %s, want %s", i, res.Meta.Dims[i], want[i])
		}
	}
	if e0 := res.Series.Get("E")[0]; e0 != 0 {
		t.Errorf("expected E[0] = 0, got %f", e0)
	}
}

func TestRunDefaults(t *testing.T) {
	res, err := Run(Config{})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Meta.Model != "SIR" || res.Meta.Method != "rk4" {
		t.Errorf("unexpected defaults: %+v", res.Meta)
	}
	if res.N != DefaultN || res.Dt != DefaultDt {
		t.Errorf("expected N=%v dt=%v, got N=%v dt=%v", float64(DefaultN), DefaultDt, res.N, res.Dt)
	}
	if res.Series.Len() != 361 {
		t.Errorf("expected 361 samples, got %d", res.Series.Len())
	}
}

func TestRunUnknownModel(t *testing.T) {
	res, err := Run(Config{Model: "XYZ"})
	if !errors.Is(err, dynamo.ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
	if res != nil {
		t.Error("expected no result for unknown model")
	}
}

func TestRunIntegratorFallback(t *testing.T) {
	res, err := Run(Config{Model: "SIR", Integrator: "bogus"})
	if err != nil {
		t.Fatalf("unknown integrator should not fail: %v", err)
	}
	if res.Meta.Method != "rk4" {
		t.Errorf("expected method rk4, got %s", res.Meta.Method)
	}
}

func TestRunCaseInsensitive(t *testing.T) {
	res, err := Run(Config{Model: "sird", Integrator: "HEUN", Params: dynamo.Params{"mu": 0.01}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Meta.Model != "SIRD" || res.Meta.Method != "heun" {
		t.Errorf("unexpected meta: %+v", res.Meta)
	}
}

func TestRunLengths(t *testing.T) {
	tests := []struct {
		name  string
		dt, T float64
		steps int
	}{
		{"exact", 0.5, 10, 20},
		{"truncated", 0.3, 1, 3},
		{"horizon below dt", 2, 1, 1},
		{"one day", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(Config{Model: "SIS", Params: dynamo.Params{"dt": tt.dt, "T": tt.T}})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if res.Steps != tt.steps {
				t.Errorf("expected %d steps, got %d", tt.steps, res.Steps)
			}
			for i, vals := range res.Series.Values {
				if len(vals) != res.Series.Len() {
					t.Errorf("%s has %d samples, t has %d", res.Series.Labels[i], len(vals), res.Series.Len())
				}
			}
			last := res.Series.T[res.Series.Len()-1]
			if math.Abs(last-float64(tt.steps)*res.Dt) > 1e-12 {
				t.Errorf("expected last t = %v, got %v", float64(tt.steps)*res.Dt, last)
			}
		})
	}
}

func TestRunDoesNotMutateParams(t *testing.T) {
	p := dynamo.Params{"N": -5, "beta": 0.3}
	if _, err := Run(Config{Params: p}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(p) != 2 || p["N"] != -5 {
		t.Errorf("params were mutated: %v", p)
	}
}

func TestRunOverfullInitialState(t *testing.T) {
	res, err := Run(Config{Params: dynamo.Params{"N": 5, "I0": 10, "T": 5, "dt": 1}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Series.Get("S")[0] != 0 {
		t.Errorf("expected S[0] clamped to 0, got %v", res.Series.Get("S")[0])
	}
	if res.Drift < 4 {
		t.Errorf("expected the excess population to show up in drift, got %v", res.Drift)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		params dynamo.Params
		want   Inputs
	}{
		{"defaults", dynamo.Params{}, Inputs{N: 1e6, I0: 10, Dt: 0.5, T: 180, Steps: 360}},
		{"negative N", dynamo.Params{"N": -5}, Inputs{N: 1, I0: 10, Dt: 0.5, T: 180, Steps: 360}},
		{"non-finite", dynamo.Params{"N": math.NaN(), "dt": math.Inf(1), "T": math.NaN()}, Inputs{N: 1e6, I0: 10, Dt: 0.5, T: 180, Steps: 360}},
		{"tiny dt", dynamo.Params{"dt": 1e-9, "T": 1e-7}, Inputs{N: 1e6, I0: 10, Dt: 1e-6, T: 1e-6, Steps: 1}},
		{"T below dt", dynamo.Params{"dt": 2, "T": 1}, Inputs{N: 1e6, I0: 10, Dt: 2, T: 2, Steps: 1}},
		{"negative I0", dynamo.Params{"I0": -1}, Inputs{N: 1e6, I0: 0, Dt: 0.5, T: 180, Steps: 360}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.params)
			if got.N != tt.want.N || got.I0 != tt.want.I0 || got.Dt != tt.want.Dt || got.T != tt.want.T {
				t.Errorf("Sanitize() = %+v, want %+v", got, tt.want)
			}
			if got.Steps != tt.want.Steps {
				t.Errorf("Steps = %d, want %d", got.Steps, tt.want.Steps)
			}
		})
	}
}

func TestSanitizeHugeStepCount(t *testing.T) {
	in := Sanitize(dynamo.Params{"T": 1e13, "dt": 1e-6})
	if in.StepCount != 1e19 {
		t.Errorf("StepCount = %v, want 1e19", in.StepCount)
	}
	if in.Steps != MaxSteps {
		t.Errorf("Steps = %d, want it clamped to %d", in.Steps, MaxSteps)
	}
}

func TestRunTooManySteps(t *testing.T) {
	for _, p := range []dynamo.Params{
		{"T": 1e13, "dt": 1e-6},
		{"T": 1e300},
		{"T": MaxSteps + 1, "dt": 1},
	} {
		res, err := Run(Config{Model: "SIR", Params: p})
		if !errors.Is(err, dynamo.ErrTooManySteps) {
			t.Errorf("%v: expected ErrTooManySteps, got %v", p, err)
		}
		if res != nil {
			t.Errorf("%v: expected no result", p)
		}
	}
}
