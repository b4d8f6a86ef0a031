package integrators

import "github.com/san-kum/episim/internal/dynamo"

// RK4 is the classical four-stage Runge-Kutta method. Scratch space is
// allocated per step so a single value can be shared across concurrent runs.
type RK4 struct{}

func NewRK4() RK4 {
	return RK4{}
}

func (RK4) Step(f dynamo.Derivative, x dynamo.State, h float64) dynamo.State {
	n := len(x)
	// f must return a fresh vector; scratch is overwritten between stages.
	scratch := make(dynamo.State, n)

	k1 := f(x)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + h*0.5*k1[i]
	}
	k2 := f(scratch)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + h*0.5*k2[i]
	}
	k3 := f(scratch)

	for i := 0; i < n; i++ {
		scratch[i] = x[i] + h*k3[i]
	}
	k4 := f(scratch)

	result := make(dynamo.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + h6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
