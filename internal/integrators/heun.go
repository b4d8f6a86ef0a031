package integrators

import "github.com/san-kum/episim/internal/dynamo"

// Heun is the improved Euler predictor-corrector, second order.
type Heun struct{}

func NewHeun() Heun {
	return Heun{}
}

func (Heun) Step(f dynamo.Derivative, x dynamo.State, h float64) dynamo.State {
	n := len(x)

	k1 := f(x)
	pred := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		pred[i] = x[i] + h*k1[i]
	}
	k2 := f(pred)

	result := make(dynamo.State, n)
	h2 := h / 2
	for i := 0; i < n; i++ {
		result[i] = x[i] + h2*(k1[i]+k2[i])
	}
	return result
}
