package integrators

import "github.com/san-kum/episim/internal/dynamo"

// Euler is the explicit first-order method y' = y + h*f(y).
type Euler struct{}

func NewEuler() Euler {
	return Euler{}
}

func (Euler) Step(f dynamo.Derivative, x dynamo.State, h float64) dynamo.State {
	dx := f(x)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + h*dx[i]
	}
	return result
}
