package models

import "github.com/san-kum/episim/internal/dynamo"

func deriveSIRD(r rates, x dynamo.State) dynamo.State {
	s, i := x[0], x[1]
	inf := r.incidence(s, i)
	rec := r.gamma * i
	death := r.mu * i

	return dynamo.State{-inf, inf - rec - death, rec, death}
}

// deriveSIRV moves susceptibles straight to V at rate nu.
func deriveSIRV(r rates, x dynamo.State) dynamo.State {
	s, i := x[0], x[1]
	inf := r.incidence(s, i)
	rec := r.gamma * i
	vac := r.nu * s

	return dynamo.State{-inf - vac, inf - rec, rec, vac}
}
