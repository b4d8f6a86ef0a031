package models

import "github.com/san-kum/episim/internal/dynamo"

func deriveSIR(r rates, x dynamo.State) dynamo.State {
	s, i := x[0], x[1]
	inf := r.incidence(s, i)
	rec := r.gamma * i

	return dynamo.State{-inf, inf - rec, rec}
}

// deriveSIS has no permanent immunity: recoveries flow back into S.
func deriveSIS(r rates, x dynamo.State) dynamo.State {
	s, i := x[0], x[1]
	inf := r.incidence(s, i)
	rec := r.gamma * i

	return dynamo.State{-inf + rec, inf - rec}
}
