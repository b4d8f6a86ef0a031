package models

import "github.com/san-kum/episim/internal/dynamo"

func deriveSEIR(r rates, x dynamo.State) dynamo.State {
	s, e, i := x[0], x[1], x[2]
	inf := r.incidence(s, i)
	onset := r.sigma * e
	rec := r.gamma * i

	return dynamo.State{-inf, inf - onset, onset - rec, rec}
}
