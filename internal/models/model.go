package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/episim/internal/dynamo"
)

// Kind identifies one of the built-in compartmental models. The catalog is
// closed: every Kind has fixed dims and a derivative.
type Kind int

const (
	SIR Kind = iota
	SEIR
	SIRD
	SIRV
	SIS
)

var kinds = []Kind{SIR, SEIR, SIRD, SIRV, SIS}

var names = map[Kind]string{
	SIR:  "SIR",
	SEIR: "SEIR",
	SIRD: "SIRD",
	SIRV: "SIRV",
	SIS:  "SIS",
}

var dims = map[Kind][]string{
	SIR:  {"S", "I", "R"},
	SEIR: {"S", "E", "I", "R"},
	SIRD: {"S", "I", "R", "D"},
	SIRV: {"S", "I", "R", "V"},
	SIS:  {"S", "I"},
}

var descriptions = map[Kind]string{
	SIR:  "susceptible, infected, recovered",
	SEIR: "adds a latent (exposed) stage",
	SIRD: "adds disease mortality",
	SIRV: "adds vaccination from S to V",
	SIS:  "no lasting immunity",
}

// All returns every model in catalog order.
func All() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Lookup resolves a case-insensitive model identifier.
func Lookup(id string) (Kind, error) {
	key := strings.ToUpper(strings.TrimSpace(id))
	for _, k := range kinds {
		if names[k] == key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownModel, id)
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Description() string { return descriptions[k] }

// Dims returns the compartment labels in state order.
func (k Kind) Dims() []string {
	d := dims[k]
	out := make([]string, len(d))
	copy(out, d)
	return out
}

func (k Kind) StateDim() int { return len(dims[k]) }

// Index returns the position of label in the state vector, or -1.
func (k Kind) Index(label string) int {
	for i, d := range dims[k] {
		if d == label {
			return i
		}
	}
	return -1
}

// Init builds the starting state: S = N - I0, I = I0, everything else 0.
func (k Kind) Init(p dynamo.Params) dynamo.State {
	n := nonneg(p.Float("N", 0))
	i0 := nonneg(p.Float("I0", 0))

	x := make(dynamo.State, k.StateDim())
	x[0] = math.Max(0, n-i0)
	x[k.Index("I")] = i0
	return x
}

// Derive evaluates the model equations at x. It is a pure function of its
// arguments.
func (k Kind) Derive(p dynamo.Params, x dynamo.State) dynamo.State {
	r := ratesFrom(p)
	switch k {
	case SEIR:
		return deriveSEIR(r, x)
	case SIRD:
		return deriveSIRD(r, x)
	case SIRV:
		return deriveSIRV(r, x)
	case SIS:
		return deriveSIS(r, x)
	default:
		return deriveSIR(r, x)
	}
}

// Derivative binds p and returns the right-hand side for an integrator.
func (k Kind) Derivative(p dynamo.Params) dynamo.Derivative {
	return func(x dynamo.State) dynamo.State {
		return k.Derive(p, x)
	}
}

type rates struct {
	n       float64
	betaEff float64
	gamma   float64
	sigma   float64
	mu      float64
	nu      float64
}

func ratesFrom(p dynamo.Params) rates {
	measures := clamp01(p.Float("measures", 0))
	return rates{
		n:       math.Max(1, p.Float("N", 1)),
		betaEff: p.Float("beta", 0) * (1 - measures),
		gamma:   p.Float("gamma", 0),
		sigma:   p.Float("sigma", 0),
		mu:      nonneg(p.Float("mu", 0)),
		nu:      nonneg(p.Float("nu", 0)),
	}
}

// incidence is the mass-action infection flow beta_eff*S*I/N.
func (r rates) incidence(s, i float64) float64 {
	return r.betaEff * s * i / r.n
}

func nonneg(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
