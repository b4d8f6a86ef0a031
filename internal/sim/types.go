package sim

import (
	"encoding/json"

	"github.com/san-kum/episim/internal/dynamo"
)

// Config tells Run which model to integrate, how, and with what parameters.
type Config struct {
	Model      string        `json:"model" yaml:"model"`
	Integrator string        `json:"integrator" yaml:"integrator"`
	Params     dynamo.Params `json:"params" yaml:"params"`
}

// Series is the trajectory sampled at every step, t=0 included. Values is
// aligned with Labels.
type Series struct {
	T      []float64
	Labels []string
	Values [][]float64
}

// Get returns the samples for a compartment label, or nil.
func (s *Series) Get(label string) []float64 {
	for i, l := range s.Labels {
		if l == label {
			return s.Values[i]
		}
	}
	return nil
}

// Len is the number of samples.
func (s *Series) Len() int { return len(s.T) }

// At returns the state at sample k.
func (s *Series) At(k int) dynamo.State {
	x := make(dynamo.State, len(s.Values))
	for i := range s.Values {
		x[i] = s.Values[i][k]
	}
	return x
}

// MarshalJSON encodes the series as {"t": [...], "S": [...], ...}.
func (s Series) MarshalJSON() ([]byte, error) {
	out := make(map[string][]float64, len(s.Labels)+1)
	out["t"] = s.T
	for i, l := range s.Labels {
		out[l] = s.Values[i]
	}
	return json.Marshal(out)
}

type Meta struct {
	Model  string   `json:"model"`
	Method string   `json:"method"`
	Dims   []string `json:"dims"`
}

type Result struct {
	Series Series  `json:"series"`
	Meta   Meta    `json:"meta"`
	Drift  float64 `json:"drift"`
	Steps  int     `json:"steps"`
	N      float64 `json:"n"`
	Dt     float64 `json:"dt"`
}
