package config

import (
	"sort"
	"strings"

	"github.com/san-kum/episim/internal/models"
)

var Presets = map[string]map[string]*Scenario{
	"SIR": {
		"baseline": {
			Name: "baseline", Model: "SIR", Integrator: "rk4",
			Params: map[string]float64{"N": 1e6, "I0": 10, "R0": 2.5, "D": 5, "dt": 0.5, "T": 180},
		},
		"lockdown": {
			Name: "lockdown", Model: "SIR", Integrator: "rk4",
			Params: map[string]float64{"N": 1e6, "I0": 10, "R0": 2.5, "D": 5, "measures": 0.5, "dt": 0.5, "T": 365},
		},
		"school": {
			Name: "school", Model: "SIR", Integrator: "euler",
			Params: map[string]float64{"N": 1000, "I0": 1, "beta": 0.6, "gamma": 0.2, "dt": 1, "T": 60},
		},
	},
	"SEIR": {
		"covid": {
			Name: "covid", Model: "SEIR", Integrator: "rk4",
			Params: map[string]float64{"N": 1e6, "I0": 10, "R0": 3, "D": 7, "sigma": 0.2, "dt": 0.5, "T": 240},
		},
		"measles": {
			Name: "measles", Model: "SEIR", Integrator: "rk4",
			Params: map[string]float64{"N": 1e5, "I0": 1, "R0": 15, "D": 8, "sigma": 0.1, "dt": 0.25, "T": 120},
		},
	},
	"SIRD": {
		"lethal": {
			Name: "lethal", Model: "SIRD", Integrator: "rk4",
			Params: map[string]float64{"N": 1e6, "I0": 10, "R0": 2.5, "D": 7, "mu": 0.01, "dt": 0.5, "T": 240},
		},
	},
	"SIRV": {
		"campaign": {
			Name: "campaign", Model: "SIRV", Integrator: "rk4",
			Params: map[string]float64{"N": 1e6, "I0": 10, "R0": 2.5, "D": 5, "nu": 0.01, "dt": 0.5, "T": 240},
		},
	},
	"SIS": {
		"endemic": {
			Name: "endemic", Model: "SIS", Integrator: "rk4",
			Params: map[string]float64{"N": 1e6, "I0": 10, "R0": 1.6, "D": 10, "dt": 0.5, "T": 400},
		},
	},
}

// GetPreset returns a copy of a named preset, or nil.
func GetPreset(model, preset string) *Scenario {
	modelPresets, ok := Presets[strings.ToUpper(model)]
	if !ok {
		return nil
	}
	sc, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return sc.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[strings.ToUpper(model)]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParamGroup names one block of related parameters.
type ParamGroup struct {
	Name string
	Keys []string
}

var extrasByModel = map[models.Kind][]string{
	models.SEIR: {"sigma"},
	models.SIRD: {"mu"},
	models.SIRV: {"nu"},
}

// ParamsFor lists the parameters that matter for a model, grouped into
// learning, model and simulation parameters.
func ParamsFor(kind models.Kind) []ParamGroup {
	modelKeys := append([]string{"R0", "beta", "gamma"}, extrasByModel[kind]...)
	return []ParamGroup{
		{Name: "learning", Keys: []string{"D", "measures"}},
		{Name: "model", Keys: modelKeys},
		{Name: "simulation", Keys: []string{"N", "I0", "T", "dt"}},
	}
}

func keysOf(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
