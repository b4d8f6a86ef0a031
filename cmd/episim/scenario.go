package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/config"
)

var (
	integrator string
	configFile string
	preset     string

	paramValues = map[string]*float64{}
)

// paramFlags are the engine and derivation parameters exposed on every
// scenario command.
var paramFlags = []struct {
	key   string
	usage string
}{
	{"N", "population size"},
	{"I0", "initial infected"},
	{"R0", "basic reproduction number (beta = R0*gamma when beta is not set)"},
	{"D", "infectious days (gamma = 1/D when gamma is not set)"},
	{"beta", "transmission rate"},
	{"gamma", "recovery rate"},
	{"sigma", "latency rate (SEIR)"},
	{"mu", "mortality rate (SIRD)"},
	{"nu", "vaccination rate (SIRV)"},
	{"measures", "intervention factor in [0,1] scaling transmission"},
	{"dt", "timestep in days"},
	{"T", "horizon in days"},
}

func addScenarioFlags(cmd *cobra.Command) {
	for _, pf := range paramFlags {
		v, ok := paramValues[pf.key]
		if !ok {
			v = new(float64)
			paramValues[pf.key] = v
		}
		cmd.Flags().Float64Var(v, pf.key, 0, pf.usage)
	}
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator: euler, heun, rk4")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildScenario layers defaults, preset, config file and explicitly set
// flags, in that order. model overrides everything when non-empty.
func buildScenario(cmd *cobra.Command, model string) (*config.Scenario, error) {
	sc := config.DefaultScenario()

	if preset != "" {
		presetModel := model
		if presetModel == "" {
			presetModel = config.DefaultModel
		}
		p := config.GetPreset(presetModel, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(presetModel))
		}
		sc = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		sc = loaded
	}

	if model != "" {
		sc.Model = model
	}
	if cmd.Flags().Changed("integrator") {
		sc.Integrator = integrator
	}
	for _, pf := range paramFlags {
		if cmd.Flags().Changed(pf.key) {
			sc.Set(pf.key, *paramValues[pf.key])
		}
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}
