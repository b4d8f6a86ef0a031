// Package automation runs scripted sequences of scenarios from YAML.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/sim"
)

// Script is an ordered list of scenario steps.
type Script struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Steps       []ScriptStep `yaml:"steps"`
}

// ScriptStep is one run. Preset, when set, is the starting point and the
// other fields override it.
type ScriptStep struct {
	Name       string             `yaml:"name"`
	Preset     string             `yaml:"preset"`
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Params     map[string]float64 `yaml:"params"`
	Save       bool               `yaml:"save"`
}

// StepResult pairs a step with its outcome.
type StepResult struct {
	Step     ScriptStep
	Scenario *config.Scenario
	Result   *sim.Result
	KPIs     map[string]float64
}

// LoadScript parses a script and resolves every step so errors surface
// before anything runs.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("%s: script has no steps", path)
	}
	if _, err := script.Scenarios(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &script, nil
}

// Scenarios resolves each step against its preset and validates it.
func (s *Script) Scenarios() ([]*config.Scenario, error) {
	out := make([]*config.Scenario, 0, len(s.Steps))
	for i, step := range s.Steps {
		sc, err := step.scenario()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

func (st ScriptStep) scenario() (*config.Scenario, error) {
	sc := config.DefaultScenario()
	if st.Preset != "" {
		model := st.Model
		if model == "" {
			model = config.DefaultModel
		}
		p := config.GetPreset(model, st.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", st.Preset, config.ListPresets(model))
		}
		sc = p
	}

	if st.Model != "" {
		sc.Model = st.Model
	}
	if st.Integrator != "" {
		sc.Integrator = st.Integrator
	}
	for k, v := range st.Params {
		sc.Set(k, v)
	}
	if st.Name != "" {
		sc.Name = st.Name
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// RunScript runs every step concurrently and returns results in step order.
func RunScript(ctx context.Context, script *Script, workers int) ([]StepResult, error) {
	scenarios, err := script.Scenarios()
	if err != nil {
		return nil, err
	}

	cfgs := make([]sim.Config, len(scenarios))
	for i, sc := range scenarios {
		cfgs[i] = sc.SimConfig()
	}

	results, err := sim.RunAll(ctx, cfgs, workers)
	if err != nil {
		return nil, err
	}

	out := make([]StepResult, len(results))
	for i, res := range results {
		out[i] = StepResult{
			Step:     script.Steps[i],
			Scenario: scenarios[i],
			Result:   res,
			KPIs:     metrics.Summarize(res),
		}
	}
	return out, nil
}
