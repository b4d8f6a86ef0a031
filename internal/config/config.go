package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/episim/internal/dynamo"
	"github.com/san-kum/episim/internal/sim"
)

const (
	DefaultModel      = sim.DefaultModel
	DefaultIntegrator = sim.DefaultIntegrator
	DefaultN          = sim.DefaultN
	DefaultI0         = sim.DefaultI0
	DefaultDt         = sim.DefaultDt
	DefaultT          = sim.DefaultT
	DefaultR0         = 2.5
	DefaultD          = 5.0
)

// Scenario is a run description as stored in YAML files and presets. Params
// may carry R0 and D in place of beta and gamma; Resolve derives them.
type Scenario struct {
	Name       string             `yaml:"name,omitempty" validate:"omitempty,max=64"`
	Model      string             `yaml:"model" validate:"required"`
	Integrator string             `yaml:"integrator,omitempty"`
	Params     map[string]float64 `yaml:"params"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Model:      DefaultModel,
		Integrator: DefaultIntegrator,
		Params: map[string]float64{
			"N":  DefaultN,
			"I0": DefaultI0,
			"R0": DefaultR0,
			"D":  DefaultD,
			"dt": DefaultDt,
			"T":  DefaultT,
		},
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve returns engine params with gamma = 1/D and beta = R0*gamma filled
// in when they are not given directly. R0 and D stay in the record.
func (s *Scenario) Resolve() dynamo.Params {
	p := dynamo.Params(s.Params).Clone()

	if !p.Has("gamma") && p.Float("D", 0) > 0 {
		p["gamma"] = 1 / p["D"]
	}
	if !p.Has("beta") && p.Has("R0") && p.Has("gamma") {
		p["beta"] = p["R0"] * p["gamma"]
	}
	return p
}

// SimConfig builds the engine call for this scenario.
func (s *Scenario) SimConfig() sim.Config {
	return sim.Config{
		Model:      s.Model,
		Integrator: s.Integrator,
		Params:     s.Resolve(),
	}
}

func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Params = dynamo.Params(s.Params).Clone()
	return &c
}

// Set overrides one parameter.
func (s *Scenario) Set(key string, value float64) {
	if s.Params == nil {
		s.Params = make(map[string]float64)
	}
	s.Params[key] = value
}
