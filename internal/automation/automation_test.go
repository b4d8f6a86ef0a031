package automation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const script = `
name: lockdown study
description: baseline against two intervention levels
steps:
  - name: baseline
    preset: baseline
    params: {T: 60}
    save: true
  - name: half
    preset: baseline
    params: {T: 60, measures: 0.5}
  - name: seir
    model: SEIR
    integrator: heun
    params: {beta: 0.6, gamma: 0.2, sigma: 0.25, T: 60}
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript(writeScript(t, script))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Name != "lockdown study" || len(s.Steps) != 3 {
		t.Fatalf("unexpected script %+v", s)
	}

	scs, err := s.Scenarios()
	if err != nil {
		t.Fatal(err)
	}
	if scs[1].Params["measures"] != 0.5 || scs[1].Params["R0"] != 2.5 {
		t.Errorf("preset overrides not applied: %v", scs[1].Params)
	}
	if scs[2].Model != "SEIR" || scs[2].Integrator != "heun" {
		t.Errorf("unexpected step 3 scenario %+v", scs[2])
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "name: x\n", "no steps"},
		{"bad preset", "steps:\n  - preset: nope\n", "step 1"},
		{"bad measures", "steps:\n  - params: {measures: 3}\n", "measures"},
		{"bad yaml", "steps: [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript(writeScript(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRunScript(t *testing.T) {
	s, err := LoadScript(writeScript(t, script))
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScript(context.Background(), s, 2)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Step.Name != "baseline" || !results[0].Step.Save {
		t.Errorf("results out of order: %+v", results[0].Step)
	}
	if results[1].KPIs["peak_I"] >= results[0].KPIs["peak_I"] {
		t.Errorf("measures should lower the peak: %v vs %v", results[1].KPIs["peak_I"], results[0].KPIs["peak_I"])
	}
	if results[2].Result.Meta.Model != "SEIR" || results[2].Result.Meta.Method != "heun" {
		t.Errorf("unexpected meta %+v", results[2].Result.Meta)
	}
}

func TestRunScriptUnknownModel(t *testing.T) {
	s := &Script{Steps: []ScriptStep{{Model: "XYZ"}}}
	if _, err := RunScript(context.Background(), s, 1); err == nil {
		t.Error("expected error for unknown model")
	}
}
