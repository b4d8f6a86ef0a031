package sim

import (
	"context"
	"testing"

	"github.com/san-kum/episim/internal/dynamo"
)

func TestCompare(t *testing.T) {
	base := Config{Model: "SIR", Params: dynamo.Params{"beta": 0.5, "gamma": 0.2, "T": 120, "dt": 1}}

	ref, diffs, err := Compare(context.Background(), base, []string{"euler", "heun", "rk4"}, 0)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if ref.Meta.Method != "rk4" {
		t.Errorf("reference should be rk4, got %s", ref.Meta.Method)
	}
	if len(diffs) != 3 {
		t.Fatalf("expected 3 diffs, got %d", len(diffs))
	}

	euler, heun, rk4 := diffs[0].MaxAbs["I"], diffs[1].MaxAbs["I"], diffs[2].MaxAbs["I"]
	if rk4 != 0 {
		t.Errorf("rk4 against itself should not differ, got %v", rk4)
	}
	if !(euler > heun && heun > 0) {
		t.Errorf("expected euler error > heun error > 0, got %v, %v", euler, heun)
	}
	for _, d := range diffs {
		if len(d.MaxAbs) != 3 {
			t.Errorf("%s: expected 3 compartments, got %v", d.Method, d.MaxAbs)
		}
	}
}

func TestCompareUnknownModel(t *testing.T) {
	if _, _, err := Compare(context.Background(), Config{Model: "nope"}, []string{"euler"}, 1); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestMaxAbsDiff(t *testing.T) {
	a := &Result{Series: Series{T: []float64{0, 1}, Labels: []string{"S", "I"}, Values: [][]float64{{10, 8}, {0, 2}}}}
	b := &Result{Series: Series{T: []float64{0, 1}, Labels: []string{"S", "I"}, Values: [][]float64{{10, 7}, {0, 3.5}}}}

	d := MaxAbsDiff(a, b)
	if d["S"] != 1 || d["I"] != 1.5 {
		t.Errorf("unexpected diff %v", d)
	}
}
