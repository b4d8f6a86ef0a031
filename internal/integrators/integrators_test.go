package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/episim/internal/dynamo"
)

// oscillator is x'' = -x written as a first-order system.
func oscillator(x dynamo.State) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func decay(x dynamo.State) dynamo.State {
	return dynamo.State{-x[0]}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(oscillator, x, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", x[0], expectedX)
	}
	if math.Abs(x[1]-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", x[1], expectedV)
	}
}

func TestSingleStep(t *testing.T) {
	h := 0.1
	x := dynamo.State{1.0}

	euler := NewEuler().Step(decay, x, h)
	if math.Abs(euler[0]-0.9) > 1e-14 {
		t.Errorf("euler: got %v, want 0.9", euler[0])
	}

	// Heun on y' = -y: y + h/2*(-y + -(y - h*y)) = 1 - h + h^2/2
	heun := NewHeun().Step(decay, x, h)
	if math.Abs(heun[0]-(1-h+h*h/2)) > 1e-14 {
		t.Errorf("heun: got %v, want %v", heun[0], 1-h+h*h/2)
	}

	// RK4 reproduces the Taylor series of exp(-h) through h^4.
	rk4 := NewRK4().Step(decay, x, h)
	want := 1 - h + h*h/2 - h*h*h/6 + h*h*h*h/24
	if math.Abs(rk4[0]-want) > 1e-14 {
		t.Errorf("rk4: got %v, want %v", rk4[0], want)
	}
}

func TestConvergenceOrder(t *testing.T) {
	exact := math.Exp(-1)

	for _, m := range All() {
		errAt := func(dt float64) float64 {
			x := dynamo.State{1.0}
			steps := int(math.Round(1 / dt))
			for i := 0; i < steps; i++ {
				x = m.Step(decay, x, dt)
			}
			return math.Abs(x[0] - exact)
		}

		e1 := errAt(0.02)
		e2 := errAt(0.01)
		ratio := e1 / e2
		want := math.Pow(2, float64(m.Order()))

		if ratio < want*0.8 || ratio > want*1.25 {
			t.Errorf("%s: error ratio %.3f, expected about %.0f", m, ratio, want)
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	for _, m := range All() {
		x := dynamo.State{1.0, 0.5}
		out := m.Step(oscillator, x, 0.1)

		if x[0] != 1.0 || x[1] != 0.5 {
			t.Errorf("%s mutated input: %v", m, x)
		}
		if len(out) != len(x) {
			t.Errorf("%s returned length %d, want %d", m, len(out), len(x))
		}
		out[0] = 42
		if x[0] == 42 {
			t.Errorf("%s returned an alias of its input", m)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id   string
		want Method
	}{
		{"euler", MethodEuler},
		{"EULER", MethodEuler},
		{"Heun", MethodHeun},
		{"rk4", MethodRK4},
		{"", MethodRK4},
		{"bogus", MethodRK4},
		{"rk45", MethodRK4},
	}

	for _, tt := range tests {
		got := Lookup(tt.id)
		if got != tt.want {
			t.Errorf("Lookup(%q) = %s, want %s", tt.id, got, tt.want)
		}
	}

	if Lookup("bogus").String() != "rk4" {
		t.Error("unknown method should report rk4")
	}
}
