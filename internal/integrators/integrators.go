package integrators

import (
	"strings"

	"github.com/san-kum/episim/internal/dynamo"
)

// Method identifies one of the fixed-step integrators.
type Method int

const (
	MethodRK4 Method = iota
	MethodEuler
	MethodHeun
)

var methods = []Method{MethodEuler, MethodHeun, MethodRK4}

var methodNames = map[Method]string{
	MethodEuler: "euler",
	MethodHeun:  "heun",
	MethodRK4:   "rk4",
}

var methodOrder = map[Method]int{
	MethodEuler: 1,
	MethodHeun:  2,
	MethodRK4:   4,
}

// All returns every method, lowest order first.
func All() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// Lookup resolves a case-insensitive method name. Unknown names resolve to
// RK4 without error; callers that need to know can compare String() with
// their input.
func Lookup(id string) Method {
	key := strings.ToLower(strings.TrimSpace(id))
	for _, m := range methods {
		if methodNames[m] == key {
			return m
		}
	}
	return MethodRK4
}

func (m Method) String() string {
	if n, ok := methodNames[m]; ok {
		return n
	}
	return methodNames[MethodRK4]
}

// Order is the global order of accuracy.
func (m Method) Order() int { return methodOrder[m] }

func (m Method) Integrator() dynamo.Integrator {
	switch m {
	case MethodEuler:
		return Euler{}
	case MethodHeun:
		return Heun{}
	default:
		return RK4{}
	}
}

// Step advances x with this method.
func (m Method) Step(f dynamo.Derivative, x dynamo.State, h float64) dynamo.State {
	return m.Integrator().Step(f, x, h)
}
