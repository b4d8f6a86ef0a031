package metrics

import (
	"math"

	"github.com/san-kum/episim/internal/dynamo"
	"github.com/san-kum/episim/internal/sim"
)

// Metric observes a finished trajectory one sample at a time.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Evaluate replays res through every metric and returns the values by name.
func Evaluate(res *sim.Result, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
	}
	for k := 0; k < res.Series.Len(); k++ {
		x := res.Series.At(k)
		t := res.Series.T[k]
		for _, m := range ms {
			m.Observe(x, t)
		}
	}
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Default returns the KPI set shown for a model: peak and peak time of I,
// the final value of every compartment, and the attack rate.
func Default(dims []string, n float64) []Metric {
	ms := make([]Metric, 0, len(dims)+4)
	for i, d := range dims {
		if d == "I" {
			ms = append(ms, NewPeak(i, d), NewPeakTime(i, d))
		}
	}
	for i, d := range dims {
		ms = append(ms, NewFinal(i, d))
	}
	if len(dims) > 0 && dims[0] == "S" {
		ms = append(ms, NewAttackRate(0, n))
	}
	return ms
}

// Summarize evaluates the default KPIs for res.
func Summarize(res *sim.Result) map[string]float64 {
	return Evaluate(res, Default(res.Meta.Dims, res.N)...)
}

type Peak struct {
	name  string
	index int
	max   float64
}

func NewPeak(index int, label string) *Peak {
	return &Peak{name: "peak_" + label, index: index, max: math.Inf(-1)}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.index < len(x) && x[p.index] > p.max {
		p.max = x[p.index]
	}
}

func (p *Peak) Value() float64 {
	if math.IsInf(p.max, -1) {
		return 0
	}
	return p.max
}

func (p *Peak) Reset() { p.max = math.Inf(-1) }

// PeakTime is the first time the compartment reaches its maximum.
type PeakTime struct {
	name  string
	index int
	max   float64
	at    float64
}

func NewPeakTime(index int, label string) *PeakTime {
	return &PeakTime{name: "peak_time_" + label, index: index, max: math.Inf(-1)}
}

func (p *PeakTime) Name() string { return p.name }

func (p *PeakTime) Observe(x dynamo.State, t float64) {
	if p.index < len(x) && x[p.index] > p.max {
		p.max = x[p.index]
		p.at = t
	}
}

func (p *PeakTime) Value() float64 { return p.at }

func (p *PeakTime) Reset() {
	p.max = math.Inf(-1)
	p.at = 0
}

type Final struct {
	name  string
	index int
	last  float64
}

func NewFinal(index int, label string) *Final {
	return &Final{name: "final_" + label, index: index}
}

func (f *Final) Name() string { return f.name }

func (f *Final) Observe(x dynamo.State, t float64) {
	if f.index < len(x) {
		f.last = x[f.index]
	}
}

func (f *Final) Value() float64 { return f.last }

func (f *Final) Reset() { f.last = 0 }

// AttackRate is the share of the population that left S by the end of the
// run: 1 - S_end/N. For SIRV this includes vaccinations.
type AttackRate struct {
	index int
	n     float64
	last  float64
	seen  bool
}

func NewAttackRate(index int, n float64) *AttackRate {
	return &AttackRate{index: index, n: n}
}

func (a *AttackRate) Name() string { return "attack_rate" }

func (a *AttackRate) Observe(x dynamo.State, t float64) {
	if a.index < len(x) {
		a.last = x[a.index]
		a.seen = true
	}
}

func (a *AttackRate) Value() float64 {
	if !a.seen || a.n <= 0 {
		return 0
	}
	return 1 - a.last/a.n
}

func (a *AttackRate) Reset() {
	a.last = 0
	a.seen = false
}
