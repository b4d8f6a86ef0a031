package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/episim/internal/dynamo"
)

func scenarioParams() dynamo.Params {
	return dynamo.Params{
		"N": 1_000_000, "I0": 10, "beta": 0.5, "gamma": 0.2,
		"sigma": 0.25, "mu": 0.01, "nu": 0.005, "measures": 0.2,
		"dt": 0.5, "T": 180,
	}
}

var _ = Describe("Run", func() {
	DescribeTable("keeps every compartment non-negative and the total at N",
		func(model, method string, dt float64) {
			p := scenarioParams()
			p["dt"] = dt

			res, err := Run(Config{Model: model, Integrator: method, Params: p})
			Expect(err).NotTo(HaveOccurred())

			tol := math.Max(1e-6*res.N, 1e-6)
			for k := 0; k < res.Series.Len(); k++ {
				x := res.Series.At(k)
				for _, v := range x {
					Expect(v).To(BeNumerically(">=", 0))
				}
				Expect(x.Sum()).To(BeNumerically("~", res.N, tol))
			}
			Expect(res.Drift).To(BeNumerically("<=", tol))
		},
		Entry("SIR euler", "SIR", "euler", 0.5),
		Entry("SIR heun", "SIR", "heun", 0.5),
		Entry("SIR rk4", "SIR", "rk4", 0.5),
		Entry("SEIR euler coarse", "SEIR", "euler", 2.0),
		Entry("SEIR rk4", "SEIR", "rk4", 0.5),
		Entry("SIRD heun", "SIRD", "heun", 1.0),
		Entry("SIRV euler coarse", "SIRV", "euler", 3.0),
		Entry("SIS rk4", "SIS", "rk4", 0.25),
	)

	It("is deterministic", func() {
		cfg := Config{Model: "SEIR", Integrator: "heun", Params: scenarioParams()}

		a, err := Run(cfg)
		Expect(err).NotTo(HaveOccurred())
		b, err := Run(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Series).To(Equal(a.Series))
		Expect(b.Drift).To(Equal(a.Drift))
	})

	It("produces steps+1 samples for t and every compartment", func() {
		p := scenarioParams()
		p["dt"] = 0.25
		p["T"] = 30

		res, err := Run(Config{Model: "SIRV", Params: p})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(120))
		Expect(res.Series.T).To(HaveLen(121))
		for _, vals := range res.Series.Values {
			Expect(vals).To(HaveLen(len(res.Series.T)))
		}
	})

	Context("as dt shrinks", func() {
		finalState := func(method string, dt float64) dynamo.State {
			p := scenarioParams()
			p["dt"] = dt
			p["T"] = 40
			res, err := Run(Config{Model: "SIR", Integrator: method, Params: p})
			Expect(err).NotTo(HaveOccurred())
			return res.Series.At(res.Series.Len() - 1)
		}

		maxDiff := func(a, b dynamo.State) float64 {
			d := 0.0
			for i := range a {
				d = math.Max(d, math.Abs(a[i]-b[i]))
			}
			return d
		}

		It("brings euler and heun within tolerance of rk4", func() {
			ref := finalState("rk4", 1.0/256)

			coarse := maxDiff(finalState("euler", 0.125), ref)
			fine := maxDiff(finalState("euler", 1.0/256), ref)
			Expect(fine).To(BeNumerically("<", coarse))
			Expect(fine).To(BeNumerically("<", 5e-3*1_000_000))

			Expect(maxDiff(finalState("heun", 1.0/256), ref)).To(BeNumerically("<", 1e-4*1_000_000))
		})
	})

	It("reports the resolved method when the integrator is unknown", func() {
		res, err := Run(Config{Model: "SIR", Integrator: "bogus"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Meta.Method).To(Equal("rk4"))
	})

	It("rejects an unknown model", func() {
		res, err := Run(Config{Model: "XYZ"})
		Expect(err).To(MatchError(dynamo.ErrUnknownModel))
		Expect(res).To(BeNil())
	})
})
