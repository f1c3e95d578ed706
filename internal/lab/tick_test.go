package lab

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/avelar/chemlab/internal/experiment"
)

var _ = Describe("Tick reducer", func() {
	var e *Engine

	BeforeEach(func() {
		e = NewEngine(experiment.NewAspirin(), DefaultRates(), DefaultAmbient)
	})

	Context("temperature ramp", func() {
		It("moves toward the heater target and stops there", func() {
			Expect(e.SetTargetTemp(30)).To(Succeed())
			e.SetHeater(true)

			for i := 0; i < 200; i++ {
				e.Tick(0.1)
				Expect(e.State().Temperature).To(BeNumerically("<=", 30))
			}
			Expect(e.State().Temperature).To(BeNumerically("~", 30, 1e-9))
		})

		It("drifts back to ambient with everything off", func() {
			Expect(e.SetTargetTemp(30)).To(Succeed())
			e.SetHeater(true)
			for i := 0; i < 200; i++ {
				e.Tick(0.1)
			}

			e.SetHeater(false)
			for i := 0; i < 500; i++ {
				e.Tick(0.1)
			}
			Expect(e.State().Temperature).To(BeNumerically("~", DefaultAmbient, 1e-9))
		})

		It("pulls down fast in the ice bath", func() {
			e.SetIceBath(true)
			e.Tick(1.0)
			withIce := DefaultAmbient - e.State().Temperature

			e2 := NewEngine(experiment.NewAspirin(), DefaultRates(), DefaultAmbient)
			e2.State().Temperature = DefaultAmbient + 10
			e2.Tick(1.0)
			passive := DefaultAmbient + 10 - e2.State().Temperature

			Expect(withIce).To(BeNumerically(">", passive))
		})

		It("cools at the passive rate when the setpoint is below the reading", func() {
			e.State().Temperature = 100
			Expect(e.SetTargetTemp(50)).To(Succeed())
			e.SetHeater(true)
			e.Tick(1.0)
			Expect(e.State().Temperature).To(BeNumerically("~", 100-DefaultRates().Cool, 1e-9))
		})
	})

	Context("reaction progress", func() {
		readyBench := func() {
			for _, id := range []string{"salicylic_acid", "acetic_anhydride", "sulfuric_acid"} {
				Expect(e.AddChemical(id)).To(Succeed())
			}
			e.State().Temperature = 85
			Expect(e.SetStirring(experiment.StirMedium)).To(Succeed())
		}

		It("accrues under the full set of conditions", func() {
			readyBench()
			e.Tick(1.0)
			Expect(e.State().Reaction).To(BeNumerically("~", DefaultRates().Reaction, 0.01))
		})

		It("stalls when a reagent is missing", func() {
			readyBench()
			delete(e.State().Added, "acetic_anhydride")
			e.Tick(1.0)
			Expect(e.State().Reaction).To(BeZero())
		})

		It("stalls outside the temperature band", func() {
			readyBench()
			e.State().Temperature = 60
			e.Tick(1.0)
			Expect(e.State().Reaction).To(BeZero())
		})

		It("never runs past one hundred percent", func() {
			readyBench()
			e.State().Reaction = 99.9
			e.Tick(1.0)
			Expect(e.State().Reaction).To(Equal(100.0))
		})
	})

	Context("crystal progress", func() {
		It("waits for the reaction and the cold", func() {
			e.State().Reaction = 100
			e.Tick(1.0)
			Expect(e.State().Crystal).To(BeZero())

			e.State().Temperature = 5
			e.SetIceBath(true)
			e.Tick(1.0)
			Expect(e.State().Crystal).To(BeNumerically(">", 0))
		})

		It("never grows without a crystallization phase", func() {
			e2 := NewEngine(experiment.NewTitration(), DefaultRates(), DefaultAmbient)
			e2.State().Reaction = 100
			e2.State().Temperature = 5
			e2.Tick(1.0)
			Expect(e2.State().Crystal).To(BeZero())
		})
	})
})
