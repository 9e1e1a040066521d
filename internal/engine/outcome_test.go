package engine_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/brakelab/brakelab/internal/engine"
	"github.com/brakelab/brakelab/internal/history"
	"github.com/brakelab/brakelab/internal/physics"
	"github.com/brakelab/brakelab/internal/scenario"
)

func TestOutcomeEvaluator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Outcome Evaluator Suite")
}

var _ = Describe("Evaluator", func() {
	var (
		log     *history.Log
		eval    *engine.Evaluator
		session *engine.Session
		world   *physics.World
		vehicle *physics.Body
	)

	cfg := scenario.RunConfiguration{
		SpeedClass:       scenario.SpeedMedium,
		Surface:          scenario.SurfaceDry,
		ObstacleDistance: 400,
	}

	crashPair := physics.CollisionPair{A: scenario.LabelObstacle, B: scenario.LabelVehicle}

	BeforeEach(func() {
		log = history.NewLog()
		eval = engine.NewEvaluator(log)
		session = engine.NewSession(cfg)
		world = scenario.Build(cfg)
		vehicle = world.Body(scenario.LabelVehicle)

		session.Phase = engine.PhaseBraking
		session.BrakingStarted = true
		vehicle.Pos = physics.Vec2{X: scenario.BrakeLineX + 100}
	})

	Describe("stop detection", func() {
		It("finalizes immediately when velocity is essentially zero", func() {
			vehicle.Vel = physics.Vec2{X: 0.01}
			eval.Tick(session, world)

			Expect(session.Finished).To(BeTrue())
			Expect(session.Phase).To(Equal(engine.PhaseStopped))
			Expect(vehicle.Vel.X).To(BeZero())
			Expect(log.Len()).To(Equal(1))
			Expect(log.Outcomes()[0].Crashed).To(BeFalse())
			Expect(log.Outcomes()[0].Distance).To(BeNumerically("~", 100*scenario.MetersPerUnit, 1e-9))
		})

		It("requires low-speed persistence above the instant threshold", func() {
			vehicle.Vel = physics.Vec2{X: 0.2}
			for i := 0; i < 30; i++ {
				eval.Tick(session, world)
			}
			Expect(session.Finished).To(BeFalse())

			eval.Tick(session, world)
			Expect(session.Finished).To(BeTrue())
			Expect(session.Phase).To(Equal(engine.PhaseStopped))
		})

		It("resets the persistence counter when speed recovers", func() {
			vehicle.Vel = physics.Vec2{X: 0.2}
			for i := 0; i < 20; i++ {
				eval.Tick(session, world)
			}
			vehicle.Vel = physics.Vec2{X: 1.0}
			eval.Tick(session, world)
			Expect(session.LowSpeedTicks).To(BeZero())
		})

		It("does nothing before the brake line", func() {
			session.BrakingStarted = false
			vehicle.Vel = physics.Vec2{X: 0}
			eval.Tick(session, world)
			Expect(session.Finished).To(BeFalse())
			Expect(log.Len()).To(BeZero())
		})
	})

	Describe("collision detection", func() {
		It("finalizes as crashed for the vehicle/obstacle pair", func() {
			vehicle.Vel = physics.Vec2{X: 10}
			eval.OnCollision(session, world, crashPair)

			Expect(session.Finished).To(BeTrue())
			Expect(session.Phase).To(Equal(engine.PhaseCrashed))
			Expect(log.Len()).To(Equal(1))
			Expect(log.Outcomes()[0].Crashed).To(BeTrue())
		})

		It("ignores pairs not involving both vehicle and obstacle", func() {
			eval.OnCollision(session, world, physics.CollisionPair{A: scenario.LabelVehicle, B: scenario.LabelGround})
			Expect(session.Finished).To(BeFalse())
			Expect(log.Len()).To(BeZero())
		})

		It("short-circuits repeat collision notifications", func() {
			eval.OnCollision(session, world, crashPair)
			eval.OnCollision(session, world, crashPair)
			Expect(log.Len()).To(Equal(1))
		})
	})

	Describe("finalization", func() {
		It("is idempotent for repeated stop detection", func() {
			vehicle.Vel = physics.Vec2{X: 0.01}
			eval.Tick(session, world)
			eval.Tick(session, world)
			eval.Tick(session, world)
			Expect(log.Len()).To(Equal(1))
		})

		It("upgrades a stopped outcome when a crash lands afterward", func() {
			vehicle.Vel = physics.Vec2{X: 0.01}
			eval.Tick(session, world)
			Expect(log.Outcomes()[0].Crashed).To(BeFalse())
			original := log.Outcomes()[0].Distance

			// The vehicle registered as stopped one tick before
			// overlapping the obstacle.
			vehicle.Pos.X += 2
			eval.OnCollision(session, world, crashPair)

			Expect(log.Len()).To(Equal(1))
			upgraded := log.Outcomes()[0]
			Expect(upgraded.Crashed).To(BeTrue())
			Expect(upgraded.Distance).To(BeNumerically(">=", original))
			Expect(session.Phase).To(Equal(engine.PhaseCrashed))
		})
	})
})
