package engine

import (
	"math"

	"github.com/brakelab/brakelab/internal/physics"
	"github.com/brakelab/brakelab/internal/scenario"
)

// Force-law constants for the two braking regimes. A single
// velocity-proportional force decays exponentially and never reaches
// zero in finite ticks; the stronger low-speed regime guarantees the
// run terminates.
const (
	brakeGainHigh = 1.0
	brakeGainLow  = 30.0

	// Regime boundaries on velocity magnitude, in units/s.
	lowSpeedBoundary = 0.5
	restBoundary     = 0.01
)

// Controller is the per-tick braking decision logic: hold cruise speed
// before the brake line, apply the surface-dependent decelerating force
// after it.
type Controller struct{}

func NewController() *Controller { return &Controller{} }

// Tick runs once per simulation step, before integration.
func (c *Controller) Tick(s *Session, w *physics.World) {
	vehicle := w.Body(scenario.LabelVehicle)
	if vehicle == nil || s.Finished {
		return
	}

	cruise := s.Config.SpeedClass.CruiseSpeed()

	switch s.Phase {
	case PhaseIdle:
		if !s.StartRequested {
			return
		}
		w.SetVelocity(vehicle, physics.Vec2{X: cruise})
		s.Phase = PhaseCruising

	case PhaseCruising:
		// Cruise speed is a floor, not a cap: the engine holds the
		// vehicle at constant speed until the brake line.
		if vehicle.Vel.X < cruise {
			w.SetVelocity(vehicle, physics.Vec2{X: cruise})
		}
		if vehicle.Pos.X >= scenario.BrakeLineX {
			s.BrakingStarted = true
			s.Phase = PhaseBraking
		}

	case PhaseBraking:
		c.brake(s, w, vehicle)
	}
}

func (c *Controller) brake(s *Session, w *physics.World, vehicle *physics.Body) {
	v := vehicle.Vel.X
	speed := math.Abs(v)
	coeff := s.Config.Surface.BrakingCoefficient()

	switch {
	case speed > lowSpeedBoundary:
		w.ApplyForce(vehicle, physics.Vec2{X: -v * coeff * vehicle.Mass * brakeGainHigh})
	case speed > restBoundary:
		// Stronger pull near zero so the body actually stops instead
		// of crawling asymptotically.
		w.ApplyForce(vehicle, physics.Vec2{X: -v * coeff * vehicle.Mass * brakeGainLow})
	default:
		// At rest pending confirmation by the evaluator.
	}
}
