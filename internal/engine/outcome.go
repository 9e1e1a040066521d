package engine

import (
	"math"

	"github.com/brakelab/brakelab/internal/physics"
	"github.com/brakelab/brakelab/internal/scenario"
)

// Stop-detection thresholds (units/s).
const (
	stopSpeed = 0.3
	stopTicks = 30

	// instantStopSpeed finalizes immediately: the vehicle is already
	// essentially stationary, no persistence needed.
	instantStopSpeed = 0.05
)

// Outcome is the finalized result of one run. Created exactly once per
// run; never mutated afterward except for the crash upgrade, which sets
// Crashed and recomputes Distance in place.
type Outcome struct {
	// Distance is the braking distance in metres, rounded to one
	// decimal.
	Distance float64
	Crashed  bool
	Config   scenario.RunConfiguration
}

// Sink consumes finalized outcomes. Record appends a new outcome;
// Upgrade replaces the most recent one after a late crash correction.
type Sink interface {
	Record(o Outcome)
	Upgrade(o Outcome)
}

// Evaluator decides whether a run ends stopped or crashed. It reads the
// same per-tick vehicle state as the controller and subscribes to the
// backend's collision notifications; finalization is idempotent per run.
type Evaluator struct {
	sink Sink
}

func NewEvaluator(sink Sink) *Evaluator {
	return &Evaluator{sink: sink}
}

// OnCollision handles a backend collision notification. Only the exact
// vehicle/obstacle pair ends the run; anything else is ignored.
func (e *Evaluator) OnCollision(s *Session, w *physics.World, p physics.CollisionPair) {
	if !p.Involves(scenario.LabelVehicle, scenario.LabelObstacle) {
		return
	}
	if s.Finished && s.Outcome != nil && s.Outcome.Crashed {
		return
	}
	e.finalize(s, w, true)
}

// Tick runs the stop checks once per step, after integration and after
// any collision notifications from the same step.
func (e *Evaluator) Tick(s *Session, w *physics.World) {
	if !s.BrakingStarted || s.Finished {
		return
	}
	vehicle := w.Body(scenario.LabelVehicle)
	if vehicle == nil {
		return
	}

	speed := math.Abs(vehicle.Vel.X)
	if speed < stopSpeed {
		s.LowSpeedTicks++
	} else {
		s.LowSpeedTicks = 0
	}

	if speed < instantStopSpeed || s.LowSpeedTicks > stopTicks {
		w.SetVelocity(vehicle, physics.Vec2{})
		e.finalize(s, w, false)
	}
}

// finalize records the run outcome exactly once. A second call is
// ignored, with one documented exception: a run already finalized as
// stopped is upgraded in place when a crash notification arrives
// afterward, since the vehicle can register as stopped one tick before
// overlapping the obstacle.
func (e *Evaluator) finalize(s *Session, w *physics.World, crashed bool) {
	if s.Finished {
		if crashed && s.Outcome != nil && !s.Outcome.Crashed {
			s.Outcome.Crashed = true
			s.Outcome.Distance = e.distance(w)
			s.Phase = PhaseCrashed
			e.sink.Upgrade(*s.Outcome)
		}
		return
	}

	s.Finished = true
	if crashed {
		s.Phase = PhaseCrashed
	} else {
		s.Phase = PhaseStopped
	}

	out := &Outcome{
		Distance: e.distance(w),
		Crashed:  crashed,
		Config:   s.Config,
	}
	s.Outcome = out
	e.sink.Record(*out)
}

// distance computes max(0, position − brake line) in metres, rounded to
// one decimal.
func (e *Evaluator) distance(w *physics.World) float64 {
	vehicle := w.Body(scenario.LabelVehicle)
	if vehicle == nil {
		return 0
	}
	units := math.Max(0, vehicle.Pos.X-scenario.BrakeLineX)
	return math.Round(units*scenario.MetersPerUnit*10) / 10
}
