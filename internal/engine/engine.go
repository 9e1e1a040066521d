// Package engine drives a braking-distance run: a session of explicit
// run state, the per-tick braking controller, and the outcome evaluator,
// all executed synchronously on the physics backend's fixed-step loop.
//
// Per-tick ordering is an explicit contract: controller, integration,
// collision notifications, stop detection. Collision checks therefore
// run strictly before stop checks within a tick.
package engine

import (
	"context"
	"fmt"

	"github.com/brakelab/brakelab/internal/metrics"
	"github.com/brakelab/brakelab/internal/physics"
	"github.com/brakelab/brakelab/internal/scenario"
)

// DefaultMaxTicks bounds a run at 20000 ticks (~5.5 simulated minutes at
// 60 Hz), well past the slowest icy scenario.
const DefaultMaxTicks = 20000

// TraceSample is one per-tick observation of the vehicle.
type TraceSample struct {
	Time     float64
	Position float64
	Velocity float64
	Phase    Phase
}

// Result collects a finished run: the per-tick trace and the finalized
// outcome.
type Result struct {
	Trace   []TraceSample
	Outcome Outcome
	Ticks   int
	Metrics map[string]float64
}

// Engine owns one world and one session at a time. It is not safe for
// concurrent use; a run is single-threaded by design.
type Engine struct {
	world   *physics.World
	session *Session
	ctrl    *Controller
	eval    *Evaluator
	sink    Sink

	pending []physics.CollisionPair
	trace   []TraceSample
	metrics []metrics.Metric
}

func New(cfg scenario.RunConfiguration, sink Sink) *Engine {
	e := &Engine{
		ctrl: NewController(),
		eval: NewEvaluator(sink),
		sink: sink,
	}
	e.rebuild(cfg)
	return e
}

func (e *Engine) rebuild(cfg scenario.RunConfiguration) {
	e.world = scenario.Build(cfg)
	e.session = NewSession(cfg)
	e.pending = e.pending[:0]
	e.trace = nil
	e.world.OnCollisionStart(func(p physics.CollisionPair) {
		e.pending = append(e.pending, p)
	})
	e.world.OnTick(func(w *physics.World) {
		e.ctrl.Tick(e.session, w)
	})
	for _, m := range e.metrics {
		m.Reset()
	}
}

func (e *Engine) AddMetric(m metrics.Metric) {
	e.metrics = append(e.metrics, m)
}

func (e *Engine) Session() *Session     { return e.session }
func (e *Engine) World() *physics.World { return e.world }
func (e *Engine) Trace() []TraceSample  { return e.trace }
func (e *Engine) Config() scenario.RunConfiguration {
	return e.session.Config
}

// Active reports whether a run is in progress: started but not yet at a
// terminal phase.
func (e *Engine) Active() bool {
	return e.session.StartRequested && !e.session.Phase.Terminal()
}

// Start requests the run begin. Ignored while a run is already active.
// On a finished session it rebuilds the world with the current
// configuration and begins a fresh run.
func (e *Engine) Start() {
	if e.Active() {
		return
	}
	if e.session.Phase.Terminal() {
		e.rebuild(e.session.Config)
	}
	e.session.StartRequested = true
}

// SetConfiguration applies a new configuration and rebuilds the world.
// Disallowed while a run is in progress: the request is ignored until
// the run reaches a terminal phase or a reset is issued.
func (e *Engine) SetConfiguration(cfg scenario.RunConfiguration) bool {
	if e.Active() {
		return false
	}
	e.rebuild(cfg)
	return true
}

// Reset synchronously tears down and rebuilds the world; always allowed.
// No partial state survives.
func (e *Engine) Reset(cfg scenario.RunConfiguration) {
	e.rebuild(cfg)
}

// Step advances the simulation by one tick: braking controller (via the
// backend's pre-integration hook), then integration, then collision
// notifications, then stop detection, in that order.
func (e *Engine) Step() {
	if e.world == nil {
		return
	}

	e.world.Step()

	for _, p := range e.pending {
		e.eval.OnCollision(e.session, e.world, p)
	}
	e.pending = e.pending[:0]

	e.eval.Tick(e.session, e.world)

	vehicle := e.world.Body(scenario.LabelVehicle)
	if vehicle != nil {
		e.world.LookAt(vehicle.Pos)
		e.trace = append(e.trace, TraceSample{
			Time:     e.world.Time(),
			Position: vehicle.Pos.X,
			Velocity: vehicle.Vel.X,
			Phase:    e.session.Phase,
		})
		for _, m := range e.metrics {
			m.Observe(vehicle.Pos.X, vehicle.Vel.X, e.world.Time())
		}
	}
}

// Run starts the session and steps until a terminal phase, the tick
// budget, or context cancellation. maxTicks <= 0 uses DefaultMaxTicks.
func (e *Engine) Run(ctx context.Context, maxTicks int) (*Result, error) {
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	e.Start()

	for i := 0; i < maxTicks; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		e.Step()
		if e.session.Phase.Terminal() {
			vals := make(map[string]float64, len(e.metrics))
			for _, m := range e.metrics {
				vals[m.Name()] = m.Value()
			}
			return &Result{
				Trace:   e.trace,
				Outcome: *e.session.Outcome,
				Ticks:   i + 1,
				Metrics: vals,
			}, nil
		}
	}

	return nil, fmt.Errorf("run did not terminate within %d ticks", maxTicks)
}
