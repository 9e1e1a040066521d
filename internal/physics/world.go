// Package physics is the rigid-body backend consumed by the simulation:
// body creation, velocity/force mutation, fixed-step integration, and
// collision-start notification. Integration is semi-implicit Euler at a
// fixed timestep, so a given body setup replayed for the same number of
// ticks always produces identical state.
package physics

import "fmt"

// CollisionPair carries the labels of two bodies whose AABBs began
// overlapping during the current step. Order is insertion order, not
// significant to consumers.
type CollisionPair struct {
	A, B string
}

// Involves reports whether the pair is exactly the two given labels,
// in either order.
func (p CollisionPair) Involves(a, b string) bool {
	return (p.A == a && p.B == b) || (p.A == b && p.B == a)
}

type World struct {
	bodies  []*Body
	byLabel map[string]*Body

	dt   float64
	tick int64

	tickFns      []func(w *World)
	collisionFns []func(p CollisionPair)

	// contacts tracks currently-overlapping pairs so collision-start
	// fires once per contact until the bodies separate.
	contacts map[[2]string]bool

	viewport Vec2
}

func NewWorld(dt float64) *World {
	return &World{
		byLabel:  make(map[string]*Body),
		dt:       dt,
		contacts: make(map[[2]string]bool),
	}
}

func (w *World) Dt() float64 { return w.dt }

func (w *World) Tick() int64 { return w.tick }

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return float64(w.tick) * w.dt }

func (w *World) AddBody(b *Body) error {
	if _, ok := w.byLabel[b.Label]; ok {
		return fmt.Errorf("physics: duplicate body label %q", b.Label)
	}
	w.bodies = append(w.bodies, b)
	w.byLabel[b.Label] = b
	return nil
}

// Body returns the body with the given label, or nil.
func (w *World) Body(label string) *Body {
	return w.byLabel[label]
}

func (w *World) SetVelocity(b *Body, v Vec2) {
	if b == nil || b.Static {
		return
	}
	b.Vel = v
}

// ApplyForce accumulates a force acting on b for the next integration
// step. Forces are cleared after each step.
func (w *World) ApplyForce(b *Body, f Vec2) {
	if b == nil || b.Static {
		return
	}
	b.force = b.force.Add(f)
}

// OnTick registers a callback invoked once per Step, before integration.
// Callbacks run in registration order.
func (w *World) OnTick(fn func(w *World)) {
	w.tickFns = append(w.tickFns, fn)
}

// OnCollisionStart registers a callback for each newly-started contact.
func (w *World) OnCollisionStart(fn func(p CollisionPair)) {
	w.collisionFns = append(w.collisionFns, fn)
}

// LookAt frames the viewport on a world position.
func (w *World) LookAt(pos Vec2) { w.viewport = pos }

func (w *World) Viewport() Vec2 { return w.viewport }

// Step advances the world by one fixed timestep: tick callbacks,
// integration, then collision-start detection.
func (w *World) Step() {
	for _, fn := range w.tickFns {
		fn(w)
	}

	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		if b.Mass > 0 {
			b.Vel = b.Vel.Add(b.force.Scale(w.dt / b.Mass))
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(w.dt))
		b.force = Vec2{}
	}

	w.detectCollisions()
	w.tick++
}

func (w *World) detectCollisions() {
	for i, a := range w.bodies {
		if a.Sensor {
			continue
		}
		for _, b := range w.bodies[i+1:] {
			if b.Sensor || (a.Static && b.Static) {
				continue
			}
			key := [2]string{a.Label, b.Label}
			if a.Overlaps(b) {
				if !w.contacts[key] {
					w.contacts[key] = true
					pair := CollisionPair{A: a.Label, B: b.Label}
					for _, fn := range w.collisionFns {
						fn(pair)
					}
				}
			} else {
				delete(w.contacts, key)
			}
		}
	}
}
