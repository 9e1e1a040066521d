package physics

import (
	"math"
	"testing"
)

func TestStepIntegratesVelocity(t *testing.T) {
	w := NewWorld(0.1)
	b := &Body{Label: "b", Mass: 1, Vel: Vec2{X: 2}, HalfW: 1, HalfH: 1}
	if err := w.AddBody(b); err != nil {
		t.Fatalf("add body: %v", err)
	}

	for i := 0; i < 10; i++ {
		w.Step()
	}

	if math.Abs(b.Pos.X-2.0) > 1e-9 {
		t.Errorf("expected position 2.0, got %f", b.Pos.X)
	}
	if w.Tick() != 10 {
		t.Errorf("expected tick 10, got %d", w.Tick())
	}
}

func TestApplyForce(t *testing.T) {
	w := NewWorld(0.5)
	b := &Body{Label: "b", Mass: 2, HalfW: 1, HalfH: 1}
	w.AddBody(b)

	w.ApplyForce(b, Vec2{X: 4})
	w.Step()

	// dv = F/m * dt = 4/2 * 0.5 = 1
	if math.Abs(b.Vel.X-1.0) > 1e-9 {
		t.Errorf("expected velocity 1.0, got %f", b.Vel.X)
	}

	// Forces are cleared after the step.
	w.Step()
	if math.Abs(b.Vel.X-1.0) > 1e-9 {
		t.Errorf("force leaked into next step: velocity %f", b.Vel.X)
	}
}

func TestStaticBodyIgnoresMutation(t *testing.T) {
	w := NewWorld(0.1)
	b := &Body{Label: "wall", Static: true, HalfW: 1, HalfH: 1}
	w.AddBody(b)

	w.SetVelocity(b, Vec2{X: 5})
	w.ApplyForce(b, Vec2{X: 100})
	w.Step()

	if b.Pos.X != 0 || b.Vel.X != 0 {
		t.Errorf("static body moved: pos=%f vel=%f", b.Pos.X, b.Vel.X)
	}
}

func TestCollisionStartFiresOncePerContact(t *testing.T) {
	w := NewWorld(0.1)
	wall := &Body{Label: "wall", Static: true, Pos: Vec2{X: 5}, HalfW: 1, HalfH: 1}
	mover := &Body{Label: "mover", Mass: 1, Vel: Vec2{X: 10}, HalfW: 1, HalfH: 1}
	w.AddBody(wall)
	w.AddBody(mover)

	var pairs []CollisionPair
	w.OnCollisionStart(func(p CollisionPair) { pairs = append(pairs, p) })

	// The mover passes through the wall region over several steps; the
	// contact should be reported exactly once.
	for i := 0; i < 20; i++ {
		w.Step()
	}

	if len(pairs) != 1 {
		t.Fatalf("expected 1 collision notification, got %d", len(pairs))
	}
	if !pairs[0].Involves("mover", "wall") {
		t.Errorf("unexpected pair: %+v", pairs[0])
	}
}

func TestCollisionRefiresAfterSeparation(t *testing.T) {
	w := NewWorld(1.0)
	wall := &Body{Label: "wall", Static: true, Pos: Vec2{X: 0}, HalfW: 1, HalfH: 1}
	mover := &Body{Label: "mover", Mass: 1, HalfW: 1, HalfH: 1, Pos: Vec2{X: 0}}
	w.AddBody(wall)
	w.AddBody(mover)

	count := 0
	w.OnCollisionStart(func(p CollisionPair) { count++ })

	w.Step() // overlapping: first contact
	w.SetVelocity(mover, Vec2{X: 10})
	w.Step() // moved away: contact cleared
	w.SetVelocity(mover, Vec2{X: -10})
	w.Step() // back in contact

	if count != 2 {
		t.Errorf("expected 2 contacts, got %d", count)
	}
}

func TestSensorNeverCollides(t *testing.T) {
	w := NewWorld(0.1)
	sensor := &Body{Label: "line", Static: true, Sensor: true, Pos: Vec2{X: 1}, HalfW: 1, HalfH: 10}
	mover := &Body{Label: "mover", Mass: 1, Vel: Vec2{X: 5}, HalfW: 1, HalfH: 1}
	w.AddBody(sensor)
	w.AddBody(mover)

	count := 0
	w.OnCollisionStart(func(p CollisionPair) { count++ })

	for i := 0; i < 10; i++ {
		w.Step()
	}

	if count != 0 {
		t.Errorf("sensor produced %d collision notifications", count)
	}
}

func TestOnTickRunsBeforeIntegration(t *testing.T) {
	w := NewWorld(1.0)
	b := &Body{Label: "b", Mass: 1, Vel: Vec2{X: 1}, HalfW: 1, HalfH: 1}
	w.AddBody(b)

	var seen float64 = -1
	w.OnTick(func(w *World) { seen = b.Pos.X })

	w.Step()

	if seen != 0 {
		t.Errorf("tick callback saw post-integration position %f", seen)
	}
	if b.Pos.X != 1 {
		t.Errorf("expected position 1 after step, got %f", b.Pos.X)
	}
}

func TestDuplicateLabelRejected(t *testing.T) {
	w := NewWorld(0.1)
	if err := w.AddBody(&Body{Label: "x"}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := w.AddBody(&Body{Label: "x"}); err == nil {
		t.Error("expected error for duplicate label")
	}
}

func TestDeterministicReplay(t *testing.T) {
	build := func() (*World, *Body) {
		w := NewWorld(1.0 / 60.0)
		b := &Body{Label: "b", Mass: 1000, Vel: Vec2{X: 15}, HalfW: 1, HalfH: 1}
		w.AddBody(b)
		w.OnTick(func(w *World) {
			w.ApplyForce(b, Vec2{X: -b.Vel.X * 0.15 * b.Mass})
		})
		return w, b
	}

	w1, b1 := build()
	w2, b2 := build()
	for i := 0; i < 500; i++ {
		w1.Step()
		w2.Step()
	}

	if b1.Pos != b2.Pos || b1.Vel != b2.Vel {
		t.Errorf("replay diverged: %+v vs %+v", b1, b2)
	}
}
