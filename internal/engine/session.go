package engine

import "github.com/brakelab/brakelab/internal/scenario"

// Phase is the run's lifecycle stage. Progression is monotonic:
// Idle → Cruising → Braking → Stopped or Crashed. The only exception is
// a Stopped run being overridden to Crashed when a collision
// notification lands after stop detection (see Evaluator).
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCruising
	PhaseBraking
	PhaseStopped
	PhaseCrashed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCruising:
		return "cruising"
	case PhaseBraking:
		return "braking"
	case PhaseStopped:
		return "stopped"
	case PhaseCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseStopped || p == PhaseCrashed
}

// Session holds all mutable run state, passed explicitly to the
// controller and evaluator each tick. A session lives exactly as long
// as one built world; a reset discards both together.
type Session struct {
	Config scenario.RunConfiguration

	Phase          Phase
	StartRequested bool

	// BrakingStarted latches once the vehicle reaches the brake line;
	// it never resets within a run.
	BrakingStarted bool

	// LowSpeedTicks counts consecutive ticks below the stop-detection
	// speed threshold.
	LowSpeedTicks int

	Finished bool
	Outcome  *Outcome
}

func NewSession(cfg scenario.RunConfiguration) *Session {
	return &Session{Config: cfg, Phase: PhaseIdle}
}
