// Package scenario defines run configurations (speed class, road surface,
// obstacle distance) and builds the static world for a run.
package scenario

import "fmt"

// World geometry and vehicle constants, in simulation units.
const (
	// BrakeLineX is the fixed reference position at which engine power
	// is cut and active deceleration begins.
	BrakeLineX = 150.0

	// StartX places the vehicle off the visible area on the near side
	// of the brake line.
	StartX = -60.0

	LaneY = 0.0

	VehicleMass  = 1000.0
	VehicleHalfW = 6.0
	VehicleHalfH = 2.5

	ObstacleHalfW = 2.0
	ObstacleHalfH = 4.0

	// MetersPerUnit converts simulation length units to metres for
	// reported distances.
	MetersPerUnit = 0.4

	// Dt is the fixed integration timestep (60 Hz).
	Dt = 1.0 / 60.0
)

// Body labels used across the simulation.
const (
	LabelVehicle   = "vehicle"
	LabelObstacle  = "obstacle"
	LabelGround    = "ground"
	LabelBrakeLine = "brake_line"
)

type SpeedClass string

const (
	SpeedLow    SpeedClass = "low"
	SpeedMedium SpeedClass = "medium"
	SpeedHigh   SpeedClass = "high"
)

// CruiseSpeed returns the constant velocity maintained before the brake
// line, in units/s.
func (s SpeedClass) CruiseSpeed() float64 {
	switch s {
	case SpeedLow:
		return 10.0
	case SpeedHigh:
		return 20.0
	default:
		return 15.0
	}
}

func (s SpeedClass) Label() string {
	switch s {
	case SpeedLow:
		return "30 km/h"
	case SpeedHigh:
		return "60 km/h"
	default:
		return "45 km/h"
	}
}

func ParseSpeedClass(s string) (SpeedClass, error) {
	switch SpeedClass(s) {
	case SpeedLow, SpeedMedium, SpeedHigh:
		return SpeedClass(s), nil
	}
	return "", fmt.Errorf("unknown speed class: %s (want low, medium or high)", s)
}

type Surface string

const (
	SurfaceDry Surface = "dry"
	SurfaceWet Surface = "wet"
	SurfaceIcy Surface = "icy"
)

// Friction is the ground-plane surface friction for the backend. The
// vehicle itself rolls friction-free; deceleration is modeled explicitly
// by the braking controller.
func (s Surface) Friction() float64 {
	switch s {
	case SurfaceWet:
		return 0.5
	case SurfaceIcy:
		return 0.1
	default:
		return 0.9
	}
}

// BrakingCoefficient controls deceleration force magnitude. Calibrated
// so stopping distance ordering dry < wet < icy holds for any fixed
// speed and obstacle distance.
func (s Surface) BrakingCoefficient() float64 {
	switch s {
	case SurfaceWet:
		return 0.08
	case SurfaceIcy:
		return 0.03
	default:
		return 0.15
	}
}

func (s Surface) Label() string {
	switch s {
	case SurfaceWet:
		return "wet"
	case SurfaceIcy:
		return "icy"
	default:
		return "dry"
	}
}

func ParseSurface(s string) (Surface, error) {
	switch Surface(s) {
	case SurfaceDry, SurfaceWet, SurfaceIcy:
		return Surface(s), nil
	}
	return "", fmt.Errorf("unknown surface: %s (want dry, wet or icy)", s)
}

// RunConfiguration is immutable per run; changing it triggers a full
// world rebuild.
type RunConfiguration struct {
	SpeedClass       SpeedClass
	Surface          Surface
	ObstacleDistance float64
}

func DefaultConfiguration() RunConfiguration {
	return RunConfiguration{
		SpeedClass:       SpeedMedium,
		Surface:          SurfaceDry,
		ObstacleDistance: 400.0,
	}
}

// ObstacleX returns the obstacle's position on the travel axis.
func (c RunConfiguration) ObstacleX() float64 {
	return BrakeLineX + c.ObstacleDistance
}
