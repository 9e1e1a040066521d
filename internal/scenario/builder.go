package scenario

import "github.com/brakelab/brakelab/internal/physics"

// Build constructs the static world for a configuration: ground plane
// with the surface's friction, the brake-line sensor at the reference
// position, the obstacle at BrakeLineX + ObstacleDistance, and the
// vehicle off the near side. The vehicle carries zero friction because
// deceleration is modeled explicitly by the braking controller, not by
// the backend's friction model.
func Build(cfg RunConfiguration) *physics.World {
	w := physics.NewWorld(Dt)

	w.AddBody(&physics.Body{
		Label:    LabelGround,
		Static:   true,
		Pos:      physics.Vec2{X: 0, Y: -12},
		HalfW:    1e6,
		HalfH:    6,
		Friction: cfg.Surface.Friction(),
	})

	w.AddBody(&physics.Body{
		Label:  LabelBrakeLine,
		Static: true,
		Sensor: true,
		Pos:    physics.Vec2{X: BrakeLineX, Y: LaneY},
		HalfW:  0.5,
		HalfH:  20,
	})

	w.AddBody(&physics.Body{
		Label:  LabelObstacle,
		Static: true,
		Pos:    physics.Vec2{X: cfg.ObstacleX(), Y: LaneY},
		HalfW:  ObstacleHalfW,
		HalfH:  ObstacleHalfH,
	})

	vehicle := &physics.Body{
		Label: LabelVehicle,
		Pos:   physics.Vec2{X: StartX, Y: LaneY},
		Mass:  VehicleMass,
		HalfW: VehicleHalfW,
		HalfH: VehicleHalfH,
	}
	w.AddBody(vehicle)

	w.LookAt(vehicle.Pos)
	return w
}
