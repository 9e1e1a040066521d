// Package metrics provides per-tick run metrics observed by the engine.
package metrics

import "math"

// Metric observes the vehicle each tick and reduces to one value.
type Metric interface {
	Name() string
	Observe(position, velocity, t float64)
	Value() float64
	Reset()
}

// PeakDecel reports the largest deceleration seen, in units/s².
type PeakDecel struct {
	prevVel float64
	prevT   float64
	samples int
	peak    float64
}

func NewPeakDecel() *PeakDecel { return &PeakDecel{} }

func (p *PeakDecel) Name() string { return "peak_decel" }

func (p *PeakDecel) Observe(position, velocity, t float64) {
	if p.samples > 0 {
		dt := t - p.prevT
		if dt > 0 {
			decel := (p.prevVel - velocity) / dt
			if decel > p.peak {
				p.peak = decel
			}
		}
	}
	p.prevVel = velocity
	p.prevT = t
	p.samples++
}

func (p *PeakDecel) Value() float64 { return p.peak }

func (p *PeakDecel) Reset() {
	p.prevVel = 0
	p.prevT = 0
	p.samples = 0
	p.peak = 0
}

// MeanSpeed reports the average speed magnitude over the run.
type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(position, velocity, t float64) {
	m.sum += math.Abs(velocity)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// TravelDistance reports total distance covered since the first sample.
type TravelDistance struct {
	first   float64
	last    float64
	samples int
}

func NewTravelDistance() *TravelDistance { return &TravelDistance{} }

func (d *TravelDistance) Name() string { return "travel_distance" }

func (d *TravelDistance) Observe(position, velocity, t float64) {
	if d.samples == 0 {
		d.first = position
	}
	d.last = position
	d.samples++
}

func (d *TravelDistance) Value() float64 { return d.last - d.first }

func (d *TravelDistance) Reset() {
	d.first = 0
	d.last = 0
	d.samples = 0
}
