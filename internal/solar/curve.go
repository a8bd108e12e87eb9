package solar

import "math"

// Curve models rooftop PV output as a Gaussian bell over the day.
// The shape is analytic rather than measured: output peaks at PeakHour
// and falls off symmetrically with spread SigmaHours, scaled by the
// array's inverter capacity.
type Curve struct {
	// PeakHour is the fractional hour of maximum output.
	PeakHour float64
	// SigmaHours is the standard deviation of the bell.
	SigmaHours float64
	// Sunrise and Sunset bound generation when Clip is set.
	Sunrise float64
	Sunset  float64
	// Clip forces output to zero outside the sunrise/sunset window
	// instead of letting the bell's tails run all night.
	Clip bool
}

// DefaultCurve returns the canonical mid-latitude summer curve: solar
// noon at 12.5 with a 2.5 h spread, daylight from 06:00 to 20:30.
func DefaultCurve() Curve {
	return Curve{
		PeakHour:   12.5,
		SigmaHours: 2.5,
		Sunrise:    6.0,
		Sunset:     20.5,
	}
}

// PowerAt returns instantaneous PV power in kW at the fractional hour t
// for an array with the given inverter capacity. Output never exceeds
// the capacity and is symmetric around PeakHour.
func (c Curve) PowerAt(t, capacityKW float64) float64 {
	if c.Clip && (t < c.Sunrise || t > c.Sunset) {
		return 0
	}
	dist := t - c.PeakHour
	return capacityKW * math.Exp(-dist*dist/(2*c.SigmaHours*c.SigmaHours))
}
