package simulator

import "math"

// Battery tracks stored energy during a day sweep. All quantities are
// kWh; rate limits are applied by the caller as per-step energy caps.
type Battery struct {
	capacityKWh float64
	storedKWh   float64
}

// NewBattery returns a battery starting completely full. Every sweep
// begins at 100% state of charge; nothing persists between runs.
func NewBattery(capacityKWh float64) *Battery {
	return &Battery{capacityKWh: capacityKWh, storedKWh: capacityKWh}
}

// Charge absorbs up to energyKWh, limited by the remaining headroom,
// and returns the amount actually stored. The caller exports the rest.
func (b *Battery) Charge(energyKWh float64) float64 {
	stored := math.Min(energyKWh, b.capacityKWh-b.storedKWh)
	if stored < 0 {
		stored = 0
	}
	b.storedKWh += stored
	// Adding the rounded headroom can overshoot by an ulp.
	if b.storedKWh > b.capacityKWh {
		b.storedKWh = b.capacityKWh
	}
	return stored
}

// Discharge draws up to energyKWh, limited by the stored energy and by
// maxKWh (the discharge rate cap times the step length), and returns
// the energy actually delivered. The caller imports the shortfall.
func (b *Battery) Discharge(energyKWh, maxKWh float64) float64 {
	delivered := math.Min(energyKWh, math.Min(b.storedKWh, maxKWh))
	if delivered < 0 {
		delivered = 0
	}
	b.storedKWh -= delivered
	return delivered
}

// StoredKWh returns the energy currently held.
func (b *Battery) StoredKWh() float64 {
	return b.storedKWh
}

// SoCPercent returns the state of charge as a 0-100 percentage.
func (b *Battery) SoCPercent() float64 {
	if b.capacityKWh <= 0 {
		return 0
	}
	return b.storedKWh / b.capacityKWh * 100
}
