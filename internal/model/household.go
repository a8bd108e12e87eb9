package model

import (
	"errors"
	"fmt"
	"sort"

	"home_energy_simulator/internal/schedule"
)

// Appliance identifies a schedulable appliance in the fixed catalog.
type Appliance string

const (
	ApplianceWashingMachine Appliance = "washing_machine"
	ApplianceDishwasher     Appliance = "dishwasher"
	ApplianceTumbleDryer    Appliance = "tumble_dryer"
	ApplianceOven           Appliance = "oven"
	ApplianceEVCharger      Appliance = "ev_charger"
	AppliancePoolPump       Appliance = "pool_pump"
)

// ApplianceInfo holds the display label and fixed power draw for an
// appliance. Draws are flat: an appliance is either off or pulling its
// full rated power.
type ApplianceInfo struct {
	Label   string  `json:"label"`
	PowerKW float64 `json:"power_kw"`
}

// BaselineLoadKW is the always-on household load (refrigerator and
// standby devices) added to every instant regardless of schedules.
const BaselineLoadKW = 0.15

// ApplianceCatalog maps every known appliance to its label and power
// draw. It is the single source of truth shared by the engine and its
// callers; per-run configuration only enables appliances and sets their
// schedules, so power values cannot drift between UI and engine.
var ApplianceCatalog = map[Appliance]ApplianceInfo{
	ApplianceWashingMachine: {Label: "Washing Machine", PowerKW: 2.2},
	ApplianceDishwasher:     {Label: "Dishwasher", PowerKW: 1.8},
	ApplianceTumbleDryer:    {Label: "Tumble Dryer", PowerKW: 2.6},
	ApplianceOven:           {Label: "Oven", PowerKW: 2.4},
	ApplianceEVCharger:      {Label: "EV Charger", PowerKW: 7.4},
	AppliancePoolPump:       {Label: "Pool Pump", PowerKW: 1.1},
}

// CatalogNames returns the catalog keys in sorted order, for stable
// listings in API responses and CLI output.
func CatalogNames() []Appliance {
	names := make([]Appliance, 0, len(ApplianceCatalog))
	for name := range ApplianceCatalog {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ApplianceConfig is the per-run state of one appliance. An appliance
// draws power only while it is enabled and one of its schedule windows
// is active.
type ApplianceConfig struct {
	Enabled  bool              `json:"enabled" yaml:"enabled"`
	Schedule schedule.Schedule `json:"schedule" yaml:"schedule"`
}

// Household is the caller-owned configuration for one simulation run.
// Appliances absent from the map are treated as disabled.
type Household struct {
	InverterCapacityKW float64                       `json:"inverter_capacity_kw" yaml:"inverter_capacity_kw"`
	BatteryCapacityKWh float64                       `json:"battery_capacity_kwh" yaml:"battery_capacity_kwh"`
	Appliances         map[Appliance]ApplianceConfig `json:"appliances,omitempty" yaml:"appliances,omitempty"`
}

// DefaultHousehold is the configuration the dashboard starts from: a
// 5 kW array with a 10 kWh battery and nothing scheduled.
func DefaultHousehold() Household {
	return Household{
		InverterCapacityKW: 5,
		BatteryCapacityKWh: 10,
	}
}

// Validate checks the configuration before any simulation runs. Battery
// capacity divides the state-of-charge computation, so a non-positive
// value is rejected here rather than clamped.
func (h Household) Validate() error {
	if h.BatteryCapacityKWh <= 0 {
		return errors.New("battery_capacity_kwh must be > 0")
	}
	if h.InverterCapacityKW < 0 {
		return errors.New("inverter_capacity_kw must be >= 0")
	}
	for name := range h.Appliances {
		if _, ok := ApplianceCatalog[name]; !ok {
			return fmt.Errorf("unknown appliance %q", name)
		}
	}
	return nil
}

// Clone returns a deep copy, so the holder is insulated from later
// mutation of the caller's appliance map.
func (h Household) Clone() Household {
	out := h
	if h.Appliances != nil {
		out.Appliances = make(map[Appliance]ApplianceConfig, len(h.Appliances))
		for name, ac := range h.Appliances {
			out.Appliances[name] = ac
		}
	}
	return out
}

// Equal reports whether two configurations describe the same run.
// Used to decide whether a cached day sweep can be reused.
func (h Household) Equal(o Household) bool {
	if h.InverterCapacityKW != o.InverterCapacityKW ||
		h.BatteryCapacityKWh != o.BatteryCapacityKWh {
		return false
	}
	if len(h.Appliances) != len(o.Appliances) {
		return false
	}
	for name, ac := range h.Appliances {
		oc, ok := o.Appliances[name]
		if !ok || ac != oc {
			return false
		}
	}
	return true
}
