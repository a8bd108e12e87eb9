package models

import "home_energy_simulator/internal/model"

// SimulateRequest is the request body for running a day simulation.
type SimulateRequest struct {
	QueryTimeHours     float64                                   `json:"query_time_hours"`
	InverterCapacityKW float64                                   `json:"inverter_capacity_kw"`
	BatteryCapacityKWh float64                                   `json:"battery_capacity_kwh"`
	Appliances         map[model.Appliance]model.ApplianceConfig `json:"appliances,omitempty"`
	Options            SimulateOptions                           `json:"options,omitempty"`
}

// SimulateOptions selects engine variants for a single request. Zero
// values fall back to the engine defaults.
type SimulateOptions struct {
	ClipSolar        bool    `json:"clip_solar,omitempty"`
	BinaryAppliances bool    `json:"binary_appliances,omitempty"`
	HorizonHours     float64 `json:"horizon_hours,omitempty"`
	MaxDischargeKW   float64 `json:"max_discharge_kw,omitempty"`
}

// Household assembles the model configuration from the flat request
// fields.
func (r SimulateRequest) Household() model.Household {
	return model.Household{
		InverterCapacityKW: r.InverterCapacityKW,
		BatteryCapacityKWh: r.BatteryCapacityKWh,
		Appliances:         r.Appliances,
	}
}
