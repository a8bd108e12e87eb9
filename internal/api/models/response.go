package models

import "home_energy_simulator/internal/model"

// ApplianceEntry describes one catalog appliance.
type ApplianceEntry struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	PowerKW float64 `json:"power_kw"`
}

// CatalogResponse lists the schedulable appliances and the fixed
// simulation constants a client needs to build a configuration form.
type CatalogResponse struct {
	Appliances     []ApplianceEntry `json:"appliances"`
	BaselineLoadKW float64          `json:"baseline_load_kw"`
	StepHours      float64          `json:"step_hours"`
}

// HouseholdEntry names one stored preset.
type HouseholdEntry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// HouseholdDetail is one stored preset with its full configuration.
type HouseholdDetail struct {
	Name      string          `json:"name"`
	Label     string          `json:"label"`
	Household model.Household `json:"household"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
