package simulator

// Series holds the full-day trace, one entry per integration step.
// All slices are parallel and indexed by step.
type Series struct {
	// Times is the step timeline in decimal hours, 0 through the
	// horizon inclusive.
	Times []float64 `json:"times"`
	// SolarKW is the instantaneous PV output at each step.
	SolarKW []float64 `json:"solar_kw"`
	// SoCPercent and BatteryKWh record battery state after each step's
	// charge or discharge has been applied.
	SoCPercent []float64 `json:"soc_percent"`
	BatteryKWh []float64 `json:"battery_kwh"`
	// GridImportKWh and HouseConsumptionKWh are running cumulative
	// totals up to and including each step.
	GridImportKWh       []float64 `json:"grid_import_kwh"`
	HouseConsumptionKWh []float64 `json:"house_consumption_kwh"`
}

// Snapshot is the instantaneous view at the query time. Accumulated
// quantities come from the series entry nearest the query time; load
// and solar are evaluated directly at the exact query time since they
// are point-in-time rather than accumulated. GridExportKWh is always
// the whole-day total.
type Snapshot struct {
	TimeHours           float64 `json:"time_hours"`
	SoCPercent          float64 `json:"soc_percent"`
	BatteryKWh          float64 `json:"battery_kwh"`
	GridImportKWh       float64 `json:"grid_import_kwh"`
	GridExportKWh       float64 `json:"grid_export_kwh"`
	HouseConsumptionKWh float64 `json:"house_consumption_kwh"`
	LoadKW              float64 `json:"load_kw"`
	SolarKW             float64 `json:"solar_kw"`
}

// Summary holds whole-day energy totals.
type Summary struct {
	SolarKWh             float64 `json:"solar_kwh"`
	ConsumptionKWh       float64 `json:"consumption_kwh"`
	GridImportKWh        float64 `json:"grid_import_kwh"`
	GridExportKWh        float64 `json:"grid_export_kwh"`
	BatteryDischargedKWh float64 `json:"battery_discharged_kwh"`
	// SelfConsumptionKWh is solar production kept in the house
	// (production minus export, floored at zero).
	SelfConsumptionKWh float64 `json:"self_consumption_kwh"`
	// SelfSufficiencyPct is the share of consumption not covered by
	// grid import, 0-100.
	SelfSufficiencyPct float64 `json:"self_sufficiency_pct"`
}

// Result is the output of one simulation run: the full series, the
// snapshot at the query time, and the day totals.
type Result struct {
	Series   Series   `json:"series"`
	Snapshot Snapshot `json:"snapshot"`
	Summary  Summary  `json:"summary"`
}
