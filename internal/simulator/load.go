package simulator

import (
	"sort"

	"home_energy_simulator/internal/model"
)

// LoadAt returns the household draw in kW at the fractional hour t:
// the always-on baseline plus every enabled appliance whose schedule is
// active at t. With binary set, schedules are ignored and every enabled
// appliance draws around the clock.
//
// Appliances are summed in name order so identical configurations add
// the same floats in the same sequence and produce bit-identical loads.
func LoadAt(h model.Household, t float64, binary bool) float64 {
	load := model.BaselineLoadKW
	for _, name := range sortedAppliances(h) {
		ac := h.Appliances[name]
		if !ac.Enabled {
			continue
		}
		if !binary && !ac.Schedule.ActiveAt(t) {
			continue
		}
		load += model.ApplianceCatalog[name].PowerKW
	}
	return load
}

func sortedAppliances(h model.Household) []model.Appliance {
	names := make([]model.Appliance, 0, len(h.Appliances))
	for name := range h.Appliances {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
