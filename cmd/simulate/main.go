package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/schedule"
	"home_energy_simulator/internal/simulator"
	"home_energy_simulator/internal/store"
)

// applianceFlags collects repeated -appliance arguments.
type applianceFlags []string

func (a *applianceFlags) String() string { return strings.Join(*a, " ") }

func (a *applianceFlags) Set(v string) error {
	*a = append(*a, v)
	return nil
}

func main() {
	preset := flag.String("preset", "", "household preset name from -preset-dir")
	presetDir := flag.String("preset-dir", "examples/households", "directory containing household preset YAML files")
	inverter := flag.Float64("inverter", 5, "inverter capacity in kW")
	battery := flag.Float64("battery", 10, "battery capacity in kWh")
	at := flag.String("at", "12:00", "query time as HH:MM or decimal hours")
	clip := flag.Bool("clip-solar", false, "zero solar output outside the sunrise/sunset window")
	binary := flag.Bool("binary-appliances", false, "ignore schedules; enabled appliances draw all day")
	horizon := flag.Float64("horizon", 0, "simulate only the first N hours (0 = full day)")
	maxDischarge := flag.Float64("max-discharge", 0, "battery discharge cap in kW (0 = default)")
	every := flag.Float64("every", 1, "table row interval in hours")
	asJSON := flag.Bool("json", false, "print the full result as JSON instead of the table")
	var appliances applianceFlags
	flag.Var(&appliances, "appliance", "schedule as name=HH:MM-HH:MM[,HH:MM-HH:MM] (repeatable)")
	flag.Parse()

	queryHours, err := parseQueryTime(*at)
	if err != nil {
		log.Fatalf("Invalid -at value: %v", err)
	}

	household := model.Household{
		InverterCapacityKW: *inverter,
		BatteryCapacityKWh: *battery,
	}
	if *preset != "" {
		st := store.New()
		if _, err := st.LoadDir(*presetDir); err != nil {
			log.Fatalf("Loading presets: %v", err)
		}
		p, ok := st.Get(*preset)
		if !ok {
			log.Fatalf("Unknown preset %q (available: %s)", *preset, strings.Join(st.Names(), ", "))
		}
		household = p.Household
	}
	for _, spec := range appliances {
		name, cfg, err := parseApplianceFlag(spec)
		if err != nil {
			log.Fatalf("Invalid -appliance value: %v", err)
		}
		if household.Appliances == nil {
			household.Appliances = make(map[model.Appliance]model.ApplianceConfig)
		}
		household.Appliances[name] = cfg
	}

	engine := simulator.New(simulator.Options{
		ClipSolar:        *clip,
		BinaryAppliances: *binary,
		HorizonHours:     *horizon,
		MaxDischargeKW:   *maxDischarge,
	})
	result, err := engine.Simulate(household, queryHours)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatal(err)
		}
		return
	}

	printDay(household, result, *binary, *every)
}

// parseQueryTime accepts "HH:MM" or decimal hours.
func parseQueryTime(s string) (float64, error) {
	if t, ok := schedule.ParseClock(s); ok {
		return t, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("want HH:MM or decimal hours, got %q", s)
	}
	return v, nil
}

// parseApplianceFlag parses name=HH:MM-HH:MM with an optional second
// window after a comma.
func parseApplianceFlag(spec string) (model.Appliance, model.ApplianceConfig, error) {
	name, windows, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return "", model.ApplianceConfig{}, fmt.Errorf("want name=HH:MM-HH:MM, got %q", spec)
	}

	cfg := model.ApplianceConfig{Enabled: true}
	parts := strings.Split(windows, ",")
	if len(parts) > 2 {
		return "", model.ApplianceConfig{}, fmt.Errorf("at most two windows per appliance, got %d", len(parts))
	}
	for i, part := range parts {
		on, off, ok := strings.Cut(strings.TrimSpace(part), "-")
		if !ok {
			return "", model.ApplianceConfig{}, fmt.Errorf("window %q: want HH:MM-HH:MM", part)
		}
		switch i {
		case 0:
			cfg.Schedule.On1, cfg.Schedule.Off1 = on, off
		case 1:
			cfg.Schedule.On2, cfg.Schedule.Off2 = on, off
		}
	}
	return model.Appliance(name), cfg, nil
}

func printDay(h model.Household, result simulator.Result, binary bool, every float64) {
	fmt.Println()
	fmt.Printf("Household Day Simulation: %.1f kW PV, %.1f kWh battery\n",
		h.InverterCapacityKW, h.BatteryCapacityKWh)
	if n := len(h.Appliances); n > 0 {
		fmt.Printf("  Scheduled appliances: %d\n", n)
	}
	fmt.Println()

	fmt.Printf(" %5s │ %8s │ %7s │ %6s │ %11s │ %10s │ %12s\n",
		"Hour", "Solar kW", "Load kW", "SoC %", "Battery kWh", "Import kWh", "Consumed kWh")
	fmt.Printf("───────┼──────────┼─────────┼────────┼─────────────┼────────────┼──────────────\n")

	rowStep := int(math.Round(every / simulator.StepHours))
	if rowStep < 1 {
		rowStep = 1
	}
	s := result.Series
	for i := 0; i < len(s.Times); i += rowStep {
		load := simulator.LoadAt(h, s.Times[i], binary)
		fmt.Printf(" %5.1f │ %8.2f │ %7.2f │ %6.1f │ %11.2f │ %10.2f │ %12.2f\n",
			s.Times[i], s.SolarKW[i], load, s.SoCPercent[i],
			s.BatteryKWh[i], s.GridImportKWh[i], s.HouseConsumptionKWh[i])
	}

	snap := result.Snapshot
	fmt.Println()
	fmt.Printf("At %.1f h: SoC %.1f%% (%.2f kWh), load %.2f kW, solar %.2f kW\n",
		snap.TimeHours, snap.SoCPercent, snap.BatteryKWh, snap.LoadKW, snap.SolarKW)
	fmt.Printf("  Grid import so far: %.2f kWh, consumption so far: %.2f kWh\n",
		snap.GridImportKWh, snap.HouseConsumptionKWh)

	sum := result.Summary
	fmt.Println()
	fmt.Println("Day totals")
	fmt.Printf("  Solar production:   %7.2f kWh\n", sum.SolarKWh)
	fmt.Printf("  House consumption:  %7.2f kWh\n", sum.ConsumptionKWh)
	fmt.Printf("  Grid import:        %7.2f kWh\n", sum.GridImportKWh)
	fmt.Printf("  Grid export:        %7.2f kWh\n", sum.GridExportKWh)
	fmt.Printf("  Battery discharged: %7.2f kWh\n", sum.BatteryDischargedKWh)
	fmt.Printf("  Self-consumption:   %7.2f kWh\n", sum.SelfConsumptionKWh)
	fmt.Printf("  Self-sufficiency:   %6.1f %%\n", sum.SelfSufficiencyPct)
	fmt.Println()
}
