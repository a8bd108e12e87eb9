package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/simulator"
	"home_energy_simulator/internal/store"
)

type result struct {
	capacity float64
	summary  simulator.Summary
}

func main() {
	preset := flag.String("preset", "", "household preset name from -preset-dir")
	presetDir := flag.String("preset-dir", "examples/households", "directory containing household preset YAML files")
	inverter := flag.Float64("inverter", 5, "inverter capacity in kW")
	capsFlag := flag.String("capacities", "2.5,5,7.5,10,12.5,15,20", "comma-separated battery capacities in kWh")
	clip := flag.Bool("clip-solar", false, "zero solar output outside the sunrise/sunset window")
	flag.Parse()

	capacities, err := parseCapacities(*capsFlag)
	if err != nil {
		log.Fatalf("Invalid capacities %q: %v", *capsFlag, err)
	}
	sort.Float64s(capacities)

	household := model.Household{InverterCapacityKW: *inverter}
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

	results := make([]result, 0, len(capacities))
	for _, cap := range capacities {
		cfg := household.Clone()
		cfg.BatteryCapacityKWh = cap

		engine := simulator.New(simulator.Options{ClipSolar: *clip})
		res, err := engine.Simulate(cfg, 0)
		if err != nil {
			log.Fatalf("Simulating %.1f kWh: %v", cap, err)
		}
		results = append(results, result{capacity: cap, summary: res.Summary})
	}

	printTable(results, household)
}

func printTable(results []result, household model.Household) {
	if len(results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Battery Size Comparison")
	fmt.Printf("  PV: %.1f kW, scheduled appliances: %d\n",
		household.InverterCapacityKW, len(household.Appliances))
	fmt.Println()

	fmt.Printf(" %8s │ %11s │ %11s │ %9s │ %8s │ %6s │ %9s\n",
		"Capacity", "Grid Import", "Grid Export", " Savings ", "Marginal", "Cycles", "Self-Suff")
	fmt.Printf("──────────┼─────────────┼─────────────┼───────────┼──────────┼────────┼───────────\n")

	for i, r := range results {
		// Every kWh the battery delivered would otherwise have been
		// imported, so the discharged total is the saving.
		savings := r.summary.BatteryDischargedKWh
		cycles := savings / r.capacity

		marginal := "-"
		if i > 0 {
			prev := results[i-1]
			dCap := r.capacity - prev.capacity
			if dCap > 0 {
				m := (savings - prev.summary.BatteryDischargedKWh) / dCap
				marginal = fmt.Sprintf("%.2f", m)
			}
		}

		fmt.Printf(" %5.1f kWh │ %8.2f kWh │ %8.2f kWh │ %6.2f kWh│ %8s │ %6.2f │ %8.1f%%\n",
			r.capacity,
			r.summary.GridImportKWh,
			r.summary.GridExportKWh,
			savings,
			marginal,
			cycles,
			r.summary.SelfSufficiencyPct,
		)
	}
	fmt.Println()
}

func parseCapacities(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	caps := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("capacity must be positive, got %v", v)
		}
		caps = append(caps, v)
	}
	if len(caps) == 0 {
		return nil, fmt.Errorf("no capacities specified")
	}
	return caps, nil
}
