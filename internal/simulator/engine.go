package simulator

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/schedule"
	"home_energy_simulator/internal/solar"
)

const (
	// StepHours is the integration step, six minutes of simulated time.
	StepHours = 0.1
	// DefaultHorizonHours runs the sweep through the whole day.
	DefaultHorizonHours = 24.0
	// DefaultMaxDischargeKW is the battery's hard discharge rate cap.
	DefaultMaxDischargeKW = 5.0
)

// Options select the engine variant. The zero value is the canonical
// behavior: unclipped solar curve, schedule-driven appliances, 5 kW
// discharge cap, full 24 h sweep.
type Options struct {
	// ClipSolar zeroes PV output outside the sunrise/sunset window
	// instead of letting the bell's tails run all night.
	ClipSolar bool
	// BinaryAppliances ignores schedules entirely: every enabled
	// appliance draws around the clock.
	BinaryAppliances bool
	// MaxDischargeKW caps the battery discharge rate. Zero or negative
	// falls back to DefaultMaxDischargeKW.
	MaxDischargeKW float64
	// HorizonHours ends the sweep early for partial-day runs. Zero or
	// negative falls back to DefaultHorizonHours.
	HorizonHours float64
	// Trace, when set, receives an event for each appliance on/off
	// transition during a sweep. Diagnostic only; it never affects the
	// computed result.
	Trace *zerolog.Logger
}

// Engine runs day simulations. A simulation is a pure function of its
// configuration and query time; the engine's only state is a cache of
// the most recent sweep, so slider-style callers that vary the query
// time against one configuration pay for a single integration. Cached
// answers are identical to a fresh recomputation.
type Engine struct {
	opts  Options
	curve solar.Curve
	trace *zerolog.Logger

	mu   sync.Mutex
	last *daySweep
}

// daySweep is one completed integration, kept for snapshot lookups.
type daySweep struct {
	cfg     model.Household
	series  Series
	summary Summary
}

// New returns an engine for the given variant.
func New(opts Options) *Engine {
	if opts.MaxDischargeKW <= 0 {
		opts.MaxDischargeKW = DefaultMaxDischargeKW
	}
	if opts.HorizonHours <= 0 {
		opts.HorizonHours = DefaultHorizonHours
	}
	curve := solar.DefaultCurve()
	curve.Clip = opts.ClipSolar
	trace := opts.Trace
	if trace == nil {
		nop := zerolog.Nop()
		trace = &nop
	}
	return &Engine{opts: opts, curve: curve, trace: trace}
}

// SimulateDay runs a single simulation with the canonical engine
// variant. Callers issuing repeated queries against one configuration
// should hold an Engine instead to reuse its sweep cache.
func SimulateDay(cfg model.Household, queryHours float64) (Result, error) {
	return New(Options{}).Simulate(cfg, queryHours)
}

// Simulate validates cfg, integrates the day and returns the series,
// the snapshot at queryHours and the day totals. The returned series is
// shared with the engine's cache and must be treated as read-only.
func (e *Engine) Simulate(cfg model.Household, queryHours float64) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	e.mu.Lock()
	sw := e.last
	if sw == nil || !sw.cfg.Equal(cfg) {
		sw = e.sweep(cfg.Clone())
		e.last = sw
	}
	e.mu.Unlock()

	return Result{
		Series:   sw.series,
		Snapshot: e.snapshot(sw, queryHours),
		Summary:  sw.summary,
	}, nil
}

// sweep integrates from hour 0 to the horizon in StepHours increments.
// Each step accumulates consumption, routes the solar/load imbalance
// through the battery and records the post-step state in the series.
func (e *Engine) sweep(cfg model.Household) *daySweep {
	// Iterating an integer step count keeps float accumulation from
	// drifting the final step off the horizon.
	steps := int(math.Round(e.opts.HorizonHours / StepHours))
	n := steps + 1

	series := Series{
		Times:               make([]float64, n),
		SolarKW:             make([]float64, n),
		SoCPercent:          make([]float64, n),
		BatteryKWh:          make([]float64, n),
		GridImportKWh:       make([]float64, n),
		HouseConsumptionKWh: make([]float64, n),
	}

	bat := NewBattery(cfg.BatteryCapacityKWh)
	maxStepKWh := e.opts.MaxDischargeKW * StepHours
	tracker := e.newTracker(cfg)

	var imported, exported, consumed, produced, discharged float64

	for i := 0; i < n; i++ {
		t := float64(i) * StepHours

		load := LoadAt(cfg, t, e.opts.BinaryAppliances)
		consumed += load * StepHours

		sol := e.curve.PowerAt(t, cfg.InverterCapacityKW)
		produced += sol * StepHours

		if net := sol - load; net >= 0 {
			surplus := net * StepHours
			stored := bat.Charge(surplus)
			exported += surplus - stored
		} else {
			need := -net * StepHours
			delivered := bat.Discharge(need, maxStepKWh)
			discharged += delivered
			imported += need - delivered
		}

		series.Times[i] = t
		series.SolarKW[i] = sol
		series.SoCPercent[i] = bat.SoCPercent()
		series.BatteryKWh[i] = bat.StoredKWh()
		series.GridImportKWh[i] = imported
		series.HouseConsumptionKWh[i] = consumed

		tracker.observe(t)
	}

	selfConsumption := produced - exported
	if selfConsumption < 0 {
		selfConsumption = 0
	}
	var selfSufficiency float64
	if consumed > 0 {
		selfSufficiency = (consumed - imported) / consumed * 100
		if selfSufficiency < 0 {
			selfSufficiency = 0
		}
		if selfSufficiency > 100 {
			selfSufficiency = 100
		}
	}

	return &daySweep{
		cfg:    cfg,
		series: series,
		summary: Summary{
			SolarKWh:             produced,
			ConsumptionKWh:       consumed,
			GridImportKWh:        imported,
			GridExportKWh:        exported,
			BatteryDischargedKWh: discharged,
			SelfConsumptionKWh:   selfConsumption,
			SelfSufficiencyPct:   selfSufficiency,
		},
	}
}

// snapshot reads the series entry nearest queryHours for accumulated
// values. Load and solar are point-in-time quantities and are evaluated
// at the exact query time instead; queries outside the recorded range
// clamp to the nearest boundary for the index lookup only.
func (e *Engine) snapshot(sw *daySweep, queryHours float64) Snapshot {
	idx := int(math.Round(queryHours / StepHours))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sw.series.Times)-1 {
		idx = len(sw.series.Times) - 1
	}
	return Snapshot{
		TimeHours:           queryHours,
		SoCPercent:          sw.series.SoCPercent[idx],
		BatteryKWh:          sw.series.BatteryKWh[idx],
		GridImportKWh:       sw.series.GridImportKWh[idx],
		GridExportKWh:       sw.summary.GridExportKWh,
		HouseConsumptionKWh: sw.series.HouseConsumptionKWh[idx],
		LoadKW:              LoadAt(sw.cfg, queryHours, e.opts.BinaryAppliances),
		SolarKW:             e.curve.PowerAt(queryHours, sw.cfg.InverterCapacityKW),
	}
}

// tracker logs appliance on/off transitions during a sweep. Purely
// diagnostic; the simulation never reads it back.
type tracker struct {
	trace      *zerolog.Logger
	appliances []trackedAppliance
}

type trackedAppliance struct {
	name  model.Appliance
	sched schedule.Schedule
	on    bool
}

func (e *Engine) newTracker(cfg model.Household) *tracker {
	tr := &tracker{trace: e.trace}
	if e.opts.BinaryAppliances || e.trace.GetLevel() == zerolog.Disabled {
		return tr
	}
	for _, name := range sortedAppliances(cfg) {
		ac := cfg.Appliances[name]
		if !ac.Enabled {
			continue
		}
		tr.appliances = append(tr.appliances, trackedAppliance{name: name, sched: ac.Schedule})
	}
	return tr
}

func (tr *tracker) observe(t float64) {
	for i := range tr.appliances {
		a := &tr.appliances[i]
		on := a.sched.ActiveAt(t)
		if on == a.on {
			continue
		}
		a.on = on
		tr.trace.Trace().
			Str("appliance", string(a.name)).
			Float64("hour", t).
			Bool("on", on).
			Msg("appliance transition")
	}
}
