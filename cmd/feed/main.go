package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"home_energy_simulator/internal/config"
	"home_energy_simulator/internal/feed"
	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/simulator"
	"home_energy_simulator/internal/store"
)

func main() {
	preset := flag.String("preset", "", "household preset name from -preset-dir")
	presetDir := flag.String("preset-dir", "examples/households", "directory containing household preset YAML files")
	inverter := flag.Float64("inverter", 5, "inverter capacity in kW")
	battery := flag.Float64("battery", 10, "battery capacity in kWh")
	broker := flag.String("broker", "", "MQTT broker URL (default from MQTT_BROKER)")
	topicPrefix := flag.String("topic-prefix", "", "MQTT topic prefix (default from MQTT_TOPIC_PREFIX)")
	speed := flag.Float64("speed", 3600, "replay speed factor (3600 = one simulated hour per second)")
	loop := flag.Bool("loop", false, "restart the day when it completes")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if *broker == "" {
		*broker = config.MQTTBroker()
	}
	if *topicPrefix == "" {
		*topicPrefix = config.MQTTTopicPrefix()
	}

	household := model.Household{
		InverterCapacityKW: *inverter,
		BatteryCapacityKWh: *battery,
	}
	if *preset != "" {
		st := store.New()
		if _, err := st.LoadDir(*presetDir); err != nil {
			log.Fatal().Err(err).Msg("loading presets failed")
		}
		p, ok := st.Get(*preset)
		if !ok {
			log.Fatal().Str("preset", *preset).Str("available", strings.Join(st.Names(), ", ")).Msg("unknown preset")
		}
		household = p.Household
	}

	result, err := simulator.SimulateDay(household, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	client, err := feed.Dial(*broker, fmt.Sprintf("home_energy_feed_%d", os.Getpid()))
	if err != nil {
		log.Fatal().Err(err).Str("broker", *broker).Msg("mqtt connect failed")
	}
	defer client.Disconnect(250)

	f := feed.New(client, *topicPrefix, log.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("broker", *broker).Str("prefix", *topicPrefix).Float64("speed", *speed).Msg("replay starting")
	for {
		if err := f.Replay(ctx, household, result, *speed); err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info().Msg("replay stopped")
				return
			}
			log.Fatal().Err(err).Msg("replay failed")
		}
		if !*loop {
			return
		}
	}
}
