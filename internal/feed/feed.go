package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/simulator"
)

// Reading is one telemetry sample of the simulated household, published
// per integration step during a replay.
type Reading struct {
	TimeHours           float64   `json:"time_hours"`
	SolarKW             float64   `json:"solar_kw"`
	LoadKW              float64   `json:"load_kw"`
	SoCPercent          float64   `json:"soc_percent"`
	BatteryKWh          float64   `json:"battery_kwh"`
	GridImportKWh       float64   `json:"grid_import_kwh"`
	HouseConsumptionKWh float64   `json:"house_consumption_kwh"`
	Timestamp           time.Time `json:"timestamp"`
}

// Publisher is the slice of mqtt.Client the feed uses, separated so
// tests can capture publishes without a broker.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Feed replays a simulated day onto an MQTT broker, one reading per
// step, paced to wall-clock time scaled by a speed factor.
type Feed struct {
	pub    Publisher
	prefix string
	log    zerolog.Logger
}

func New(pub Publisher, topicPrefix string, log zerolog.Logger) *Feed {
	return &Feed{pub: pub, prefix: topicPrefix, log: log}
}

// Dial connects a plain MQTT client for the feed.
func Dial(broker, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return client, nil
}

func (f *Feed) ReadingTopic() string {
	return fmt.Sprintf("%s/reading", f.prefix)
}

func (f *Feed) SummaryTopic() string {
	return fmt.Sprintf("%s/summary", f.prefix)
}

// Replay publishes the whole series in order. A speed of 1 replays in
// real time (one simulated day takes a day); 3600 compresses each hour
// into a second. The day summary goes out retained after the last
// reading. Cancelling ctx stops the replay between steps.
func (f *Feed) Replay(ctx context.Context, cfg model.Household, result simulator.Result, speed float64) error {
	if speed <= 0 {
		return errors.New("speed must be > 0")
	}
	stepWall := time.Duration(float64(time.Hour) * simulator.StepHours / speed)

	n := len(result.Series.Times)
	for i := 0; i < n; i++ {
		if err := f.publishJSON(f.ReadingTopic(), false, f.readingAt(cfg, result.Series, i)); err != nil {
			return err
		}
		f.log.Debug().Float64("hour", result.Series.Times[i]).Msg("published reading")

		if i == n-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(stepWall):
		}
	}

	if err := f.publishJSON(f.SummaryTopic(), true, result.Summary); err != nil {
		return err
	}
	f.log.Info().Int("readings", n).Msg("replay complete")
	return nil
}

func (f *Feed) readingAt(cfg model.Household, s simulator.Series, i int) Reading {
	t := s.Times[i]
	return Reading{
		TimeHours:           t,
		SolarKW:             s.SolarKW[i],
		LoadKW:              simulator.LoadAt(cfg, t, false),
		SoCPercent:          s.SoCPercent[i],
		BatteryKWh:          s.BatteryKWh[i],
		GridImportKWh:       s.GridImportKWh[i],
		HouseConsumptionKWh: s.HouseConsumptionKWh[i],
		Timestamp:           time.Now().UTC(),
	}
}

func (f *Feed) publishJSON(topic string, retained bool, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	token := f.pub.Publish(topic, 0, retained, payload)
	token.Wait()
	return token.Error()
}
