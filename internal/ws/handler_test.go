package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/schedule"
	"home_energy_simulator/internal/simulator"
	"home_energy_simulator/internal/store"
)

// newTestHandler builds a handler with one stored preset.
func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	st := store.New()
	require.NoError(t, st.Add(store.Preset{
		Name:  "sunny_day",
		Label: "Sunny Day",
		Household: model.Household{
			InverterCapacityKW: 6,
			BatteryCapacityKWh: 12,
			Appliances: map[model.Appliance]model.ApplianceConfig{
				model.ApplianceWashingMachine: {
					Enabled:  true,
					Schedule: schedule.Schedule{On1: "10:00", Off1: "12:00"},
				},
			},
		},
	}))
	return NewHandler(NewHub(zerolog.Nop()), st, simulator.Options{}, zerolog.Nop())
}

// dialHandler sets up a test server with the handler and returns a WS connection.
func dialHandler(t *testing.T, handler *Handler) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		server.Close()
	}
}

// readJSON reads the next JSON message from the connection.
func readJSON(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

// sendJSON sends a JSON message on the connection.
func sendJSON(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	data, err := NewEnvelope(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

// drainInit consumes the data:loaded and initial sim:result messages a
// fresh connection receives.
func drainInit(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	env := readJSON(t, conn)
	require.Equal(t, TypeDataLoaded, env.Type)
	env = readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)
}

func TestHandler_InitialMessages(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()

	env := readJSON(t, conn)
	require.Equal(t, TypeDataLoaded, env.Type)

	var loaded DataLoadedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &loaded))
	assert.Len(t, loaded.Appliances, 6)
	assert.Equal(t, []PresetInfo{{Name: "sunny_day", Label: "Sunny Day"}}, loaded.Presets)
	assert.InDelta(t, 0.15, loaded.BaselineLoadKW, 1e-12)
	assert.InDelta(t, 0.1, loaded.StepHours, 1e-12)
	assert.InDelta(t, 5.0, loaded.Household.InverterCapacityKW, 1e-12)
	assert.InDelta(t, 10.0, loaded.Household.BatteryCapacityKWh, 1e-12)

	env = readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	assert.InDelta(t, 12.0, result.Result.Snapshot.TimeHours, 1e-12)
	assert.Len(t, result.Result.Series.Times, 241)
	assert.InDelta(t, 10.0, result.Household.BatteryCapacityKWh, 1e-12)
}

func TestHandler_SimConfig(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	household := model.Household{
		InverterCapacityKW: 4,
		BatteryCapacityKWh: 8,
		Appliances: map[model.Appliance]model.ApplianceConfig{
			model.ApplianceDishwasher: {
				Enabled:  true,
				Schedule: schedule.Schedule{On1: "20:00", Off1: "21:30"},
			},
		},
	}
	sendJSON(t, conn, TypeSimConfig, ConfigPayload{Household: household, TimeHours: 18})

	env := readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	assert.InDelta(t, 8.0, result.Household.BatteryCapacityKWh, 1e-12)
	assert.Contains(t, result.Household.Appliances, model.ApplianceDishwasher)
	assert.InDelta(t, 18.0, result.Result.Snapshot.TimeHours, 1e-12)
	assert.GreaterOrEqual(t, result.Result.Snapshot.SoCPercent, 0.0)
	assert.LessOrEqual(t, result.Result.Snapshot.SoCPercent, 100.0)
}

func TestHandler_SimQuery(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	sendJSON(t, conn, TypeSimQuery, QueryPayload{TimeHours: 6})

	env := readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	assert.InDelta(t, 6.0, result.Result.Snapshot.TimeHours, 1e-12)
	// Household untouched by a pure query move.
	assert.InDelta(t, 10.0, result.Household.BatteryCapacityKWh, 1e-12)
}

func TestHandler_SimPreset(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	sendJSON(t, conn, TypeSimPreset, PresetPayload{Name: "sunny_day"})

	env := readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	assert.InDelta(t, 12.0, result.Household.BatteryCapacityKWh, 1e-12)
	assert.Contains(t, result.Household.Appliances, model.ApplianceWashingMachine)
}

func TestHandler_UnknownPreset(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	sendJSON(t, conn, TypeSimPreset, PresetPayload{Name: "nope"})

	env := readJSON(t, conn)
	require.Equal(t, TypeSimError, env.Type)

	var perr ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &perr))
	assert.Contains(t, perr.Message, `unknown preset "nope"`)
}

func TestHandler_InvalidConfig(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	sendJSON(t, conn, TypeSimConfig, ConfigPayload{
		Household: model.Household{InverterCapacityKW: 5, BatteryCapacityKWh: 0},
		TimeHours: 12,
	})

	env := readJSON(t, conn)
	require.Equal(t, TypeSimError, env.Type)

	var perr ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &perr))
	assert.Contains(t, perr.Message, "battery_capacity_kwh")

	// The session keeps its previous household.
	sendJSON(t, conn, TypeSimQuery, QueryPayload{TimeHours: 12})
	env = readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	assert.InDelta(t, 10.0, result.Household.BatteryCapacityKWh, 1e-12)
}

func TestHandler_ClipSolarOption(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	clip := true
	sendJSON(t, conn, TypeSimConfig, ConfigPayload{
		Household: model.DefaultHousehold(),
		TimeHours: 12,
		ClipSolar: &clip,
	})

	env := readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	// Clipped curve produces nothing at midnight; the default tail does.
	assert.Zero(t, result.Result.Series.SolarKW[0])

	clip = false
	sendJSON(t, conn, TypeSimConfig, ConfigPayload{
		Household: model.DefaultHousehold(),
		TimeHours: 12,
		ClipSolar: &clip,
	})

	env = readJSON(t, conn)
	require.Equal(t, TypeSimResult, env.Type)
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	assert.Greater(t, result.Result.Series.SolarKW[0], 0.0)
}

func TestHandler_UnknownType(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	sendJSON(t, conn, "sim:warp", nil)

	env := readJSON(t, conn)
	require.Equal(t, TypeSimError, env.Type)

	var perr ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &perr))
	assert.Contains(t, perr.Message, `unknown message type "sim:warp"`)
}

func TestHandler_InvalidJSON(t *testing.T) {
	handler := newTestHandler(t)
	conn, cleanup := dialHandler(t, handler)
	defer cleanup()
	drainInit(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	env := readJSON(t, conn)
	require.Equal(t, TypeSimError, env.Type)
}

func TestHandler_SessionsAreIndependent(t *testing.T) {
	handler := newTestHandler(t)
	conn1, cleanup1 := dialHandler(t, handler)
	defer cleanup1()
	drainInit(t, conn1)

	conn2, cleanup2 := dialHandler(t, handler)
	defer cleanup2()
	drainInit(t, conn2)

	// Reconfigure the first session only.
	sendJSON(t, conn1, TypeSimConfig, ConfigPayload{
		Household: model.Household{InverterCapacityKW: 3, BatteryCapacityKWh: 5},
		TimeHours: 12,
	})
	env := readJSON(t, conn1)
	require.Equal(t, TypeSimResult, env.Type)

	// The second session still runs the default household.
	sendJSON(t, conn2, TypeSimQuery, QueryPayload{TimeHours: 12})
	env = readJSON(t, conn2)
	require.Equal(t, TypeSimResult, env.Type)

	var result ResultPayload
	require.NoError(t, json.Unmarshal(env.Payload, &result))
	assert.InDelta(t, 10.0, result.Household.BatteryCapacityKWh, 1e-12)
}

func TestHandler_RejectsPlainHTTP(t *testing.T) {
	handler := newTestHandler(t)
	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
