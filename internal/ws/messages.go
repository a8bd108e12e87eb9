package ws

import (
	"encoding/json"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/simulator"
	"home_energy_simulator/internal/store"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeSimConfig = "sim:config"
	TypeSimQuery  = "sim:query"
	TypeSimPreset = "sim:preset"

	// Server -> Client
	TypeDataLoaded = "data:loaded"
	TypeSimResult  = "sim:result"
	TypeSimError   = "sim:error"
)

// Client -> Server messages

// ConfigPayload replaces the connection's household and re-runs the
// simulation at the given hour. A rejected household leaves the
// session on its previous configuration.
type ConfigPayload struct {
	Household model.Household `json:"household"`
	TimeHours float64         `json:"time_hours"`
	ClipSolar *bool           `json:"clip_solar,omitempty"`
}

// QueryPayload moves the query time against the connection's current
// household, the slider-drag path.
type QueryPayload struct {
	TimeHours float64 `json:"time_hours"`
}

// PresetPayload swaps the connection's household for a stored preset.
type PresetPayload struct {
	Name string `json:"name"`
}

// Server -> Client messages

// ApplianceInfo describes one catalog entry for the dashboard's form.
type ApplianceInfo struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	PowerKW float64 `json:"power_kw"`
}

// PresetInfo lists a stored scenario without its full configuration.
type PresetInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// DataLoadedPayload bootstraps a fresh connection: the appliance
// catalog, the available presets and the household the session starts
// from.
type DataLoadedPayload struct {
	Appliances     []ApplianceInfo `json:"appliances"`
	Presets        []PresetInfo    `json:"presets"`
	BaselineLoadKW float64         `json:"baseline_load_kw"`
	StepHours      float64         `json:"step_hours"`
	Household      model.Household `json:"household"`
}

// ResultPayload answers every simulation request: the household the run
// used (so preset loads fill the form) plus the engine output.
type ResultPayload struct {
	Household model.Household  `json:"household"`
	Result    simulator.Result `json:"result"`
}

// ErrorPayload reports a rejected request.
type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// CatalogInfo flattens the appliance catalog in stable order.
func CatalogInfo() []ApplianceInfo {
	names := model.CatalogNames()
	out := make([]ApplianceInfo, 0, len(names))
	for _, name := range names {
		info := model.ApplianceCatalog[name]
		out = append(out, ApplianceInfo{
			Name:    string(name),
			Label:   info.Label,
			PowerKW: info.PowerKW,
		})
	}
	return out
}

// PresetsInfo lists the store's presets in stable order.
func PresetsInfo(st *store.Store) []PresetInfo {
	presets := st.All()
	out := make([]PresetInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, PresetInfo{Name: p.Name, Label: p.Label})
	}
	return out
}
