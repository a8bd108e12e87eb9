package ws

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/simulator"
	"home_energy_simulator/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// initialQueryHours is where a fresh connection's time slider starts.
const initialQueryHours = 12.0

// Handler upgrades WebSocket connections and answers simulation
// requests. Each connection owns a session: its household, its query
// time and its own engine, so one client's slider drags reuse a cached
// sweep without ever touching another client's configuration.
type Handler struct {
	hub   *Hub
	store *store.Store
	opts  simulator.Options
	log   zerolog.Logger
}

func NewHandler(hub *Hub, st *store.Store, opts simulator.Options, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, store: st, opts: opts, log: log}
}

// session is one connection's simulation state.
type session struct {
	engine     *simulator.Engine
	opts       simulator.Options
	household  model.Household
	queryHours float64
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	sess := &session{
		engine:     simulator.New(h.opts),
		opts:       h.opts,
		household:  model.DefaultHousehold(),
		queryHours: initialQueryHours,
	}

	h.sendDataLoaded(client, sess)
	h.sendResult(client, sess)

	h.readPump(client, sess)
}

func (h *Handler) readPump(c *Client, sess *session) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Error().Err(err).Msg("websocket read failed")
			}
			return
		}

		h.handleMessage(c, sess, msg)
	}
}

func (h *Handler) handleMessage(c *Client, sess *session, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.Warn().Err(err).Msg("invalid message")
		h.sendError(c, "invalid message")
		return
	}

	switch env.Type {
	case TypeSimConfig:
		var p ConfigPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.log.Warn().Err(err).Msg("invalid sim:config payload")
			h.sendError(c, "invalid sim:config payload")
			return
		}
		// Reject before touching the session, so a bad config leaves
		// the previous one in place.
		if err := p.Household.Validate(); err != nil {
			h.sendError(c, err.Error())
			return
		}
		if p.ClipSolar != nil && *p.ClipSolar != sess.opts.ClipSolar {
			sess.opts.ClipSolar = *p.ClipSolar
			sess.engine = simulator.New(sess.opts)
		}
		sess.household = p.Household
		sess.queryHours = p.TimeHours
		h.sendResult(c, sess)

	case TypeSimQuery:
		var p QueryPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.log.Warn().Err(err).Msg("invalid sim:query payload")
			h.sendError(c, "invalid sim:query payload")
			return
		}
		sess.queryHours = p.TimeHours
		h.sendResult(c, sess)

	case TypeSimPreset:
		var p PresetPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.log.Warn().Err(err).Msg("invalid sim:preset payload")
			h.sendError(c, "invalid sim:preset payload")
			return
		}
		preset, ok := h.store.Get(p.Name)
		if !ok {
			h.sendError(c, fmt.Sprintf("unknown preset %q", p.Name))
			return
		}
		sess.household = preset.Household
		h.sendResult(c, sess)

	default:
		h.log.Warn().Str("type", env.Type).Msg("unknown message type")
		h.sendError(c, fmt.Sprintf("unknown message type %q", env.Type))
	}
}

// sendResult runs the session's simulation and answers with sim:result,
// or sim:error when the household fails validation.
func (h *Handler) sendResult(c *Client, sess *session) {
	result, err := sess.engine.Simulate(sess.household, sess.queryHours)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	msg, err := NewEnvelope(TypeSimResult, ResultPayload{
		Household: sess.household,
		Result:    result,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("encoding sim:result failed")
		return
	}
	h.hub.Send(c, msg)
}

func (h *Handler) sendError(c *Client, message string) {
	msg, err := NewEnvelope(TypeSimError, ErrorPayload{Message: message})
	if err != nil {
		h.log.Error().Err(err).Msg("encoding sim:error failed")
		return
	}
	h.hub.Send(c, msg)
}

func (h *Handler) sendDataLoaded(c *Client, sess *session) {
	msg, err := NewEnvelope(TypeDataLoaded, DataLoadedPayload{
		Appliances:     CatalogInfo(),
		Presets:        PresetsInfo(h.store),
		BaselineLoadKW: model.BaselineLoadKW,
		StepHours:      simulator.StepHours,
		Household:      sess.household,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("encoding data:loaded failed")
		return
	}
	h.hub.Send(c, msg)
}
