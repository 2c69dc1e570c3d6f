// Package server exposes battles over WebSocket. Each client joins one
// battle as one player, submits actions as JSON and receives its view of
// the battle after every accepted action.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/battle"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the WebSocket frame in both directions.
type Message struct {
	Type     string          `json:"type"`
	BattleID string          `json:"battle_id,omitempty"`
	Player   string          `json:"player,omitempty"`
	Action   *WireAction     `json:"action,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// WireAction is the JSON shape of a battle action.
type WireAction struct {
	Kind             string `json:"kind"`
	Card             int    `json:"card,omitempty"`
	Character        int    `json:"character,omitempty"`
	StackCard        int    `json:"stack_card,omitempty"`
	VoidCard         int    `json:"void_card,omitempty"`
	AbilityCharacter int    `json:"ability_character,omitempty"`
	AbilityNumber    int    `json:"ability_number,omitempty"`
	Choice           int    `json:"choice,omitempty"`
	Mulligan         bool   `json:"mulligan,omitempty"`
}

// ParseAction converts a wire action to an engine action.
func ParseAction(w WireAction) (battle.Action, error) {
	switch battle.ActionKind(w.Kind) {
	case battle.ActionPlayCardFromHand:
		return battle.PlayCardFromHand(core.HandCardID{ID: core.CardID(w.Card)}), nil
	case battle.ActionPlayCardFromVoid:
		return battle.PlayCardFromVoid(core.VoidCardID{ID: core.CardID(w.VoidCard)}), nil
	case battle.ActionActivateAbility:
		return battle.ActivateAbility(core.ActivatedAbilityID{
			Character: core.CharacterID{ID: core.CardID(w.AbilityCharacter)},
			Ability:   core.AbilityNumber(w.AbilityNumber),
		}), nil
	case battle.ActionPassPriority:
		return battle.PassPriority(), nil
	case battle.ActionEndTurn:
		return battle.EndTurn(), nil
	case battle.ActionStartNextTurn:
		return battle.StartNextTurn(), nil
	case battle.ActionSelectCharacter:
		return battle.SelectCharacter(core.CharacterID{ID: core.CardID(w.Character)}), nil
	case battle.ActionSelectStackCard:
		return battle.SelectStackCard(core.StackCardID{ID: core.CardID(w.StackCard)}), nil
	case battle.ActionSelectVoidCard:
		return battle.SelectVoidCard(core.VoidCardID{ID: core.CardID(w.VoidCard)}), nil
	case battle.ActionSubmitVoidCards:
		return battle.SubmitVoidCards(), nil
	case battle.ActionSelectHandCard:
		return battle.SelectHandCard(core.HandCardID{ID: core.CardID(w.Card)}), nil
	case battle.ActionSubmitHandCards:
		return battle.SubmitHandCards(), nil
	case battle.ActionSelectModalChoice:
		return battle.SelectModalChoice(w.Choice), nil
	case battle.ActionSubmitMulligan:
		return battle.SubmitMulligan(w.Mulligan), nil
	default:
		return battle.Action{}, fmt.Errorf("unknown action kind %q", w.Kind)
	}
}

// ParsePlayer converts a wire player name.
func ParsePlayer(s string) (core.PlayerName, error) {
	switch s {
	case core.PlayerOne.String():
		return core.PlayerOne, nil
	case core.PlayerTwo.String():
		return core.PlayerTwo, nil
	default:
		return core.PlayerOne, fmt.Errorf("unknown player %q", s)
	}
}

// Client is one WebSocket connection bound to a battle seat.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	battleID string
	player   core.PlayerName
	seated   bool
}

// Hub routes clients and their messages to the battle manager.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client

	manager *BattleManager
	logger  *zap.Logger
}

// NewHub creates the hub over a battle manager.
func NewHub(manager *BattleManager, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		manager:    manager,
		logger:     logger,
	}
}

// Run processes client registration until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Debug("client unregistered")

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) handleMessage(ctx context.Context, client *Client, msg Message) {
	switch msg.Type {
	case "create_battle":
		id, err := h.manager.Create(ctx)
		if err != nil {
			client.sendError(err)
			return
		}
		client.battleID = id
		client.player = core.PlayerOne
		client.seated = true
		h.sendView(ctx, client)

	case "join_battle":
		player, err := ParsePlayer(msg.Player)
		if err != nil {
			client.sendError(err)
			return
		}
		client.battleID = msg.BattleID
		client.player = player
		client.seated = true
		h.sendView(ctx, client)

	case "action":
		if !client.seated || msg.Action == nil {
			client.sendError(fmt.Errorf("not joined to a battle"))
			return
		}
		action, err := ParseAction(*msg.Action)
		if err != nil {
			client.sendError(err)
			return
		}
		if err := h.manager.Act(ctx, client.battleID, client.player, action); err != nil {
			client.sendError(err)
			return
		}
		h.broadcastViews(ctx, client.battleID)

	case "view":
		if !client.seated {
			client.sendError(fmt.Errorf("not joined to a battle"))
			return
		}
		h.sendView(ctx, client)

	case "audit":
		if !client.seated {
			client.sendError(fmt.Errorf("not joined to a battle"))
			return
		}
		if err := h.manager.Audit(ctx, client.battleID); err != nil {
			client.sendError(err)
			return
		}
		frame, err := json.Marshal(Message{Type: "audit_ok", BattleID: client.battleID})
		if err != nil {
			h.logger.Error("failed to marshal frame", zap.Error(err))
			return
		}
		select {
		case client.send <- frame:
		default:
		}

	default:
		client.sendError(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

// broadcastViews pushes each seated client of a battle its own view. Views
// are per-player: every seat sees its own hand and legal actions.
func (h *Hub) broadcastViews(ctx context.Context, battleID string) {
	h.mu.RLock()
	var targets []*Client
	for client := range h.clients {
		if client.seated && client.battleID == battleID {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()
	for _, client := range targets {
		h.sendView(ctx, client)
	}
}

func (h *Hub) sendView(ctx context.Context, client *Client) {
	v, err := h.manager.View(ctx, client.battleID, client.player)
	if err != nil {
		client.sendError(err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to marshal view", zap.Error(err))
		return
	}
	frame, err := json.Marshal(Message{
		Type:     "battle_view",
		BattleID: client.battleID,
		Player:   client.player.String(),
		Data:     data,
	})
	if err != nil {
		h.logger.Error("failed to marshal frame", zap.Error(err))
		return
	}
	select {
	case client.send <- frame:
	default:
		// Slow consumer; drop the frame rather than block the hub.
	}
}

func (c *Client) sendError(err error) {
	frame, marshalErr := json.Marshal(Message{Type: "error", Error: err.Error()})
	if marshalErr != nil {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

func (c *Client) readPump(ctx context.Context, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError(fmt.Errorf("malformed message: %w", err))
			continue
		}
		hub.handleMessage(ctx, c, msg)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}

// ServeWS upgrades an HTTP request into a battle WebSocket session.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}
	h.register <- client
	go client.writePump()
	go client.readPump(r.Context(), h)
}

// ListenAndServe runs the WebSocket endpoint until the server fails or the
// context is cancelled.
func ListenAndServe(ctx context.Context, addr string, hub *Hub, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	logger.Info("websocket server listening", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("websocket server error: %w", err)
	}
	return nil
}
