package websocket

import "github.com/dnflvus-wq/engTest-sub000/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventUnlock Event = "unlock"
	EventPong   Event = "pong"
	EventError  Event = "error"
)

// UnlockResponse pushes one achievement unlock to the client.
type UnlockResponse struct {
	Event  Event             `json:"event"`
	Unlock model.UnlockEvent `json:"unlock"`
}

type PongResponse struct {
	Event Event `json:"event"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
