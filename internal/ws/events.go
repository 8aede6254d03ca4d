package ws

import (
	"encoding/json"
	"time"

	"github.com/kindredgraph/kindred/internal/httputil"
	"github.com/kindredgraph/kindred/internal/models"
)

// Client message types.
const (
	TypeFamily    = "family"
	TypePath      = "path"
	TypeSearch    = "search"
	TypeSubscribe = "subscribe"
)

// Server message types.
const (
	TypeError        = "error"
	TypeReset        = "reset"
	TypeShutdown     = "shutdown"
	TypeGraphChanged = "graph.changed"
)

// Request is an interactive query sent by the client. Seq is echoed in the
// response so the client can match it; only the newest request is answered.
type Request struct {
	Type        string                     `json:"type"`
	Seq         uint64                     `json:"seq"`
	PersonID    string                     `json:"person_id,omitempty"`
	From        string                     `json:"from,omitempty"`
	To          string                     `json:"to,omitempty"`
	Depth       int                        `json:"depth,omitempty"`
	Search      *models.MatchSearchRequest `json:"search,omitempty"`
	LastEventID uint64                     `json:"last_event_id,omitempty"`
}

// Response answers one Request. Exactly one of Data and Error is set.
type Response struct {
	Type  string                  `json:"type"`
	Seq   uint64                  `json:"seq"`
	Data  any                     `json:"data,omitempty"`
	Error *httputil.ErrorResponse `json:"error,omitempty"`
}

// Event is a server-initiated notification broadcast to every client.
type Event struct {
	Type string          `json:"type"`
	ID   uint64          `json:"id"`
	Data json.RawMessage `json:"data"`
	Time time.Time       `json:"time"`
}

// ResetMsg tells the client to do a full refresh (requested events too old).
type ResetMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}
