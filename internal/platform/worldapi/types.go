// Package worldapi serves the shared world leaderboard over HTTP and provides
// the client the game uses to reach it.
package worldapi

import (
	"time"

	"github.com/vovakirdan/knight-skies/internal/storage"
)

// EntryJSON is one leaderboard row on the wire.
type EntryJSON struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// TopResponse is the body of GET /api/v1/tables/{table}.
type TopResponse struct {
	Table   string      `json:"table"`
	Entries []EntryJSON `json:"entries"`
}

// InsertRequest is the body of POST /api/v1/tables/{table}.
type InsertRequest struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func entryFromStorage(e storage.WorldEntry) EntryJSON {
	return EntryJSON{ID: e.ID, Name: e.Name, Score: e.Score, CreatedAt: e.CreatedAt}
}
