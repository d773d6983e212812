package interfaces

import (
	"context"
	"io"

	"github.com/smartbridge/smartbridge/core/domain"
)

// AskRequest is a natural-language question with an optional execution step.
type AskRequest struct {
	Question string
	Execute  bool
}

// AskResponse is the outcome of the translate-and-execute pipeline.
type AskResponse struct {
	Success     bool                `json:"success"`
	Question    string              `json:"question"`
	SQL         string              `json:"sql"`
	Explanation string              `json:"explanation"`
	Results     *domain.QueryResult `json:"results"`
	Error       string              `json:"error,omitempty"`
}

// QueryService is the pipeline used by all transports
type QueryService interface {
	// Ask translates a question and optionally executes the generated SQL.
	// An error is returned only for rejected requests and schema failures.
	Ask(ctx context.Context, req AskRequest) (*AskResponse, error)

	// Execute runs SQL directly through the executor.
	Execute(ctx context.Context, statement string) (domain.QueryResult, error)

	// Schema introspects the active database.
	Schema(ctx context.Context) (domain.Schema, string, error)
}

// HistoryStore keeps past translation requests in memory, newest first.
type HistoryStore interface {
	Record(entry domain.HistoryEntry) domain.HistoryEntry
	List() []domain.HistoryEntry
	Clear()
	Len() int
}

// Status is a health snapshot of the service.
type Status struct {
	Status        string `json:"status"`
	LLMConfigured bool   `json:"llm_configured"`
	CurrentDB     string `json:"current_db"`
	Dialect       string `json:"dialect"`
	HistoryCount  int    `json:"history_count"`
}

// DatabaseService swaps the active database and reports status.
type DatabaseService interface {
	// Upload persists an uploaded SQLite file, validates it and makes it active.
	// It returns the new schema and the name the database is served under.
	Upload(ctx context.Context, filename string, content io.Reader) (domain.Schema, string, error)

	// Status reports configuration and runtime state.
	Status() Status
}
