package dto

import "github.com/smartbridge/smartbridge/core/domain"

// QueryRequest asks for SQL answering Question. Execute defaults to true.
type QueryRequest struct {
	Question string `json:"question" validate:"max=4000"`
	Execute  *bool  `json:"execute"`
}

// ShouldExecute resolves the Execute default.
func (r QueryRequest) ShouldExecute() bool {
	return r.Execute == nil || *r.Execute
}

// ExecuteRequest runs SQL directly
type ExecuteRequest struct {
	SQL string `json:"sql" validate:"max=100000"`
}

// SchemaResponse describes the active database
type SchemaResponse struct {
	Success bool          `json:"success"`
	Schema  domain.Schema `json:"schema"`
	DBPath  string        `json:"db_path"`
}

// HistoryResponse lists past questions, newest first
type HistoryResponse struct {
	Success bool                  `json:"success"`
	History []domain.HistoryEntry `json:"history"`
}

// UploadResponse reports a successful database swap
type UploadResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Schema  domain.Schema `json:"schema"`
	DBName  string        `json:"db_name"`
}
