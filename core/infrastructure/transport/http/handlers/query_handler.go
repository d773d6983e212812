package handlers

import (
	"net/http"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/dto"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/middleware"
)

// QueryHandler serves the question, execution, schema and history endpoints.
type QueryHandler struct {
	*BaseHandler
	queries interfaces.QueryService
	history interfaces.HistoryStore
}

func NewQueryHandler(queries interfaces.QueryService, history interfaces.HistoryStore) *QueryHandler {
	return &QueryHandler{
		BaseHandler: NewBaseHandler("handler:query"),
		queries:     queries,
		history:     history,
	}
}

// Ask handles POST /api/query. Translation failures are still 200 with
// success=false; only rejected requests get an error status.
func (h *QueryHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req dto.QueryRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.WriteError(w, err)
		return
	}

	resp, err := h.queries.Ask(r.Context(), interfaces.AskRequest{
		Question: req.Question,
		Execute:  req.ShouldExecute(),
	})
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteSuccess(w, resp)
}

// Execute handles POST /api/execute and returns the bare result envelope.
func (h *QueryHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req dto.ExecuteRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		h.WriteError(w, err)
		return
	}

	result, err := h.queries.Execute(r.Context(), req.SQL)
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteSuccess(w, result)
}

// Schema handles GET /api/schema
func (h *QueryHandler) Schema(w http.ResponseWriter, r *http.Request) {
	current, name, err := h.queries.Schema(r.Context())
	if err != nil {
		h.WriteError(w, err)
		return
	}
	h.WriteSuccess(w, dto.SchemaResponse{Success: true, Schema: current, DBPath: name})
}

// History handles GET /api/history
func (h *QueryHandler) History(w http.ResponseWriter, _ *http.Request) {
	entries := h.history.List()
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	h.WriteSuccess(w, dto.HistoryResponse{Success: true, History: entries})
}

// ClearHistory handles DELETE /api/history
func (h *QueryHandler) ClearHistory(w http.ResponseWriter, _ *http.Request) {
	h.history.Clear()
	h.WriteSuccess(w, dto.MessageResponse{Success: true, Message: "History cleared."})
}
