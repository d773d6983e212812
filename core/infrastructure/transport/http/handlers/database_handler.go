package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/dto"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

// AppName is reported on the root endpoint.
const AppName = "Smart Bridge - Intelligent SQL Querying"

// MaxUploadSize caps the multipart body of a database upload.
const MaxUploadSize = 256 << 20

// DatabaseHandler serves upload, status and the root banner.
type DatabaseHandler struct {
	*BaseHandler
	databases interfaces.DatabaseService
}

func NewDatabaseHandler(databases interfaces.DatabaseService) *DatabaseHandler {
	return &DatabaseHandler{
		BaseHandler: NewBaseHandler("handler:database"),
		databases:   databases,
	}
}

// Root handles GET /
func (h *DatabaseHandler) Root(w http.ResponseWriter, _ *http.Request) {
	status := h.databases.Status()
	h.WriteSuccess(w, dto.RootResponse{
		App:           AppName,
		Status:        "running",
		LLMConfigured: status.LLMConfigured,
	})
}

// Status handles GET /api/status
func (h *DatabaseHandler) Status(w http.ResponseWriter, _ *http.Request) {
	h.WriteSuccess(w, h.databases.Status())
}

// Upload handles POST /api/upload-db with the database in the "file" field.
func (h *DatabaseHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.WriteError(w, sharederrors.InvalidInput(fmt.Sprintf("Upload exceeds %d MiB.", MaxUploadSize>>20)))
			return
		}
		h.WriteError(w, sharederrors.NewAppError(sharederrors.ErrCodeInvalidInput, "A database file is required in the 'file' field.", err))
		return
	}
	defer file.Close()

	uploaded, name, err := h.databases.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	h.WriteSuccess(w, dto.UploadResponse{
		Success: true,
		Message: fmt.Sprintf("Database '%s' loaded successfully.", name),
		Schema:  uploaded,
		DBName:  name,
	})
}
