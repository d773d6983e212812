package dto

// HealthResponse represents a health check response
type HealthResponse struct {
	Success bool `json:"success"`
}

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
}

// ErrorResponse represents a rejected request. Detail repeats Error for
// clients that read FastAPI style bodies.
type ErrorResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Detail  string        `json:"detail"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// MessageResponse acknowledges an action
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RootResponse is served on /
type RootResponse struct {
	App           string `json:"app"`
	Status        string `json:"status"`
	LLMConfigured bool   `json:"llm_configured"`
}
