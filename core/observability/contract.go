package observability

import (
	"strings"
)

const (
	AttrRequestID      = "request.id"
	AttrPipelineStage  = "pipeline.stage"
	AttrDBSystem       = "db.system"
	AttrDBName         = "db.namespace"
	AttrLLMProvider    = "gen_ai.system"
	AttrLLMModel       = "gen_ai.request.model"
	AttrRowCount       = "db.response.returned_rows"
	AttrTruncated      = "smartbridge.truncated"
	AttrHTTPMethod     = "http.request.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatusCode = "http.response.status_code"
	AttrErrorKind      = "error.type"
)

// Pipeline stages
const (
	StageIntrospect = "introspect"
	StageTranslate  = "translate"
	StageExecute    = "execute"
	StageUpload     = "upload"
)

var secretKeySubstrings = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"api_key",
	"apikey",
	"authorization",
	"dsn",
}

// RedactAttributeValue masks values for known-sensitive attribute keys.
func RedactAttributeValue(key string, value string) string {
	lower := strings.ToLower(key)
	for _, needle := range secretKeySubstrings {
		if strings.Contains(lower, needle) {
			return "[REDACTED]"
		}
	}
	return value
}
