package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pb33f/libopenapi"

	"github.com/smartbridge/smartbridge/core/application/schema"
	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
)

// endpoint describes one public route for /docs and /llms.txt.
type endpoint struct {
	Method      string
	Path        string
	Summary     string
	OperationID string
	Request     map[string]any
	Multipart   bool
	Response    map[string]any
}

func object(properties map[string]any, required ...string) map[string]any {
	obj := map[string]any{"type": "object", "properties": properties}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

var resultSchema = object(map[string]any{
	"success":    prop("boolean", "Whether the statement ran"),
	"columns":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	"rows":       map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
	"row_count":  prop("integer", fmt.Sprintf("Rows returned, at most %d", domain.MaxRows)),
	"truncated":  prop("boolean", "True when more rows existed than were returned"),
	"error":      prop("string", "Engine or policy message on failure"),
	"error_kind": map[string]any{"type": "string", "enum": []string{string(domain.ErrorKindPolicyRejected), string(domain.ErrorKindExecution)}},
})

var tableSchema = object(map[string]any{
	"table_name": prop("string", "Table name"),
	"row_count":  prop("integer", "Rows at introspection time"),
	"columns": map[string]any{"type": "array", "items": object(map[string]any{
		"name":        prop("string", ""),
		"type":        prop("string", "Declared type"),
		"nullable":    prop("boolean", ""),
		"primary_key": prop("boolean", ""),
	})},
	"foreign_keys": map[string]any{"type": "array", "items": object(map[string]any{
		"from_column": prop("string", ""),
		"to_table":    prop("string", ""),
		"to_column":   prop("string", ""),
	})},
})

var schemaArray = map[string]any{"type": "array", "items": tableSchema}

var historySchema = object(map[string]any{
	"id":          prop("integer", ""),
	"question":    prop("string", ""),
	"sql":         prop("string", ""),
	"explanation": prop("string", ""),
	"success":     prop("boolean", ""),
	"row_count":   prop("integer", ""),
	"timestamp":   map[string]any{"type": "string", "format": "date-time"},
})

var endpoints = []endpoint{
	{
		Method: http.MethodGet, Path: "/", OperationID: "root",
		Summary:  "Service banner",
		Response: object(map[string]any{"app": prop("string", ""), "status": prop("string", ""), "llm_configured": prop("boolean", "")}),
	},
	{
		Method: http.MethodGet, Path: "/api/schema", OperationID: "getSchema",
		Summary:  "Tables, columns, foreign keys and row counts of the active database",
		Response: object(map[string]any{"success": prop("boolean", ""), "schema": schemaArray, "db_path": prop("string", "Active database name")}),
	},
	{
		Method: http.MethodPost, Path: "/api/query", OperationID: "askQuestion",
		Summary: "Translate a natural-language question to SQL and optionally run it",
		Request: object(map[string]any{
			"question": prop("string", "Question about the data"),
			"execute":  map[string]any{"type": "boolean", "default": true, "description": "Run the generated SQL"},
		}, "question"),
		Response: object(map[string]any{
			"success":     prop("boolean", "False when translation failed"),
			"question":    prop("string", ""),
			"sql":         prop("string", "Generated SQL"),
			"explanation": prop("string", "Model explanation"),
			"results":     resultSchema,
			"error":       prop("string", "Translation failure message"),
		}),
	},
	{
		Method: http.MethodPost, Path: "/api/execute", OperationID: "executeSQL",
		Summary:  "Run a read-only SQL statement (SELECT, WITH or EXPLAIN)",
		Request:  object(map[string]any{"sql": prop("string", "Statement to run")}, "sql"),
		Response: resultSchema,
	},
	{
		Method: http.MethodGet, Path: "/api/history", OperationID: "getHistory",
		Summary:  "Past questions, newest first",
		Response: object(map[string]any{"success": prop("boolean", ""), "history": map[string]any{"type": "array", "items": historySchema}}),
	},
	{
		Method: http.MethodDelete, Path: "/api/history", OperationID: "clearHistory",
		Summary:  "Forget all past questions",
		Response: object(map[string]any{"success": prop("boolean", ""), "message": prop("string", "")}),
	},
	{
		Method: http.MethodPost, Path: "/api/upload-db", OperationID: "uploadDatabase",
		Summary:   "Replace the active database with an uploaded SQLite file (.db, .sqlite, .sqlite3)",
		Multipart: true,
		Request:   object(map[string]any{"file": map[string]any{"type": "string", "format": "binary"}}, "file"),
		Response: object(map[string]any{
			"success": prop("boolean", ""),
			"message": prop("string", ""),
			"schema":  schemaArray,
			"db_name": prop("string", ""),
		}),
	},
	{
		Method: http.MethodGet, Path: "/api/status", OperationID: "getStatus",
		Summary: "Model configuration and active database",
		Response: object(map[string]any{
			"status":         prop("string", ""),
			"llm_configured": prop("boolean", ""),
			"current_db":     prop("string", ""),
			"dialect":        prop("string", ""),
			"history_count":  prop("integer", ""),
		}),
	},
}

var errorSchema = object(map[string]any{
	"success": prop("boolean", ""),
	"error":   prop("string", ""),
	"detail":  prop("string", ""),
})

// GenerateOpenAPISpec builds the OpenAPI 3.0 document and validates it with libopenapi
func GenerateOpenAPISpec(baseURL string) ([]byte, error) {
	paths := make(map[string]any)
	for _, ep := range endpoints {
		operation := map[string]any{
			"summary":     ep.Summary,
			"operationId": ep.OperationID,
			"responses": map[string]any{
				"200": map[string]any{
					"description": "OK",
					"content":     map[string]any{"application/json": map[string]any{"schema": ep.Response}},
				},
				"default": map[string]any{
					"description": "Rejected request",
					"content":     map[string]any{"application/json": map[string]any{"schema": errorSchema}},
				},
			},
		}
		if ep.Request != nil {
			contentType := "application/json"
			if ep.Multipart {
				contentType = "multipart/form-data"
			}
			operation["requestBody"] = map[string]any{
				"required": true,
				"content":  map[string]any{contentType: map[string]any{"schema": ep.Request}},
			}
		}

		item, ok := paths[ep.Path].(map[string]any)
		if !ok {
			item = make(map[string]any)
			paths[ep.Path] = item
		}
		item[strings.ToLower(ep.Method)] = operation
	}

	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       "Smart Bridge SQL API",
			"version":     "1.0.0",
			"description": "Natural-language querying over a relational database.",
		},
		"servers": []map[string]any{{"url": baseURL}},
		"paths":   paths,
	}

	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec: %w", err)
	}

	document, err := libopenapi.NewDocument(specJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create libopenapi document: %w", err)
	}
	if _, err := document.BuildV3Model(); err != nil {
		return nil, fmt.Errorf("failed to build v3 model (validation error): %w", err)
	}
	return specJSON, nil
}

// OpenAPIHandler serves the generated spec
func OpenAPIHandler(baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		specJSON, err := GenerateOpenAPISpec(baseURL)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to generate OpenAPI spec: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(specJSON)
	}
}

// GenerateLLMDocumentation describes the API and the active schema in markdown
func GenerateLLMDocumentation(baseURL, dbName string, current domain.Schema) string {
	var sb strings.Builder

	sb.WriteString("# Smart Bridge API\n\n")
	sb.WriteString("Ask questions about a relational database in plain language. ")
	sb.WriteString("Questions are translated to a single read-only SQL statement, which is validated and executed.\n\n")
	fmt.Fprintf(&sb, "Base URL: %s\n\n", baseURL)

	sb.WriteString("## Endpoints\n\n")
	for _, ep := range endpoints {
		fmt.Fprintf(&sb, "- **%s** `%s` - %s\n", ep.Method, ep.Path, ep.Summary)
	}
	sb.WriteString("- **GET** `/llms.txt` - This documentation\n")
	sb.WriteString("- **GET** `/docs` - OpenAPI 3.0 specification\n\n")

	sb.WriteString("## Rules\n\n")
	sb.WriteString("- Only statements starting with SELECT, WITH or EXPLAIN are executed.\n")
	fmt.Fprintf(&sb, "- At most %d rows are returned; `truncated` is true when more existed.\n\n", domain.MaxRows)

	if dbName == "" {
		sb.WriteString("## Active database\n\nNo database is active.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "## Active database: %s\n\n", dbName)
	sb.WriteString("```sql\n")
	sb.WriteString(schema.Render(current))
	sb.WriteString("```\n")
	return sb.String()
}

// LLMTxtHandler serves /llms.txt. The schema section is omitted when the
// database cannot be read.
func LLMTxtHandler(queries interfaces.QueryService, baseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, name, err := queries.Schema(r.Context())
		if err != nil {
			name = ""
		}
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(GenerateLLMDocumentation(baseURL, name, current)))
	}
}
