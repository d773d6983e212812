package interfaces

import (
	"context"

	"github.com/smartbridge/smartbridge/core/domain"
)

// Executor runs untrusted SQL behind the read-only allow-list.
type Executor interface {
	// Execute never returns an error; failures are reported in the envelope.
	Execute(ctx context.Context, statement string) domain.QueryResult
}

// Introspector reads the catalog of a database.
type Introspector interface {
	// Introspect returns the full schema or an error; never a partial schema.
	Introspect(ctx context.Context, conn Connector) (domain.Schema, error)
}

// Completer is an external text-completion model.
type Completer interface {
	// Provider is the human readable provider name used in error messages.
	Provider() string

	// Configured reports whether a usable credential is present.
	Configured() bool

	// Complete sends prompt to the model and returns its raw text response.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Translator turns a question plus schema text into SQL.
type Translator interface {
	// Translate never returns an error; failures are reported in the result.
	// dialect names the SQL flavour the generated statement must use.
	Translate(ctx context.Context, question, schemaText, dialect string) domain.Translation

	// Configured reports whether the underlying model can be called.
	Configured() bool
}
