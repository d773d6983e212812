package translator

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/logger"
	"github.com/smartbridge/smartbridge/core/observability"
)

// Translator implements interfaces.Translator over a text-completion model.
type Translator struct {
	completer interfaces.Completer
	timeout   time.Duration
	log       *logger.Logger
}

// NewTranslator creates a translator. A zero timeout leaves the caller's
// deadline untouched.
func NewTranslator(completer interfaces.Completer, timeout time.Duration) *Translator {
	return &Translator{
		completer: completer,
		timeout:   timeout,
		log:       logger.New("translator"),
	}
}

// Configured reports whether the model has a usable credential.
func (t *Translator) Configured() bool {
	return t.completer.Configured()
}

// Translate asks the model for SQL answering question. Every failure is
// reported through the returned Translation.
func (t *Translator) Translate(ctx context.Context, question, schemaText, dialect string) domain.Translation {
	provider := t.completer.Provider()

	if !t.completer.Configured() {
		t.log.Warnf("%s credential missing, skipping model call", provider)
		return domain.FailedTranslation(fmt.Sprintf("%s API key is not configured. Please add your key to the .env file.", provider))
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	start := time.Now()
	ctx, span := observability.StartStage(ctx, observability.StageTranslate,
		attribute.String(observability.AttrLLMProvider, provider),
	)

	response, err := t.completer.Complete(ctx, BuildPrompt(question, schemaText, dialect))

	observability.EndStage(span, err)
	observability.RecordStage(ctx, observability.StageTranslate, err == nil, float64(time.Since(start).Milliseconds()))

	if err != nil {
		t.log.PrintError(provider+" call failed", err)
		return domain.FailedTranslation(fmt.Sprintf("%s API error: %v", provider, err))
	}

	sql := ExtractSQL(response)
	t.log.Debugf("Model answered in %s", time.Since(start))

	return domain.Translation{
		Success:     true,
		SQL:         sql,
		Explanation: ExtractExplanation(response),
	}
}
