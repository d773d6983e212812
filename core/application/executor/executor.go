package executor

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/logging"
	"github.com/smartbridge/smartbridge/core/observability"
)

// Executor implements the Executor interface. Statements reach the active
// connector only after passing the read-only allow-list.
type Executor struct {
	connectorManager interfaces.ConnectorManager
	timeout          time.Duration
	maxRows          int
}

// NewExecutor creates a new safe executor. A zero timeout leaves the caller's
// deadline untouched.
func NewExecutor(manager interfaces.ConnectorManager, timeout time.Duration) *Executor {
	return &Executor{
		connectorManager: manager,
		timeout:          timeout,
		maxRows:          domain.MaxRows,
	}
}

// Execute runs statement and reports the outcome as an envelope. It never
// panics on bad input and never returns a Go error.
func (e *Executor) Execute(ctx context.Context, statement string) domain.QueryResult {
	log := logging.New("executor")

	cleaned, ok := Permitted(statement)
	if !ok {
		log.Warnf("Rejected statement starting with '%s'", FirstKeyword(statement))
		observability.RecordStage(ctx, observability.StageExecute, false, 0)
		return domain.FailedQueryResult(domain.ErrorKindPolicyRejected, PolicyMessage)
	}

	conn, release, err := e.connectorManager.Acquire()
	if err != nil {
		log.Errorf("No database to execute against: %v", err)
		return domain.FailedQueryResult(domain.ErrorKindExecution, err.Error())
	}
	defer release()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	ctx, span := observability.StartStage(ctx, observability.StageExecute,
		attribute.String(observability.AttrDBSystem, conn.Dialect()),
		attribute.String(observability.AttrDBName, conn.Name()),
	)

	set, err := conn.Execute(ctx, cleaned, e.maxRows)

	observability.EndStage(span, err)
	observability.RecordStage(ctx, observability.StageExecute, err == nil, float64(time.Since(start).Milliseconds()))

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warnf("Statement exceeded %s", e.timeout)
		} else {
			log.Debugf("Engine rejected statement: %v", err)
		}
		return domain.FailedQueryResult(domain.ErrorKindExecution, err.Error())
	}

	result := domain.NewQueryResult(set)
	span.SetAttributes(
		attribute.Int(observability.AttrRowCount, result.RowCount),
		attribute.Bool(observability.AttrTruncated, result.Truncated),
	)
	observability.RecordRows(ctx, conn.Dialect(), result.RowCount, result.Truncated)
	log.Infof("Returned %d row(s), truncated=%t, in %s", result.RowCount, result.Truncated, time.Since(start))
	return result
}
