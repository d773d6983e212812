package services

import (
	"context"
	"strings"

	"github.com/smartbridge/smartbridge/core/application/schema"
	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/logger"
	sharedctx "github.com/smartbridge/smartbridge/core/shared/context"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

// QueryService implements the question-to-result pipeline used by all transports
type QueryService struct {
	manager      interfaces.ConnectorManager
	introspector interfaces.Introspector
	translator   interfaces.Translator
	executor     interfaces.Executor
	history      interfaces.HistoryStore
	log          *logger.Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(
	manager interfaces.ConnectorManager,
	introspector interfaces.Introspector,
	translator interfaces.Translator,
	executor interfaces.Executor,
	history interfaces.HistoryStore,
) *QueryService {
	return &QueryService{
		manager:      manager,
		introspector: introspector,
		translator:   translator,
		executor:     executor,
		history:      history,
		log:          logger.New("pipeline"),
	}
}

// Ask translates a question against the live schema and optionally executes
// the generated SQL. The SQL is never inspected here; the executor's
// allow-list is the only gate.
func (s *QueryService) Ask(ctx context.Context, req interfaces.AskRequest) (*interfaces.AskResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, sharederrors.InvalidInput(domain.ErrEmptyQuestion.Message)
	}

	conn, current, err := s.introspect(ctx)
	if err != nil {
		return nil, err
	}

	requestID := sharedctx.GetRequestID(ctx)
	s.log.Infof("[%s] Translating question against '%s'", requestID, conn.Name())

	translation := s.translator.Translate(ctx, req.Question, schema.Render(current), conn.Dialect())
	if !translation.Success {
		s.log.Warnf("[%s] Translation failed: %s", requestID, translation.Error)
		return &interfaces.AskResponse{
			Success:  false,
			Question: req.Question,
			Error:    translation.Error,
		}, nil
	}

	var results *domain.QueryResult
	if req.Execute && translation.SQL != "" {
		result := s.executor.Execute(ctx, translation.SQL)
		results = &result
	}

	entry := domain.HistoryEntry{
		Question:    req.Question,
		SQL:         translation.SQL,
		Explanation: translation.Explanation,
		Success:     true,
	}
	if results != nil {
		entry.Success = results.Success
		entry.RowCount = results.RowCount
	}
	recorded := s.history.Record(entry)
	s.log.Debugf("[%s] Recorded history entry %d", requestID, recorded.ID)

	return &interfaces.AskResponse{
		Success:     true,
		Question:    req.Question,
		SQL:         translation.SQL,
		Explanation: translation.Explanation,
		Results:     results,
	}, nil
}

// Execute runs caller supplied SQL through the executor.
func (s *QueryService) Execute(ctx context.Context, statement string) (domain.QueryResult, error) {
	if strings.TrimSpace(statement) == "" {
		return domain.QueryResult{}, sharederrors.InvalidInput(domain.ErrEmptySQL.Message)
	}
	return s.executor.Execute(ctx, statement), nil
}

// Schema introspects the active database and reports its name.
func (s *QueryService) Schema(ctx context.Context) (domain.Schema, string, error) {
	conn, current, err := s.introspect(ctx)
	if err != nil {
		return nil, "", err
	}
	return current, conn.Name(), nil
}

func (s *QueryService) introspect(ctx context.Context) (interfaces.Connector, domain.Schema, error) {
	conn, release, err := s.manager.Acquire()
	if err != nil {
		return nil, nil, sharederrors.NewAppError(sharederrors.ErrCodeConnectionFailed, err.Error(), err)
	}
	defer release()

	current, err := s.introspector.Introspect(ctx, conn)
	if err != nil {
		return nil, nil, sharederrors.Internal(err)
	}
	return conn, current, nil
}
