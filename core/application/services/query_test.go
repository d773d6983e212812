package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartbridge/smartbridge/core/application/schema"
	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/domain/interfaces/mocks"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

var categoriesSchema = domain.Schema{
	{Name: "categories", Columns: []domain.Column{{Name: "id", Type: "INTEGER", PrimaryKey: true}}, RowCount: 6},
}

type pipeline struct {
	conn         *mocks.Connector
	manager      *mocks.ConnectorManager
	introspector *mocks.Introspector
	translator   *mocks.Translator
	executor     *mocks.Executor
	history      *HistoryStore
	service      *QueryService
}

func newPipeline() *pipeline {
	p := &pipeline{
		conn:         &mocks.Connector{},
		manager:      &mocks.ConnectorManager{},
		introspector: &mocks.Introspector{},
		translator:   &mocks.Translator{},
		executor:     &mocks.Executor{},
		history:      NewHistoryStore(),
	}
	p.conn.On("Name").Return("sample.db").Maybe()
	p.conn.On("Dialect").Return("sqlite").Maybe()
	p.manager.On("Acquire").Return(p.conn, nil).Maybe()
	p.introspector.On("Introspect", mock.Anything, p.conn).Return(categoriesSchema, nil).Maybe()
	p.service = NewQueryService(p.manager, p.introspector, p.translator, p.executor, p.history)
	return p
}

func TestAsk_BlankQuestionRejected(t *testing.T) {
	p := newPipeline()

	for _, q := range []string{"", "   ", "\n\t"} {
		resp, err := p.service.Ask(context.Background(), interfaces.AskRequest{Question: q, Execute: true})
		assert.Nil(t, resp)

		appErr, ok := sharederrors.As(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, "Question cannot be empty.", appErr.Message)
	}

	assert.Zero(t, p.history.Len())
	p.translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAsk_TranslateAndExecute(t *testing.T) {
	p := newPipeline()
	schemaText := schema.Render(categoriesSchema)
	p.translator.On("Translate", mock.Anything, "How many categories are there?", schemaText, "sqlite").
		Return(domain.Translation{Success: true, SQL: "SELECT COUNT(*) FROM categories;", Explanation: "Counts categories."})
	p.executor.On("Execute", mock.Anything, "SELECT COUNT(*) FROM categories;").
		Return(domain.NewQueryResult(&domain.RowSet{Columns: []string{"COUNT(*)"}, Rows: []map[string]any{{"COUNT(*)": int64(6)}}}))

	resp, err := p.service.Ask(context.Background(), interfaces.AskRequest{Question: "How many categories are there?", Execute: true})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "SELECT COUNT(*) FROM categories;", resp.SQL)
	assert.Equal(t, "Counts categories.", resp.Explanation)
	require.NotNil(t, resp.Results)
	assert.True(t, resp.Results.Success)
	assert.EqualValues(t, 6, resp.Results.Rows[0]["COUNT(*)"])

	history := p.history.List()
	require.Len(t, history, 1)
	assert.Equal(t, "How many categories are there?", history[0].Question)
	assert.True(t, history[0].Success)
	assert.Equal(t, 1, history[0].RowCount)
}

func TestAsk_WithoutExecution(t *testing.T) {
	p := newPipeline()
	p.translator.On("Translate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Translation{Success: true, SQL: "SELECT 1", Explanation: "x"})

	resp, err := p.service.Ask(context.Background(), interfaces.AskRequest{Question: "q", Execute: false})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Results)

	p.executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	history := p.history.List()
	require.Len(t, history, 1)
	assert.True(t, history[0].Success)
	assert.Zero(t, history[0].RowCount)
}

func TestAsk_RejectedSQLStillRecorded(t *testing.T) {
	p := newPipeline()
	p.translator.On("Translate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.Translation{Success: true, SQL: "DROP TABLE customers", Explanation: "Drops."})
	p.executor.On("Execute", mock.Anything, "DROP TABLE customers").
		Return(domain.FailedQueryResult(domain.ErrorKindPolicyRejected, "Only SELECT queries are allowed for safety. Write operations are disabled."))

	resp, err := p.service.Ask(context.Background(), interfaces.AskRequest{Question: "delete everything", Execute: true})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.False(t, resp.Results.Success)
	assert.Equal(t, domain.ErrorKindPolicyRejected, resp.Results.ErrorKind)

	history := p.history.List()
	require.Len(t, history, 1)
	assert.False(t, history[0].Success)
}

func TestAsk_TranslationFailure(t *testing.T) {
	p := newPipeline()
	p.translator.On("Translate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FailedTranslation("Gemini API key is not configured. Please add your key to the .env file."))

	resp, err := p.service.Ask(context.Background(), interfaces.AskRequest{Question: "q", Execute: true})
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "q", resp.Question)
	assert.Empty(t, resp.SQL)
	assert.Empty(t, resp.Explanation)
	assert.Nil(t, resp.Results)
	assert.Contains(t, resp.Error, "not configured")
	assert.Zero(t, p.history.Len())
	p.executor.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAsk_SchemaFailure(t *testing.T) {
	p := newPipeline()
	p.introspector = &mocks.Introspector{}
	p.introspector.On("Introspect", mock.Anything, p.conn).Return(nil, errors.New("disk I/O error"))
	p.service = NewQueryService(p.manager, p.introspector, p.translator, p.executor, p.history)

	_, err := p.service.Ask(context.Background(), interfaces.AskRequest{Question: "q", Execute: true})
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "disk I/O error", appErr.Message)
}

func TestExecute(t *testing.T) {
	p := newPipeline()
	p.executor.On("Execute", mock.Anything, "SELECT 1").Return(domain.NewQueryResult(&domain.RowSet{Columns: []string{"1"}}))

	result, err := p.service.Execute(context.Background(), "SELECT 1")
	require.NoError(t, err)
	assert.True(t, result.Success)

	_, err = p.service.Execute(context.Background(), "  ")
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "SQL query cannot be empty.", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestSchema(t *testing.T) {
	p := newPipeline()

	got, name, err := p.service.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sample.db", name)
	assert.Equal(t, categoriesSchema, got)
}

func TestSchema_NoDatabase(t *testing.T) {
	p := newPipeline()
	p.manager = &mocks.ConnectorManager{}
	p.manager.On("Acquire").Return(nil, domain.ErrNoActiveDatabase)
	p.service = NewQueryService(p.manager, p.introspector, p.translator, p.executor, p.history)

	_, _, err := p.service.Schema(context.Background())
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
}
