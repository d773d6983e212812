// Package mocks holds testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
)

// Connector mocks interfaces.Connector
type Connector struct {
	mock.Mock
}

func (m *Connector) Name() string {
	return m.Called().String(0)
}

func (m *Connector) Dialect() string {
	return m.Called().String(0)
}

func (m *Connector) Execute(ctx context.Context, statement string, limit int) (*domain.RowSet, error) {
	args := m.Called(ctx, statement, limit)
	set, _ := args.Get(0).(*domain.RowSet)
	return set, args.Error(1)
}

func (m *Connector) Tables(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	tables, _ := args.Get(0).([]string)
	return tables, args.Error(1)
}

func (m *Connector) Columns(ctx context.Context, table string) ([]domain.Column, error) {
	args := m.Called(ctx, table)
	cols, _ := args.Get(0).([]domain.Column)
	return cols, args.Error(1)
}

func (m *Connector) ForeignKeys(ctx context.Context, table string) ([]domain.ForeignKey, error) {
	args := m.Called(ctx, table)
	fks, _ := args.Get(0).([]domain.ForeignKey)
	return fks, args.Error(1)
}

func (m *Connector) RowCount(ctx context.Context, table string) (int64, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Connector) Close() error {
	return m.Called().Error(0)
}

// ConnectorManager mocks interfaces.ConnectorManager
type ConnectorManager struct {
	mock.Mock
}

func (m *ConnectorManager) Active() (interfaces.Connector, error) {
	args := m.Called()
	conn, _ := args.Get(0).(interfaces.Connector)
	return conn, args.Error(1)
}

func (m *ConnectorManager) Acquire() (interfaces.Connector, func(), error) {
	args := m.Called()
	conn, _ := args.Get(0).(interfaces.Connector)
	return conn, func() {}, args.Error(1)
}

func (m *ConnectorManager) Swap(conn interfaces.Connector) error {
	return m.Called(conn).Error(0)
}

func (m *ConnectorManager) CloseAll() error {
	return m.Called().Error(0)
}

// Executor mocks interfaces.Executor
type Executor struct {
	mock.Mock
}

func (m *Executor) Execute(ctx context.Context, statement string) domain.QueryResult {
	return m.Called(ctx, statement).Get(0).(domain.QueryResult)
}

// Introspector mocks interfaces.Introspector
type Introspector struct {
	mock.Mock
}

func (m *Introspector) Introspect(ctx context.Context, conn interfaces.Connector) (domain.Schema, error) {
	args := m.Called(ctx, conn)
	schema, _ := args.Get(0).(domain.Schema)
	return schema, args.Error(1)
}

// Completer mocks interfaces.Completer
type Completer struct {
	mock.Mock
}

func (m *Completer) Provider() string {
	return m.Called().String(0)
}

func (m *Completer) Configured() bool {
	return m.Called().Bool(0)
}

func (m *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Translator mocks interfaces.Translator
type Translator struct {
	mock.Mock
}

func (m *Translator) Translate(ctx context.Context, question, schemaText, dialect string) domain.Translation {
	return m.Called(ctx, question, schemaText, dialect).Get(0).(domain.Translation)
}

func (m *Translator) Configured() bool {
	return m.Called().Bool(0)
}

// QueryService mocks interfaces.QueryService
type QueryService struct {
	mock.Mock
}

func (m *QueryService) Ask(ctx context.Context, req interfaces.AskRequest) (*interfaces.AskResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*interfaces.AskResponse)
	return resp, args.Error(1)
}

func (m *QueryService) Execute(ctx context.Context, statement string) (domain.QueryResult, error) {
	args := m.Called(ctx, statement)
	return args.Get(0).(domain.QueryResult), args.Error(1)
}

func (m *QueryService) Schema(ctx context.Context) (domain.Schema, string, error) {
	args := m.Called(ctx)
	schema, _ := args.Get(0).(domain.Schema)
	return schema, args.String(1), args.Error(2)
}

// DatabaseService mocks interfaces.DatabaseService
type DatabaseService struct {
	mock.Mock
}

func (m *DatabaseService) Upload(ctx context.Context, filename string, content io.Reader) (domain.Schema, string, error) {
	args := m.Called(ctx, filename, content)
	schema, _ := args.Get(0).(domain.Schema)
	return schema, args.String(1), args.Error(2)
}

func (m *DatabaseService) Status() interfaces.Status {
	return m.Called().Get(0).(interfaces.Status)
}
