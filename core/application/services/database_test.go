package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbridge/smartbridge/core/application/schema"
	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/domain/interfaces/mocks"
	"github.com/smartbridge/smartbridge/core/infrastructure/connectors"
	"github.com/smartbridge/smartbridge/core/infrastructure/storage"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

func openSQLite(ctx context.Context, path string) (interfaces.Connector, error) {
	conn, err := connectors.NewSQLiteConnector(ctx, path)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// sqliteBytes builds a database file from statements and returns its content.
func sqliteBytes(t *testing.T, statements ...string) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

type databaseFixture struct {
	dir     string
	manager *connectors.ConnectorManager
	history *HistoryStore
	service *DatabaseService
}

func newDatabaseFixture(t *testing.T) *databaseFixture {
	t.Helper()
	dir := t.TempDir()

	initialPath := filepath.Join(dir, "sample.db")
	require.NoError(t, os.WriteFile(initialPath, sqliteBytes(t, `CREATE TABLE categories (id INTEGER PRIMARY KEY)`), 0o644))
	initial, err := connectors.NewSQLiteConnector(context.Background(), initialPath)
	require.NoError(t, err)

	manager := connectors.NewConnectorManager(initial)
	t.Cleanup(func() { manager.CloseAll() })

	translator := &mocks.Translator{}
	translator.On("Configured").Return(true).Maybe()

	history := NewHistoryStore()
	history.Record(domain.HistoryEntry{Question: "before"})

	return &databaseFixture{
		dir:     dir,
		manager: manager,
		history: history,
		service: NewDatabaseService(manager, schema.NewIntrospector(2), translator, history, storage.NewFileStore(dir), openSQLite),
	}
}

func (f *databaseFixture) activeName(t *testing.T) string {
	conn, err := f.manager.Active()
	require.NoError(t, err)
	return conn.Name()
}

func (f *databaseFixture) files(t *testing.T) []string {
	entries, err := os.ReadDir(f.dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUpload_Success(t *testing.T) {
	f := newDatabaseFixture(t)
	content := sqliteBytes(t,
		`CREATE TABLE customers (id INTEGER PRIMARY KEY, name TEXT)`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, customer_id INTEGER REFERENCES customers(id))`,
		`INSERT INTO customers (name) VALUES ('Ada')`,
	)

	uploaded, name, err := f.service.Upload(context.Background(), "shop.db", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "shop.db", name)

	assert.Equal(t, []string{"customers", "orders"}, uploaded.TableNames())
	assert.EqualValues(t, 1, uploaded[0].RowCount)
	assert.Equal(t, "shop.db", f.activeName(t))
	assert.Zero(t, f.history.Len())
	assert.ElementsMatch(t, []string{"sample.db", "shop.db"}, f.files(t))

	status := f.service.Status()
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "shop.db", status.CurrentDB)
	assert.Equal(t, "sqlite", status.Dialect)
	assert.True(t, status.LLMConfigured)
}

func TestUpload_BadExtension(t *testing.T) {
	f := newDatabaseFixture(t)

	_, _, err := f.service.Upload(context.Background(), "notes.txt", strings.NewReader("x"))
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Only .db, .sqlite, .sqlite3 files are accepted.", appErr.Message)
	assert.Equal(t, "sample.db", f.activeName(t))
	assert.Equal(t, 1, f.history.Len())
}

func TestUpload_NoTables(t *testing.T) {
	f := newDatabaseFixture(t)

	_, _, err := f.service.Upload(context.Background(), "empty.db", bytes.NewReader(sqliteBytes(t)))
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Database file contains no tables.", appErr.Message)

	assert.Equal(t, "sample.db", f.activeName(t))
	assert.Equal(t, []string{"sample.db"}, f.files(t))
	assert.Equal(t, 1, f.history.Len())
}

func TestUpload_NotADatabase(t *testing.T) {
	f := newDatabaseFixture(t)

	garbage := bytes.Repeat([]byte("this is definitely not sqlite "), 200)
	_, _, err := f.service.Upload(context.Background(), "fake.sqlite", bytes.NewReader(garbage))
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.True(t, strings.HasPrefix(appErr.Message, "Invalid SQLite file: "), appErr.Message)

	assert.Equal(t, "sample.db", f.activeName(t))
	assert.Equal(t, []string{"sample.db"}, f.files(t))
}

func TestStatus_NoDatabase(t *testing.T) {
	manager := &mocks.ConnectorManager{}
	manager.On("Active").Return(nil, domain.ErrNoActiveDatabase)
	translator := &mocks.Translator{}
	translator.On("Configured").Return(false)

	svc := NewDatabaseService(manager, &mocks.Introspector{}, translator, NewHistoryStore(), storage.NewFileStore(t.TempDir()), openSQLite)
	status := svc.Status()
	assert.Equal(t, "healthy", status.Status)
	assert.False(t, status.LLMConfigured)
	assert.Empty(t, status.CurrentDB)
	assert.Zero(t, status.HistoryCount)
}

func TestUpload_RefusesActiveFile(t *testing.T) {
	f := newDatabaseFixture(t)
	before, err := os.ReadFile(filepath.Join(f.dir, "sample.db"))
	require.NoError(t, err)

	content := sqliteBytes(t, `CREATE TABLE replaced (id INTEGER)`)
	_, _, err = f.service.Upload(context.Background(), "sample.db", bytes.NewReader(content))
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Database 'sample.db' is currently active. Upload it under a different name.", appErr.Message)

	after, err := os.ReadFile(filepath.Join(f.dir, "sample.db"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"sample.db"}, f.files(t))
	assert.Equal(t, 1, f.history.Len())
}

func TestUpload_OpenFailureKeepsActiveDatabase(t *testing.T) {
	f := newDatabaseFixture(t)
	failFinal := func(ctx context.Context, path string) (interfaces.Connector, error) {
		if filepath.Base(path) == "shop.db" {
			return nil, errors.New("disk gone")
		}
		return openSQLite(ctx, path)
	}
	f.service = NewDatabaseService(f.manager, schema.NewIntrospector(2), f.service.translator, f.history, storage.NewFileStore(f.dir), failFinal)

	content := sqliteBytes(t, `CREATE TABLE customers (id INTEGER PRIMARY KEY)`)
	_, _, err := f.service.Upload(context.Background(), "shop.db", bytes.NewReader(content))
	appErr, ok := sharederrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)

	assert.Equal(t, "sample.db", f.activeName(t))
	assert.Equal(t, []string{"sample.db"}, f.files(t))

	schemaAfter, err := schema.NewIntrospector(1).Introspect(context.Background(), mustActive(t, f))
	require.NoError(t, err)
	assert.Equal(t, []string{"categories"}, schemaAfter.TableNames())
}

func mustActive(t *testing.T, f *databaseFixture) interfaces.Connector {
	t.Helper()
	conn, err := f.manager.Active()
	require.NoError(t, err)
	return conn
}
