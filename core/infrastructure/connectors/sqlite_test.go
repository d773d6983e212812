package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbridge/smartbridge/core/domain"
)

func createSQLiteFile(t *testing.T, statements ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

func shopFixture(t *testing.T) *SQLiteConnector {
	t.Helper()
	path := createSQLiteFile(t,
		`CREATE TABLE categories (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE products (id INTEGER PRIMARY KEY, name TEXT NOT NULL, price REAL, category_id INTEGER REFERENCES categories(id))`,
		`INSERT INTO categories (id, name) VALUES (1, 'Books'), (2, 'Toys'), (3, 'Garden')`,
		`INSERT INTO products (name, price, category_id) VALUES ('Atlas', 12.5, 1), ('Kite', 8, 2)`,
	)
	conn, err := NewSQLiteConnector(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNewSQLiteConnector_MissingFile(t *testing.T) {
	_, err := NewSQLiteConnector(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database file not found")
}

func TestSQLiteConnector_Catalog(t *testing.T) {
	conn := shopFixture(t)
	ctx := context.Background()

	assert.Equal(t, "shop.db", conn.Name())
	assert.Equal(t, DialectSQLite, conn.Dialect())

	tables, err := conn.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"categories", "products"}, tables)

	columns, err := conn.Columns(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, []domain.Column{
		{Name: "id", Type: "INTEGER", Nullable: true, PrimaryKey: true},
		{Name: "name", Type: "TEXT", Nullable: false},
		{Name: "price", Type: "REAL", Nullable: true},
		{Name: "category_id", Type: "INTEGER", Nullable: true},
	}, columns)

	fks, err := conn.ForeignKeys(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, []domain.ForeignKey{{FromColumn: "category_id", ToTable: "categories", ToColumn: "id"}}, fks)

	fks, err = conn.ForeignKeys(ctx, "categories")
	require.NoError(t, err)
	assert.Empty(t, fks)

	count, err := conn.RowCount(ctx, "categories")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestSQLiteConnector_ExcludesInternalTables(t *testing.T) {
	path := createSQLiteFile(t,
		`CREATE TABLE notes (id INTEGER PRIMARY KEY AUTOINCREMENT, body TEXT)`,
		`INSERT INTO notes (body) VALUES ('x')`,
	)
	conn, err := NewSQLiteConnector(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()

	tables, err := conn.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, tables)
}

func TestSQLiteConnector_Execute(t *testing.T) {
	conn := shopFixture(t)

	set, err := conn.Execute(context.Background(), "SELECT id, name FROM categories ORDER BY id", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, set.Columns)
	require.Len(t, set.Rows, 3)
	assert.EqualValues(t, 1, set.Rows[0]["id"])
	assert.Equal(t, "Books", set.Rows[0]["name"])
	assert.False(t, set.More)
}

func TestSQLiteConnector_ExecuteLimit(t *testing.T) {
	conn := shopFixture(t)
	ctx := context.Background()

	set, err := conn.Execute(ctx, "SELECT id FROM categories", 2)
	require.NoError(t, err)
	assert.Len(t, set.Rows, 2)
	assert.True(t, set.More)

	set, err = conn.Execute(ctx, "SELECT id FROM categories", 3)
	require.NoError(t, err)
	assert.Len(t, set.Rows, 3)
	assert.False(t, set.More)
}

func TestSQLiteConnector_ExecuteEmptyResult(t *testing.T) {
	conn := shopFixture(t)

	set, err := conn.Execute(context.Background(), "SELECT id FROM categories WHERE id > 100", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, set.Columns)
	assert.NotNil(t, set.Rows)
	assert.Empty(t, set.Rows)
}

func TestSQLiteConnector_ExecuteEngineError(t *testing.T) {
	conn := shopFixture(t)

	_, err := conn.Execute(context.Background(), "SELECT * FROM nonexistent_table", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table: nonexistent_table")
}

func TestSQLiteConnector_QuotedIdentifiers(t *testing.T) {
	path := createSQLiteFile(t,
		`CREATE TABLE "order items" (id INTEGER PRIMARY KEY, "qty""x" INTEGER)`,
		`INSERT INTO "order items" (id) VALUES (1), (2)`,
	)
	conn, err := NewSQLiteConnector(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()

	count, err := conn.RowCount(context.Background(), "order items")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	columns, err := conn.Columns(context.Background(), "order items")
	require.NoError(t, err)
	assert.Equal(t, `qty"x`, columns[1].Name)
}

func TestOpen_SelectsDialect(t *testing.T) {
	path := createSQLiteFile(t, `CREATE TABLE t (id INTEGER)`)

	conn, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, DialectSQLite, conn.Dialect())

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}

func TestSQLiteConnector_ExecuteManyRows(t *testing.T) {
	stmts := []string{`CREATE TABLE n (v INTEGER)`}
	for i := range 20 {
		stmts = append(stmts, fmt.Sprintf(`INSERT INTO n VALUES (%d)`, i))
	}
	conn, err := NewSQLiteConnector(context.Background(), createSQLiteFile(t, stmts...))
	require.NoError(t, err)
	defer conn.Close()

	set, err := conn.Execute(context.Background(), "SELECT v FROM n ORDER BY v", 19)
	require.NoError(t, err)
	assert.Len(t, set.Rows, 19)
	assert.True(t, set.More)
}

func TestSQLiteConnector_ReadOnly(t *testing.T) {
	conn := shopFixture(t)
	ctx := context.Background()

	for _, stmt := range []string{
		"DELETE FROM categories",
		"INSERT INTO categories (name) VALUES ('Tools')",
		"DROP TABLE products",
		"CREATE TABLE extra (id INTEGER)",
	} {
		_, err := conn.Execute(ctx, stmt, 0)
		assert.ErrorContains(t, err, "readonly", stmt)
	}

	count, err := conn.RowCount(ctx, "categories")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	tables, err := conn.Tables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"categories", "products"}, tables)
}
