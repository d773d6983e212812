package seed

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedOptions = Options{Seed: 7, Now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

func count(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.db")
	require.NoError(t, Create(context.Background(), path, fixedOptions))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 6, count(t, db, "SELECT COUNT(*) FROM categories"))
	assert.Equal(t, 30, count(t, db, "SELECT COUNT(*) FROM products"))
	assert.Equal(t, CustomerCount, count(t, db, "SELECT COUNT(*) FROM customers"))
	assert.Equal(t, OrderCount, count(t, db, "SELECT COUNT(*) FROM orders"))
	assert.Equal(t, ReviewCount, count(t, db, "SELECT COUNT(*) FROM reviews"))

	items := count(t, db, "SELECT COUNT(*) FROM order_items")
	assert.GreaterOrEqual(t, items, OrderCount)
	assert.LessOrEqual(t, items, OrderCount*4)

	// totals match their line items
	assert.Zero(t, count(t, db, `
		SELECT COUNT(*) FROM orders o
		WHERE ABS(o.total_amount - (SELECT SUM(quantity * unit_price) FROM order_items WHERE order_id = o.id)) > 0.01`))
	assert.Zero(t, count(t, db, "SELECT COUNT(*) FROM reviews WHERE rating NOT BETWEEN 3 AND 5"))
	assert.Zero(t, count(t, db, "SELECT COUNT(*) FROM (SELECT order_id, product_id FROM order_items GROUP BY 1, 2 HAVING COUNT(*) > 1)"))
}

func TestCreate_Deterministic(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.db")
	second := filepath.Join(dir, "b.db")
	require.NoError(t, Create(context.Background(), first, fixedOptions))
	require.NoError(t, Create(context.Background(), second, fixedOptions))

	dump := func(path string) []string {
		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		defer db.Close()
		rows, err := db.Query("SELECT customer_id || '|' || order_date || '|' || total_amount || '|' || status FROM orders ORDER BY id")
		require.NoError(t, err)
		defer rows.Close()
		var out []string
		for rows.Next() {
			var line string
			require.NoError(t, rows.Scan(&line))
			out = append(out, line)
		}
		return out
	}
	assert.Equal(t, dump(first), dump(second))
}

func TestCreate_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, Create(context.Background(), path, fixedOptions))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 6, count(t, db, "SELECT COUNT(*) FROM categories"))
}

func TestEnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.db")

	created, err := EnsureExists(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(path)
	require.NoError(t, err)

	created, err = EnsureExists(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, created)

	again, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())
}
