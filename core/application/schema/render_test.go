package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbridge/smartbridge/core/domain"
)

func TestRender(t *testing.T) {
	schema, err := NewIntrospector(2).Introspect(context.Background(), shopConnector())
	require.NoError(t, err)

	want := "CREATE TABLE categories (id INTEGER  PRIMARY KEY, name TEXT);\n" +
		"  -- 6 rows\n" +
		"\n" +
		"CREATE TABLE products (id INTEGER  PRIMARY KEY, name TEXT, category_id INTEGER);\n" +
		"  -- FK: products.category_id -> categories.id\n" +
		"  -- 30 rows\n"

	assert.Equal(t, want, Render(schema))
}

func TestRender_Deterministic(t *testing.T) {
	schema := domain.Schema{
		{Name: "t", Columns: []domain.Column{{Name: "a", Type: "TEXT"}}, RowCount: 0},
	}
	assert.Equal(t, Render(schema), Render(schema))
	assert.Equal(t, "CREATE TABLE t (a TEXT);\n  -- 0 rows\n", Render(schema))
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render(nil))
}
