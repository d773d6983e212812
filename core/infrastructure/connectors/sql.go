package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
)

// sqlConnector holds what every database/sql backed connector shares.
// Dialect specific catalog queries live on the embedding types.
type sqlConnector struct {
	name    string
	dialect string
	db      *sql.DB
	log     interfaces.Logger
}

// Name returns the display name of the database
func (c *sqlConnector) Name() string {
	return c.name
}

// Dialect returns the SQL dialect served by the connector
func (c *sqlConnector) Dialect() string {
	return c.dialect
}

// Execute runs statement and collects at most limit rows. A limit of zero or
// less collects every row. Engine errors are returned as-is.
func (c *sqlConnector) Execute(ctx context.Context, statement string, limit int) (*domain.RowSet, error) {
	rows, err := c.db.QueryContext(ctx, statement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	set := &domain.RowSet{
		Columns: columns,
		Rows:    make([]map[string]any, 0),
	}

	for rows.Next() {
		if limit > 0 && len(set.Rows) == limit {
			set.More = true
			break
		}

		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		rowMap := make(map[string]any, len(columns))
		for i, col := range columns {
			// Convert []byte to string for better JSON serialization
			if b, ok := values[i].([]byte); ok {
				rowMap[col] = string(b)
			} else {
				rowMap[col] = values[i]
			}
		}
		set.Rows = append(set.Rows, rowMap)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	c.log.Debugf("Statement returned %d row(s), more=%t", len(set.Rows), set.More)
	return set, nil
}

// RowCount counts every row of table
func (c *sqlConnector) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", c.quote(table))
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows of '%s': %w", table, err)
	}
	return count, nil
}

// Close closes the database connection pool
func (c *sqlConnector) Close() error {
	if c.db == nil {
		return nil
	}
	c.log.Debugf("Closing %s connection pool", c.dialect)
	if err := c.db.Close(); err != nil {
		c.log.Errorf("Error closing %s connection: %v", c.dialect, err)
		return err
	}
	c.log.Debugf("Connection pool closed")
	return nil
}

// quote quotes an identifier for the connector's dialect
func (c *sqlConnector) quote(ident string) string {
	if c.dialect == DialectMySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// queryStrings runs a single-column catalog query
func (c *sqlConnector) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// queryColumns runs a catalog query yielding (name, type, nullable, primary key)
func (c *sqlConnector) queryColumns(ctx context.Context, query string, args ...any) ([]domain.Column, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Column
	for rows.Next() {
		var col domain.Column
		if err := rows.Scan(&col.Name, &col.Type, &col.Nullable, &col.PrimaryKey); err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, rows.Err()
}

// queryForeignKeys runs a catalog query yielding (from column, to table, to column)
func (c *sqlConnector) queryForeignKeys(ctx context.Context, query string, args ...any) ([]domain.ForeignKey, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ForeignKey
	for rows.Next() {
		var fk domain.ForeignKey
		if err := rows.Scan(&fk.FromColumn, &fk.ToTable, &fk.ToColumn); err != nil {
			return nil, err
		}
		out = append(out, fk)
	}
	return out, rows.Err()
}
