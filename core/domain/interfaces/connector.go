package interfaces

import (
	"context"

	"github.com/smartbridge/smartbridge/core/domain"
)

// Connector is a handle on one relational database.
type Connector interface {
	// Name is the display name of the database (file name or database name).
	Name() string

	// Dialect reports the SQL dialect: "sqlite", "postgres" or "mysql".
	Dialect() string

	// Execute runs a read statement and returns at most limit rows.
	// RowSet.More is set when further rows were available.
	Execute(ctx context.Context, statement string, limit int) (*domain.RowSet, error)

	// Tables lists user tables ordered by name, excluding internal catalog tables.
	Tables(ctx context.Context) ([]string, error)

	// Columns returns the columns of table in declaration order.
	Columns(ctx context.Context, table string) ([]domain.Column, error)

	// ForeignKeys returns the foreign keys declared on table.
	ForeignKeys(ctx context.Context, table string) ([]domain.ForeignKey, error)

	// RowCount counts the rows of table with a full COUNT(*).
	RowCount(ctx context.Context, table string) (int64, error)

	// Close closes the connector and releases resources
	Close() error
}

// ConnectorManager owns the active database. Swapping closes the previous one
// once no lease holds it.
type ConnectorManager interface {
	// Active returns the connector currently serving requests.
	Active() (Connector, error)

	// Acquire returns the active connector leased until release is called.
	Acquire() (conn Connector, release func(), err error)

	// Swap installs conn as the active connector and retires the previous one.
	Swap(conn Connector) error

	// CloseAll closes the active connector.
	CloseAll() error
}
