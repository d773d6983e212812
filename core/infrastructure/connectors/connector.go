package connectors

import (
	"context"
	"strings"

	"github.com/smartbridge/smartbridge/core/domain/interfaces"
)

// Supported dialects
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

// Open picks a connector from the shape of target: postgres:// and mysql://
// URLs select the server dialects, anything else is a SQLite file path.
func Open(ctx context.Context, target string) (interfaces.Connector, error) {
	var (
		conn interfaces.Connector
		err  error
	)
	switch {
	case strings.HasPrefix(target, "postgres://"), strings.HasPrefix(target, "postgresql://"):
		conn, err = NewPostgresConnector(ctx, target)
	case strings.HasPrefix(target, "mysql://"):
		conn, err = NewMySQLConnector(ctx, target)
	default:
		conn, err = NewSQLiteConnector(ctx, target)
	}
	if err != nil {
		return nil, err
	}
	return conn, nil
}
