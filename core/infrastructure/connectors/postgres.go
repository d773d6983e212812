package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/infrastructure/logging"
)

const (
	postgresTablesQuery = `SELECT table_name FROM information_schema.tables
WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
ORDER BY table_name`

	postgresColumnsQuery = `SELECT c.column_name, c.data_type, c.is_nullable = 'YES',
  EXISTS (
    SELECT 1 FROM information_schema.table_constraints tc
    JOIN information_schema.key_column_usage k
      ON tc.constraint_name = k.constraint_name AND tc.table_schema = k.table_schema
    WHERE tc.constraint_type = 'PRIMARY KEY'
      AND tc.table_schema = c.table_schema AND tc.table_name = c.table_name
      AND k.column_name = c.column_name
  )
FROM information_schema.columns c
WHERE c.table_schema = current_schema() AND c.table_name = $1
ORDER BY c.ordinal_position`

	postgresForeignKeysQuery = `SELECT kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY'
  AND tc.table_schema = current_schema() AND tc.table_name = $1
ORDER BY kcu.ordinal_position`
)

// PostgresConnector serves a PostgreSQL database through a pgx pool
type PostgresConnector struct {
	*sqlConnector
	pool *pgxpool.Pool
}

// NewPostgresConnector opens a pgx/v5 pool and exposes it through database/sql
func NewPostgresConnector(ctx context.Context, connectionString string) (*PostgresConnector, error) {
	log := logging.New("connector:postgres")
	log.Debugf("Opening PostgreSQL connection pool (pgx/v5)")

	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connection string: %w", err)
	}
	config.ConnConfig.RuntimeParams["default_transaction_read_only"] = "on"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}

	log.Debugf("Testing connection with ping")
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	log.Debugf("PostgreSQL connection pool opened successfully")
	conn := newPostgresConnector(stdlib.OpenDBFromPool(pool), postgresDatabaseName(connectionString))
	conn.pool = pool
	return conn, nil
}

func newPostgresConnector(db *sql.DB, name string) *PostgresConnector {
	return &PostgresConnector{
		sqlConnector: &sqlConnector{
			name:    name,
			dialect: DialectPostgres,
			db:      db,
			log:     logging.New("connector:postgres"),
		},
	}
}

// Tables lists base tables of the current schema
func (p *PostgresConnector) Tables(ctx context.Context) ([]string, error) {
	return p.queryStrings(ctx, postgresTablesQuery)
}

// Columns reads information_schema.columns
func (p *PostgresConnector) Columns(ctx context.Context, table string) ([]domain.Column, error) {
	return p.queryColumns(ctx, postgresColumnsQuery, table)
}

// ForeignKeys reads FOREIGN KEY constraints of table
func (p *PostgresConnector) ForeignKeys(ctx context.Context, table string) ([]domain.ForeignKey, error) {
	return p.queryForeignKeys(ctx, postgresForeignKeysQuery, table)
}

// Close closes the database/sql handle and then the pool underneath it
func (p *PostgresConnector) Close() error {
	err := p.sqlConnector.Close()
	if p.pool != nil {
		p.pool.Close()
	}
	return err
}

func postgresDatabaseName(connectionString string) string {
	if u, err := url.Parse(connectionString); err == nil {
		if name := strings.TrimPrefix(u.Path, "/"); name != "" {
			return name
		}
	}
	return DialectPostgres
}
