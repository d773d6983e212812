package connectors

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/infrastructure/logging"
)

// SQLiteConnector serves a single SQLite database file
type SQLiteConnector struct {
	*sqlConnector
	path string
}

// NewSQLiteConnector opens an existing SQLite file. It never creates one.
func NewSQLiteConnector(ctx context.Context, path string) (*SQLiteConnector, error) {
	log := logging.New("connector:sqlite")

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database file not found: %w", err)
	}

	log.Debugf("Opening SQLite database %s", path)
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	log.Debugf("SQLite database opened successfully")
	return &SQLiteConnector{
		sqlConnector: &sqlConnector{
			name:    filepath.Base(path),
			dialect: DialectSQLite,
			db:      db,
			log:     log,
		},
		path: path,
	}, nil
}

// sqliteDSN opens every pooled connection with query_only so no statement,
// including a data-modifying CTE, can write to the file.
func sqliteDSN(path string) string {
	return path + "?_pragma=busy_timeout(5000)&_pragma=query_only(1)"
}

// Path returns the file backing the connector
func (s *SQLiteConnector) Path() string {
	return s.path
}

// Tables lists user tables, skipping sqlite_* internals
func (s *SQLiteConnector) Tables(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
}

// Columns reads PRAGMA table_info
func (s *SQLiteConnector) Columns(ctx context.Context, table string) ([]domain.Column, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", s.quote(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Column
	for rows.Next() {
		var (
			cid      int
			name     string
			typ      string
			notNull  int
			defValue sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defValue, &pk); err != nil {
			return nil, err
		}
		out = append(out, domain.Column{
			Name:       name,
			Type:       typ,
			Nullable:   notNull == 0,
			PrimaryKey: pk > 0,
		})
	}
	return out, rows.Err()
}

// ForeignKeys reads PRAGMA foreign_key_list
func (s *SQLiteConnector) ForeignKeys(ctx context.Context, table string) ([]domain.ForeignKey, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", s.quote(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ForeignKey
	for rows.Next() {
		var (
			id, seq            int
			toTable, fromCol   string
			toCol              sql.NullString
			onUpdate, onDelete string
			match              string
		)
		if err := rows.Scan(&id, &seq, &toTable, &fromCol, &toCol, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}
		out = append(out, domain.ForeignKey{
			FromColumn: fromCol,
			ToTable:    toTable,
			ToColumn:   toCol.String,
		})
	}
	return out, rows.Err()
}
