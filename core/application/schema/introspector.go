package schema

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/logger"
	"github.com/smartbridge/smartbridge/core/observability"
)

// DefaultConcurrency bounds how many tables are described at once.
const DefaultConcurrency = 4

// Introspector implements interfaces.Introspector on top of a connector's
// catalog queries.
type Introspector struct {
	concurrency int
	log         *logger.Logger
}

// NewIntrospector creates an introspector. A non-positive concurrency uses
// DefaultConcurrency.
func NewIntrospector(concurrency int) *Introspector {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Introspector{
		concurrency: concurrency,
		log:         logger.New("introspector"),
	}
}

// Introspect describes every user table of conn. Any failure aborts the whole
// run; a partial schema is never returned.
func (i *Introspector) Introspect(ctx context.Context, conn interfaces.Connector) (domain.Schema, error) {
	start := time.Now()
	ctx, span := observability.StartStage(ctx, observability.StageIntrospect,
		attribute.String(observability.AttrDBSystem, conn.Dialect()),
		attribute.String(observability.AttrDBName, conn.Name()),
	)

	schema, err := i.introspect(ctx, conn)

	observability.EndStage(span, err)
	observability.RecordStage(ctx, observability.StageIntrospect, err == nil, float64(time.Since(start).Milliseconds()))
	if err != nil {
		i.log.PrintError(fmt.Sprintf("Introspection of '%s' failed", conn.Name()), err)
		return nil, err
	}

	i.log.Debugf("Introspected %d table(s) of '%s' in %s", len(schema), conn.Name(), time.Since(start))
	return schema, nil
}

func (i *Introspector) introspect(ctx context.Context, conn interfaces.Connector) (domain.Schema, error) {
	names, err := conn.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	schema := make(domain.Schema, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for idx, name := range names {
		g.Go(func() error {
			table, err := describeTable(gctx, conn, name)
			if err != nil {
				return err
			}
			schema[idx] = table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return schema, nil
}

func describeTable(ctx context.Context, conn interfaces.Connector, name string) (domain.Table, error) {
	columns, err := conn.Columns(ctx, name)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read columns of '%s': %w", name, err)
	}

	foreignKeys, err := conn.ForeignKeys(ctx, name)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read foreign keys of '%s': %w", name, err)
	}

	count, err := conn.RowCount(ctx, name)
	if err != nil {
		return domain.Table{}, err
	}

	if columns == nil {
		columns = []domain.Column{}
	}
	if foreignKeys == nil {
		foreignKeys = []domain.ForeignKey{}
	}

	return domain.Table{
		Name:        name,
		Columns:     columns,
		RowCount:    count,
		ForeignKeys: foreignKeys,
	}, nil
}
