package di

import (
	"context"

	"github.com/smartbridge/smartbridge/core/application/executor"
	"github.com/smartbridge/smartbridge/core/application/schema"
	"github.com/smartbridge/smartbridge/core/application/services"
	"github.com/smartbridge/smartbridge/core/application/translator"
	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/connectors"
	"github.com/smartbridge/smartbridge/core/infrastructure/llm"
	"github.com/smartbridge/smartbridge/core/infrastructure/storage"
	"github.com/smartbridge/smartbridge/core/logger"
	"github.com/smartbridge/smartbridge/core/seed"
)

// Container holds all dependencies
type Container struct {
	Config           *config.Config
	ConnectorManager interfaces.ConnectorManager
	Introspector     interfaces.Introspector
	Executor         interfaces.Executor
	Translator       *translator.Swappable
	History          interfaces.HistoryStore
	QueryService     interfaces.QueryService
	DatabaseService  interfaces.DatabaseService
}

// NewContainer opens the configured database and wires the pipeline around it
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logger.New("di")

	target, err := databaseTarget(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	conn, err := connectors.Open(ctx, target)
	if err != nil {
		return nil, log.Errorf("failed to open database: %w", err)
	}
	manager := connectors.NewConnectorManager(conn)

	gateway, err := NewTranslator(cfg.LLM)
	if err != nil {
		_ = manager.CloseAll()
		return nil, err
	}
	swappable := translator.NewSwappable(gateway)

	introspector := schema.NewIntrospector(schema.DefaultConcurrency)
	exec := executor.NewExecutor(manager, cfg.Database.QueryTimeout)
	history := services.NewHistoryStore()
	store := storage.NewFileStore(cfg.Database.UploadDir)

	return &Container{
		Config:           cfg,
		ConnectorManager: manager,
		Introspector:     introspector,
		Executor:         exec,
		Translator:       swappable,
		History:          history,
		QueryService:     services.NewQueryService(manager, introspector, swappable, exec, history),
		DatabaseService:  services.NewDatabaseService(manager, introspector, swappable, history, store, openSQLite),
	}, nil
}

// NewTranslator builds a translation gateway for the given model settings.
func NewTranslator(cfg config.LLMConfig) (*translator.Translator, error) {
	completer, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}
	return translator.NewTranslator(completer, cfg.Timeout), nil
}

// databaseTarget picks the DSN when one is set, otherwise the SQLite path,
// seeding the sample database there when allowed.
func databaseTarget(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if !cfg.SeedIfMissing {
		return cfg.Path, nil
	}
	created, err := seed.EnsureExists(ctx, cfg.Path)
	if err != nil {
		return "", log.Errorf("failed to seed sample database at '%s': %w", cfg.Path, err)
	}
	if created {
		log.Infof("Sample database created at %s", cfg.Path)
	}
	return cfg.Path, nil
}

// uploads are always SQLite files
func openSQLite(ctx context.Context, path string) (interfaces.Connector, error) {
	conn, err := connectors.NewSQLiteConnector(ctx, path)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Close closes all resources
func (c *Container) Close() error {
	if c.ConnectorManager != nil {
		return c.ConnectorManager.CloseAll()
	}
	return nil
}
