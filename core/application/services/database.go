package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
	"github.com/smartbridge/smartbridge/core/infrastructure/storage"
	"github.com/smartbridge/smartbridge/core/logger"
	"github.com/smartbridge/smartbridge/core/observability"
	sharederrors "github.com/smartbridge/smartbridge/core/shared/errors"
)

// OpenFunc opens a connector on a database file.
type OpenFunc func(ctx context.Context, path string) (interfaces.Connector, error)

// DatabaseService implements interfaces.DatabaseService
type DatabaseService struct {
	manager      interfaces.ConnectorManager
	introspector interfaces.Introspector
	translator   interfaces.Translator
	history      interfaces.HistoryStore
	store        *storage.FileStore
	open         OpenFunc

	// uploads are serialized so two swaps never interleave
	mu  sync.Mutex
	log *logger.Logger
}

func NewDatabaseService(
	manager interfaces.ConnectorManager,
	introspector interfaces.Introspector,
	translator interfaces.Translator,
	history interfaces.HistoryStore,
	store *storage.FileStore,
	open OpenFunc,
) *DatabaseService {
	return &DatabaseService{
		manager:      manager,
		introspector: introspector,
		translator:   translator,
		history:      history,
		store:        store,
		open:         open,
		log:          logger.New("database"),
	}
}

// Upload stores content as a new database file, validates it and makes it
// the active database. It returns the new schema and the stored name. On any
// validation failure the file is removed and the active database is left as
// it was.
func (s *DatabaseService) Upload(ctx context.Context, filename string, content io.Reader) (domain.Schema, string, error) {
	name, err := storage.CleanName(filename)
	if err != nil {
		return nil, "", sharederrors.InvalidInput(domain.ErrBadExtension.Message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	ctx, span := observability.StartStage(ctx, observability.StageUpload)
	uploaded, err := s.upload(ctx, name, content)
	observability.EndStage(span, err)
	observability.RecordStage(ctx, observability.StageUpload, err == nil, float64(time.Since(start).Milliseconds()))

	if err != nil {
		s.log.Warnf("Upload of '%s' rejected: %v", name, err)
		return nil, "", err
	}

	s.history.Clear()
	s.log.Infof("Database '%s' loaded with %d table(s)", name, len(uploaded))
	return uploaded, name, nil
}

func (s *DatabaseService) upload(ctx context.Context, name string, content io.Reader) (domain.Schema, error) {
	// The active file stays in use by its pool, so it is never replaced.
	if s.isActive(s.store.Path(name)) {
		return nil, sharederrors.InvalidInput(fmt.Sprintf(domain.ErrDatabaseInUse.Message, name))
	}

	staged, err := s.store.Stage(name, content)
	if err != nil {
		return nil, sharederrors.Internal(err)
	}

	uploaded, err := s.validate(ctx, staged)
	if err != nil {
		_ = s.store.Discard(staged)
		return nil, err
	}

	dest, err := s.store.Commit(staged, name)
	if err != nil {
		_ = s.store.Discard(staged)
		return nil, sharederrors.Internal(err)
	}

	conn, err := s.open(ctx, dest)
	if err != nil {
		_ = s.store.Discard(dest)
		return nil, sharederrors.Internal(fmt.Errorf("failed to open '%s': %w", name, err))
	}

	if err := s.manager.Swap(conn); err != nil {
		// the new database is already active at this point
		s.log.Warnf("Closing previous database: %v", err)
	}
	return uploaded, nil
}

// isActive reports whether path backs the active connector.
func (s *DatabaseService) isActive(path string) bool {
	conn, err := s.manager.Active()
	if err != nil {
		return false
	}
	backed, ok := conn.(interface{ Path() string })
	if !ok {
		return false
	}
	return sameFile(backed.Path(), path)
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// validate opens path on its own connector and requires at least one table.
func (s *DatabaseService) validate(ctx context.Context, path string) (domain.Schema, error) {
	conn, err := s.open(ctx, path)
	if err != nil {
		return nil, invalidDatabase(err)
	}
	defer conn.Close()

	uploaded, err := s.introspector.Introspect(ctx, conn)
	if err != nil {
		return nil, invalidDatabase(err)
	}
	if len(uploaded) == 0 {
		return nil, sharederrors.NewAppError(sharederrors.ErrCodeInvalidDatabase, domain.ErrNoTables.Message, domain.ErrNoTables)
	}
	return uploaded, nil
}

func invalidDatabase(err error) error {
	return sharederrors.NewAppError(sharederrors.ErrCodeInvalidDatabase, "Invalid SQLite file: "+err.Error(), err)
}

// Status reports whether the model is usable and which database is active.
func (s *DatabaseService) Status() interfaces.Status {
	status := interfaces.Status{
		Status:        "healthy",
		LLMConfigured: s.translator.Configured(),
		HistoryCount:  s.history.Len(),
	}
	if conn, err := s.manager.Active(); err == nil {
		status.CurrentDB = conn.Name()
		status.Dialect = conn.Dialect()
	}
	return status
}
