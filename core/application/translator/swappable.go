package translator

import (
	"context"
	"sync"

	"github.com/smartbridge/smartbridge/core/domain"
	"github.com/smartbridge/smartbridge/core/domain/interfaces"
)

// Swappable forwards to a translator that can be replaced at runtime, e.g.
// after the model configuration was reloaded.
type Swappable struct {
	mu      sync.RWMutex
	current interfaces.Translator
}

func NewSwappable(initial interfaces.Translator) *Swappable {
	return &Swappable{current: initial}
}

// Swap installs next for all subsequent calls.
func (s *Swappable) Swap(next interfaces.Translator) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

func (s *Swappable) get() interfaces.Translator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Swappable) Translate(ctx context.Context, question, schemaText, dialect string) domain.Translation {
	return s.get().Translate(ctx, question, schemaText, dialect)
}

func (s *Swappable) Configured() bool {
	return s.get().Configured()
}
