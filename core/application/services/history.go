package services

import (
	"slices"
	"sync"
	"time"

	"github.com/smartbridge/smartbridge/core/domain"
)

// HistoryStore implements interfaces.HistoryStore in memory. Ids start at 1
// and restart after Clear.
type HistoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	nextID  int
	now     func() time.Time
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{nextID: 1, now: time.Now}
}

// Record stores entry as the newest item, assigning its id and timestamp.
func (h *HistoryStore) Record(entry domain.HistoryEntry) domain.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry.ID = h.nextID
	h.nextID++
	if entry.Timestamp.IsZero() {
		entry.Timestamp = h.now()
	}
	h.entries = slices.Insert(h.entries, 0, entry)
	return entry
}

// List returns a copy of all entries, newest first.
func (h *HistoryStore) List() []domain.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]domain.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *HistoryStore) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.nextID = 1
}

func (h *HistoryStore) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
