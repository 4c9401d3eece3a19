package service

import (
	"context"
	"sync"

	"chemviz/internal/logger"
	"chemviz/internal/models"
)

const defaultHistoryLimit = 5

// HistoryService caches the most recent uploads, most recent first. The
// slice is replaced wholesale by the most recently started refresh.
type HistoryService struct {
	backend Backend
	session *SessionService
	limit   int
	log     *logger.Logger

	mu      sync.RWMutex
	gen     uint64 // generation of the latest Refresh or Reset
	entries []models.HistoryEntry
}

func NewHistoryService(backend Backend, session *SessionService, limit int, log *logger.Logger) *HistoryService {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &HistoryService{backend: backend, session: session, limit: limit, log: logger.OrNop(log)}
}

// Refresh refetches the history. On failure the previous entries are kept
// and the error is returned for logging only. A response that arrives after
// a newer Refresh or Reset started is dropped.
func (s *HistoryService) Refresh(ctx context.Context) error {
	token, err := s.session.require()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	entries, err := s.backend.ListFiles(ctx, token)
	if err != nil {
		s.log.Errorw("history_refresh_failed", "err", err)
		s.session.rejected(ctx, err)
		return err
	}
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	fresh := make([]models.HistoryEntry, len(entries))
	copy(fresh, entries)

	// a logout during the request wins
	if !s.session.Authenticated() {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// the newer refresh owns the cache
		s.log.Debugw("history_refresh_superseded", "generation", gen, "latest", s.gen)
		return nil
	}
	s.entries = fresh
	s.log.Debugw("history_refreshed", "count", len(fresh))
	return nil
}

// List returns a copy of the cached entries.
func (s *HistoryService) List() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *HistoryService) Find(id int64) (models.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.HistoryEntry{}, false
}

// Reset empties the cache and invalidates in-flight refreshes.
func (s *HistoryService) Reset() {
	s.mu.Lock()
	s.gen++
	s.entries = nil
	s.mu.Unlock()
}
