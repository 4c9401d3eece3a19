package service

import (
	"context"
	"sync"

	"chemviz/internal/logger"
	"chemviz/internal/models"
)

// ProjectorService fetches analytics for a history entry and keeps the
// projected result of the most recently initiated selection.
type ProjectorService struct {
	backend Backend
	session *SessionService
	log     *logger.Logger

	mu     sync.RWMutex
	gen    uint64 // generation of the latest Select
	active *models.ActiveAnalytics
}

func NewProjectorService(backend Backend, session *SessionService, log *logger.Logger) *ProjectorService {
	return &ProjectorService{backend: backend, session: session, log: logger.OrNop(log)}
}

// Select loads the analytics of entry id. If another Select starts before
// this one resolves, the result is discarded and ErrSuperseded is returned.
// On failure the previous active result stays in place.
func (s *ProjectorService) Select(ctx context.Context, id int64) (models.ActiveAnalytics, error) {
	token, err := s.session.require()
	if err != nil {
		return models.ActiveAnalytics{}, err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	res, err := s.backend.Analytics(ctx, token, id)
	if err != nil {
		s.log.Errorw("analytics_fetch_failed", "id", id, "err", err)
		s.session.rejected(ctx, err)
		return models.ActiveAnalytics{}, err
	}
	proj, err := Project(res)
	if err != nil {
		s.log.Errorw("analytics_projection_failed", "id", id, "err", err)
		return models.ActiveAnalytics{}, err
	}

	next := &models.ActiveAnalytics{
		EntryID:    id,
		Filename:   res.Filename(),
		Result:     res,
		Projection: proj,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.log.Debugw("analytics_superseded", "id", id, "generation", gen, "latest", s.gen)
		return models.ActiveAnalytics{}, ErrSuperseded
	}
	s.active = next
	return *next, nil
}

func (s *ProjectorService) Active() (models.ActiveAnalytics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return models.ActiveAnalytics{}, false
	}
	return *s.active, true
}

// Reset drops the active result and invalidates in-flight selections.
func (s *ProjectorService) Reset() {
	s.mu.Lock()
	s.gen++
	s.active = nil
	s.mu.Unlock()
}
