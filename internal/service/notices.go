package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"chemviz/internal/logger"
	"chemviz/internal/models"
	"chemviz/internal/repository"

	"github.com/google/uuid"
)

// NoticeFilter narrows the notice history by time range and kind.
type NoticeFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Kind string    // "", "UPLOAD_SUCCEEDED", "UPLOAD_FAILED", "REPORT_SAVED", ...
}

type NoticeService struct {
	repo repository.NoticeRepo
	log  *logger.Logger

	mu     sync.RWMutex
	latest *models.Notice
}

func NewNoticeService(repo repository.NoticeRepo, log *logger.Logger) *NoticeService {
	return &NoticeService{repo: repo, log: logger.OrNop(log)}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// Record makes n the latest notice and appends it to the log. A failed
// append is logged; the notice is still shown.
func (s *NoticeService) Record(ctx context.Context, kind, message string, meta any) models.Notice {
	n := models.Notice{
		ID:         uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Kind:       normalizeNoticeKind(kind),
		Message:    message,
		Metadata:   meta,
	}

	s.mu.Lock()
	s.latest = &n
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.Append(ctx, n); err != nil {
			s.log.Errorw("notice_append_failed", "kind", n.Kind, "err", err)
		}
	}
	s.log.Infow("notice", "kind", n.Kind, "message", n.Message)
	return n
}

// Latest returns the most recent notice of this process.
func (s *NoticeService) Latest() (models.Notice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return models.Notice{}, false
	}
	return *s.latest, true
}

func (s *NoticeService) List(ctx context.Context, f NoticeFilter) ([]models.Notice, error) {
	from, to, kind, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, kind)
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeNoticeKind(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f NoticeFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}
	return from, to, normalizeNoticeKind(f.Kind), nil
}
