package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"chemviz/internal/logger"
	"chemviz/internal/models"

	"github.com/spf13/afero"
)

// UploadService holds at most one pending file. Every submission attempt
// clears it, whatever the outcome.
type UploadService struct {
	backend Backend
	session *SessionService
	history History
	notices Notices
	fs      afero.Fs
	log     *logger.Logger

	mu      sync.Mutex
	pending *models.FileRef
}

func NewUploadService(backend Backend, session *SessionService, history History, notices Notices, fs afero.Fs, log *logger.Logger) *UploadService {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &UploadService{
		backend: backend,
		session: session,
		history: history,
		notices: notices,
		fs:      fs,
		log:     logger.OrNop(log),
	}
}

// SelectFile replaces the pending file. Name defaults to the base of Path.
func (s *UploadService) SelectFile(ref models.FileRef) error {
	ref.Path = strings.TrimSpace(ref.Path)
	if ref.Path == "" {
		return ErrNoFileSelected
	}
	if strings.TrimSpace(ref.Name) == "" {
		ref.Name = filepath.Base(ref.Path)
	}

	s.mu.Lock()
	s.pending = &ref
	s.mu.Unlock()
	return nil
}

func (s *UploadService) Pending() (models.FileRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return models.FileRef{}, false
	}
	return *s.pending, true
}

func (s *UploadService) CanSubmit() bool {
	_, ok := s.Pending()
	return ok
}

func (s *UploadService) Reset() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

// take removes and returns the pending file.
func (s *UploadService) take() (models.FileRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return models.FileRef{}, false
	}
	ref := *s.pending
	s.pending = nil
	return ref, true
}

// Submit uploads the pending file. On success the history is refreshed
// before the success notice is recorded.
func (s *UploadService) Submit(ctx context.Context) (models.HistoryEntry, error) {
	token, err := s.session.require()
	if err != nil {
		return models.HistoryEntry{}, err
	}
	ref, ok := s.take()
	if !ok {
		return models.HistoryEntry{}, ErrNoFileSelected
	}

	entry, err := s.upload(ctx, token, ref)
	if err != nil {
		s.log.Errorw("upload_failed", "file", ref.Name, "err", err)
		s.notices.Record(ctx, models.NoticeUploadFailed, "Upload failed: "+ref.Name, map[string]any{"file": ref.Name, "error": err.Error()})
		s.session.rejected(ctx, err)
		return models.HistoryEntry{}, err
	}

	if rerr := s.history.Refresh(ctx); rerr != nil {
		s.log.Errorw("history_refresh_after_upload_failed", "err", rerr)
	}
	s.log.Infow("upload_succeeded", "file", entry.Filename, "id", entry.ID)
	s.notices.Record(ctx, models.NoticeUploadSucceeded, "Upload successful: "+entry.Filename, map[string]any{"id": entry.ID, "file": entry.Filename})
	return entry, nil
}

func (s *UploadService) upload(ctx context.Context, token string, ref models.FileRef) (models.HistoryEntry, error) {
	f, err := s.fs.Open(ref.Path)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("open %s: %w", ref.Path, err)
	}
	defer f.Close()

	name := ref.Name
	var content io.Reader = f
	if isWorkbook(name) {
		data, err := workbookToCSV(f)
		if err != nil {
			return models.HistoryEntry{}, fmt.Errorf("convert %s: %w", name, err)
		}
		name = csvName(name)
		content = bytes.NewReader(data)
	}

	entry, err := s.backend.UploadFile(ctx, token, name, content)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	if entry.Filename == "" {
		entry.Filename = name
	}
	return entry, nil
}
