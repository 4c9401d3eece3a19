package service

import (
	"context"
	"errors"
	"io"
	"time"

	"chemviz/internal/logger"
	"chemviz/internal/models"
	"chemviz/internal/repository"

	"github.com/spf13/afero"
)

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrNoFileSelected    = errors.New("no file selected")
	ErrSuperseded        = errors.New("superseded by a newer selection")
	ErrNoActiveAnalytics = errors.New("no analytics result is active")
	ErrEmptyCredential   = errors.New("credential is empty")
	ErrEntryNotFound     = errors.New("history entry not found")
)

// Backend is the remote analysis service. *api.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, username, password string) (string, error)
	ListFiles(ctx context.Context, token string) ([]models.HistoryEntry, error)
	UploadFile(ctx context.Context, token, name string, content io.Reader) (models.HistoryEntry, error)
	Analytics(ctx context.Context, token string, id int64) (models.AnalyticsResult, error)
	Report(ctx context.Context, token string, id int64) ([]byte, error)
}

// Session owns the credential and gates every other component.
type Session interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
	SignIn(ctx context.Context, username, password string) error
	Authenticated() bool
	Claims() (*SessionClaims, bool)
	OnTransition(fn TransitionListener)
}

// History caches the most recent uploads.
type History interface {
	Refresh(ctx context.Context) error
	List() []models.HistoryEntry
	Find(id int64) (models.HistoryEntry, bool)
}

// Uploads holds the pending file and submits it.
type Uploads interface {
	SelectFile(ref models.FileRef) error
	Pending() (models.FileRef, bool)
	CanSubmit() bool
	Submit(ctx context.Context) (models.HistoryEntry, error)
}

// Projector fetches analytics and keeps the active result.
type Projector interface {
	Select(ctx context.Context, id int64) (models.ActiveAnalytics, error)
	Active() (models.ActiveAnalytics, bool)
}

// Reports retrieves PDF reports and hands them to a Saver.
type Reports interface {
	Download(ctx context.Context, dst Saver, id int64, filename string) (string, error)
	DownloadActive(ctx context.Context, dst Saver) (string, error)
}

// Notices records user-visible acknowledgments.
type Notices interface {
	Record(ctx context.Context, kind, message string, meta any) models.Notice
	Latest() (models.Notice, bool)
	List(ctx context.Context, f NoticeFilter) ([]models.Notice, error)
}

// Poller refreshes state in the background until ctx is canceled.
type Poller interface {
	Run(ctx context.Context, tick time.Duration)
}

// Dashboard exposes the read-only combined view.
type Dashboard interface {
	Snapshot() models.ViewState
}

type Service struct {
	Session
	History
	Uploads
	Projector
	Reports
	Notices
	Dashboard
	Poller
}

// Options tunes the services beyond their repository and backend.
type Options struct {
	HistoryLimit         int
	LogoutOnUnauthorized bool
	// ManualHistoryRefresh skips the history fetch on login and restore;
	// callers that need history call Refresh themselves.
	ManualHistoryRefresh bool
	Fs                   afero.Fs // source of upload files; OS filesystem when nil
}

// NewService wires the repositories and backend into concrete services and
// registers the session transition that starts and resets the other state.
func NewService(repos *repository.Repository, backend Backend, opts Options, log *logger.Logger) *Service {
	log = logger.OrNop(log)
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	notices := NewNoticeService(repos.Notices, log)
	session := NewSessionService(repos.Credentials, backend, notices, opts.LogoutOnUnauthorized, log)
	history := NewHistoryService(backend, session, opts.HistoryLimit, log)
	uploads := NewUploadService(backend, session, history, notices, opts.Fs, log)
	projector := NewProjectorService(backend, session, log)
	reports := NewReportService(backend, session, projector, notices, log)

	session.OnTransition(func(ctx context.Context, authenticated bool) {
		if authenticated {
			if !opts.ManualHistoryRefresh {
				// failure is already logged and the cache stays empty
				_ = history.Refresh(ctx)
			}
			return
		}
		history.Reset()
		uploads.Reset()
		projector.Reset()
	})

	return &Service{
		Session:   session,
		History:   history,
		Uploads:   uploads,
		Projector: projector,
		Reports:   reports,
		Notices:   notices,
		Dashboard: NewDashboardService(session, history, uploads, projector, notices),
		Poller:    NewHistoryPoller(session, history, log),
	}
}
