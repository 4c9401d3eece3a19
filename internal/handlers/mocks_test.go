package handlers

import (
	"context"
	"time"

	"chemviz/internal/models"
	"chemviz/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSession struct {
	authenticated bool
	claims        *service.SessionClaims
	signInErr     error
	logoutErr     error

	lastUsername string
	lastPassword string
	logoutCalls  int
}

func (m *mockSession) Login(ctx context.Context, token string) error {
	m.authenticated = token != ""
	return nil
}
func (m *mockSession) Logout(ctx context.Context) error {
	m.logoutCalls++
	m.authenticated = false
	return m.logoutErr
}
func (m *mockSession) Restore(ctx context.Context) (bool, error) { return m.authenticated, nil }
func (m *mockSession) SignIn(ctx context.Context, username, password string) error {
	m.lastUsername = username
	m.lastPassword = password
	if m.signInErr != nil {
		return m.signInErr
	}
	m.authenticated = true
	return nil
}
func (m *mockSession) Authenticated() bool { return m.authenticated }
func (m *mockSession) Claims() (*service.SessionClaims, bool) {
	return m.claims, m.claims != nil
}
func (m *mockSession) OnTransition(fn service.TransitionListener) {}

type mockHistory struct {
	entries    []models.HistoryEntry
	refreshErr error
	refreshes  int
}

func (m *mockHistory) Refresh(ctx context.Context) error {
	m.refreshes++
	return m.refreshErr
}
func (m *mockHistory) List() []models.HistoryEntry {
	return append([]models.HistoryEntry{}, m.entries...)
}
func (m *mockHistory) Find(id int64) (models.HistoryEntry, bool) {
	for _, e := range m.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.HistoryEntry{}, false
}

type mockUploads struct {
	pending   *models.FileRef
	selectErr error
	entry     models.HistoryEntry
	submitErr error
	submits   int
}

func (m *mockUploads) SelectFile(ref models.FileRef) error {
	if m.selectErr != nil {
		return m.selectErr
	}
	m.pending = &ref
	return nil
}
func (m *mockUploads) Pending() (models.FileRef, bool) {
	if m.pending == nil {
		return models.FileRef{}, false
	}
	return *m.pending, true
}
func (m *mockUploads) CanSubmit() bool { return m.pending != nil }
func (m *mockUploads) Submit(ctx context.Context) (models.HistoryEntry, error) {
	m.submits++
	m.pending = nil
	return m.entry, m.submitErr
}

type mockProjector struct {
	active    *models.ActiveAnalytics
	selectErr error
	lastID    int64
}

func (m *mockProjector) Select(ctx context.Context, id int64) (models.ActiveAnalytics, error) {
	m.lastID = id
	if m.selectErr != nil {
		return models.ActiveAnalytics{}, m.selectErr
	}
	m.active = &models.ActiveAnalytics{EntryID: id, Filename: "batch1.csv"}
	return *m.active, nil
}
func (m *mockProjector) Active() (models.ActiveAnalytics, bool) {
	if m.active == nil {
		return models.ActiveAnalytics{}, false
	}
	return *m.active, true
}

type mockReports struct {
	data         []byte
	err          error
	lastID       int64
	lastFilename string
	activeCalls  int
}

func (m *mockReports) Download(ctx context.Context, dst service.Saver, id int64, filename string) (string, error) {
	m.lastID = id
	m.lastFilename = filename
	if m.err != nil {
		return "", m.err
	}
	return dst.Save(ctx, service.ReportName(filename), m.data)
}
func (m *mockReports) DownloadActive(ctx context.Context, dst service.Saver) (string, error) {
	m.activeCalls++
	if m.err != nil {
		return "", m.err
	}
	return dst.Save(ctx, service.ReportName("active.csv"), m.data)
}

type mockNotices struct {
	resp     []models.Notice
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastKind string
}

func (m *mockNotices) Record(ctx context.Context, kind, message string, meta any) models.Notice {
	return models.Notice{Kind: kind, Message: message, Metadata: meta}
}
func (m *mockNotices) Latest() (models.Notice, bool) { return models.Notice{}, false }
func (m *mockNotices) List(ctx context.Context, f service.NoticeFilter) ([]models.Notice, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastKind = f.Kind
	return m.resp, m.err
}

type mockDashboard struct {
	view models.ViewState
}

func (m *mockDashboard) Snapshot() models.ViewState { return m.view }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// authedServices returns a Service of mocks with an active session.
func authedServices() (*service.Service, *mockSession) {
	sess := &mockSession{authenticated: true}
	return &service.Service{
		Session:   sess,
		History:   &mockHistory{},
		Uploads:   &mockUploads{},
		Projector: &mockProjector{},
		Reports:   &mockReports{},
		Notices:   &mockNotices{},
		Dashboard: &mockDashboard{view: models.ViewState{Authenticated: true, History: []models.HistoryEntry{}}},
	}, sess
}
