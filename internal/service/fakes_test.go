package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"chemviz/internal/models"
)

// fakeCredentialRepo keeps the credential in memory.
type fakeCredentialRepo struct {
	mu        sync.Mutex
	stored    string
	saveErr   error
	loadErr   error
	deleteErr error
}

func (f *fakeCredentialRepo) Save(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = token
	return nil
}

func (f *fakeCredentialRepo) Load(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored, f.loadErr
}

func (f *fakeCredentialRepo) Delete(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.stored = ""
	return nil
}

func (f *fakeCredentialRepo) value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stored
}

// fakeNoticeRepo captures appended notices and the last List query.
type fakeNoticeRepo struct {
	mu        sync.Mutex
	appended  []models.Notice
	appendErr error

	gotFrom time.Time
	gotTo   time.Time
	gotKind string
	listOut []models.Notice
	listErr error
	calls   int
}

func (f *fakeNoticeRepo) Append(_ context.Context, n models.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, n)
	return f.appendErr
}

func (f *fakeNoticeRepo) List(_ context.Context, from, to time.Time, kind string) ([]models.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotFrom, f.gotTo, f.gotKind = from, to, kind
	return f.listOut, f.listErr
}

func (f *fakeNoticeRepo) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, n := range f.appended {
		out = append(out, n.Kind)
	}
	return out
}

// fakeBackend is a programmable Backend. Nil funcs fail the call.
type fakeBackend struct {
	LoginFn      func(username, password string) (string, error)
	ListFilesFn  func(token string) ([]models.HistoryEntry, error)
	UploadFileFn func(token, name string, content []byte) (models.HistoryEntry, error)
	AnalyticsFn  func(ctx context.Context, token string, id int64) (models.AnalyticsResult, error)
	ReportFn     func(token string, id int64) ([]byte, error)

	mu         sync.Mutex
	calls      []string
	lastUpload string
}

var errNotProgrammed = errors.New("fake backend: call not programmed")

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBackend) Login(_ context.Context, username, password string) (string, error) {
	f.record("login")
	if f.LoginFn == nil {
		return "", errNotProgrammed
	}
	return f.LoginFn(username, password)
}

func (f *fakeBackend) ListFiles(_ context.Context, token string) ([]models.HistoryEntry, error) {
	f.record("list")
	if f.ListFilesFn == nil {
		return nil, errNotProgrammed
	}
	return f.ListFilesFn(token)
}

func (f *fakeBackend) UploadFile(_ context.Context, token, name string, content io.Reader) (models.HistoryEntry, error) {
	f.record("upload")
	data, err := io.ReadAll(content)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	f.mu.Lock()
	f.lastUpload = string(data)
	f.mu.Unlock()
	if f.UploadFileFn == nil {
		return models.HistoryEntry{}, errNotProgrammed
	}
	return f.UploadFileFn(token, name, data)
}

func (f *fakeBackend) Analytics(ctx context.Context, token string, id int64) (models.AnalyticsResult, error) {
	f.record("analytics")
	if f.AnalyticsFn == nil {
		return models.AnalyticsResult{}, errNotProgrammed
	}
	return f.AnalyticsFn(ctx, token, id)
}

func (f *fakeBackend) Report(_ context.Context, token string, id int64) ([]byte, error) {
	f.record("report")
	if f.ReportFn == nil {
		return nil, errNotProgrammed
	}
	return f.ReportFn(token, id)
}

// fakeSaver records what it was handed.
type fakeSaver struct {
	name  string
	data  []byte
	err   error
	calls int
}

func (f *fakeSaver) Save(_ context.Context, name string, data []byte) (string, error) {
	f.calls++
	f.name = name
	f.data = append([]byte(nil), data...)
	if f.err != nil {
		return "", f.err
	}
	return "saved/" + name, nil
}

// newTestSession returns a logged-in session backed by in-memory fakes.
func newTestSession(backend Backend, notices Notices, token string) (*SessionService, *fakeCredentialRepo) {
	repo := &fakeCredentialRepo{}
	s := NewSessionService(repo, backend, notices, false, nil)
	if token != "" {
		_ = s.Login(context.Background(), token)
	}
	return s, repo
}
