package service

import (
	"context"
	"testing"

	"chemviz/internal/models"
	"chemviz/internal/repository"
)

func TestNewService_TransitionsDriveTheView(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		LoginFn: func(string, string) (string, error) { return "tok123", nil },
		ListFilesFn: func(string) ([]models.HistoryEntry, error) {
			return []models.HistoryEntry{{ID: 1, Filename: "batch1.csv"}}, nil
		},
		AnalyticsFn: func(context.Context, string, int64) (models.AnalyticsResult, error) {
			return aggregateFor("batch1.csv"), nil
		},
	}
	creds := &fakeCredentialRepo{}
	repos := &repository.Repository{Credentials: creds, Notices: &fakeNoticeRepo{}}
	svc := NewService(repos, backend, Options{}, nil)
	ctx := context.Background()

	v := svc.Snapshot()
	if v.Authenticated || len(v.History) != 0 || v.Active != nil {
		t.Fatalf("fresh view=%+v", v)
	}

	if err := svc.SignIn(ctx, "alice", "x"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := svc.Uploads.SelectFile(models.FileRef{Path: "/tmp/next.csv"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Select(ctx, 1); err != nil {
		t.Fatal(err)
	}

	v = svc.Snapshot()
	if !v.Authenticated || len(v.History) != 1 || v.History[0].Filename != "batch1.csv" {
		t.Fatalf("history not refreshed on login: %+v", v)
	}
	if !v.CanSubmit || v.PendingFile != "next.csv" {
		t.Fatalf("pending=%q can=%v", v.PendingFile, v.CanSubmit)
	}
	if v.Active == nil || v.Active.EntryID != 1 {
		t.Fatalf("active=%+v", v.Active)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	v = svc.Snapshot()
	if v.Authenticated || len(v.History) != 0 || v.Active != nil || v.CanSubmit {
		t.Fatalf("logout must reset the view: %+v", v)
	}
	if svc.History.List() == nil || len(svc.History.List()) != 0 {
		t.Fatalf("history cache not reset")
	}
	if creds.value() != "" {
		t.Fatalf("credential still stored")
	}
}

func TestNewService_ManualHistoryRefreshSkipsFetchOnRestore(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		ListFilesFn: func(string) ([]models.HistoryEntry, error) {
			return []models.HistoryEntry{{ID: 1, Filename: "batch1.csv"}}, nil
		},
	}
	creds := &fakeCredentialRepo{stored: "tok123"}
	repos := &repository.Repository{Credentials: creds, Notices: &fakeNoticeRepo{}}
	svc := NewService(repos, backend, Options{ManualHistoryRefresh: true}, nil)
	ctx := context.Background()

	ok, err := svc.Restore(ctx)
	if err != nil || !ok {
		t.Fatalf("Restore=%v, %v", ok, err)
	}
	if n := backend.callCount("list"); n != 0 {
		t.Fatalf("restore fetched history %d times", n)
	}
	if len(svc.History.List()) != 0 {
		t.Fatalf("history must stay empty until refreshed")
	}

	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if n := backend.callCount("list"); n != 1 {
		t.Fatalf("list calls=%d want 1", n)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if len(svc.History.List()) != 0 {
		t.Fatalf("logout must still reset history")
	}
}

func TestDashboardService_UnauthenticatedShowsLastNotice(t *testing.T) {
	t.Parallel()

	notices := NewNoticeService(&fakeNoticeRepo{}, nil)
	backend := &fakeBackend{}
	session, _ := newTestSession(backend, notices, "")
	history := NewHistoryService(backend, session, 5, nil)
	d := NewDashboardService(session, history, NewUploadService(backend, session, history, notices, nil, nil),
		NewProjectorService(backend, session, nil), notices)

	notices.Record(context.Background(), models.NoticeLoginFailed, "Login failed", nil)
	v := d.Snapshot()
	if v.Authenticated || v.LastNotice == nil || v.LastNotice.Kind != models.NoticeLoginFailed {
		t.Fatalf("view=%+v", v)
	}
	if v.History == nil {
		t.Fatalf("history must encode as [] not null")
	}
}
