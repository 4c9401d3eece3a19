package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"chemviz/internal/api"
	"chemviz/internal/models"
	"chemviz/internal/service"
)

func TestDashboardHandlers_ViewAndHistory(t *testing.T) {
	s, _ := authedServices()
	hist := &mockHistory{entries: []models.HistoryEntry{{ID: 2, Filename: "b.csv"}, {ID: 1, Filename: "a.csv"}}}
	s.History = hist
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/view", nil))
	var v models.ViewState
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil || !v.Authenticated {
		t.Fatalf("view status=%d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/history/refresh", nil))
	var out struct {
		Count   int                   `json:"count"`
		Entries []models.HistoryEntry `json:"entries"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if w.Code != http.StatusOK || out.Count != 2 || out.Entries[0].Filename != "b.csv" || hist.refreshes != 1 {
		t.Fatalf("refresh status=%d body=%s", w.Code, w.Body.String())
	}

	hist.refreshErr = errors.New("backend down")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/history/refresh", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on refresh failure, got %d", w.Code)
	}
}

func TestDashboardHandlers_UploadFlow(t *testing.T) {
	s, _ := authedServices()
	up := &mockUploads{entry: models.HistoryEntry{ID: 3, Filename: "batch1.csv"}}
	s.Uploads = up
	r := newTestRouter(s)

	// submit with nothing selected
	up.submitErr = service.ErrNoFileSelected
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/uploads/submit", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without selection, got %d", w.Code)
	}
	up.submitErr = nil

	// select requires a path
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/select", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing path, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/uploads/select", bytes.NewBufferString(`{"path":"/data/batch1.csv","name":"batch1.csv"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !up.CanSubmit() {
		t.Fatalf("select status=%d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/uploads/submit", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status=%d body=%s", w.Code, w.Body.String())
	}
	if up.CanSubmit() {
		t.Fatalf("pending must be cleared")
	}
}

func TestDashboardHandlers_Analytics(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		err      error
		wantCode int
	}{
		{name: "ok", path: "/api/v1/analytics/7/select", wantCode: http.StatusOK},
		{name: "bad id", path: "/api/v1/analytics/abc/select", wantCode: http.StatusBadRequest},
		{name: "superseded", path: "/api/v1/analytics/7/select", err: service.ErrSuperseded, wantCode: http.StatusConflict},
		{name: "unknown shape", path: "/api/v1/analytics/7/select", err: api.ErrUnrecognizedShape, wantCode: http.StatusBadGateway},
		{name: "credential rejected", path: "/api/v1/analytics/7/select", err: &api.StatusError{Op: "get analytics", StatusCode: 401}, wantCode: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := authedServices()
			proj := &mockProjector{selectErr: tc.err}
			s.Projector = proj
			r := newTestRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tc.path, nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d, body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusOK && proj.lastID != 7 {
				t.Fatalf("Select got id %d", proj.lastID)
			}
		})
	}
}

func TestDashboardHandlers_ActiveAnalytics(t *testing.T) {
	s, _ := authedServices()
	proj := &mockProjector{}
	s.Projector = proj
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/active", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with nothing active, got %d", w.Code)
	}

	proj.active = &models.ActiveAnalytics{EntryID: 4, Filename: "d.csv"}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/active", nil))
	var a models.ActiveAnalytics
	_ = json.Unmarshal(w.Body.Bytes(), &a)
	if w.Code != http.StatusOK || a.EntryID != 4 {
		t.Fatalf("active status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestDashboardHandlers_Reports(t *testing.T) {
	s, _ := authedServices()
	rep := &mockReports{data: []byte("%PDF-1.4")}
	s.Reports = rep
	s.History = &mockHistory{entries: []models.HistoryEntry{{ID: 5, Filename: "batch1.csv"}}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/5", nil))
	if w.Code != http.StatusOK || w.Body.String() != "%PDF-1.4" {
		t.Fatalf("report status=%d body=%q", w.Code, w.Body.String())
	}
	if got := attachmentName(t, w); got != "report_batch1.csv.pdf" {
		t.Fatalf("attachment filename=%q", got)
	}
	if rep.lastID != 5 || rep.lastFilename != "batch1.csv" {
		t.Fatalf("Download got id=%d filename=%q", rep.lastID, rep.lastFilename)
	}

	// unknown id without filename
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/99", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown entry, got %d", w.Code)
	}

	// explicit filename bypasses the history lookup
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/99?filename=old.csv", nil))
	if w.Code != http.StatusOK || rep.lastFilename != "old.csv" {
		t.Fatalf("status=%d filename=%q", w.Code, rep.lastFilename)
	}

	// active
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/active", nil))
	if w.Code != http.StatusOK || rep.activeCalls != 1 {
		t.Fatalf("active status=%d calls=%d", w.Code, rep.activeCalls)
	}

	// failed download writes no attachment
	rep.err = errors.New("500 from backend")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/5", nil))
	if w.Code != http.StatusBadGateway || w.Header().Get("Content-Disposition") != "" {
		t.Fatalf("status=%d disposition=%q", w.Code, w.Header().Get("Content-Disposition"))
	}
}

func attachmentName(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	disp, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	if err != nil || disp != "attachment" {
		t.Fatalf("Content-Disposition=%q: %v", w.Header().Get("Content-Disposition"), err)
	}
	return params["filename"]
}

func TestDashboardHandlers_ReportNonASCIIFilename(t *testing.T) {
	s, _ := authedServices()
	s.Reports = &mockReports{data: []byte("%PDF-1.4")}
	s.History = &mockHistory{entries: []models.HistoryEntry{{ID: 8, Filename: "données \"Q3\".csv"}}}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/8", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := attachmentName(t, w); got != `report_données "Q3".csv.pdf` {
		t.Fatalf("attachment filename=%q", got)
	}
}
