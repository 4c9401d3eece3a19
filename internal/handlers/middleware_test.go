package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chemviz/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.sessionMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSessionMiddleware(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		wantCode      int
		wantErr       string
	}{
		{name: "no session", authenticated: false, wantCode: http.StatusUnauthorized, wantErr: errNotAuthenticated},
		{name: "active session", authenticated: true, wantCode: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &service.Service{Session: &mockSession{authenticated: tc.authenticated}}
			r := newMiddlewareOnlyRouter(s)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secure", nil))

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.wantErr {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.wantErr)
			}
		})
	}
}

func TestAPIRoutes_GatedOnSession(t *testing.T) {
	s, sess := authedServices()
	sess.authenticated = false
	r := newTestRouter(s)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/view"},
		{http.MethodGet, "/api/v1/history"},
		{http.MethodPost, "/api/v1/history/refresh"},
		{http.MethodPost, "/api/v1/uploads/select"},
		{http.MethodPost, "/api/v1/uploads/submit"},
		{http.MethodPost, "/api/v1/analytics/1/select"},
		{http.MethodGet, "/api/v1/analytics/active"},
		{http.MethodGet, "/api/v1/reports/1"},
		{http.MethodGet, "/api/v1/reports/active"},
		{http.MethodGet, "/api/v1/notices"},
		{http.MethodGet, "/api/v1/ws"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: got %d, want 401", route.method, route.path, w.Code)
		}
	}
}
