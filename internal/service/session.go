package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"chemviz/internal/api"
	"chemviz/internal/logger"
	"chemviz/internal/models"
	"chemviz/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// TransitionListener observes authenticated/unauthenticated transitions.
type TransitionListener func(ctx context.Context, authenticated bool)

// SessionClaims are the readable claims of a JWT-shaped credential.
type SessionClaims struct {
	Subject   string    `json:"subject,omitempty"`
	IssuedAt  time.Time `json:"issued_at,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// SessionService holds the credential in memory and mirrors it to the
// credential repository. Presence of a non-empty credential is the whole
// authenticated state.
type SessionService struct {
	repo    repository.CredentialRepo
	backend Backend
	notices Notices
	log     *logger.Logger

	logoutOnUnauthorized bool

	mu        sync.RWMutex
	token     string
	listeners []TransitionListener
}

func NewSessionService(repo repository.CredentialRepo, backend Backend, notices Notices, logoutOnUnauthorized bool, log *logger.Logger) *SessionService {
	return &SessionService{
		repo:                 repo,
		backend:              backend,
		notices:              notices,
		logoutOnUnauthorized: logoutOnUnauthorized,
		log:                  logger.OrNop(log),
	}
}

// OnTransition registers fn. Listeners run synchronously after the state
// change, outside the session lock.
func (s *SessionService) OnTransition(fn TransitionListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *SessionService) fire(ctx context.Context, authenticated bool) {
	s.mu.RLock()
	ls := append([]TransitionListener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, fn := range ls {
		fn(ctx, authenticated)
	}
}

// Login persists token and then makes it the active credential.
func (s *SessionService) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyCredential
	}
	if err := s.repo.Save(ctx, token); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.log.Infow("session_started")
	s.fire(ctx, true)
	return nil
}

// Logout clears the credential from memory and storage. Memory is cleared
// even if the storage delete fails.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	err := s.repo.Delete(ctx)
	if err != nil {
		s.log.Errorw("credential_delete_failed", "err", err)
		err = fmt.Errorf("delete credential: %w", err)
	}

	s.log.Infow("session_ended")
	s.fire(ctx, false)
	return err
}

// Restore loads a persisted credential at startup. The token is not
// validated against the backend.
func (s *SessionService) Restore(ctx context.Context) (bool, error) {
	token, err := s.repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load credential: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.log.Infow("session_restored")
	s.fire(ctx, true)
	return true, nil
}

// SignIn exchanges username and password for a credential and logs in with
// it. A rejected attempt leaves the session unchanged.
func (s *SessionService) SignIn(ctx context.Context, username, password string) error {
	token, err := s.backend.Login(ctx, username, password)
	if err != nil {
		s.log.Infow("login_failed", "username", username, "err", err)
		if errors.Is(err, api.ErrAuthentication) && s.notices != nil {
			s.notices.Record(ctx, models.NoticeLoginFailed, "Login failed: invalid username or password", map[string]any{"username": username})
		}
		return err
	}
	return s.Login(ctx, token)
}

func (s *SessionService) Authenticated() bool {
	return s.Token() != ""
}

// Token returns the active credential, "" when unauthenticated.
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// require returns the credential or ErrNotAuthenticated.
func (s *SessionService) require() (string, error) {
	t := s.Token()
	if t == "" {
		return "", ErrNotAuthenticated
	}
	return t, nil
}

// Claims reads the credential as an unverified JWT. Opaque tokens have no
// claims.
func (s *SessionService) Claims() (*SessionClaims, bool) {
	token := s.Token()
	if token == "" {
		return nil, false
	}
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return nil, false
	}
	c := &SessionClaims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.UTC()
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.UTC()
	}
	return c, true
}

// rejected applies the unauthorized policy to err. With
// logoutOnUnauthorized set, a 401/403 ends the session. It must be called
// without any service lock held since it fires the transition listeners.
func (s *SessionService) rejected(ctx context.Context, err error) {
	if !s.logoutOnUnauthorized || !errors.Is(err, api.ErrUnauthorized) || !s.Authenticated() {
		return
	}
	s.log.Infow("session_expired", "err", err)
	if lerr := s.Logout(ctx); lerr != nil {
		s.log.Errorw("session_expire_logout_failed", "err", lerr)
	}
	if s.notices != nil {
		s.notices.Record(ctx, models.NoticeSessionExpired, "Session expired, please log in again", nil)
	}
}
