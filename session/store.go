// Package session holds the operator's single login: the bearer token and
// the account it belongs to. It is the only source of truth for the token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/models"

	"github.com/golang-jwt/jwt/v5"
)

var errNoToken = errors.New("login response carried no token")

// Authenticator exchanges credentials for a token. *apiclient.Client
// implements it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

// Snapshot is the persisted part of the session.
type Snapshot struct {
	Token string
	User  models.User
}

// Persister keeps the session across restarts.
type Persister interface {
	Load() (*Snapshot, error)
	Save(Snapshot) error
	Clear() error
}

type Store struct {
	auth   Authenticator
	repo   Persister
	logger *slog.Logger

	mu    sync.RWMutex
	token string
	user  *models.User
	err   string
}

// NewStore restores any persisted session. repo may be nil for an
// in-memory store.
func NewStore(auth Authenticator, repo Persister, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{auth: auth, repo: repo, logger: logger}
	if repo == nil {
		return s, nil
	}
	snap, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if snap != nil && snap.Token != "" {
		u := snap.User
		s.token, s.user = snap.Token, &u
		logger.Info("session restored", "email", u.Email)
	}
	return s, nil
}

// Login posts the credentials. On success user and token are replaced
// together and persisted; on failure Error is set and nothing else changes.
func (s *Store) Login(ctx context.Context, email, password string) error {
	res, err := s.auth.Login(ctx, email, password)
	if err == nil && (res == nil || res.Token == "") {
		err = errNoToken
	}
	if err != nil {
		s.fail(apiclient.MessageOr(err, "Login failed"))
		s.logger.Warn("login failed", "email", email, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo != nil {
		if err := s.repo.Save(Snapshot{Token: res.Token, User: res.User}); err != nil {
			s.err = "Could not save session"
			return fmt.Errorf("persist session: %w", err)
		}
	}
	u := res.User
	s.token, s.user, s.err = res.Token, &u, ""
	s.logger.Info("logged in", "email", u.Email)
	return nil
}

// Logout clears the session unconditionally.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user, s.err = "", nil, ""
	if s.repo != nil {
		if err := s.repo.Clear(); err != nil {
			s.logger.Warn("clear persisted session", "error", err)
		}
	}
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
}

// Token implements apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the logged-in account, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Error is the message of the last failed login.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// ExpiresAt reads the exp claim without verifying the signature. The
// console never refreshes tokens; this is only shown to the operator.
func (s *Store) ExpiresAt() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
