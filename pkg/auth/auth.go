// Package auth manages admin sessions. Identity itself is a single shared
// admin credential; what the package really guards is the session window:
// a login is good for one hour past its last authorized use, enforced here
// rather than by any external provider.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/drezzup/storefront/pkg/repository"
	"github.com/google/uuid"
)

var (
	ErrBadCredentials = errors.New("invalid password")
	ErrSessionExpired = errors.New("session expired")
)

type Manager struct {
	sessions *repository.Sessions
	password string
}

func NewManager(sessions *repository.Sessions, adminPassword string) *Manager {
	return &Manager{sessions: sessions, password: adminPassword}
}

// Login checks the admin password and opens a fresh session, returning its
// bearer token.
func (m *Manager) Login(ctx context.Context, password string) (string, error) {
	if m.password == "" {
		return "", fmt.Errorf("admin password is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", ErrBadCredentials
	}

	token := uuid.NewString()
	if err := m.sessions.Put(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

// Verify checks a bearer token against the session store. A hit slides the
// expiry window forward; a miss means the session lapsed or never existed.
func (m *Manager) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrSessionExpired
	}
	ok, err := m.sessions.Check(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return ErrSessionExpired
	}
	return nil
}

func (m *Manager) Logout(ctx context.Context, token string) error {
	return m.sessions.Drop(ctx, token)
}
