package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coachpad/coachpad/internal/auth"
	"github.com/coachpad/coachpad/internal/client"
)

// Manager drives the session lifecycle against the API: login, logout, and
// the startup bootstrap. It keeps the store and the server's view of the
// session in step and caches the current profile in memory.
type Manager struct {
	api   *client.Client
	store *Store

	current *auth.Profile
}

// NewManager creates a Manager on top of an API client and its store. The
// store must be the same one the client reads credentials from.
func NewManager(api *client.Client, store *Store) *Manager {
	return &Manager{api: api, store: store}
}

// Login authenticates and persists the resulting session. A failed login
// leaves any existing session untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (*auth.Profile, error) {
	profile, err := m.api.Auth().Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if profile.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}

	// The cached snapshot never holds the token; the token has its own slot.
	snapshot := *profile
	snapshot.Token = ""
	if err := m.store.SetSession(ctx, profile.Token, &snapshot); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	m.current = &snapshot
	return profile, nil
}

// Logout closes the session on the server, best effort, and always clears
// the local state. A dead backend must not leave credentials on the device,
// so a remote failure is logged and swallowed; only a failed local clear is
// an error.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Auth().Logout(ctx); err != nil && !errors.Is(err, client.ErrAuthExpired) {
		slog.Warn("remote logout failed, clearing local session anyway", "error", err)
	}

	m.current = nil
	return m.store.Clear(ctx)
}

// Bootstrap restores the session at startup. With no stored token it
// reports unauthenticated without touching the network. A stored token is
// verified against the server: a rejection clears the session, and a
// network failure also reports unauthenticated. The token itself survives a
// network failure so a later Bootstrap can retry the verification.
func (m *Manager) Bootstrap(ctx context.Context) (bool, error) {
	token, err := m.store.Token(ctx)
	if err != nil {
		return false, err
	}
	if token == "" {
		m.current = nil
		return false, nil
	}

	profile, err := m.api.Auth().VerifyToken(ctx)
	if err != nil {
		if errors.Is(err, client.ErrAuthExpired) {
			// Wrapper already cleared the store.
			m.current = nil
			return false, nil
		}
		// Unverified is unauthenticated, offline included. The token stays
		// stored for the next attempt.
		m.current = nil
		return false, err
	}

	if profile != nil {
		// Refresh the cached snapshot; roles and team may have changed.
		if err := m.store.SetSession(ctx, token, profile); err != nil {
			return false, fmt.Errorf("refresh session: %w", err)
		}
		m.current = profile
	} else {
		m.current, _ = m.store.Profile(ctx)
	}
	return m.current != nil, nil
}

// IsAuthenticated reports whether a session is active: a verified profile
// backed by a stored token. The request wrapper wipes the token on a 401,
// so a session rejected mid-flight flips to unauthenticated here even
// though the in-memory profile cache is still warm.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	if m.current == nil {
		return false
	}
	token, err := m.store.Token(ctx)
	return err == nil && token != ""
}

// IsAdmin reports whether the current user holds admin rights.
func (m *Manager) IsAdmin() bool {
	return m.current != nil && m.current.IsAdmin
}

// TeamID returns the current user's team id, or 0 when the user is not
// bound to a team or no session is active.
func (m *Manager) TeamID() int64 {
	if m.current == nil || m.current.TeamID == nil {
		return 0
	}
	return *m.current.TeamID
}

// CurrentUser returns the cached profile snapshot, or nil.
func (m *Manager) CurrentUser() *auth.Profile {
	return m.current
}
