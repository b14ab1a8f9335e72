package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coachpad/coachpad/internal/auth"
)

// AuthService groups the /auth endpoint calls.
type AuthService struct {
	c *Client
}

// Auth returns the authentication endpoint family.
func (c *Client) Auth() *AuthService {
	return &AuthService{c: c}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of a register call.
type RegisterRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Role      *string `json:"role,omitempty"`
	Club      *string `json:"club,omitempty"`
	TeamID    *int64  `json:"team_id,omitempty"`
}

type userEnvelope struct {
	Message string        `json:"message"`
	User    *auth.Profile `json:"user"`
}

// Login exchanges credentials for a token-bearing profile. It does not touch
// the stored session; persisting the result is the session manager's call.
// Rejected credentials come back as a RemoteError, never as ErrAuthExpired.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.Profile, error) {
	var env userEnvelope
	err := s.c.doUnauth(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &env)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("login response carried no user")
	}
	return env.User, nil
}

// Register creates an account and returns the new profile with its token.
func (s *AuthService) Register(ctx context.Context, params RegisterRequest) (*auth.Profile, error) {
	var env userEnvelope
	if err := s.c.doUnauth(ctx, http.MethodPost, "/auth/register", params, &env); err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, fmt.Errorf("register response carried no user")
	}
	return env.User, nil
}

// Profile fetches the caller's profile.
func (s *AuthService) Profile(ctx context.Context) (*auth.Profile, error) {
	var env userEnvelope
	if err := s.c.get(ctx, "/auth/profile", &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

// ProfileWithTeam fetches the caller's profile together with their team.
func (s *AuthService) ProfileWithTeam(ctx context.Context) (*auth.ProfileWithTeam, error) {
	var env struct {
		Message string                `json:"message"`
		User    *auth.ProfileWithTeam `json:"user"`
	}
	if err := s.c.get(ctx, "/auth/profile/with-team", &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

// VerifyToken asks the server whether the stored token is still good and
// returns the profile it maps to.
func (s *AuthService) VerifyToken(ctx context.Context) (*auth.Profile, error) {
	var env userEnvelope
	if err := s.c.get(ctx, "/auth/verify-token", &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

// Logout tells the server to close the session. The local session is the
// session manager's to clear.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.post(ctx, "/auth/logout", nil, nil)
}
