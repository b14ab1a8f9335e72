package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/coachpad/coachpad/internal/catalog"
)

// ErrInvalidPassword is returned when the password does not match.
var ErrInvalidPassword = errors.New("invalid password")

// Service provides authentication operations.
type Service struct {
	users      UserRepository
	catalog    catalog.Repository
	tokens     *TokenService
	bcryptCost int
}

// NewService creates a new auth Service.
func NewService(users UserRepository, cat catalog.Repository, tokens *TokenService, bcryptCost int) *Service {
	return &Service{
		users:      users,
		catalog:    cat,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// RegisterParams are the fields accepted by Register.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	Firstname *string
	Lastname  *string
	Role      *string
	Club      *string
	TeamID    *int64
}

// Login verifies credentials and returns the profile with a fresh token.
// Failed attempts are counted on the user record; a success resets the
// counter and marks the session active.
func (s *Service) Login(ctx context.Context, username, password string) (*Profile, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		if err := s.users.RecordFailedLogin(ctx, u.ID); err != nil {
			slog.Error("failed to record failed login", "error", err, "userId", u.ID)
		}
		return nil, ErrInvalidPassword
	}

	if err := s.users.RecordLogin(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	p := u.Profile()
	p.Token = token
	return p, nil
}

// Register creates a new user and returns the profile with a fresh token.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		Firstname:    params.Firstname,
		Lastname:     params.Lastname,
		Role:         params.Role,
		Club:         params.Club,
		TeamID:       params.TeamID,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	p := u.Profile()
	p.Token = token
	return p, nil
}

// GetProfile returns the profile for a user id.
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Profile(), nil
}

// GetProfileWithTeam returns the profile together with the user's team.
// Users without a team affiliation get a nil team.
func (s *Service) GetProfileWithTeam(ctx context.Context, userID int64) (*ProfileWithTeam, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ProfileWithTeam{Profile: *u.Profile()}
	if u.TeamID == nil {
		return result, nil
	}

	t, err := s.catalog.TeamByID(ctx, *u.TeamID)
	if err != nil {
		if errors.Is(err, catalog.ErrTeamNotFound) {
			return result, nil
		}
		return nil, fmt.Errorf("fetching team for profile: %w", err)
	}

	result.Team = &TeamInfo{
		TeamID:   t.TeamID,
		TeamName: t.TeamName,
		LeagueID: t.LeagueID,
	}
	return result, nil
}

// Logout marks the user's session closed. The token itself stays valid until
// expiry; clients discard it locally.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.users.MarkLoggedOut(ctx, userID); err != nil {
		return fmt.Errorf("logging out user: %w", err)
	}
	return nil
}
