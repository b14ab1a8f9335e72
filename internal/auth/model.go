package auth

import "time"

// User represents a row in the users table.
type User struct {
	ID                  int64
	Username            string
	Firstname           *string
	Lastname            *string
	Email               string
	PasswordHash        string
	Role                *string
	Club                *string
	TeamID              *int64 // nil when the user is not bound to a team
	AccessKey           *string
	IsAdmin             bool
	NeedsPasswordChange bool
	WrongLoginAttempt   int
	LoginAttempt        int
	IsNowLogin          string // 'yes' while a session is active
	CreatedAt           time.Time
}

// Profile is the user object sent over the wire. It is also the snapshot the
// client caches next to its token. Token is only set in login and register
// responses.
type Profile struct {
	ID                  int64   `json:"id"`
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	Firstname           *string `json:"firstname"`
	Lastname            *string `json:"lastname"`
	Role                *string `json:"role"`
	Club                *string `json:"club"`
	TeamID              *int64  `json:"team_id"`
	AccessKey           *string `json:"access_key,omitempty"`
	IsAdmin             bool    `json:"is_admin"`
	NeedsPasswordChange bool    `json:"needs_password_change"`
	Token               string  `json:"token,omitempty"`
}

// TeamInfo is attached to the profile by the /auth/profile/with-team endpoint.
type TeamInfo struct {
	TeamID   int64  `json:"team_id"`
	TeamName string `json:"team_name"`
	LeagueID string `json:"league_id"`
}

// ProfileWithTeam bundles a profile with the user's team, when any.
type ProfileWithTeam struct {
	Profile
	Team *TeamInfo `json:"team"`
}

// Profile builds the wire representation of a user.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Firstname:           u.Firstname,
		Lastname:            u.Lastname,
		Role:                u.Role,
		Club:                u.Club,
		TeamID:              u.TeamID,
		AccessKey:           u.AccessKey,
		IsAdmin:             u.IsAdmin,
		NeedsPasswordChange: u.NeedsPasswordChange,
	}
}

// IsCoach reports whether the user holds the coach role, which gates every
// metric write endpoint.
func (u *User) IsCoach() bool {
	return u.Role != nil && *u.Role == "coach"
}
