package catalog

import (
	"context"
	"errors"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrFootballerNotFound is returned when a footballer record is not found.
var ErrFootballerNotFound = errors.New("footballer not found")

// Repository provides read access to the league/team/footballer hierarchy.
type Repository interface {
	ListLeagues(ctx context.Context) ([]League, error)
	TeamsByLeague(ctx context.Context, leagueID string) ([]Team, error)
	TeamByID(ctx context.Context, teamID int64) (*Team, error)
	FootballersByTeam(ctx context.Context, teamID int64) ([]Footballer, error)
	FootballerByID(ctx context.Context, footballerID int64) (*Footballer, error)
}
