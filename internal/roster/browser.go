// Package roster drives league -> team -> footballer navigation for the
// data-entry frontends. Selections fan out into async fetches; a generation
// counter makes sure an answer for an abandoned selection never overwrites
// the current one.
package roster

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/coachpad/coachpad/internal/catalog"
	"github.com/coachpad/coachpad/internal/client"
)

// ErrStaleSelection is returned when a fetch finished after the user had
// already navigated elsewhere. The result was discarded; the current state
// is untouched.
var ErrStaleSelection = errors.New("selection changed while loading")

// State is what the frontend renders: the lists loaded so far and the
// selection they belong to.
type State struct {
	Leagues     []catalog.League
	LeagueID    string
	Teams       []catalog.Team
	TeamID      int64
	Footballers []catalog.Footballer
}

// Browser holds the navigation state. Every Select* call bumps the
// generation before it fetches, and only the fetch still carrying the
// newest generation may commit its result.
type Browser struct {
	api *client.Client

	gen atomic.Uint64

	mu    sync.Mutex
	state State
}

// NewBrowser creates an empty Browser on top of an API client.
func NewBrowser(api *client.Client) *Browser {
	return &Browser{api: api}
}

// Snapshot returns a copy of the current navigation state.
func (b *Browser) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	s.Leagues = append([]catalog.League(nil), b.state.Leagues...)
	s.Teams = append([]catalog.Team(nil), b.state.Teams...)
	s.Footballers = append([]catalog.Footballer(nil), b.state.Footballers...)
	return s
}

// LoadLeagues fetches the league list and resets the selection below it.
func (b *Browser) LoadLeagues(ctx context.Context) ([]catalog.League, error) {
	gen := b.gen.Add(1)

	leagues, err := b.api.Physical().Leagues(ctx)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen.Load() {
		return nil, ErrStaleSelection
	}
	b.state = State{Leagues: leagues}
	return leagues, nil
}

// SelectLeague fetches the league's teams and resets the team selection.
func (b *Browser) SelectLeague(ctx context.Context, leagueID string) ([]catalog.Team, error) {
	gen := b.gen.Add(1)

	teams, err := b.api.Physical().TeamsByLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen.Load() {
		return nil, ErrStaleSelection
	}
	b.state.LeagueID = leagueID
	b.state.Teams = teams
	b.state.TeamID = 0
	b.state.Footballers = nil
	return teams, nil
}

// SelectTeam fetches the team's roster. The scope check runs locally in the
// client before any request is sent.
func (b *Browser) SelectTeam(ctx context.Context, teamID int64) ([]catalog.Footballer, error) {
	gen := b.gen.Add(1)

	footballers, err := b.api.Physical().FootballersByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen.Load() {
		return nil, ErrStaleSelection
	}
	b.state.TeamID = teamID
	b.state.Footballers = footballers
	return footballers, nil
}
