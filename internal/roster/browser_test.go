package roster_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachpad/coachpad/internal/auth"
	"github.com/coachpad/coachpad/internal/client"
	"github.com/coachpad/coachpad/internal/roster"
)

type adminStore struct{}

func (adminStore) Token(context.Context) (string, error) { return "tok", nil }
func (adminStore) Profile(context.Context) (*auth.Profile, error) {
	return &auth.Profile{ID: 1, Username: "admin", IsAdmin: true}, nil
}
func (adminStore) Clear(context.Context) error { return nil }

func leagueTeams(leagueID string) []map[string]any {
	switch leagueID {
	case "L1":
		return []map[string]any{{"team_id": 1, "team_name": "FC One", "league_id": "L1"}}
	default:
		return []map[string]any{{"team_id": 2, "team_name": "FC Two", "league_id": "L2"}}
	}
}

func TestBrowser_SelectLeague(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/physical/teams/L1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(leagueTeams("L1"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	b := roster.NewBrowser(client.New(server.URL, adminStore{}))

	teams, err := b.SelectLeague(context.Background(), "L1")
	require.NoError(t, err)
	require.Len(t, teams, 1)

	state := b.Snapshot()
	assert.Equal(t, "L1", state.LeagueID)
	assert.Equal(t, int64(1), state.Teams[0].TeamID)
	assert.Zero(t, state.TeamID, "team selection resets on league change")
}

func TestBrowser_StaleResponseIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/physical/teams/L1", func(w http.ResponseWriter, r *http.Request) {
		<-release // hold the first selection until the second one finished
		json.NewEncoder(w).Encode(leagueTeams("L1"))
	})
	mux.HandleFunc("/physical/teams/L2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(leagueTeams("L2"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	b := roster.NewBrowser(client.New(server.URL, adminStore{}))

	slowDone := make(chan error, 1)
	go func() {
		_, err := b.SelectLeague(context.Background(), "L1")
		slowDone <- err
	}()

	// Let the slow request reach the server, then navigate away.
	time.Sleep(50 * time.Millisecond)
	teams, err := b.SelectLeague(context.Background(), "L2")
	require.NoError(t, err)
	require.Len(t, teams, 1)

	close(release)
	assert.ErrorIs(t, <-slowDone, roster.ErrStaleSelection)

	state := b.Snapshot()
	assert.Equal(t, "L2", state.LeagueID, "the newer selection wins")
	assert.Equal(t, int64(2), state.Teams[0].TeamID)
}

func TestBrowser_SelectTeamLoadsRoster(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/physical/teams/L1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(leagueTeams("L1"))
	})
	mux.HandleFunc("/physical/footballers/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{{"footballer_id": 10, "footballer_name": "Player Ten"}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	b := roster.NewBrowser(client.New(server.URL, adminStore{}))

	_, err := b.SelectLeague(context.Background(), "L1")
	require.NoError(t, err)

	footballers, err := b.SelectTeam(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, footballers, 1)

	state := b.Snapshot()
	assert.Equal(t, int64(1), state.TeamID)
	assert.Equal(t, "Player Ten", state.Footballers[0].FootballerName)
}

func TestBrowser_LoadLeaguesResetsState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/physical/leagues", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{{"league_id": "L1", "league_name": "First"}})
	})
	mux.HandleFunc("/physical/teams/L1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(leagueTeams("L1"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	b := roster.NewBrowser(client.New(server.URL, adminStore{}))

	_, err := b.SelectLeague(context.Background(), "L1")
	require.NoError(t, err)

	leagues, err := b.LoadLeagues(context.Background())
	require.NoError(t, err)
	require.Len(t, leagues, 1)

	state := b.Snapshot()
	assert.Empty(t, state.LeagueID)
	assert.Empty(t, state.Teams)
}
