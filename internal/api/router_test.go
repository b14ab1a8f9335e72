package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/coachpad/coachpad/internal/api"
	"github.com/coachpad/coachpad/internal/auth"
	"github.com/coachpad/coachpad/internal/catalog"
	"github.com/coachpad/coachpad/internal/development"
)

// --- Mocks ---

type mockUsers struct {
	byID       map[int64]*auth.User
	byUsername map[string]*auth.User
}

func (m *mockUsers) Create(_ context.Context, u *auth.User) error {
	u.ID = int64(len(m.byID) + 1)
	m.byID[u.ID] = u
	m.byUsername[u.Username] = u
	return nil
}

func (m *mockUsers) GetByID(_ context.Context, id int64) (*auth.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUsers) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUsers) RecordLogin(context.Context, int64) error       { return nil }
func (m *mockUsers) RecordFailedLogin(context.Context, int64) error { return nil }
func (m *mockUsers) MarkLoggedOut(context.Context, int64) error     { return nil }

type mockCatalog struct {
	leagues     []catalog.League
	teams       map[string][]catalog.Team
	footballers map[int64][]catalog.Footballer
}

func (m *mockCatalog) ListLeagues(context.Context) ([]catalog.League, error) {
	return m.leagues, nil
}

func (m *mockCatalog) TeamsByLeague(_ context.Context, leagueID string) ([]catalog.Team, error) {
	return m.teams[leagueID], nil
}

func (m *mockCatalog) TeamByID(_ context.Context, teamID int64) (*catalog.Team, error) {
	for _, ts := range m.teams {
		for _, t := range ts {
			if t.TeamID == teamID {
				return &t, nil
			}
		}
	}
	return nil, catalog.ErrTeamNotFound
}

func (m *mockCatalog) FootballersByTeam(_ context.Context, teamID int64) ([]catalog.Footballer, error) {
	return m.footballers[teamID], nil
}

func (m *mockCatalog) FootballerByID(_ context.Context, footballerID int64) (*catalog.Footballer, error) {
	for _, fs := range m.footballers {
		for _, f := range fs {
			if f.FootballerID == footballerID {
				return &f, nil
			}
		}
	}
	return nil, catalog.ErrFootballerNotFound
}

// mockDevRepo implements development.Repository with function fields.
type mockDevRepo[R any] struct {
	byDateFn  func(ctx context.Context, footballerID int64, date string) (*R, error)
	rangeFn   func(ctx context.Context, footballerID int64, start, end string) ([]R, error)
	historyFn func(ctx context.Context, footballerID int64, limit int) ([]R, error)
	insertFn  func(ctx context.Context, rec *R) error
	updateFn  func(ctx context.Context, entryID int64, rec *R) error
	deleteFn  func(ctx context.Context, entryID int64) error
}

func (m *mockDevRepo[R]) ByDate(ctx context.Context, footballerID int64, date string) (*R, error) {
	if m.byDateFn == nil {
		return nil, development.ErrEntryNotFound
	}
	return m.byDateFn(ctx, footballerID, date)
}

func (m *mockDevRepo[R]) Range(ctx context.Context, footballerID int64, start, end string) ([]R, error) {
	if m.rangeFn == nil {
		return nil, nil
	}
	return m.rangeFn(ctx, footballerID, start, end)
}

func (m *mockDevRepo[R]) History(ctx context.Context, footballerID int64, limit int) ([]R, error) {
	if m.historyFn == nil {
		return nil, nil
	}
	return m.historyFn(ctx, footballerID, limit)
}

func (m *mockDevRepo[R]) Insert(ctx context.Context, rec *R) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, rec)
}

func (m *mockDevRepo[R]) Update(ctx context.Context, entryID int64, rec *R) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, entryID, rec)
}

func (m *mockDevRepo[R]) Delete(ctx context.Context, entryID int64) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, entryID)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// --- Test environment ---

type testEnv struct {
	server   *httptest.Server
	tokens   *auth.TokenService
	users    *mockUsers
	catalog  *mockCatalog
	physical *mockDevRepo[development.Physical]
}

func newUser(id int64, username, role string, teamID *int64, admin bool) *auth.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	return &auth.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         &role,
		TeamID:       teamID,
		IsAdmin:      admin,
	}
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()

	teamOne := int64(1)
	users := &mockUsers{
		byID:       map[int64]*auth.User{},
		byUsername: map[string]*auth.User{},
	}
	for _, u := range []*auth.User{
		newUser(1, "admin-coach", "coach", nil, true),
		newUser(2, "team-coach", "coach", &teamOne, false),
		newUser(3, "player", "player", &teamOne, false),
	} {
		users.byID[u.ID] = u
		users.byUsername[u.Username] = u
	}

	cat := &mockCatalog{
		leagues: []catalog.League{
			{LeagueID: "L1", LeagueName: "First League"},
		},
		teams: map[string][]catalog.Team{
			"L1": {
				{TeamID: 1, TeamName: "FC One", LeagueID: "L1"},
				{TeamID: 2, TeamName: "FC Two", LeagueID: "L1"},
			},
		},
		footballers: map[int64][]catalog.Footballer{
			1: {{FootballerID: 10, FootballerName: "Player Ten", TeamID: 1}},
			2: {{FootballerID: 20, FootballerName: "Player Twenty", TeamID: 2}},
		},
	}

	tokens := auth.NewTokenService("test-secret", time.Hour)
	authService := auth.NewService(users, cat, tokens, bcrypt.MinCost)
	physical := &mockDevRepo[development.Physical]{}

	router := api.NewRouter(api.RouterDeps{
		DBPinger:    okPinger{},
		Version:     "test",
		Tokens:      tokens,
		AuthService: authService,
		Users:       users,
		Catalog:     cat,
		Physical:    physical,
		Conditional: &mockDevRepo[development.Conditional]{},
		Endurance:   &mockDevRepo[development.Endurance]{},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		server:   server,
		tokens:   tokens,
		users:    users,
		catalog:  cat,
		physical: physical,
	}
}

func (e *testEnv) tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	raw, err := e.tokens.Issue(e.users.byID[userID])
	require.NoError(t, err)
	return raw
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func message(t *testing.T, raw []byte) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Message
}

// --- Auth Tests ---

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "team-coach",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message string       `json:"message"`
		User    auth.Profile `json:"user"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Login successful", body.Message)
	assert.Equal(t, "team-coach", body.User.Username)
	assert.NotEmpty(t, body.User.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "team-coach",
		"password": "nope12345678",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid password", message(t, raw))
}

func TestProtectedRoute_MissingToken(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodGet, "/api/physical/leagues", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token is missing!", message(t, raw))
}

func TestProtectedRoute_ExpiredToken(t *testing.T) {
	env := setupServer(t)

	expired := auth.NewTokenService("test-secret", -time.Minute)
	raw, err := expired.Issue(env.users.byID[2])
	require.NoError(t, err)

	resp, body := env.request(t, http.MethodGet, "/api/physical/leagues", raw, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token has expired!", message(t, body))
}

// --- Catalog Access Tests ---

func TestTeams_AdminSeesAll(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodGet, "/api/physical/teams/L1", env.tokenFor(t, 1), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teams []catalog.Team
	require.NoError(t, json.Unmarshal(raw, &teams))
	assert.Len(t, teams, 2)
}

func TestTeams_NonAdminSeesOwnTeamOnly(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodGet, "/api/physical/teams/L1", env.tokenFor(t, 2), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teams []catalog.Team
	require.NoError(t, json.Unmarshal(raw, &teams))
	require.Len(t, teams, 1)
	assert.Equal(t, int64(1), teams[0].TeamID)
}

func TestFootballers_NonAdminForeignTeamForbidden(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodGet, "/api/physical/footballers/2", env.tokenFor(t, 2), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You do not have access to this team", message(t, raw))
}

func TestFootballers_AdminAnyTeam(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodGet, "/api/physical/footballers/2", env.tokenFor(t, 1), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var footballers []catalog.Footballer
	require.NoError(t, json.Unmarshal(raw, &footballers))
	require.Len(t, footballers, 1)
	assert.Equal(t, int64(20), footballers[0].FootballerID)
}

// --- Data Tests ---

func TestDataByDate_NotFound(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodGet, "/api/physical/data/10/2026-01-05", env.tokenFor(t, 2), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No data found for this date", message(t, raw))
}

func TestDataByDate_BadDate(t *testing.T) {
	env := setupServer(t)

	resp, _ := env.request(t, http.MethodGet, "/api/physical/data/10/january", env.tokenFor(t, 2), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddData_Success(t *testing.T) {
	env := setupServer(t)

	var inserted *development.Physical
	env.physical.insertFn = func(_ context.Context, rec *development.Physical) error {
		rec.ID = 99
		inserted = rec
		return nil
	}

	resp, raw := env.request(t, http.MethodPost, "/api/physical/data/10/2026-01-05", env.tokenFor(t, 2), map[string]string{
		"weight": "81,5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Data added successfully", message(t, raw))

	require.NotNil(t, inserted)
	assert.Equal(t, int64(10), inserted.FootballerID)
	assert.Equal(t, "2026-01-05", inserted.CreatedAt)
	require.NotNil(t, inserted.Weight)
	assert.Equal(t, 81.5, *inserted.Weight)
}

func TestAddData_DuplicateDate(t *testing.T) {
	env := setupServer(t)
	env.physical.insertFn = func(context.Context, *development.Physical) error {
		return development.ErrDuplicateEntry
	}

	resp, raw := env.request(t, http.MethodPost, "/api/physical/data/10/2026-01-05", env.tokenFor(t, 2), map[string]string{
		"weight": "81.5",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Data for this date already exists", message(t, raw))
}

func TestAddData_NonCoachForbidden(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodPost, "/api/physical/data/10/2026-01-05", env.tokenFor(t, 3), map[string]string{
		"weight": "81.5",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Coach access required!", message(t, raw))
}

func TestAddData_InvalidNumber(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodPost, "/api/physical/data/10/2026-01-05", env.tokenFor(t, 2), map[string]string{
		"weight": "heavy",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, message(t, raw), "invalid numeric values")
}

func TestUpdateData_NotFound(t *testing.T) {
	env := setupServer(t)
	env.physical.updateFn = func(context.Context, int64, *development.Physical) error {
		return development.ErrEntryNotFound
	}

	resp, raw := env.request(t, http.MethodPut, "/api/physical/data/entry/5", env.tokenFor(t, 2), map[string]string{
		"weight": "80",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Entry not found", message(t, raw))
}

func TestHistory_DefaultLimit(t *testing.T) {
	env := setupServer(t)

	var gotLimit int
	env.physical.historyFn = func(_ context.Context, _ int64, limit int) ([]development.Physical, error) {
		gotLimit = limit
		return []development.Physical{}, nil
	}

	resp, _ := env.request(t, http.MethodGet, "/api/physical/history/10", env.tokenFor(t, 2), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, gotLimit)
}

func TestHistory_ExplicitLimit(t *testing.T) {
	env := setupServer(t)

	var gotLimit int
	env.physical.historyFn = func(_ context.Context, _ int64, limit int) ([]development.Physical, error) {
		gotLimit = limit
		return []development.Physical{}, nil
	}

	resp, _ := env.request(t, http.MethodGet, "/api/physical/history/10?limit=25", env.tokenFor(t, 2), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 25, gotLimit)
}

// --- Graph Tests ---

func TestGenerateGraph_NoData(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodPost, "/api/physical/generate-graph", env.tokenFor(t, 2), development.GraphRequest{
		FootballerID: 10,
		GraphType:    development.GraphProgressTracker,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No data available for the selected criteria", message(t, raw))
}

func TestGenerateGraph_UnknownType(t *testing.T) {
	env := setupServer(t)

	w := 80.0
	env.physical.rangeFn = func(context.Context, int64, string, string) ([]development.Physical, error) {
		return []development.Physical{{
			Entry:  development.Entry{FootballerID: 10, CreatedAt: "2026-01-01"},
			Weight: &w,
		}}, nil
	}

	resp, _ := env.request(t, http.MethodPost, "/api/physical/generate-graph", env.tokenFor(t, 2), development.GraphRequest{
		FootballerID: 10,
		GraphType:    "pie-chart",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateGraph_Success(t *testing.T) {
	env := setupServer(t)

	w := 80.0
	env.physical.rangeFn = func(context.Context, int64, string, string) ([]development.Physical, error) {
		return []development.Physical{{
			Entry:  development.Entry{FootballerID: 10, CreatedAt: "2026-01-01"},
			Weight: &w,
		}}, nil
	}

	resp, raw := env.request(t, http.MethodPost, "/api/physical/generate-graph", env.tokenFor(t, 2), development.GraphRequest{
		FootballerID: 10,
		GraphType:    development.GraphProgressTracker,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var g development.Graph
	require.NoError(t, json.Unmarshal(raw, &g))
	assert.Equal(t, development.GraphProgressTracker, g.GraphType)
	require.Len(t, g.Series, 1)
	assert.Equal(t, 80.0, g.Series[0].Target)
}

// --- Health Tests ---

func TestHealth(t *testing.T) {
	env := setupServer(t)

	resp, raw := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), fmt.Sprintf("%q", "healthy"))
}
