package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachpad/coachpad/internal/auth"
	"github.com/coachpad/coachpad/internal/session"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProfile() *auth.Profile {
	teamID := int64(3)
	return &auth.Profile{ID: 42, Username: "coach", TeamID: &teamID, IsAdmin: false}
}

// --- Store Tests ---

func TestStore_EmptyByDefault(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	profile, err := store.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestStore_SetSessionRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, "tok-abc", sampleProfile()))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)

	profile, err := store.Profile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "coach", profile.Username)
	require.NotNil(t, profile.TeamID)
	assert.Equal(t, int64(3), *profile.TeamID)
}

func TestStore_SetSessionOverwrites(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, "tok-old", sampleProfile()))

	p := sampleProfile()
	p.Username = "other"
	require.NoError(t, store.SetSession(ctx, "tok-new", p))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)

	profile, err := store.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "other", profile.Username)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	store, err := session.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetSession(ctx, "tok-abc", sampleProfile()))
	require.NoError(t, store.Close())

	reopened, err := session.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	token, err := reopened.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestStore_Clear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSession(ctx, "tok-abc", sampleProfile()))
	require.NoError(t, store.Clear(ctx))

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	profile, err := store.Profile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	// Clearing twice is fine.
	assert.NoError(t, store.Clear(ctx))
}
