package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/dex/internal/common"
	"github.com/Veraticus/dex/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	user, err := store.CreateAccount(ctx, "ash@pallet.town", "pikachu")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ash@pallet.town", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	var hash string
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE id = ?`, user.ID).Scan(&hash))
	assert.NotEqual(t, "pikachu", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "stored as a bcrypt hash")
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.CreateAccount(ctx, "misty@cerulean.city", "starmie")
	require.NoError(t, err)

	_, err = store.CreateAccount(ctx, "MISTY@cerulean.city", "psyduck")
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestVerifyPassword(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	created, err := store.CreateAccount(ctx, "brock@pewter.city", "onix123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "correct", email: "brock@pewter.city", password: "onix123"},
		{name: "email case ignored", email: "Brock@Pewter.City", password: "onix123"},
		{name: "wrong password", email: "brock@pewter.city", password: "geodude", wantErr: common.ErrInvalidCredentials},
		{name: "unknown email", email: "gary@pallet.town", password: "onix123", wantErr: common.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := store.VerifyPassword(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.ID, user.ID)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	created, err := store.CreateAccount(ctx, "ash@pallet.town", "pikachu")
	require.NoError(t, err)

	user, err := store.UpdateProfile(ctx, created.ID, " Ash ", "https://example.com/ash.png")
	require.NoError(t, err)
	assert.Equal(t, "Ash", user.DisplayName)
	assert.Equal(t, "https://example.com/ash.png", user.PhotoURL)

	got, err := store.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ash", got.Label())

	_, err = store.UpdateProfile(ctx, "missing", "x", "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSessions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.ActiveSession(ctx)
	require.ErrorIs(t, err, common.ErrNotFound, "nobody signed in yet")

	ash, err := store.CreateAccount(ctx, "ash@pallet.town", "pikachu")
	require.NoError(t, err)
	misty, err := store.CreateAccount(ctx, "misty@cerulean.city", "starmie")
	require.NoError(t, err)

	token, err := store.SaveSession(ctx, ash.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	active, err := store.ActiveSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, ash.ID, active.ID)

	// A new sign-in replaces the previous session.
	_, err = store.SaveSession(ctx, misty.ID)
	require.NoError(t, err)
	active, err = store.ActiveSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, misty.ID, active.ID)

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count))
	assert.Equal(t, 1, count)

	require.NoError(t, store.DeleteSession(ctx))
	_, err = store.ActiveSession(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Signing out twice is fine.
	assert.NoError(t, store.DeleteSession(ctx))
}

func TestSaveSession_UnknownUser(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.SaveSession(context.Background(), "no-such-user")
	assert.Error(t, err, "foreign key rejects sessions for missing accounts")
}

func TestRegisterAccount(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	user, token, err := store.RegisterAccount(ctx, "ash@pallet.town", "pikachu", model.ScopeLocal)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	active, err := store.ActiveSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, active.ID)

	_, _, err = store.RegisterAccount(ctx, "ASH@pallet.town", "raichu", model.ScopeAPI)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)
}

func TestRegisterAccount_RollsBackWhenSessionFails(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.db.ExecContext(ctx, `
		CREATE TRIGGER reject_sessions BEFORE INSERT ON sessions
		BEGIN SELECT RAISE(ABORT, 'sessions unavailable'); END
	`)
	require.NoError(t, err)

	_, _, err = store.RegisterAccount(ctx, "ash@pallet.town", "pikachu", model.ScopeLocal)
	require.Error(t, err)

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Zero(t, count, "the account is not kept without its session")

	_, err = store.db.ExecContext(ctx, `DROP TRIGGER reject_sessions`)
	require.NoError(t, err)
	_, _, err = store.RegisterAccount(ctx, "ash@pallet.town", "pikachu", model.ScopeLocal)
	assert.NoError(t, err, "retrying after the failure succeeds")
}

func TestTokens(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	ash, err := store.CreateAccount(ctx, "ash@pallet.town", "pikachu")
	require.NoError(t, err)
	misty, err := store.CreateAccount(ctx, "misty@cerulean.city", "starmie")
	require.NoError(t, err)

	ashToken, err := store.CreateToken(ctx, ash.ID)
	require.NoError(t, err)
	mistyToken, err := store.CreateToken(ctx, misty.ID)
	require.NoError(t, err)
	assert.NotEqual(t, ashToken, mistyToken)

	// Tokens coexist and resolve to their own accounts.
	got, err := store.TokenUser(ctx, ashToken)
	require.NoError(t, err)
	assert.Equal(t, ash.ID, got.ID)
	got, err = store.TokenUser(ctx, mistyToken)
	require.NoError(t, err)
	assert.Equal(t, misty.ID, got.ID)

	_, err = store.TokenUser(ctx, "no-such-token")
	assert.ErrorIs(t, err, common.ErrNotFound)

	// API tokens are not the local session, and local sign-out leaves them.
	_, err = store.ActiveSession(ctx)
	assert.ErrorIs(t, err, common.ErrNotFound)
	localToken, err := store.SaveSession(ctx, ash.ID)
	require.NoError(t, err)
	_, err = store.TokenUser(ctx, localToken)
	assert.ErrorIs(t, err, common.ErrNotFound, "a local session is not a bearer token")

	require.NoError(t, store.DeleteSession(ctx))
	_, err = store.TokenUser(ctx, ashToken)
	assert.NoError(t, err)

	require.NoError(t, store.DeleteToken(ctx, ashToken))
	_, err = store.TokenUser(ctx, ashToken)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = store.TokenUser(ctx, mistyToken)
	assert.NoError(t, err, "revoking one token leaves the others")
	assert.NoError(t, store.DeleteToken(ctx, ashToken))
}
