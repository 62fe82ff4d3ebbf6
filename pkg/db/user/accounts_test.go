package user

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johnmontoya/library-backend/pkg/records"
	userTypes "github.com/Johnmontoya/library-backend/pkg/user-management/types"

	_ "modernc.org/sqlite"
)

func newTestDBService(t *testing.T) *AccountDBService {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	dbService := NewAccountDBServiceWithDB(db, "sqlite3")
	require.NoError(t, dbService.EnsureSchema(context.Background()))
	return dbService
}

func TestAccountCRUD(t *testing.T) {
	dbService := newTestDBService(t)
	ctx := context.Background()

	account := userTypes.Account{
		ID:             "acc-1",
		Email:          "a@x.com",
		Username:       "alice",
		Password:       "hashed",
		EmailConfirmed: false,
		LockoutEnabled: true,
		CreatedAt:      time.Now().Unix(),
	}
	require.NoError(t, dbService.CreateAccount(ctx, account))
	require.NoError(t, dbService.AddAccountRole(ctx, "acc-1", userTypes.ROLE_USER))

	t.Run("lookups resolve the same account", func(t *testing.T) {
		byID, err := dbService.GetAccountByID(ctx, "acc-1")
		require.NoError(t, err)
		byEmail, err := dbService.GetAccountByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		byUsername, err := dbService.GetAccountByUsername(ctx, "alice")
		require.NoError(t, err)

		assert.Equal(t, byID.ID, byEmail.ID)
		assert.Equal(t, byID.ID, byUsername.ID)
		assert.Equal(t, []string{userTypes.ROLE_USER}, byID.Roles)
		assert.True(t, byID.LockoutEnabled)
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := dbService.GetAccountByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, records.ErrNotFound)
	})

	t.Run("update persists changes", func(t *testing.T) {
		account.EmailConfirmed = true
		account.FailedAttempts = 3
		require.NoError(t, dbService.UpdateAccount(ctx, account))

		stored, err := dbService.GetAccountByID(ctx, "acc-1")
		require.NoError(t, err)
		assert.True(t, stored.EmailConfirmed)
		assert.Equal(t, 3, stored.FailedAttempts)
	})

	t.Run("update of missing account", func(t *testing.T) {
		missing := account
		missing.ID = "acc-2"
		assert.ErrorIs(t, dbService.UpdateAccount(ctx, missing), records.ErrNotFound)
	})

	t.Run("duplicate email is rejected by the store", func(t *testing.T) {
		dup := account
		dup.ID = "acc-2"
		dup.Username = "other"
		assert.Error(t, dbService.CreateAccount(ctx, dup))
	})
}

func TestTokenLifecycle(t *testing.T) {
	dbService := newTestDBService(t)
	ctx := context.Background()

	require.NoError(t, dbService.CreateAccount(ctx, userTypes.Account{
		ID:             "acc-1",
		Email:          "a@x.com",
		Username:       "alice",
		Password:       "hashed",
		LockoutEnabled: true,
		CreatedAt:      time.Now().Unix(),
	}))

	token := userTypes.Token{
		Token:     "tok-1",
		AccountID: "acc-1",
		Purpose:   userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
	require.NoError(t, dbService.SaveToken(ctx, token))

	t.Run("find stored token", func(t *testing.T) {
		found, err := dbService.FindToken(ctx, "acc-1", userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, token, found)
	})

	t.Run("purpose must match", func(t *testing.T) {
		_, err := dbService.FindToken(ctx, "acc-1", userTypes.TOKEN_PURPOSE_PASSWORD_RESET, "tok-1")
		assert.ErrorIs(t, err, records.ErrNotFound)
	})

	t.Run("delete removes all tokens of the purpose", func(t *testing.T) {
		require.NoError(t, dbService.SaveToken(ctx, userTypes.Token{
			Token:     "tok-2",
			AccountID: "acc-1",
			Purpose:   userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION,
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		}))
		require.NoError(t, dbService.DeleteTokens(ctx, "acc-1", userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION))

		_, err := dbService.FindToken(ctx, "acc-1", userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION, "tok-1")
		assert.ErrorIs(t, err, records.ErrNotFound)
		_, err = dbService.FindToken(ctx, "acc-1", userTypes.TOKEN_PURPOSE_EMAIL_CONFIRMATION, "tok-2")
		assert.ErrorIs(t, err, records.ErrNotFound)
	})
}
