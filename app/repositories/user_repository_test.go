package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserRepositoryAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("matching credentials", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT password FROM users").
			WithArgs("alice").
			WillReturnRows(mock.NewRows([]string{"password"}).AddRow(string(hash)))

		repo := NewPgUserRepository(mock)
		ok, err := repo.Authenticate(context.Background(), "alice", "correct horse")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT password FROM users").
			WithArgs("alice").
			WillReturnRows(mock.NewRows([]string{"password"}).AddRow(string(hash)))

		repo := NewPgUserRepository(mock)
		ok, err := repo.Authenticate(context.Background(), "alice", "wrongpassword")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown username reads the same as a wrong password", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT password FROM users").
			WithArgs("alice").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPgUserRepository(mock)
		ok, err := repo.Authenticate(context.Background(), "alice", "wrongpassword")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("connectivity failure propagates", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT password FROM users").
			WithArgs("alice").
			WillReturnError(errors.New("connection refused"))

		repo := NewPgUserRepository(mock)
		_, err = repo.Authenticate(context.Background(), "alice", "correct horse")
		assert.Error(t, err)
	})
}

func TestUserRepositoryUserID(t *testing.T) {
	t.Run("resolves an existing username", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id FROM users").
			WithArgs("alice").
			WillReturnRows(mock.NewRows([]string{"id"}).AddRow(7))

		repo := NewPgUserRepository(mock)
		id, err := repo.UserID(context.Background(), "alice")
		assert.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("unknown username is an error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id FROM users").
			WithArgs("nobody").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPgUserRepository(mock)
		_, err = repo.UserID(context.Background(), "nobody")
		assert.Error(t, err)
	})
}

func TestUserRepositoryExists(t *testing.T) {
	t.Run("known user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id FROM users").
			WithArgs("alice").
			WillReturnRows(mock.NewRows([]string{"id"}).AddRow(7))

		repo := NewPgUserRepository(mock)
		exists, err := repo.Exists(context.Background(), "alice")
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT id FROM users").
			WithArgs("nobody").
			WillReturnError(pgx.ErrNoRows)

		repo := NewPgUserRepository(mock)
		exists, err := repo.Exists(context.Background(), "nobody")
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}
