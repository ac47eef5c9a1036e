package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	findHashedPassword = `SELECT password FROM users WHERE username = $1`
	findUserID         = `SELECT id FROM users WHERE username = $1`
)

// PgUserRepository implements UserRepository on PostgreSQL.
type PgUserRepository struct {
	db DB
}

// NewPgUserRepository creates a new PgUserRepository.
func NewPgUserRepository(db DB) *PgUserRepository {
	return &PgUserRepository{db: db}
}

// Authenticate verifies the submitted password against the stored salted
// hash. An unknown username and a wrong password are indistinguishable to
// the caller; neither is an error.
func (r *PgUserRepository) Authenticate(ctx context.Context, username, password string) (bool, error) {
	var hashed string
	err := r.db.QueryRow(ctx, findHashedPassword, username).Scan(&hashed)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up credentials: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) != nil {
		return false, nil
	}
	return true, nil
}

// UserID resolves a username to its id. Callers that cannot guarantee the
// username exists must check with Exists first; an unknown username is an
// error here.
func (r *PgUserRepository) UserID(ctx context.Context, username string) (int, error) {
	return resolveUserID(ctx, r.db, username)
}

// Exists reports whether a user with the given username is registered.
func (r *PgUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	var id int
	err := r.db.QueryRow(ctx, findUserID, username).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return true, nil
}

// rowQuerier is satisfied by both DB and pgx.Tx, so identity resolution can
// run inside or outside a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func resolveUserID(ctx context.Context, q rowQuerier, username string) (int, error) {
	var id int
	if err := q.QueryRow(ctx, findUserID, username).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolving user id: %w", err)
	}
	return id, nil
}
