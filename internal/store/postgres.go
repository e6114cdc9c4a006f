package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thefamilyalliance/auth-service/internal/models"
)

// ErrDuplicateEmail is returned by CreateAccount when the normalized email
// already has an account. Callers map it to 409 instead of 500.
var ErrDuplicateEmail = errors.New("email already registered")

// PostgresStore handles account and session rows in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the accounts and sessions tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id              UUID   PRIMARY KEY,
			email           TEXT   UNIQUE NOT NULL,
			password_digest TEXT   NOT NULL,
			role            TEXT   NOT NULL,
			created_at      BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT   PRIMARY KEY,
			account_id UUID   NOT NULL REFERENCES accounts(id),
			expires_at BIGINT NOT NULL,
			created_at BIGINT NOT NULL
		);
	`)
	return err
}

// CreateAccount inserts a new account. Concurrent registrations for one
// email race at the unique constraint; the loser gets ErrDuplicateEmail.
func (s *PostgresStore) CreateAccount(ctx context.Context, a models.Account) error {
	const op = "store.CreateAccount"
	_, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (id, email, password_digest, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Email, a.PasswordDigest, a.Role, a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindAccountByEmail returns the account for a normalized email, or nil if
// none exists.
func (s *PostgresStore) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "store.FindAccountByEmail"
	var a models.Account
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password_digest, role, created_at
		 FROM accounts WHERE email = $1`,
		email,
	).Scan(&a.ID, &a.Email, &a.PasswordDigest, &a.Role, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// CreateSession inserts a new session row.
func (s *PostgresStore) CreateSession(ctx context.Context, sess models.Session) error {
	const op = "store.CreateSession"
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (id, account_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)`,
		sess.ID, sess.AccountID, sess.ExpiresAt, sess.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindValidSession returns the owning account's public view for a session
// that exists and has not expired at now (epoch seconds), or nil. The join
// saves the caller a second round trip; an expired or orphaned row is
// simply never returned.
func (s *PostgresStore) FindValidSession(ctx context.Context, sessionID string, now int64) (*models.AccountView, error) {
	const op = "store.FindValidSession"
	var v models.AccountView
	err := s.pool.QueryRow(ctx,
		`SELECT a.id, a.email, a.role
		 FROM sessions s
		 JOIN accounts a ON a.id = s.account_id
		 WHERE s.id = $1 AND s.expires_at > $2`,
		sessionID, now,
	).Scan(&v.ID, &v.Email, &v.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &v, nil
}

// DeleteSession removes a session row. Deleting an id that does not exist
// is not an error.
func (s *PostgresStore) DeleteSession(ctx context.Context, sessionID string) error {
	const op = "store.DeleteSession"
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
