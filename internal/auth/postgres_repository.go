package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, firstname, lastname, email, password, role, club,
	       team_id, access_key, is_admin, needs_password_change,
	       wrong_login_attempt, login_attempt, is_now_login, created_at`

// PostgresRepository implements UserRepository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new UserRepository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) UserRepository {
	return &PostgresRepository{pool: pool}
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Firstname, &u.Lastname, &u.Email,
		&u.PasswordHash, &u.Role, &u.Club, &u.TeamID, &u.AccessKey,
		&u.IsAdmin, &u.NeedsPasswordChange,
		&u.WrongLoginAttempt, &u.LoginAttempt, &u.IsNowLogin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, firstname, lastname, email, password, role, club,
		                   team_id, access_key, is_admin, needs_password_change)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		u.Username, u.Firstname, u.Lastname, u.Email, u.PasswordHash,
		u.Role, u.Club, u.TeamID, u.AccessKey, u.IsAdmin, u.NeedsPasswordChange,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ErrDuplicateEmail
			}
			return ErrDuplicateUsername
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	return nil
}

// GetByID retrieves a single user by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a single user by username.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.pool.QueryRow(ctx, query, username))
}

// RecordLogin resets bookkeeping after a successful login.
func (r *PostgresRepository) RecordLogin(ctx context.Context, id int64) error {
	query := `
		UPDATE users
		SET login_attempt = login_attempt + 1,
		    wrong_login_attempt = 0,
		    is_now_login = 'yes'
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("recording login: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RecordFailedLogin increments the failed-attempt counter.
func (r *PostgresRepository) RecordFailedLogin(ctx context.Context, id int64) error {
	query := `UPDATE users SET wrong_login_attempt = wrong_login_attempt + 1 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("recording failed login: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// MarkLoggedOut flips is_now_login back to 'no'.
func (r *PostgresRepository) MarkLoggedOut(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_now_login = 'no' WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("marking user logged out: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
