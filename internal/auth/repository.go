package auth

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when registering an already-taken username.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateEmail is returned when registering an already-taken email.
var ErrDuplicateEmail = errors.New("email already exists")

// UserRepository provides operations on the users table.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// RecordLogin resets the failed-attempt counter and marks the user as
	// logged in after a successful password check.
	RecordLogin(ctx context.Context, id int64) error
	// RecordFailedLogin increments the failed-attempt counter.
	RecordFailedLogin(ctx context.Context, id int64) error
	// MarkLoggedOut flips is_now_login back to 'no'.
	MarkLoggedOut(ctx context.Context, id int64) error
}
