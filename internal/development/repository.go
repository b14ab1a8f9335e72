package development

import (
	"context"
	"errors"
)

// ErrEntryNotFound is returned when no record matches the query.
var ErrEntryNotFound = errors.New("entry not found")

// ErrDuplicateEntry is returned when a record already exists for the
// footballer and date.
var ErrDuplicateEntry = errors.New("entry already exists for this date")

// Repository provides the record operations shared by all three domains.
type Repository[R any] interface {
	// ByDate returns the single entry for a footballer on a calendar date.
	ByDate(ctx context.Context, footballerID int64, date string) (*R, error)
	// Range returns entries ordered oldest first. Empty start/end strings
	// leave that bound open.
	Range(ctx context.Context, footballerID int64, start, end string) ([]R, error)
	// History returns the most recent entries, newest first.
	History(ctx context.Context, footballerID int64, limit int) ([]R, error)
	Insert(ctx context.Context, rec *R) error
	Update(ctx context.Context, entryID int64, rec *R) error
	Delete(ctx context.Context, entryID int64) error
}
