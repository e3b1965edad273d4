package reports

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no report matches the lookup key.
var ErrNotFound = errors.New("report not found")

// ErrSlugTaken is returned by Save when the slug unique constraint fires.
// The caller may recompute the next suffix and retry once.
var ErrSlugTaken = errors.New("slug already taken")

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, r *Report) error
	GetByID(ctx context.Context, id ReportID) (*Report, error)
	GetBySlug(ctx context.Context, slug string) (*Report, error)
	// LatestSlugLike returns the most recently created slug with the given
	// prefix, or "" when none exists.
	LatestSlugLike(ctx context.Context, prefix string) (string, error)
	Latest(ctx context.Context, tool Tool, limit int) ([]*Report, error)
}
