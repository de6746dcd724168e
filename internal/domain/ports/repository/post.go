package repository

import (
	"context"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
)

// PostSummary is the (id, title) projection used by listing menus.
type PostSummary struct {
	ID    int64
	Title string
}

// PostRepository persists posts. Delete here is unconditional; the
// signal-post guard lives in the post use case.
type PostRepository interface {
	// Create assigns and returns a new monotonic id.
	Create(ctx context.Context, p *model.Post) (int64, error)
	// Find returns domain.ErrNotFound when no row exists. A malformed or
	// missing content blob decodes to empty fields, never an error.
	Find(ctx context.Context, id int64) (*model.Post, error)
	UpdateTitle(ctx context.Context, id int64, title string) error
	UpdateDescription(ctx context.Context, id int64, description string) error
	UpdateChannels(ctx context.Context, id int64, channels []model.RequiredChannel) error
	Delete(ctx context.Context, id int64) error
	// ListRecent returns up to limit posts, newest first by id.
	ListRecent(ctx context.Context, limit int) ([]PostSummary, error)
	Count(ctx context.Context) (int, error)
}
