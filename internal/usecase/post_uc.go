package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

// PostUseCase manages stored posts. Main and intro payloads are write-once:
// the edit flow overwrites title, description, and channels only.
type PostUseCase struct {
	posts    repository.PostRepository
	settings *SettingsUseCase
	log      *zerolog.Logger
}

func NewPostUseCase(posts repository.PostRepository, settings *SettingsUseCase, logger *zerolog.Logger) *PostUseCase {
	l := logger.With().Str("component", "PostUC").Logger()
	return &PostUseCase{posts: posts, settings: settings, log: &l}
}

func (uc *PostUseCase) Create(ctx context.Context, p *model.Post) (int64, error) {
	return uc.posts.Create(ctx, p)
}

func (uc *PostUseCase) Get(ctx context.Context, id int64) (*model.Post, error) {
	return uc.posts.Find(ctx, id)
}

func (uc *PostUseCase) UpdateTitle(ctx context.Context, id int64, title string) error {
	return uc.posts.UpdateTitle(ctx, id, title)
}

func (uc *PostUseCase) UpdateDescription(ctx context.Context, id int64, description string) error {
	return uc.posts.UpdateDescription(ctx, id, description)
}

func (uc *PostUseCase) UpdateChannels(ctx context.Context, id int64, channels []model.RequiredChannel) error {
	return uc.posts.UpdateChannels(ctx, id, channels)
}

// Delete removes a post unless it is the currently active signal post, in
// which case it reports false without error and the row is kept. The signal
// id is re-read from the settings store on every call.
func (uc *PostUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	if signalID, ok := uc.settings.SignalPostID(ctx); ok && signalID == id {
		uc.log.Info().Int64("post_id", id).Msg("delete refused: active signal post")
		return false, nil
	}
	if err := uc.posts.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// ForceDelete bypasses the signal-post guard. Administrative cleanup only.
func (uc *PostUseCase) ForceDelete(ctx context.Context, id int64) error {
	return uc.posts.Delete(ctx, id)
}

func (uc *PostUseCase) ListRecent(ctx context.Context, limit int) ([]repository.PostSummary, error) {
	return uc.posts.ListRecent(ctx, limit)
}

func (uc *PostUseCase) Count(ctx context.Context) (int, error) {
	return uc.posts.Count(ctx)
}
