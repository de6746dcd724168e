package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

// SettingsUseCase wraps the key/value store with defaults and the typed
// accessors for the two keys the bot actually uses.
type SettingsUseCase struct {
	repo repository.SettingsRepository
	log  *zerolog.Logger
}

func NewSettingsUseCase(repo repository.SettingsRepository, logger *zerolog.Logger) *SettingsUseCase {
	l := logger.With().Str("component", "SettingsUC").Logger()
	return &SettingsUseCase{repo: repo, log: &l}
}

// Get returns def when the key is absent.
func (uc *SettingsUseCase) Get(ctx context.Context, key, def string) (string, error) {
	v, err := uc.repo.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return v, nil
}

func (uc *SettingsUseCase) Set(ctx context.Context, key, value string) error {
	return uc.repo.Set(ctx, key, value)
}

// SignalPostID reads the active signal post id on demand; the settings store
// is the single source of truth, nothing is cached in process memory. The
// second return is false when no valid id is stored.
func (uc *SettingsUseCase) SignalPostID(ctx context.Context) (int64, bool) {
	raw, err := uc.Get(ctx, repository.SettingSignalPostID, "")
	if err != nil {
		uc.log.Warn().Err(err).Msg("signal post id read failed")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (uc *SettingsUseCase) SetSignalPostID(ctx context.Context, id int64) error {
	return uc.Set(ctx, repository.SettingSignalPostID, strconv.FormatInt(id, 10))
}

func (uc *SettingsUseCase) SupportContact(ctx context.Context) string {
	v, err := uc.Get(ctx, repository.SettingSupportContact, "")
	if err != nil {
		uc.log.Warn().Err(err).Msg("support contact read failed")
	}
	return v
}

func (uc *SettingsUseCase) SetSupportContact(ctx context.Context, contact string) error {
	return uc.Set(ctx, repository.SettingSupportContact, contact)
}
