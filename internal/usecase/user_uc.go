package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

// UserUseCase records every user the bot has seen, for broadcast fan-out and
// stats.
type UserUseCase struct {
	repo repository.UserRepository
}

func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Observe inserts the user on first contact and refreshes the username on
// every later one. FirstSeen survives updates.
func (uc *UserUseCase) Observe(ctx context.Context, tgID int64, username string) (*model.User, error) {
	u, err := uc.repo.FindByTelegramID(ctx, tgID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("find user %d: %w", tgID, err)
		}
		u = &model.User{TelegramID: tgID, Username: username, FirstSeen: time.Now()}
	} else {
		u.Username = username
	}
	if err := uc.repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save user %d: %w", tgID, err)
	}
	return u, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]*model.User, error) {
	return uc.repo.List(ctx)
}

func (uc *UserUseCase) Count(ctx context.Context) (int, error) {
	return uc.repo.Count(ctx)
}
