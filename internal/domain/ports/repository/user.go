package repository

import (
	"context"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
)

type UserRepository interface {
	// Save inserts the user if absent and always refreshes the username.
	// FirstSeen is kept from the original insert.
	Save(ctx context.Context, u *model.User) error
	FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Count(ctx context.Context) (int, error)
}
