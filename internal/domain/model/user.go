package model

import (
	"time"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
)

// User is a domain entity representing a Telegram user known to the bot.
// Username is refreshed on every observed interaction; FirstSeen is set once.
type User struct {
	TelegramID int64
	Username   string
	FirstSeen  time.Time
}

// NewUser validates and constructs a user record.
func NewUser(tgID int64, username string) (*User, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		TelegramID: tgID,
		Username:   username,
		FirstSeen:  time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.TelegramID == 0 }
