package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/adapter"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/metrics"
)

// lookupTimeout bounds a single chat-member lookup.
const lookupTimeout = 5 * time.Second

// MembershipVerifier reports which required channels a user has not joined.
type MembershipVerifier interface {
	NotJoined(ctx context.Context, userID int64, channels []model.RequiredChannel) []string
}

type membershipUC struct {
	bot     adapter.TelegramBotAdapter
	timeout time.Duration
	log     *zerolog.Logger
}

func NewMembershipVerifier(bot adapter.TelegramBotAdapter, logger *zerolog.Logger) MembershipVerifier {
	l := logger.With().Str("component", "MembershipVerifier").Logger()
	return &membershipUC{bot: bot, timeout: lookupTimeout, log: &l}
}

// NotJoined checks every channel independently and sequentially; a failed
// lookup on one channel does not abort the rest. Ambiguous lookups (timeout,
// transport error, unexpected status) count as not-joined. The returned
// handles keep the order of the input list.
func (uc *membershipUC) NotJoined(ctx context.Context, userID int64, channels []model.RequiredChannel) []string {
	var missing []string
	for _, ch := range channels {
		if !uc.joined(ctx, userID, ch.Handle) {
			missing = append(missing, ch.Handle)
		}
	}
	return missing
}

func (uc *membershipUC) joined(ctx context.Context, userID int64, handle string) bool {
	lctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	status, err := uc.bot.ChatMemberStatus(lctx, "@"+strings.TrimPrefix(handle, "@"), userID)
	metrics.IncMembershipLookup(err == nil)
	if err != nil {
		// Fail closed: an unverifiable channel is treated as not joined.
		uc.log.Debug().Err(err).Str("channel", handle).Int64("tg_id", userID).Msg("membership lookup failed")
		return false
	}
	switch status {
	case adapter.MemberCreator, adapter.MemberAdministrator, adapter.MemberMember:
		return true
	default:
		return false
	}
}
