package application

import (
	"context"
	"fmt"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/usecase"
)

// BotFacade composes the use cases behind the Telegram routing layer. The
// adapter reaches exported members directly for menu rendering; the handler
// methods here cover the flows that span several use cases.
type BotFacade struct {
	UserUC      *usecase.UserUseCase
	PostUC      *usecase.PostUseCase
	SettingsUC  *usecase.SettingsUseCase
	StatsUC     *usecase.StatsUseCase
	DeliveryUC  usecase.DeliveryUseCase
	AuthoringUC usecase.AuthoringUseCase
	BroadcastUC usecase.BroadcastUseCase
}

func NewBotFacade(
	userUC *usecase.UserUseCase,
	postUC *usecase.PostUseCase,
	settingsUC *usecase.SettingsUseCase,
	statsUC *usecase.StatsUseCase,
	deliveryUC usecase.DeliveryUseCase,
	authoringUC usecase.AuthoringUseCase,
	broadcastUC usecase.BroadcastUseCase,
) *BotFacade {
	return &BotFacade{
		UserUC:      userUC,
		PostUC:      postUC,
		SettingsUC:  settingsUC,
		StatsUC:     statsUC,
		DeliveryUC:  deliveryUC,
		AuthoringUC: authoringUC,
		BroadcastUC: broadcastUC,
	}
}

// HandleStart records the user and inspects the /start payload. When the
// payload is a valid "get_<id>" deep link it reports the post id; any other
// payload falls through to the welcome rendering (ok=false).
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64, username, payload string) (int64, bool, error) {
	if _, err := b.UserUC.Observe(ctx, tgID, username); err != nil {
		return 0, false, fmt.Errorf("observe user: %w", err)
	}
	id, ok := usecase.ParseStartPayload(payload)
	return id, ok, nil
}

// HandleSignal delivers the currently designated signal post through the
// identical gate logic as a deep link. domain.ErrNotFound means no signal
// post is designated.
func (b *BotFacade) HandleSignal(ctx context.Context, tgID int64) error {
	id, ok := b.SettingsUC.SignalPostID(ctx)
	if !ok {
		return domain.ErrNotFound
	}
	return b.DeliveryUC.Deliver(ctx, tgID, id, 0)
}

// HandleStats renders the admin stats text.
func (b *BotFacade) HandleStats(ctx context.Context) (string, error) {
	return b.StatsUC.Text(ctx)
}

// HandleSupport renders the support contact for the public menu.
func (b *BotFacade) HandleSupport(ctx context.Context) string {
	contact := b.SettingsUC.SupportContact(ctx)
	if contact == "" {
		return "Support is not configured yet."
	}
	return "For help, contact " + contact
}
