package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/adapter"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/metrics"
)

// Callback data prefixes shared with the Telegram routing layer.
const (
	// CallbackReceivePrefix carries a post id on "receive" buttons.
	CallbackReceivePrefix = "get:"
	// CallbackRecheckPrefix carries a post id on gate "recheck" buttons.
	CallbackRecheckPrefix = "chk:"
)

const (
	msgPostNotFound = "Sorry, that post is no longer available."
	msgStorageError = "Something went wrong on our side. Please try again later."
	btnRecheck      = "✅ I joined, check again"
)

// DeliveryUseCase is the gated-content delivery protocol. Every entry
// recomputes membership fresh; there is no stored per-user progress, so
// re-entering with the same post and user is always safe.
type DeliveryUseCase interface {
	// Deliver runs one transition for (chatID, postID). editMessageID, when
	// non-zero, identifies an existing gate prompt to rewrite in place on a
	// recheck; pass 0 on first entry.
	Deliver(ctx context.Context, chatID int64, postID int64, editMessageID int) error
}

type deliveryUC struct {
	posts    repository.PostRepository
	verifier MembershipVerifier
	bot      adapter.TelegramBotAdapter
	log      *zerolog.Logger
}

func NewDeliveryUseCase(posts repository.PostRepository, verifier MembershipVerifier, bot adapter.TelegramBotAdapter, logger *zerolog.Logger) DeliveryUseCase {
	l := logger.With().Str("component", "DeliveryUC").Logger()
	return &deliveryUC{posts: posts, verifier: verifier, bot: bot, log: &l}
}

func (uc *deliveryUC) Deliver(ctx context.Context, chatID int64, postID int64, editMessageID int) error {
	post, err := uc.posts.Find(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return uc.bot.SendMessage(ctx, chatID, msgPostNotFound)
		}
		uc.log.Error().Err(err).Int64("post_id", postID).Msg("post lookup failed")
		_ = uc.bot.SendMessage(ctx, chatID, msgStorageError)
		return fmt.Errorf("find post %d: %w", postID, err)
	}

	// An ungated post skips the membership lookups entirely.
	var missing []string
	if post.Gated() {
		missing = uc.verifier.NotJoined(ctx, chatID, post.RequiredChannels)
	}

	if len(missing) == 0 {
		metrics.IncDelivered()
		return uc.renderPayload(ctx, chatID, post)
	}
	metrics.IncGatePrompt()
	return uc.renderGatePrompt(ctx, chatID, post, missing, editMessageID)
}

// renderPayload sends the post's main payload. Exactly the stored kind is
// rendered; a post with no main payload degrades to title and description.
func (uc *deliveryUC) renderPayload(ctx context.Context, chatID int64, post *model.Post) error {
	caption := joinParts(post.Title, post.Description)
	switch post.Main.Kind {
	case model.PayloadText:
		return uc.bot.SendMessage(ctx, chatID, joinParts(post.Title, post.Main.Text, post.Description))
	case model.PayloadPhoto:
		if err := uc.bot.SendPhoto(ctx, chatID, post.Main.FileID, caption); err != nil {
			uc.log.Warn().Err(err).Int64("post_id", post.ID).Msg("photo send failed, falling back to text")
			return uc.bot.SendMessage(ctx, chatID, caption)
		}
		return nil
	case model.PayloadDocument:
		if err := uc.bot.SendDocument(ctx, chatID, post.Main.FileID, caption); err != nil {
			uc.log.Warn().Err(err).Int64("post_id", post.ID).Msg("document send failed, falling back to text")
			return uc.bot.SendMessage(ctx, chatID, caption)
		}
		return nil
	default:
		return uc.bot.SendMessage(ctx, chatID, caption)
	}
}

// renderGatePrompt shows the remaining channels as URL buttons plus a single
// recheck button that re-enters Deliver with the same post id. When
// editMessageID is set the existing prompt is rewritten in place; a failed
// edit falls back to a fresh message.
func (uc *deliveryUC) renderGatePrompt(ctx context.Context, chatID int64, post *model.Post, missing []string, editMessageID int) error {
	text := gatePromptText(post)

	// A media intro is sent once, before the first prompt. The button prompt
	// itself stays textual so a recheck can edit it in place.
	if editMessageID == 0 {
		switch post.Intro.Kind {
		case model.PayloadPhoto:
			if err := uc.bot.SendPhoto(ctx, chatID, post.Intro.FileID, post.Title); err != nil {
				uc.log.Warn().Err(err).Int64("post_id", post.ID).Msg("intro photo send failed")
			}
		case model.PayloadDocument:
			if err := uc.bot.SendDocument(ctx, chatID, post.Intro.FileID, post.Title); err != nil {
				uc.log.Warn().Err(err).Int64("post_id", post.ID).Msg("intro document send failed")
			}
		}
	}

	rows := make([][]adapter.InlineButton, 0, len(missing)+1)
	for _, handle := range missing {
		rows = append(rows, []adapter.InlineButton{{
			Text: channelLabel(post.RequiredChannels, handle),
			URL:  "https://t.me/" + handle,
		}})
	}
	rows = append(rows, []adapter.InlineButton{{
		Text: btnRecheck,
		Data: CallbackRecheckPrefix + strconv.FormatInt(post.ID, 10),
	}})

	if editMessageID != 0 {
		if err := uc.bot.EditButtons(ctx, chatID, editMessageID, text, rows); err == nil {
			return nil
		} else {
			uc.log.Debug().Err(err).Int("message_id", editMessageID).Msg("prompt edit failed, sending fresh")
		}
	}
	return uc.bot.SendButtons(ctx, chatID, text, rows)
}

// gatePromptText prefers the textual intro payload, falling back to the title.
func gatePromptText(post *model.Post) string {
	if post.Intro.Kind == model.PayloadText && strings.TrimSpace(post.Intro.Text) != "" {
		return post.Intro.Text
	}
	if strings.TrimSpace(post.Title) != "" {
		return joinParts(post.Title, "Join the channels below, then tap the check button.")
	}
	return "Join the channels below, then tap the check button."
}

func channelLabel(channels []model.RequiredChannel, handle string) string {
	for _, ch := range channels {
		if ch.Handle == handle && strings.TrimSpace(ch.Name) != "" {
			return ch.Name
		}
	}
	return "@" + handle
}

// joinParts joins the non-empty parts with blank lines.
func joinParts(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
