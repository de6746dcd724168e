package usecase

import (
	"context"
	"encoding/json"
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

// Conversation steps. The authoring flow is strictly linear; each step
// accepts exactly one inbound message and moves forward unconditionally.
const (
	stepMain        = "post_main"
	stepIntro       = "post_intro"
	stepTitle       = "post_title"
	stepDescription = "post_description"
	stepChannels    = "post_channels"

	stepEditTitle       = "edit_title"
	stepEditDescription = "edit_description"
	stepEditChannels    = "edit_channels"
)

// Editable post fields for the edit flow. Payload edit is intentionally
// absent.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldChannels    = "channels"
)

const (
	promptMain        = "📝 New post. Send the main payload: text, a photo, or a document.\nSend /cancel at any time to abort."
	promptIntro       = "Now send the intro payload shown before the gate (text, photo, or document), or \"none\" to skip."
	promptTitle       = "Send the post title."
	promptDescription = "Send the description, or \"none\" for an empty one."
	promptChannels    = "Send the required channels, one per line (e.g. \"My Channel | @mychan\"), or \"none\" for an open post."
	msgCanceled       = "Post creation canceled."
	msgFieldUpdated   = "✅ Field updated."
)

// Incoming is one inbound message's content as seen by the conversation.
// Exactly the received kind is stored, verbatim.
type Incoming struct {
	Text           string
	PhotoFileID    string
	DocumentFileID string
}

func (in Incoming) payload() model.Payload {
	switch {
	case in.DocumentFileID != "":
		return model.DocumentPayload(in.DocumentFileID)
	case in.PhotoFileID != "":
		return model.PhotoPayload(in.PhotoFileID)
	default:
		return model.TextPayload(in.Text)
	}
}

// AuthoringUseCase drives the post authoring and field-edit conversations
// over the per-user session store. Sessions are keyed by the originating
// user, so concurrent conversations by different users do not interfere.
type AuthoringUseCase interface {
	// Start opens a fresh authoring session, replacing any existing one.
	Start(ctx context.Context, tgID int64) error
	// StartEdit opens a one-shot session overwriting a single field of an
	// existing post.
	StartEdit(ctx context.Context, tgID int64, postID int64, field string) error
	// Cancel discards the session without writing. It reports whether a
	// session existed.
	Cancel(ctx context.Context, tgID int64) (bool, error)
	// HandleMessage consumes one inbound message if a session is active.
	// It reports false when the user has no session, so the router can fall
	// through to menu handling.
	HandleMessage(ctx context.Context, tgID int64, in Incoming) (bool, error)
}

type authoringUC struct {
	state repository.StateRepository
	posts *PostUseCase
	bot   adapter.TelegramBotAdapter
	log   *zerolog.Logger
}

func NewAuthoringUseCase(state repository.StateRepository, posts *PostUseCase, bot adapter.TelegramBotAdapter, logger *zerolog.Logger) AuthoringUseCase {
	l := logger.With().Str("component", "AuthoringUC").Logger()
	return &authoringUC{state: state, posts: posts, bot: bot, log: &l}
}

func (uc *authoringUC) Start(ctx context.Context, tgID int64) error {
	st := &repository.ConversationState{Step: stepMain, Data: map[string]string{}}
	if err := uc.state.SetState(ctx, tgID, st); err != nil {
		return fmt.Errorf("open authoring session: %w", err)
	}
	return uc.bot.SendMessage(ctx, tgID, promptMain)
}

func (uc *authoringUC) StartEdit(ctx context.Context, tgID int64, postID int64, field string) error {
	var step, prompt string
	switch field {
	case FieldTitle:
		step, prompt = stepEditTitle, "Send the new title."
	case FieldDescription:
		step, prompt = stepEditDescription, "Send the new description."
	case FieldChannels:
		step, prompt = stepEditChannels, "Send the new channel list, one per line, or \"none\"."
	default:
		return domain.ErrInvalidArgument
	}
	st := &repository.ConversationState{
		Step: step,
		Data: map[string]string{"post_id": strconv.FormatInt(postID, 10)},
	}
	if err := uc.state.SetState(ctx, tgID, st); err != nil {
		return fmt.Errorf("open edit session: %w", err)
	}
	return uc.bot.SendMessage(ctx, tgID, prompt)
}

func (uc *authoringUC) Cancel(ctx context.Context, tgID int64) (bool, error) {
	if _, err := uc.state.GetState(ctx, tgID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := uc.state.ClearState(ctx, tgID); err != nil {
		return true, err
	}
	return true, uc.bot.SendMessage(ctx, tgID, msgCanceled)
}

func (uc *authoringUC) HandleMessage(ctx context.Context, tgID int64, in Incoming) (bool, error) {
	st, err := uc.state.GetState(ctx, tgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load authoring session: %w", err)
	}

	switch st.Step {
	case stepMain:
		return true, uc.advance(ctx, tgID, st, "main", in.payload(), stepIntro, promptIntro)
	case stepIntro:
		p := in.payload()
		if strings.EqualFold(strings.TrimSpace(in.Text), "none") {
			p = model.Payload{}
		}
		return true, uc.advance(ctx, tgID, st, "intro", p, stepTitle, promptTitle)
	case stepTitle:
		st.Data["title"] = in.Text
		st.Step = stepDescription
		if err := uc.state.SetState(ctx, tgID, st); err != nil {
			return true, err
		}
		return true, uc.bot.SendMessage(ctx, tgID, promptDescription)
	case stepDescription:
		desc := in.Text
		if strings.EqualFold(strings.TrimSpace(desc), "none") {
			desc = ""
		}
		st.Data["description"] = desc
		st.Step = stepChannels
		if err := uc.state.SetState(ctx, tgID, st); err != nil {
			return true, err
		}
		return true, uc.bot.SendMessage(ctx, tgID, promptChannels)
	case stepChannels:
		return true, uc.finish(ctx, tgID, st, in.Text)
	case stepEditTitle, stepEditDescription, stepEditChannels:
		return true, uc.applyEdit(ctx, tgID, st, in)
	default:
		// Unknown step: drop the stale session rather than trap the user.
		uc.log.Warn().Str("step", st.Step).Int64("tg_id", tgID).Msg("stale conversation step, clearing")
		return false, uc.state.ClearState(ctx, tgID)
	}
}

// advance stores a payload field and moves to the next step.
func (uc *authoringUC) advance(ctx context.Context, tgID int64, st *repository.ConversationState, key string, p model.Payload, nextStep, nextPrompt string) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", key, err)
	}
	st.Data[key] = string(raw)
	st.Step = nextStep
	if err := uc.state.SetState(ctx, tgID, st); err != nil {
		return err
	}
	return uc.bot.SendMessage(ctx, tgID, nextPrompt)
}

// finish assembles the post from the accumulated session, persists it, clears
// the session, and renders the distribution preview with the deep link.
func (uc *authoringUC) finish(ctx context.Context, tgID int64, st *repository.ConversationState, channelsText string) error {
	post := &model.Post{
		Title:            st.Data["title"],
		Description:      st.Data["description"],
		Main:             decodePayload(st.Data["main"]),
		Intro:            decodePayload(st.Data["intro"]),
		RequiredChannels: ParseChannelRequirements(channelsText),
	}

	id, err := uc.posts.Create(ctx, post)
	if err != nil {
		_ = uc.bot.SendMessage(ctx, tgID, msgStorageError)
		return fmt.Errorf("create post: %w", err)
	}
	if err := uc.state.ClearState(ctx, tgID); err != nil {
		uc.log.Warn().Err(err).Int64("tg_id", tgID).Msg("failed to clear authoring session")
	}
	metrics.IncPostCreated()
	uc.log.Info().Int64("post_id", id).Int64("tg_id", tgID).Int("channels", len(post.RequiredChannels)).Msg("post created")

	return uc.sendPreview(ctx, tgID, id, post)
}

func (uc *authoringUC) sendPreview(ctx context.Context, tgID int64, id int64, post *model.Post) error {
	botName, err := uc.bot.BotUsername(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("bot username lookup failed")
	}
	text := fmt.Sprintf("✅ Post #%d created.", id)
	if strings.TrimSpace(post.Title) != "" {
		text += "\n\n" + post.Title
	}
	if botName != "" {
		text += "\n\n" + BuildDeepLink(botName, id)
	}
	rows := [][]adapter.InlineButton{
		{{Text: "📬 Receive", Data: CallbackReceivePrefix + strconv.FormatInt(id, 10)}},
	}
	return uc.bot.SendButtons(ctx, tgID, text, rows)
}

func (uc *authoringUC) applyEdit(ctx context.Context, tgID int64, st *repository.ConversationState, in Incoming) error {
	postID, err := strconv.ParseInt(st.Data["post_id"], 10, 64)
	if err != nil {
		_ = uc.state.ClearState(ctx, tgID)
		return fmt.Errorf("edit session without post id: %w", domain.ErrInvalidArgument)
	}

	switch st.Step {
	case stepEditTitle:
		err = uc.posts.UpdateTitle(ctx, postID, in.Text)
	case stepEditDescription:
		err = uc.posts.UpdateDescription(ctx, postID, in.Text)
	case stepEditChannels:
		err = uc.posts.UpdateChannels(ctx, postID, ParseChannelRequirements(in.Text))
	}
	if err != nil {
		_ = uc.bot.SendMessage(ctx, tgID, msgStorageError)
		return fmt.Errorf("update post %d: %w", postID, err)
	}
	if err := uc.state.ClearState(ctx, tgID); err != nil {
		uc.log.Warn().Err(err).Int64("tg_id", tgID).Msg("failed to clear edit session")
	}
	return uc.bot.SendMessage(ctx, tgID, msgFieldUpdated)
}

// decodePayload maps malformed session data to an empty payload instead of
// failing the conversation.
func decodePayload(raw string) model.Payload {
	var p model.Payload
	if raw == "" {
		return p
	}
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Payload{}
	}
	return p
}
