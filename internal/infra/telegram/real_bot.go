package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/application"
	"github.com/yanibasnist/BestFreeSignalBot/internal/config"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/adapter"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/logging"
	"github.com/yanibasnist/BestFreeSignalBot/internal/infra/metrics"
	red "github.com/yanibasnist/BestFreeSignalBot/internal/infra/redis"
	"github.com/yanibasnist/BestFreeSignalBot/internal/usecase"
)

// Adapter-owned one-shot prompt steps. Authoring steps live in the use case;
// these three are pure menu glue.
const (
	stepAwaitBroadcast = "await_broadcast"
	stepAwaitSignal    = "await_signal"
	stepAwaitSupport   = "await_support"
)

const (
	msgNotAdmin     = "This action is for administrators only."
	msgNoSignal     = "No signal post is published right now. Check back later."
	msgUnknownInput = "I didn't understand that. Send /start for the menu."
)

// RealTelegramBotAdapter polls Telegram for updates and routes them to the
// facade. It also implements the transport port the use cases render through.
type RealTelegramBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	facade      *application.BotFacade
	state       repository.StateRepository
	rateLimiter *red.RateLimiter
	log         *zerolog.Logger

	adminIDs      map[int64]struct{}
	adminNames    map[string]struct{}
	updateWorkers int
	cancelPolling context.CancelFunc
}

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

func NewRealTelegramBotAdapter(
	cfg *config.BotConfig,
	state repository.StateRepository,
	rateLimiter *red.RateLimiter,
	logger *zerolog.Logger,
) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if state == nil {
		return nil, errors.New("state repo is nil")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	adminIDs := map[int64]struct{}{}
	for _, id := range cfg.AdminIDs {
		adminIDs[id] = struct{}{}
	}
	adminNames := map[string]struct{}{}
	for _, name := range cfg.AdminUsernames {
		adminNames[strings.ToLower(strings.TrimPrefix(name, "@"))] = struct{}{}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	l := logger.With().Str("component", "TelegramAdapter").Logger()
	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		state:         state,
		rateLimiter:   rateLimiter,
		log:           &l,
		adminIDs:      adminIDs,
		adminNames:    adminNames,
		updateWorkers: workers,
	}, nil
}

// AttachFacade wires the application layer in after the use cases were built
// against this adapter's transport port. Must be called before StartPolling.
func (r *RealTelegramBotAdapter) AttachFacade(facade *application.BotFacade) {
	r.facade = facade
}

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if r.facade == nil {
		return errors.New("bot facade not attached")
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up, ok := <-updateChan:
					if !ok {
						return
					}
					if err := r.handleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) isAdmin(tgID int64, username string) bool {
	if _, ok := r.adminIDs[tgID]; ok {
		return true
	}
	_, ok := r.adminNames[strings.ToLower(strings.TrimPrefix(username, "@"))]
	return ok
}

// ---------- transport port ----------

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = buildMarkup(rows)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	_, err := r.bot.Send(photo)
	return err
}

func (r *RealTelegramBotAdapter) SendDocument(ctx context.Context, chatID int64, fileID, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
	doc.Caption = caption
	_, err := r.bot.Send(doc)
	return err
}

func (r *RealTelegramBotAdapter) EditButtons(ctx context.Context, chatID int64, messageID int, text string, rows [][]adapter.InlineButton) error {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, buildMarkup(rows))
	_, err := r.bot.Send(edit)
	return err
}

func (r *RealTelegramBotAdapter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := r.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

// ChatMemberStatus resolves membership via getChatMember. tgbotapi calls are
// synchronous, so the lookup runs in a goroutine and the context deadline is
// honored by abandoning the call.
func (r *RealTelegramBotAdapter) ChatMemberStatus(ctx context.Context, channel string, userID int64) (adapter.MemberStatus, error) {
	type result struct {
		status adapter.MemberStatus
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		member, err := r.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
			ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
				SuperGroupUsername: channel,
				UserID:             userID,
			},
		})
		ch <- result{adapter.MemberStatus(member.Status), err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.status, res.err
	}
}

func (r *RealTelegramBotAdapter) BotUsername(ctx context.Context) (string, error) {
	if r.cfg.Username != "" {
		return r.cfg.Username, nil
	}
	if r.bot.Self.UserName == "" {
		return "", errors.New("bot identity not resolved")
	}
	return r.bot.Self.UserName, nil
}

func buildMarkup(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kbRow = append(kbRow, kb)
		}
		kbRows = append(kbRows, kbRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

// ---------- update routing ----------

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	if update.CallbackQuery != nil {
		metrics.IncUpdateHandled("callback")
		ctx = logging.WithTgID(ctx, update.CallbackQuery.From.ID)
		return r.handleQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	metrics.IncUpdateHandled("message")
	ctx = logging.WithTgID(ctx, update.Message.From.ID)
	return r.handleMessage(ctx, update.Message)
}

func (r *RealTelegramBotAdapter) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	tgUser := msg.From
	chatID := msg.Chat.ID

	command := "message"
	if msg.IsCommand() {
		command = "/" + msg.Command()
	}
	if r.rateLimiter != nil {
		allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(tgUser.ID, command), 20, time.Minute)
		if err != nil {
			r.log.Warn().Err(err).Msg("rate limit check failed")
		} else if !allowed {
			return r.SendMessage(ctx, chatID, "Rate limit exceeded. Please try again later.")
		}
	}

	switch command {
	case "/start":
		return r.handleStart(ctx, msg)
	case "/cancel":
		had, err := r.facade.AuthoringUC.Cancel(ctx, tgUser.ID)
		if err != nil {
			return err
		}
		if !had {
			// Also clear any adapter-owned prompt.
			_ = r.state.ClearState(ctx, tgUser.ID)
			return r.SendMessage(ctx, chatID, "Nothing to cancel.")
		}
		return nil
	case "/help":
		return r.sendHelp(ctx, chatID, r.isAdmin(tgUser.ID, tgUser.UserName))
	}
	if msg.IsCommand() {
		return r.SendMessage(ctx, chatID, msgUnknownInput)
	}

	// Adapter-owned one-shot prompts first, then the authoring conversation.
	if handled, err := r.handlePromptReply(ctx, msg); handled || err != nil {
		return err
	}
	if handled, err := r.facade.AuthoringUC.HandleMessage(ctx, tgUser.ID, incomingFromMessage(msg)); handled || err != nil {
		return err
	}

	// Free-text menu labels.
	if fn, ok := r.textRoutes()[strings.ToLower(strings.TrimSpace(msg.Text))]; ok {
		return fn(ctx, chatID, tgUser, 0, "")
	}
	return r.SendMessage(ctx, chatID, msgUnknownInput)
}

func (r *RealTelegramBotAdapter) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	tgUser := msg.From
	chatID := msg.Chat.ID

	postID, ok, err := r.facade.HandleStart(ctx, tgUser.ID, tgUser.UserName, msg.CommandArguments())
	if err != nil {
		logging.With(ctx, r.log).Error().Err(err).Msg("start handling failed")
		return r.SendMessage(ctx, chatID, "Something went wrong. Please try again.")
	}
	if ok {
		ctx = logging.WithPostID(ctx, postID)
		return r.facade.DeliveryUC.Deliver(ctx, chatID, postID, 0)
	}
	return r.sendWelcome(ctx, chatID, tgUser)
}

// handlePromptReply consumes the reply to an adapter-owned one-shot prompt.
func (r *RealTelegramBotAdapter) handlePromptReply(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	tgUser := msg.From
	chatID := msg.Chat.ID

	st, err := r.state.GetState(ctx, tgUser.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	switch st.Step {
	case stepAwaitBroadcast:
		if err := r.state.ClearState(ctx, tgUser.ID); err != nil {
			return true, err
		}
		if !r.isAdmin(tgUser.ID, tgUser.UserName) {
			return true, r.SendMessage(ctx, chatID, msgNotAdmin)
		}
		count, err := r.facade.BroadcastUC.BroadcastMessage(ctx, msg.Text)
		if err != nil {
			return true, r.SendMessage(ctx, chatID, "Broadcast failed to start.")
		}
		return true, r.SendMessage(ctx, chatID, "📣 Broadcasting to "+strconv.Itoa(count)+" users.")
	case stepAwaitSignal:
		if err := r.state.ClearState(ctx, tgUser.ID); err != nil {
			return true, err
		}
		id, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(msg.Text, "#")), 10, 64)
		if err != nil {
			return true, r.SendMessage(ctx, chatID, "That is not a post id. Pick a post number, e.g. 7.")
		}
		return true, r.designateSignal(ctx, chatID, id)
	case stepAwaitSupport:
		if err := r.state.ClearState(ctx, tgUser.ID); err != nil {
			return true, err
		}
		if err := r.facade.SettingsUC.SetSupportContact(ctx, strings.TrimSpace(msg.Text)); err != nil {
			return true, r.SendMessage(ctx, chatID, "Failed to store the support contact.")
		}
		return true, r.SendMessage(ctx, chatID, "✅ Support contact updated.")
	default:
		// Authoring steps are handled by the use case.
		return false, nil
	}
}

func (r *RealTelegramBotAdapter) designateSignal(ctx context.Context, chatID, postID int64) error {
	if _, err := r.facade.PostUC.Get(ctx, postID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return r.SendMessage(ctx, chatID, "Post #"+strconv.FormatInt(postID, 10)+" does not exist.")
		}
		return err
	}
	if err := r.facade.SettingsUC.SetSignalPostID(ctx, postID); err != nil {
		return r.SendMessage(ctx, chatID, "Failed to set the signal post.")
	}
	return r.SendMessage(ctx, chatID, "🎯 Post #"+strconv.FormatInt(postID, 10)+" is now the active signal post.")
}

func incomingFromMessage(msg *tgbotapi.Message) usecase.Incoming {
	in := usecase.Incoming{Text: msg.Text}
	if in.Text == "" {
		in.Text = msg.Caption
	}
	if msg.Document != nil {
		in.DocumentFileID = msg.Document.FileID
	}
	if len(msg.Photo) > 0 {
		// Telegram lists photo sizes smallest first.
		in.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
	}
	return in
}

// ---------- callback routing ----------

type cbHandler func(ctx context.Context, chatID int64, from *tgbotapi.User, messageID int, data string) error

// Exact-match callbacks
func (r *RealTelegramBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"cmd:signal": func(ctx context.Context, chatID int64, _ *tgbotapi.User, _ int, _ string) error {
			err := r.facade.HandleSignal(ctx, chatID)
			if errors.Is(err, domain.ErrNotFound) {
				return r.SendMessage(ctx, chatID, msgNoSignal)
			}
			return err
		},
		"cmd:support": func(ctx context.Context, chatID int64, _ *tgbotapi.User, _ int, _ string) error {
			return r.SendMessage(ctx, chatID, r.facade.HandleSupport(ctx))
		},
		"cmd:stats": r.adminOnly(func(ctx context.Context, chatID int64, _ *tgbotapi.User, _ int, _ string) error {
			text, err := r.facade.HandleStats(ctx)
			if err != nil {
				text = "Failed to get stats."
			}
			return r.SendMessage(ctx, chatID, text)
		}),
		"cmd:newpost": r.adminOnly(func(ctx context.Context, chatID int64, from *tgbotapi.User, _ int, _ string) error {
			return r.facade.AuthoringUC.Start(ctx, from.ID)
		}),
		"cmd:posts": r.adminOnly(func(ctx context.Context, chatID int64, _ *tgbotapi.User, _ int, _ string) error {
			return r.sendPostsMenu(ctx, chatID)
		}),
		"cmd:broadcast": r.adminOnly(func(ctx context.Context, chatID int64, from *tgbotapi.User, _ int, _ string) error {
			st := &repository.ConversationState{Step: stepAwaitBroadcast, Data: map[string]string{}}
			if err := r.state.SetState(ctx, from.ID, st); err != nil {
				return err
			}
			return r.SendMessage(ctx, chatID, "Send the message to broadcast to all users. /cancel to abort.")
		}),
		"cmd:setsignal": r.adminOnly(func(ctx context.Context, chatID int64, from *tgbotapi.User, _ int, _ string) error {
			st := &repository.ConversationState{Step: stepAwaitSignal, Data: map[string]string{}}
			if err := r.state.SetState(ctx, from.ID, st); err != nil {
				return err
			}
			return r.sendSignalPicker(ctx, chatID)
		}),
		"cmd:setsupport": r.adminOnly(func(ctx context.Context, chatID int64, from *tgbotapi.User, _ int, _ string) error {
			st := &repository.ConversationState{Step: stepAwaitSupport, Data: map[string]string{}}
			if err := r.state.SetState(ctx, from.ID, st); err != nil {
				return err
			}
			return r.SendMessage(ctx, chatID, "Send the support contact (e.g. @username).")
		}),
	}
}

// Prefix-match callbacks
func (r *RealTelegramBotAdapter) cbPrefixRoutes() []struct {
	Prefix string
	Fn     cbHandler
} {
	return []struct {
		Prefix string
		Fn     cbHandler
	}{
		{
			Prefix: usecase.CallbackReceivePrefix,
			Fn: func(ctx context.Context, chatID int64, _ *tgbotapi.User, _ int, data string) error {
				id, err := strconv.ParseInt(strings.TrimPrefix(data, usecase.CallbackReceivePrefix), 10, 64)
				if err != nil {
					return r.SendMessage(ctx, chatID, msgUnknownInput)
				}
				return r.facade.DeliveryUC.Deliver(ctx, chatID, id, 0)
			},
		},
		{
			Prefix: usecase.CallbackRecheckPrefix,
			Fn: func(ctx context.Context, chatID int64, _ *tgbotapi.User, messageID int, data string) error {
				id, err := strconv.ParseInt(strings.TrimPrefix(data, usecase.CallbackRecheckPrefix), 10, 64)
				if err != nil {
					return r.SendMessage(ctx, chatID, msgUnknownInput)
				}
				return r.facade.DeliveryUC.Deliver(ctx, chatID, id, messageID)
			},
		},
		{
			Prefix: "sig:",
			Fn: r.adminOnly(func(ctx context.Context, chatID int64, from *tgbotapi.User, _ int, data string) error {
				_ = r.state.ClearState(ctx, from.ID)
				id, err := strconv.ParseInt(strings.TrimPrefix(data, "sig:"), 10, 64)
				if err != nil {
					return r.SendMessage(ctx, chatID, msgUnknownInput)
				}
				return r.designateSignal(ctx, chatID, id)
			}),
		},
		{
			Prefix: "edit:",
			Fn: r.adminOnly(func(ctx context.Context, chatID int64, _ *tgbotapi.User, _ int, data string) error {
				id := strings.TrimPrefix(data, "edit:")
				rows := [][]adapter.InlineButton{
					{{Text: "Title", Data: "editf:" + usecase.FieldTitle + ":" + id}},
					{{Text: "Description", Data: "editf:" + usecase.FieldDescription + ":" + id}},
					{{Text: "Channels", Data: "editf:" + usecase.FieldChannels + ":" + id}},
				}
				return r.SendButtons(ctx, chatID, "Which field of post #"+id+" should change?", rows)
			}),
		},
		{
			Prefix: "editf:",
			Fn: r.adminOnly(func(ctx context.Context, chatID int64, from *tgbotapi.User, _ int, data string) error {
				field, rest, ok := strings.Cut(strings.TrimPrefix(data, "editf:"), ":")
				if !ok {
					return r.SendMessage(ctx, chatID, msgUnknownInput)
				}
				id, err := strconv.ParseInt(rest, 10, 64)
				if err != nil {
					return r.SendMessage(ctx, chatID, msgUnknownInput)
				}
				return r.facade.AuthoringUC.StartEdit(ctx, from.ID, id, field)
			}),
		},
		{
			Prefix: "del:",
			Fn: r.adminOnly(func(ctx context.Context, chatID int64, _ *tgbotapi.User, _ int, data string) error {
				id, err := strconv.ParseInt(strings.TrimPrefix(data, "del:"), 10, 64)
				if err != nil {
					return r.SendMessage(ctx, chatID, msgUnknownInput)
				}
				deleted, err := r.facade.PostUC.Delete(ctx, id)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						return r.SendMessage(ctx, chatID, "Post #"+strconv.FormatInt(id, 10)+" does not exist.")
					}
					return r.SendMessage(ctx, chatID, "Failed to delete the post.")
				}
				if !deleted {
					return r.SendMessage(ctx, chatID, "Post #"+strconv.FormatInt(id, 10)+" is the active signal post and cannot be deleted.")
				}
				return r.SendMessage(ctx, chatID, "🗑 Post #"+strconv.FormatInt(id, 10)+" deleted.")
			}),
		},
	}
}

func (r *RealTelegramBotAdapter) adminOnly(fn cbHandler) cbHandler {
	return func(ctx context.Context, chatID int64, from *tgbotapi.User, messageID int, data string) error {
		if from == nil || !r.isAdmin(from.ID, from.UserName) {
			return r.SendMessage(ctx, chatID, msgNotAdmin)
		}
		return fn(ctx, chatID, from, messageID, data)
	}
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the Telegram spinner when we return.
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	chatID := query.From.ID
	messageID := 0
	if query.Message != nil {
		chatID = query.Message.Chat.ID
		messageID = query.Message.MessageID
	}

	data := strings.TrimSpace(query.Data)
	if r.rateLimiter != nil {
		if allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(query.From.ID, "cb"), 30, time.Minute); err == nil && !allowed {
			return r.SendMessage(ctx, chatID, "Rate limit exceeded. Please try again later.")
		}
	}

	if fn, ok := r.cbRoutes()[data]; ok {
		return fn(ctx, chatID, query.From, messageID, data)
	}
	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, pr.Prefix) {
			return pr.Fn(ctx, chatID, query.From, messageID, data)
		}
	}
	r.log.Debug().Str("data", data).Msg("unknown callback data")
	return nil
}

// Free-text menu labels, matched case-insensitively.
func (r *RealTelegramBotAdapter) textRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"signal":  r.cbRoutes()["cmd:signal"],
		"support": r.cbRoutes()["cmd:support"],
		"stats":   r.cbRoutes()["cmd:stats"],
	}
}

// ---------- menus ----------

func (r *RealTelegramBotAdapter) sendWelcome(ctx context.Context, chatID int64, tgUser *tgbotapi.User) error {
	rows := [][]adapter.InlineButton{
		{{Text: "📮 Signal post", Data: "cmd:signal"}},
		{{Text: "🛟 Support", Data: "cmd:support"}},
	}
	if r.isAdmin(tgUser.ID, tgUser.UserName) {
		rows = append(rows,
			[]adapter.InlineButton{{Text: "📝 New post", Data: "cmd:newpost"}, {Text: "🗂 Posts", Data: "cmd:posts"}},
			[]adapter.InlineButton{{Text: "🎯 Set signal", Data: "cmd:setsignal"}, {Text: "🛟 Set support", Data: "cmd:setsupport"}},
			[]adapter.InlineButton{{Text: "📣 Broadcast", Data: "cmd:broadcast"}, {Text: "📊 Stats", Data: "cmd:stats"}},
		)
	}
	return r.SendButtons(ctx, chatID, "Welcome! Choose an action:", rows)
}

func (r *RealTelegramBotAdapter) sendHelp(ctx context.Context, chatID int64, admin bool) error {
	help := "Commands:\n/start - menu\n/help - this message\n/cancel - abort the current dialogue"
	if admin {
		help += "\n\nAdmin actions are available from the /start menu."
	}
	return r.SendMessage(ctx, chatID, help)
}

func (r *RealTelegramBotAdapter) sendPostsMenu(ctx context.Context, chatID int64) error {
	posts, err := r.facade.PostUC.ListRecent(ctx, 10)
	if err != nil {
		return r.SendMessage(ctx, chatID, "Failed to load posts.")
	}
	if len(posts) == 0 {
		return r.SendMessage(ctx, chatID, "No posts yet. Use “New post” to create one.")
	}
	rows := make([][]adapter.InlineButton, 0, len(posts))
	for _, p := range posts {
		id := strconv.FormatInt(p.ID, 10)
		label := "#" + id
		if strings.TrimSpace(p.Title) != "" {
			label += " " + p.Title
		}
		rows = append(rows, []adapter.InlineButton{
			{Text: label, Data: usecase.CallbackReceivePrefix + id},
			{Text: "✏️", Data: "edit:" + id},
			{Text: "🗑", Data: "del:" + id},
		})
	}
	return r.SendButtons(ctx, chatID, "Recent posts:", rows)
}

func (r *RealTelegramBotAdapter) sendSignalPicker(ctx context.Context, chatID int64) error {
	posts, err := r.facade.PostUC.ListRecent(ctx, 10)
	if err != nil || len(posts) == 0 {
		return r.SendMessage(ctx, chatID, "Send the id of the post to publish as the signal post.")
	}
	rows := make([][]adapter.InlineButton, 0, len(posts))
	for _, p := range posts {
		id := strconv.FormatInt(p.ID, 10)
		label := "#" + id
		if strings.TrimSpace(p.Title) != "" {
			label += " " + p.Title
		}
		rows = append(rows, []adapter.InlineButton{{Text: label, Data: "sig:" + id}})
	}
	return r.SendButtons(ctx, chatID, "Pick the post to publish as the signal post:", rows)
}
