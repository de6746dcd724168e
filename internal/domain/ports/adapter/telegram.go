package adapter

import "context"

// InlineButton is one inline keyboard button. URL wins over Data when both
// are set.
type InlineButton struct {
	Text string
	Data string
	URL  string
}

// MemberStatus is the membership state of a user in a channel as reported by
// the transport. Values mirror the Bot API chat member statuses.
type MemberStatus string

const (
	MemberCreator       MemberStatus = "creator"
	MemberAdministrator MemberStatus = "administrator"
	MemberMember        MemberStatus = "member"
	MemberRestricted    MemberStatus = "restricted"
	MemberLeft          MemberStatus = "left"
	MemberKicked        MemberStatus = "kicked"
)

// TelegramBotAdapter is the transport port the core depends on. All send and
// edit failures are soft from the caller's point of view: callers log and
// continue, except where gating logic depends on the call (membership lookup).
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error
	SendDocument(ctx context.Context, chatID int64, fileID, caption string) error
	// EditButtons rewrites the text and inline keyboard of an existing message.
	EditButtons(ctx context.Context, chatID int64, messageID int, text string, rows [][]InlineButton) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	// ChatMemberStatus resolves the user's membership in a channel addressed
	// as "@handle".
	ChatMemberStatus(ctx context.Context, channel string, userID int64) (MemberStatus, error)
	// BotUsername resolves the bot's own handle for deep-link construction.
	BotUsername(ctx context.Context) (string, error)
}
