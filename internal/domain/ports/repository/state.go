package repository

import (
	"context"
)

// ConversationState holds a user's progress through a multi-step dialogue
// (post authoring, field editing, broadcast compose, setting prompts).
// Data carries collected values keyed by field name; payloads are stored as
// JSON-encoded model.Payload strings.
type ConversationState struct {
	Step string            `json:"step"`
	Data map[string]string `json:"data"`
}

// StateRepository manages transient per-user conversational state with an
// explicit lifecycle: created on entry, destroyed on completion, cancel, or
// idle timeout.
type StateRepository interface {
	SetState(ctx context.Context, tgID int64, state *ConversationState) error
	// GetState returns domain.ErrNotFound when no session exists.
	GetState(ctx context.Context, tgID int64) (*ConversationState, error)
	ClearState(ctx context.Context, tgID int64) error
}
