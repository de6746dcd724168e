package repository

import "context"

// Well-known settings keys.
const (
	SettingSignalPostID   = "signal_post_id"
	SettingSupportContact = "support_contact"
)

// SettingsRepository stores small scalar key/value pairs with upsert
// semantics. Values are plain text; callers coerce types themselves.
type SettingsRepository interface {
	// Get returns domain.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
