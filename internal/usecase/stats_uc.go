package usecase

import (
	"context"
	"fmt"
)

// Stats is a small snapshot for the admin menu and the admin API.
type Stats struct {
	Users        int   `json:"users"`
	Posts        int   `json:"posts"`
	SignalPostID int64 `json:"signal_post_id,omitempty"`
}

type StatsUseCase struct {
	users    *UserUseCase
	posts    *PostUseCase
	settings *SettingsUseCase
}

func NewStatsUseCase(users *UserUseCase, posts *PostUseCase, settings *SettingsUseCase) *StatsUseCase {
	return &StatsUseCase{users: users, posts: posts, settings: settings}
}

func (uc *StatsUseCase) Snapshot(ctx context.Context) (*Stats, error) {
	userCount, err := uc.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	postCount, err := uc.posts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	s := &Stats{Users: userCount, Posts: postCount}
	if id, ok := uc.settings.SignalPostID(ctx); ok {
		s.SignalPostID = id
	}
	return s, nil
}

// Text renders the snapshot for the admin chat menu.
func (uc *StatsUseCase) Text(ctx context.Context) (string, error) {
	s, err := uc.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("📊 Stats\nUsers: %d\nPosts: %d", s.Users, s.Posts)
	if s.SignalPostID != 0 {
		out += fmt.Sprintf("\nActive signal post: #%d", s.SignalPostID)
	}
	return out, nil
}
