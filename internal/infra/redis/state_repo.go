package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo keeps per-user conversation state in Redis. The TTL doubles as
// the idle timeout for abandoned authoring sessions.
type StateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewStateRepo(client RedisClient) *StateRepo {
	return &StateRepo{
		client: client,
		ttl:    15 * time.Minute, // Give users 15 minutes to complete any conversational flow.
	}
}

func (s *StateRepo) stateKey(tgID int64) string {
	return fmt.Sprintf("conv_state:%d", tgID)
}

func (s *StateRepo) SetState(ctx context.Context, tgID int64, state *repository.ConversationState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(tgID), data, s.ttl)
}

func (s *StateRepo) GetState(ctx context.Context, tgID int64) (*repository.ConversationState, error) {
	data, err := s.client.Get(ctx, s.stateKey(tgID))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var state repository.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	if state.Data == nil {
		state.Data = map[string]string{}
	}
	return &state, nil
}

func (s *StateRepo) ClearState(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.stateKey(tgID))
}
