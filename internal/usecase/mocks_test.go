package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/adapter"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- mock transport ----

type sentMessage struct {
	ChatID int64
	Text   string
}

type sentButtons struct {
	ChatID int64
	Text   string
	Rows   [][]adapter.InlineButton
}

type sentMedia struct {
	ChatID  int64
	Kind    string // "photo" | "document"
	FileID  string
	Caption string
}

type editedButtons struct {
	ChatID    int64
	MessageID int
	Text      string
	Rows      [][]adapter.InlineButton
}

// mockBot records outbound traffic and serves canned membership lookups.
type mockBot struct {
	mu sync.Mutex

	Username string

	// membership by "@handle"; absent handles resolve to "left"
	Memberships map[string]adapter.MemberStatus
	MemberErr   map[string]error

	SendErr  error
	PhotoErr error
	DocErr   error
	EditErr  error

	Messages []sentMessage
	Buttons  []sentButtons
	Media    []sentMedia
	Edits    []editedButtons
	Lookups  []string
}

func newMockBot() *mockBot {
	return &mockBot{
		Username:    "testbot",
		Memberships: map[string]adapter.MemberStatus{},
		MemberErr:   map[string]error{},
	}
}

func (m *mockBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Messages = append(m.Messages, sentMessage{chatID, text})
	return nil
}

func (m *mockBot) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Buttons = append(m.Buttons, sentButtons{chatID, text, rows})
	return nil
}

func (m *mockBot) SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PhotoErr != nil {
		return m.PhotoErr
	}
	m.Media = append(m.Media, sentMedia{chatID, "photo", fileID, caption})
	return nil
}

func (m *mockBot) SendDocument(ctx context.Context, chatID int64, fileID, caption string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DocErr != nil {
		return m.DocErr
	}
	m.Media = append(m.Media, sentMedia{chatID, "document", fileID, caption})
	return nil
}

func (m *mockBot) EditButtons(ctx context.Context, chatID int64, messageID int, text string, rows [][]adapter.InlineButton) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EditErr != nil {
		return m.EditErr
	}
	m.Edits = append(m.Edits, editedButtons{chatID, messageID, text, rows})
	return nil
}

func (m *mockBot) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return nil
}

func (m *mockBot) ChatMemberStatus(ctx context.Context, channel string, userID int64) (adapter.MemberStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lookups = append(m.Lookups, channel)
	if err, ok := m.MemberErr[channel]; ok {
		return "", err
	}
	if st, ok := m.Memberships[channel]; ok {
		return st, nil
	}
	return adapter.MemberLeft, nil
}

func (m *mockBot) BotUsername(ctx context.Context) (string, error) {
	return m.Username, nil
}

func (m *mockBot) lastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1].Text
}

// ---- in-memory repositories ----

type memPostRepo struct {
	mu      sync.RWMutex
	store   map[int64]*model.Post
	nextID  int64
	findErr error
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{store: make(map[int64]*model.Post), nextID: 1}
}

func (m *memPostRepo) Create(ctx context.Context, p *model.Post) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = m.nextID
	m.nextID++
	m.store[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memPostRepo) Find(ctx context.Context, id int64) (*model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPostRepo) UpdateTitle(ctx context.Context, id int64, title string) error {
	return m.update(id, func(p *model.Post) { p.Title = title })
}

func (m *memPostRepo) UpdateDescription(ctx context.Context, id int64, description string) error {
	return m.update(id, func(p *model.Post) { p.Description = description })
}

func (m *memPostRepo) UpdateChannels(ctx context.Context, id int64, channels []model.RequiredChannel) error {
	return m.update(id, func(p *model.Post) { p.RequiredChannels = channels })
}

func (m *memPostRepo) update(id int64, fn func(*model.Post)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(p)
	return nil
}

func (m *memPostRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memPostRepo) ListRecent(ctx context.Context, limit int) ([]repository.PostSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0, len(m.store))
	for id := range m.store {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]repository.PostSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, repository.PostSummary{ID: id, Title: m.store[id].Title})
	}
	return out, nil
}

func (m *memPostRepo) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

type memSettingsRepo struct {
	mu    sync.RWMutex
	store map[string]string
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{store: make(map[string]string)}
}

func (m *memSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (m *memSettingsRepo) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

type memUserRepo struct {
	mu    sync.RWMutex
	store map[int64]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[int64]*model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.store[u.TelegramID]; ok {
		existing.Username = u.Username
		return nil
	}
	cp := *u
	m.store[u.TelegramID] = &cp
	return nil
}

func (m *memUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) List(ctx context.Context) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.User, 0, len(m.store))
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TelegramID < out[j].TelegramID })
	return out, nil
}

func (m *memUserRepo) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

type memStateRepo struct {
	mu    sync.RWMutex
	store map[int64]*repository.ConversationState
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{store: make(map[int64]*repository.ConversationState)}
}

func (m *memStateRepo) SetState(ctx context.Context, tgID int64, state *repository.ConversationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := repository.ConversationState{Step: state.Step, Data: map[string]string{}}
	for k, v := range state.Data {
		cp.Data[k] = v
	}
	m.store[tgID] = &cp
	return nil
}

func (m *memStateRepo) GetState(ctx context.Context, tgID int64) (*repository.ConversationState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.store[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := repository.ConversationState{Step: st.Step, Data: map[string]string{}}
	for k, v := range st.Data {
		cp.Data[k] = v
	}
	return &cp, nil
}

func (m *memStateRepo) ClearState(ctx context.Context, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, tgID)
	return nil
}
