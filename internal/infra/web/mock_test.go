package web

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
	"github.com/yanibasnist/BestFreeSignalBot/internal/usecase"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type memPostRepo struct {
	mu     sync.RWMutex
	store  map[int64]*model.Post
	nextID int64
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
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPostRepo) UpdateTitle(ctx context.Context, id int64, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Title = title
	return nil
}

func (m *memPostRepo) UpdateDescription(ctx context.Context, id int64, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Description = description
	return nil
}

func (m *memPostRepo) UpdateChannels(ctx context.Context, id int64, channels []model.RequiredChannel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.RequiredChannels = channels
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

// newTestServer assembles a Server over in-memory storage.
func newTestServer() (*Server, *memPostRepo, *usecase.SettingsUseCase) {
	posts := newMemPostRepo()
	settingsUC := usecase.NewSettingsUseCase(newMemSettingsRepo(), testLogger())
	postUC := usecase.NewPostUseCase(posts, settingsUC, testLogger())
	userUC := usecase.NewUserUseCase(newMemUserRepo())
	statsUC := usecase.NewStatsUseCase(userUC, postUC, settingsUC)
	auth := NewAuthManager("test-secret", false, 30*time.Minute)
	srv := NewServer(statsUC, postUC, userUC, settingsUC, auth, "test-key", testLogger())
	return srv, posts, settingsUC
}
