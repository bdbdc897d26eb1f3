package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage — in-memory реализация AliasStorage для разработки и тестов.
// Все операции выполняются под одним мьютексом, поэтому инкремент счетчика
// атомарен так же, как однострочный UPDATE в PostgreSQL.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]Alias
	now  func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[string]Alias),
		now:  time.Now,
	}
}

func (m *MemoryStorage) Create(ctx context.Context, entry AliasEntry) (*Alias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[entry.Code]; exists {
		return nil, &ErrCodeExists{Code: entry.Code}
	}

	now := m.now()
	alias := Alias{
		ID:          uuid.NewString(),
		Code:        entry.Code,
		TargetURL:   entry.TargetURL,
		CreatedAt:   now,
		UpdatedAt:   now,
		AccessCount: 0,
	}
	m.data[entry.Code] = alias

	return &alias, nil
}

func (m *MemoryStorage) GetByCode(ctx context.Context, code string) (*Alias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	alias, ok := m.data[code]
	if !ok {
		return nil, &ErrNotFound{Code: code}
	}
	return &alias, nil
}

func (m *MemoryStorage) Touch(ctx context.Context, code string) (*Alias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	alias, ok := m.data[code]
	if !ok {
		return nil, &ErrNotFound{Code: code}
	}

	alias.AccessCount++
	alias.UpdatedAt = m.now()
	m.data[code] = alias

	return &alias, nil
}

func (m *MemoryStorage) UpdateTarget(ctx context.Context, code, targetURL string) (*Alias, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	alias, ok := m.data[code]
	if !ok {
		return nil, &ErrNotFound{Code: code}
	}

	alias.TargetURL = targetURL
	alias.UpdatedAt = m.now()
	m.data[code] = alias

	return &alias, nil
}

func (m *MemoryStorage) Delete(ctx context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[code]; !ok {
		return false, nil
	}
	delete(m.data, code)
	return true, nil
}

func (m *MemoryStorage) Ping(ctx context.Context) error {
	// In-memory хранилище всегда доступно
	return nil
}
