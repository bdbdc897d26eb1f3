package testing

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/MaxRadzey/aliaser/internal/storage"
)

// FakeStorage - мок хранилища для тестов. Потокобезопасен, чтобы тесты
// конкурентных разрешений работали против него напрямую.
type FakeStorage struct {
	mu     sync.Mutex
	data   map[string]storage.Alias
	nextID int

	// CreateConflicts заставляет первые N вызовов Create вернуть
	// ErrCodeExists — для тестов повторной генерации кода.
	CreateConflicts int

	// ForcedErr, если задан, возвращается из всех операций.
	ForcedErr error
}

// NewFakeStorage создает новый экземпляр FakeStorage с пустыми данными.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{data: make(map[string]storage.Alias)}
}

// NewFakeStorageWithAliases создает FakeStorage с указанными записями.
func NewFakeStorageWithAliases(aliases ...storage.Alias) *FakeStorage {
	f := NewFakeStorage()
	for _, a := range aliases {
		f.data[a.Code] = a
	}
	return f
}

func (f *FakeStorage) Create(ctx context.Context, entry storage.AliasEntry) (*storage.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ForcedErr != nil {
		return nil, f.ForcedErr
	}
	if f.CreateConflicts > 0 {
		f.CreateConflicts--
		return nil, &storage.ErrCodeExists{Code: entry.Code}
	}
	if _, exists := f.data[entry.Code]; exists {
		return nil, &storage.ErrCodeExists{Code: entry.Code}
	}

	f.nextID++
	now := time.Now()
	alias := storage.Alias{
		ID:        "fake-" + strconv.Itoa(f.nextID),
		Code:      entry.Code,
		TargetURL: entry.TargetURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.data[entry.Code] = alias

	return &alias, nil
}

func (f *FakeStorage) GetByCode(ctx context.Context, code string) (*storage.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ForcedErr != nil {
		return nil, f.ForcedErr
	}
	alias, ok := f.data[code]
	if !ok {
		return nil, &storage.ErrNotFound{Code: code}
	}
	return &alias, nil
}

func (f *FakeStorage) Touch(ctx context.Context, code string) (*storage.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ForcedErr != nil {
		return nil, f.ForcedErr
	}
	alias, ok := f.data[code]
	if !ok {
		return nil, &storage.ErrNotFound{Code: code}
	}
	alias.AccessCount++
	alias.UpdatedAt = time.Now()
	f.data[code] = alias
	return &alias, nil
}

func (f *FakeStorage) UpdateTarget(ctx context.Context, code, targetURL string) (*storage.Alias, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ForcedErr != nil {
		return nil, f.ForcedErr
	}
	alias, ok := f.data[code]
	if !ok {
		return nil, &storage.ErrNotFound{Code: code}
	}
	alias.TargetURL = targetURL
	alias.UpdatedAt = time.Now()
	f.data[code] = alias
	return &alias, nil
}

func (f *FakeStorage) Delete(ctx context.Context, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ForcedErr != nil {
		return false, f.ForcedErr
	}
	if _, ok := f.data[code]; !ok {
		return false, nil
	}
	delete(f.data, code)
	return true, nil
}

func (f *FakeStorage) Ping(ctx context.Context) error {
	if f.ForcedErr != nil {
		return f.ForcedErr
	}
	return nil
}
