package storage

import (
	"context"
	"fmt"
	"time"
)

// Alias — запись соответствия короткого кода и целевого URL.
type Alias struct {
	ID          string
	Code        string
	TargetURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AccessCount int64
}

// AliasEntry — данные для создания новой записи. ID и таймстампы
// назначает хранилище.
type AliasEntry struct {
	Code      string
	TargetURL string
}

// ErrNotFound — ошибка, когда запись с таким кодом отсутствует.
type ErrNotFound struct {
	Code string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("alias not found with code: %s", e.Code)
}

// ErrCodeExists — ошибка, когда код уже занят другой записью.
// Сигнал для повторной генерации кода на уровне сервиса.
type ErrCodeExists struct {
	Code string
}

func (e *ErrCodeExists) Error() string {
	return fmt.Sprintf("alias code already exists: %s", e.Code)
}

// AliasStorage — интерфейс хранилища записей.
// Уникальность кода контролирует само хранилище: Create обязан вернуть
// ErrCodeExists при конфликте, а не полагаться на предварительную проверку.
type AliasStorage interface {
	// Create сохраняет новую запись и возвращает её вместе с назначенным ID.
	Create(ctx context.Context, entry AliasEntry) (*Alias, error)
	// GetByCode возвращает запись по коду, не изменяя её.
	GetByCode(ctx context.Context, code string) (*Alias, error)
	// Touch атомарно увеличивает счетчик обращений на 1, обновляет UpdatedAt
	// и возвращает запись с новыми значениями.
	Touch(ctx context.Context, code string) (*Alias, error)
	// UpdateTarget заменяет целевой URL, обновляет UpdatedAt и возвращает запись.
	UpdateTarget(ctx context.Context, code, targetURL string) (*Alias, error)
	// Delete удаляет запись. Возвращает false без ошибки, если записи нет.
	Delete(ctx context.Context, code string) (bool, error)
	Ping(ctx context.Context) error
}
