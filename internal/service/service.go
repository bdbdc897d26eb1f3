package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MaxRadzey/aliaser/internal/generator"
	"github.com/MaxRadzey/aliaser/internal/logger"
	dbstorage "github.com/MaxRadzey/aliaser/internal/storage"
	"go.uber.org/zap"
)

// maxCreateAttempts — предел повторных генераций кода при конфликте уникальности.
const maxCreateAttempts = 5

// Service управляет жизненным циклом записей: создание с повторами при
// коллизии кода, разрешение с инкрементом счетчика, обновление целевого URL
// и удаление. Каждое обращение к хранилищу ограничено таймаутом.
type Service struct {
	storage dbstorage.AliasStorage
	gen     *generator.Generator
	timeout time.Duration
}

func NewService(storage dbstorage.AliasStorage, gen *generator.Generator, timeout time.Duration) *Service {
	return &Service{
		storage: storage,
		gen:     gen,
		timeout: timeout,
	}
}

// Create генерирует код для URL и сохраняет новую запись.
// При конфликте уникальности кода генерация повторяется со свежим случайным
// суффиксом; после maxCreateAttempts неудач возвращается ErrCodeSpaceExhausted.
func (s *Service) Create(ctx context.Context, targetURL string) (*dbstorage.Alias, error) {
	if strings.TrimSpace(targetURL) == "" {
		return nil, &ErrValidation{Reason: "url must not be empty"}
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		code, err := s.gen.Generate(targetURL)
		if err != nil {
			return nil, fmt.Errorf("failed to generate code: %w", err)
		}

		alias, err := s.create(ctx, dbstorage.AliasEntry{Code: code, TargetURL: targetURL})
		if err == nil {
			return alias, nil
		}

		var codeExists *dbstorage.ErrCodeExists
		if !errors.As(err, &codeExists) {
			return nil, fmt.Errorf("failed to save alias: %w", err)
		}

		logger.Log.Info("Code collision, retrying with fresh suffix",
			zap.String("code", code), zap.Int("attempt", attempt))
	}

	return nil, &ErrCodeSpaceExhausted{Attempts: maxCreateAttempts}
}

// Resolve возвращает запись по коду, атомарно увеличив счетчик обращений.
// Отсутствие записи — штатный исход, наружу уходит storage.ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code string) (*dbstorage.Alias, error) {
	if code == "" {
		return nil, &ErrValidation{Reason: "code must not be empty"}
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	return s.storage.Touch(opCtx, code)
}

// GetStats возвращает запись по коду, не изменяя ни счетчик, ни updatedAt.
func (s *Service) GetStats(ctx context.Context, code string) (*dbstorage.Alias, error) {
	if code == "" {
		return nil, &ErrValidation{Reason: "code must not be empty"}
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	return s.storage.GetByCode(opCtx, code)
}

// UpdateTarget заменяет целевой URL записи. Код и createdAt неизменны,
// счетчик обращений сохраняется.
func (s *Service) UpdateTarget(ctx context.Context, code, targetURL string) (*dbstorage.Alias, error) {
	if code == "" {
		return nil, &ErrValidation{Reason: "code must not be empty"}
	}
	if strings.TrimSpace(targetURL) == "" {
		return nil, &ErrValidation{Reason: "url must not be empty"}
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	return s.storage.UpdateTarget(opCtx, code, targetURL)
}

// Delete удаляет запись. Возвращает false без ошибки, если записи не было.
func (s *Service) Delete(ctx context.Context, code string) (bool, error) {
	if code == "" {
		return false, &ErrValidation{Reason: "code must not be empty"}
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	return s.storage.Delete(opCtx, code)
}

// Ping проверяет доступность хранилища.
func (s *Service) Ping(ctx context.Context) error {
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	return s.storage.Ping(opCtx)
}

func (s *Service) create(ctx context.Context, entry dbstorage.AliasEntry) (*dbstorage.Alias, error) {
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	return s.storage.Create(opCtx, entry)
}

// opContext ограничивает обращение к хранилищу таймаутом, чтобы ни одна
// операция не блокировалась бесконечно.
func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
