package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/MaxRadzey/aliaser/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCacheTTL — время жизни закэшированной записи.
const DefaultCacheTTL = time.Hour

// RedisCache — cache-aside декоратор над основным хранилищем.
// Чтение по коду обслуживается из Redis; инкремент счетчика всегда идет в
// основное хранилище (кэшировать инкременты нельзя — потеряются обращения),
// после чего кэш обновляется свежей записью. Ошибки Redis не фатальны:
// при недоступном кэше запрос уходит в основное хранилище.
type RedisCache struct {
	client  *redis.Client
	backend AliasStorage
	ttl     time.Duration
}

func NewRedisCache(client *redis.Client, backend AliasStorage) *RedisCache {
	return &RedisCache{
		client:  client,
		backend: backend,
		ttl:     DefaultCacheTTL,
	}
}

func cacheKey(code string) string {
	return "alias:" + code
}

func (r *RedisCache) Create(ctx context.Context, entry AliasEntry) (*Alias, error) {
	alias, err := r.backend.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	r.store(ctx, alias)
	return alias, nil
}

func (r *RedisCache) GetByCode(ctx context.Context, code string) (*Alias, error) {
	if alias := r.lookup(ctx, code); alias != nil {
		return alias, nil
	}

	alias, err := r.backend.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.store(ctx, alias)
	return alias, nil
}

func (r *RedisCache) Touch(ctx context.Context, code string) (*Alias, error) {
	alias, err := r.backend.Touch(ctx, code)
	if err != nil {
		return nil, err
	}
	r.store(ctx, alias)
	return alias, nil
}

func (r *RedisCache) UpdateTarget(ctx context.Context, code, targetURL string) (*Alias, error) {
	alias, err := r.backend.UpdateTarget(ctx, code, targetURL)
	if err != nil {
		return nil, err
	}
	r.store(ctx, alias)
	return alias, nil
}

func (r *RedisCache) Delete(ctx context.Context, code string) (bool, error) {
	deleted, err := r.backend.Delete(ctx, code)
	if err != nil {
		return false, err
	}
	if deleted {
		if err := r.client.Del(ctx, cacheKey(code)).Err(); err != nil {
			logger.Log.Warn("Failed to invalidate cache entry", zap.String("code", code), zap.Error(err))
		}
	}
	return deleted, nil
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return err
	}
	return r.backend.Ping(ctx)
}

// lookup возвращает запись из кэша или nil при промахе либо ошибке Redis.
func (r *RedisCache) lookup(ctx context.Context, code string) *Alias {
	raw, err := r.client.Get(ctx, cacheKey(code)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Cache lookup failed", zap.String("code", code), zap.Error(err))
		}
		return nil
	}

	var alias Alias
	if err := json.Unmarshal(raw, &alias); err != nil {
		logger.Log.Warn("Failed to decode cached alias", zap.String("code", code), zap.Error(err))
		return nil
	}
	return &alias
}

func (r *RedisCache) store(ctx context.Context, alias *Alias) {
	raw, err := json.Marshal(alias)
	if err != nil {
		logger.Log.Warn("Failed to encode alias for cache", zap.String("code", alias.Code), zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, cacheKey(alias.Code), raw, r.ttl).Err(); err != nil {
		logger.Log.Warn("Failed to cache alias", zap.String("code", alias.Code), zap.Error(err))
	}
}
