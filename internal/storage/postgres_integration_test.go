package storage

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const aliasesSchema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;
CREATE TABLE IF NOT EXISTS aliases (
    id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    code         VARCHAR(6) NOT NULL,
    target_url   TEXT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    access_count BIGINT NOT NULL DEFAULT 0,
    CONSTRAINT aliases_code_key UNIQUE (code)
);`

// setupPostgres поднимает контейнер PostgreSQL и возвращает готовое хранилище.
// Тест пропускается, если интеграционное окружение не включено.
func setupPostgres(t *testing.T) *PostgresStorage {
	t.Helper()

	if os.Getenv("ALIASER_INTEGRATION") == "" {
		t.Skip("ALIASER_INTEGRATION is not set; skipping integration test")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("aliaser"),
		tcpostgres.WithUsername("aliaser"),
		tcpostgres.WithPassword("aliaser"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, aliasesSchema)
	require.NoError(t, err)

	pg, err := NewPostgresStorage(ctx, pool)
	require.NoError(t, err)
	return pg
}

func TestPostgresStorageIntegration(t *testing.T) {
	pg := setupPostgres(t)
	ctx := context.Background()

	created, err := pg.Create(ctx, AliasEntry{Code: "XxLlqM", TargetURL: "https://vk.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(0), created.AccessCount)
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))

	// UNIQUE(code) в БД — арбитр уникальности
	_, err = pg.Create(ctx, AliasEntry{Code: "XxLlqM", TargetURL: "https://ya.ru"})
	var codeExists *ErrCodeExists
	require.ErrorAs(t, err, &codeExists)

	// Конкурентные Touch не теряют обращений
	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := pg.Touch(ctx, "XxLlqM")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	alias, err := pg.GetByCode(ctx, "XxLlqM")
	require.NoError(t, err)
	assert.Equal(t, int64(n), alias.AccessCount)

	updated, err := pg.UpdateTarget(ctx, "XxLlqM", "https://ya.ru")
	require.NoError(t, err)
	assert.Equal(t, "https://ya.ru", updated.TargetURL)
	assert.Equal(t, int64(n), updated.AccessCount)

	deleted, err := pg.Delete(ctx, "XxLlqM")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = pg.Delete(ctx, "XxLlqM")
	require.NoError(t, err)
	assert.False(t, deleted)

	// Код освобожден — можно занять заново
	_, err = pg.Create(ctx, AliasEntry{Code: "XxLlqM", TargetURL: "https://example.com"})
	assert.NoError(t, err)
}

func TestRedisCacheIntegration(t *testing.T) {
	pg := setupPostgres(t)
	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = redisContainer.Terminate(context.Background())
	})

	endpoint, err := redisContainer.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewRedisCache(client, pg)

	created, err := cache.Create(ctx, AliasEntry{Code: "AbCdEf", TargetURL: "https://vk.com"})
	require.NoError(t, err)

	// Чтение идет через кэш
	fromCache, err := cache.GetByCode(ctx, "AbCdEf")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fromCache.ID)

	// Инкремент уходит в БД, кэш обновляется свежей записью
	touched, err := cache.Touch(ctx, "AbCdEf")
	require.NoError(t, err)
	assert.Equal(t, int64(1), touched.AccessCount)

	again, err := cache.GetByCode(ctx, "AbCdEf")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.AccessCount)

	inDB, err := pg.GetByCode(ctx, "AbCdEf")
	require.NoError(t, err)
	assert.Equal(t, int64(1), inDB.AccessCount)

	// Удаление инвалидирует кэш
	deleted, err := cache.Delete(ctx, "AbCdEf")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = cache.GetByCode(ctx, "AbCdEf")
	var notFound *ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}
