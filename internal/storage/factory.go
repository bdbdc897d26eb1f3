package storage

import (
	"context"

	"github.com/MaxRadzey/aliaser/internal/config"
	"github.com/MaxRadzey/aliaser/internal/db"
	"github.com/MaxRadzey/aliaser/internal/logger"
	"github.com/MaxRadzey/aliaser/internal/migrations"
	"github.com/MaxRadzey/aliaser/internal/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StorageResult содержит результат инициализации хранилища.
type StorageResult struct {
	Storage AliasStorage
	DB      *pgxpool.Pool
}

// InitializeStorage выбирает и инициализирует хранилище согласно приоритетам:
//  1. PostgreSQL (если указан DATABASE_DSN), опционально за Redis-кэшем
//  2. In-memory (fallback для разработки и тестов)
//
// Возвращает выбранное хранилище и пул соединений БД (может быть nil).
func InitializeStorage(ctx context.Context, cfg *config.Config) (*StorageResult, error) {
	var store AliasStorage
	var pool *pgxpool.Pool

	if cfg.DatabaseDSN != "" {
		logger.Log.Info("Attempting to connect to PostgreSQL",
			zap.String("dsn", utils.MaskDSN(cfg.DatabaseDSN)))

		pgPool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			logger.Log.Warn("Failed to create connection pool, will use fallback storage", zap.Error(err))
		} else {
			if err := migrations.Run(cfg.DatabaseDSN); err != nil {
				logger.Log.Warn("Migrations failed", zap.Error(err))
			}

			pgStorage, err := NewPostgresStorage(ctx, pgPool)
			if err != nil {
				logger.Log.Warn("Failed to initialize PostgreSQL storage", zap.Error(err))
				pgPool.Close()
			} else {
				store = pgStorage
				pool = pgPool
				logger.Log.Info("PostgreSQL storage initialized")
			}
		}
	}

	// Кэш имеет смысл только поверх внешней БД
	if store != nil && cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
		} else {
			store = NewRedisCache(client, store)
			logger.Log.Info("Redis cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	}

	if store == nil {
		logger.Log.Info("Using in-memory storage as fallback")
		store = NewMemoryStorage()
	}

	return &StorageResult{
		Storage: store,
		DB:      pool,
	}, nil
}
