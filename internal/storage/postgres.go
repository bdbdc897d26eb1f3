package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation — код ошибки PostgreSQL для нарушения UNIQUE ограничения.
const uniqueViolation = "23505"

const aliasColumns = "id, code, target_url, created_at, updated_at, access_count"

type PostgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgresStorage(ctx context.Context, db *pgxpool.Pool) (*PostgresStorage, error) {
	if db == nil {
		return nil, errors.New("database connection is nil")
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStorage{db: db}, nil
}

// Create вставляет новую запись. Конфликт по UNIQUE(code) возвращается как
// ErrCodeExists — арбитром уникальности выступает сама БД, а не проверка
// перед вставкой.
func (p *PostgresStorage) Create(ctx context.Context, entry AliasEntry) (*Alias, error) {
	row := p.db.QueryRow(ctx,
		"INSERT INTO aliases (code, target_url) VALUES ($1, $2) RETURNING "+aliasColumns,
		entry.Code, entry.TargetURL)

	alias, err := scanAlias(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, &ErrCodeExists{Code: entry.Code}
		}
		return nil, fmt.Errorf("failed to create alias: %w", err)
	}

	return alias, nil
}

func (p *PostgresStorage) GetByCode(ctx context.Context, code string) (*Alias, error) {
	row := p.db.QueryRow(ctx,
		"SELECT "+aliasColumns+" FROM aliases WHERE code = $1", code)

	alias, err := scanAlias(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Code: code}
		}
		return nil, fmt.Errorf("failed to get alias: %w", err)
	}

	return alias, nil
}

// Touch инкрементирует счетчик одним UPDATE-запросом: инкремент и обновление
// updated_at атомарны на уровне строки, конкурентные вызовы не теряют обращений.
func (p *PostgresStorage) Touch(ctx context.Context, code string) (*Alias, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE aliases
		 SET access_count = access_count + 1, updated_at = now()
		 WHERE code = $1
		 RETURNING `+aliasColumns, code)

	alias, err := scanAlias(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Code: code}
		}
		return nil, fmt.Errorf("failed to touch alias: %w", err)
	}

	return alias, nil
}

func (p *PostgresStorage) UpdateTarget(ctx context.Context, code, targetURL string) (*Alias, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE aliases
		 SET target_url = $2, updated_at = now()
		 WHERE code = $1
		 RETURNING `+aliasColumns, code, targetURL)

	alias, err := scanAlias(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Code: code}
		}
		return nil, fmt.Errorf("failed to update alias: %w", err)
	}

	return alias, nil
}

func (p *PostgresStorage) Delete(ctx context.Context, code string) (bool, error) {
	tag, err := p.db.Exec(ctx, "DELETE FROM aliases WHERE code = $1", code)
	if err != nil {
		return false, fmt.Errorf("failed to delete alias: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *PostgresStorage) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func scanAlias(row pgx.Row) (*Alias, error) {
	var a Alias
	err := row.Scan(&a.ID, &a.Code, &a.TargetURL, &a.CreatedAt, &a.UpdatedAt, &a.AccessCount)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
