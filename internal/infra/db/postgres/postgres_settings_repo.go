package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

var _ repository.SettingsRepository = (*PostgresSettingsRepo)(nil)

type PostgresSettingsRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresSettingsRepo(pool *pgxpool.Pool) *PostgresSettingsRepo {
	return &PostgresSettingsRepo{pool: pool}
}

func (r *PostgresSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", storageErr("select setting", err)
	}
	return value, nil
}

func (r *PostgresSettingsRepo) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO settings (key, value) VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`
	if _, err := r.pool.Exec(ctx, q, key, value); err != nil {
		return storageErr("upsert setting", err)
	}
	return nil
}
