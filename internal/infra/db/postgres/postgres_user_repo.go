package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

// Save inserts on first contact; later saves only refresh the username, the
// first_seen column is never overwritten.
func (r *PostgresUserRepo) Save(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (telegram_id, username, first_seen) VALUES ($1, $2, $3)
ON CONFLICT (telegram_id) DO UPDATE SET username = EXCLUDED.username;`
	if _, err := r.pool.Exec(ctx, q, u.TelegramID, u.Username, u.FirstSeen); err != nil {
		return storageErr("upsert user", err)
	}
	return nil
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	const q = `SELECT telegram_id, username, first_seen FROM users WHERE telegram_id=$1;`
	var u model.User
	if err := r.pool.QueryRow(ctx, q, tgID).Scan(&u.TelegramID, &u.Username, &u.FirstSeen); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("select user", err)
	}
	return &u, nil
}

func (r *PostgresUserRepo) List(ctx context.Context) ([]*model.User, error) {
	const q = `SELECT telegram_id, username, first_seen FROM users ORDER BY first_seen;`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.TelegramID, &u.Username, &u.FirstSeen); err != nil {
			return nil, storageErr("scan user", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, storageErr("count users", err)
	}
	return n, nil
}
