package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/yanibasnist/BestFreeSignalBot/internal/domain"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/model"
	"github.com/yanibasnist/BestFreeSignalBot/internal/domain/ports/repository"
)

var _ repository.PostRepository = (*PostgresPostRepo)(nil)

type PostgresPostRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPostRepo(pool *pgxpool.Pool) *PostgresPostRepo {
	return &PostgresPostRepo{pool: pool}
}

// postContent is the opaque blob holding the four content fields. Channels
// is a derived copy of the canonical channels column, kept for captions; the
// two are written by separate statements and can diverge after a crash.
type postContent struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Main        model.Payload           `json:"main"`
	Intro       model.Payload           `json:"intro"`
	Channels    []model.RequiredChannel `json:"channels,omitempty"`
}

func (r *PostgresPostRepo) Create(ctx context.Context, p *model.Post) (int64, error) {
	content, err := json.Marshal(postContent{
		Title:       p.Title,
		Description: p.Description,
		Main:        p.Main,
		Intro:       p.Intro,
		Channels:    p.RequiredChannels,
	})
	if err != nil {
		return 0, storageErr("encode post content", err)
	}
	channels, err := json.Marshal(channelsOrEmpty(p.RequiredChannels))
	if err != nil {
		return 0, storageErr("encode post channels", err)
	}

	var id int64
	const q = `INSERT INTO posts (content, channels) VALUES ($1, $2) RETURNING id;`
	if err := r.pool.QueryRow(ctx, q, content, channels).Scan(&id); err != nil {
		return 0, storageErr("insert post", err)
	}
	p.ID = id
	return id, nil
}

func (r *PostgresPostRepo) Find(ctx context.Context, id int64) (*model.Post, error) {
	const q = `SELECT content, channels FROM posts WHERE id=$1;`
	var rawContent, rawChannels []byte
	if err := r.pool.QueryRow(ctx, q, id).Scan(&rawContent, &rawChannels); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("select post", err)
	}

	// A malformed or missing blob decodes to the empty default rather than
	// failing the read.
	var content postContent
	_ = json.Unmarshal(rawContent, &content)
	var channels []model.RequiredChannel
	_ = json.Unmarshal(rawChannels, &channels)

	return &model.Post{
		ID:               id,
		Title:            content.Title,
		Description:      content.Description,
		Main:             content.Main,
		Intro:            content.Intro,
		RequiredChannels: channels,
	}, nil
}

func (r *PostgresPostRepo) UpdateTitle(ctx context.Context, id int64, title string) error {
	const q = `UPDATE posts SET content = jsonb_set(content, '{title}', to_jsonb($2::text)) WHERE id=$1;`
	return r.updateOne(ctx, q, id, title)
}

func (r *PostgresPostRepo) UpdateDescription(ctx context.Context, id int64, description string) error {
	const q = `UPDATE posts SET content = jsonb_set(content, '{description}', to_jsonb($2::text)) WHERE id=$1;`
	return r.updateOne(ctx, q, id, description)
}

// UpdateChannels writes the canonical channels column first, then refreshes
// the derived copy inside the content blob. The two statements are not
// transactional; a crash in between leaves the blob copy stale.
func (r *PostgresPostRepo) UpdateChannels(ctx context.Context, id int64, channels []model.RequiredChannel) error {
	raw, err := json.Marshal(channelsOrEmpty(channels))
	if err != nil {
		return storageErr("encode post channels", err)
	}
	const q1 = `UPDATE posts SET channels = $2::jsonb WHERE id=$1;`
	if err := r.updateOne(ctx, q1, id, raw); err != nil {
		return err
	}
	const q2 = `UPDATE posts SET content = jsonb_set(content, '{channels}', $2::jsonb) WHERE id=$1;`
	return r.updateOne(ctx, q2, id, raw)
}

func (r *PostgresPostRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1;`, id)
	if err != nil {
		return storageErr("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepo) ListRecent(ctx context.Context, limit int) ([]repository.PostSummary, error) {
	const q = `SELECT id, COALESCE(content->>'title', '') FROM posts ORDER BY id DESC LIMIT $1;`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, storageErr("list posts", err)
	}
	defer rows.Close()

	var out []repository.PostSummary
	for rows.Next() {
		var s repository.PostSummary
		if err := rows.Scan(&s.ID, &s.Title); err != nil {
			return nil, storageErr("scan post summary", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresPostRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts;`).Scan(&n); err != nil {
		return 0, storageErr("count posts", err)
	}
	return n, nil
}

func (r *PostgresPostRepo) updateOne(ctx context.Context, q string, id int64, arg any) error {
	tag, err := r.pool.Exec(ctx, q, id, arg)
	if err != nil {
		return storageErr("update post", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func channelsOrEmpty(channels []model.RequiredChannel) []model.RequiredChannel {
	if channels == nil {
		return []model.RequiredChannel{}
	}
	return channels
}
