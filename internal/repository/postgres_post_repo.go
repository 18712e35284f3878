package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/postboard/internal/model"
)

// PostgresPostRepo はPostgreSQLを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *sql.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *sql.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// ListAll は全投稿を返す。
func (r *PostgresPostRepo) ListAll(ctx context.Context) ([]*model.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, COALESCE(content, ''), published, created_at, updated_at
		 FROM posts`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*model.Post{}
	for rows.Next() {
		p := &model.Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return posts, nil
}

// Create は投稿を1行挿入し、挿入後の行を返す。
// user_idの外部キー違反（所有者アカウント未作成）はKindConflictのAPIErrorとして返す。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	created := &model.Post{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (id, user_id, title, content, published)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		 RETURNING id, user_id, title, COALESCE(content, ''), published, created_at, updated_at`,
		post.ID, post.UserID, post.Title, post.Content, post.Published,
	).Scan(&created.ID, &created.UserID, &created.Title, &created.Content, &created.Published, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return nil, model.NewConflictError("no account exists for this user")
		}
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return created, nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
