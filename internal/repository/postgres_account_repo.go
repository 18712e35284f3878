package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/hitoshi/postboard/internal/model"
)

// uniqueViolation はPostgreSQLの一意制約違反のSQLSTATE。
const uniqueViolation = pq.ErrorCode("23505")

// foreignKeyViolation はPostgreSQLの外部キー制約違反のSQLSTATE。
const foreignKeyViolation = pq.ErrorCode("23503")

// PostgresAccountRepo はPostgreSQLを使用したアカウントリポジトリ。
type PostgresAccountRepo struct {
	db *sql.DB
}

// NewPostgresAccountRepo はPostgresAccountRepoを生成する。
func NewPostgresAccountRepo(db *sql.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

// ListAll は全アカウントを返す。
func (r *PostgresAccountRepo) ListAll(ctx context.Context) ([]*model.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''), created_at, updated_at
		 FROM users`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*model.Account{}
	for rows.Next() {
		a := &model.Account{}
		if err := rows.Scan(&a.ID, &a.Email, &a.FullName, &a.AvatarURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Create はアカウントを1行挿入し、挿入後の行を返す。
// created_at/updated_atはストアのデフォルトで採番される。
// 同一IDの行が既に存在する場合はKindConflictのAPIErrorを返す。
func (r *PostgresAccountRepo) Create(ctx context.Context, account *model.Account) (*model.Account, error) {
	created := &model.Account{}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, full_name, avatar_url)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		 RETURNING id, email, COALESCE(full_name, ''), COALESCE(avatar_url, ''), created_at, updated_at`,
		account.ID, account.Email, account.FullName, account.AvatarURL,
	).Scan(&created.ID, &created.Email, &created.FullName, &created.AvatarURL, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, model.NewConflictError("account already exists")
		}
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}

	return created, nil
}

// compile-time interface check
var _ AccountRepository = (*PostgresAccountRepo)(nil)
