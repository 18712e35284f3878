// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/postboard/internal/model"
)

// AccountRepository はアカウント（usersテーブル）の永続化インターフェース。
// マッピング以外のロジックは持たない。
type AccountRepository interface {
	// ListAll は全アカウントを返す。フィルタ・ページネーション・順序保証なし。
	ListAll(ctx context.Context) ([]*model.Account, error)

	// Create はアカウントを1行挿入し、ストアが採番したタイムスタンプを含む
	// 挿入後の行を返す。IDが既に存在する場合はKindConflictのAPIErrorを返す。
	Create(ctx context.Context, account *model.Account) (*model.Account, error)
}

// PostRepository は投稿（postsテーブル）の永続化インターフェース。
type PostRepository interface {
	// ListAll は全投稿を返す。フィルタ・ページネーション・順序保証なし。
	ListAll(ctx context.Context) ([]*model.Post, error)

	// Create は投稿を1行挿入し、挿入後の行を返す。
	// 所有者アカウントが存在しない場合はKindConflictのAPIErrorを返す。
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDの有効なセッションを取得する。
	// 存在しない、または期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}
