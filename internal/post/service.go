// Package post は投稿管理のビジネスロジックを提供する。
package post

import (
	"context"

	"github.com/google/uuid"

	"github.com/hitoshi/postboard/internal/model"
	"github.com/hitoshi/postboard/internal/repository"
)

// maxTitleLength はtitleカラムの上限長。
const maxTitleLength = 255

// Sanitizer は投稿本文のサニタイズに必要なインターフェース。
// security.ContentSanitizerの部分集合として定義する。
type Sanitizer interface {
	Sanitize(raw string) string
}

// CreateInput は投稿作成の入力。
// 所有者IDは入力に含まれない。常に認証済み呼び出し元のIDを使用する。
type CreateInput struct {
	Title     string
	Content   string
	Published bool
}

// Service は投稿に関するビジネスロジックを提供する。
type Service struct {
	repo      repository.PostRepository
	sanitizer Sanitizer
}

// NewService はServiceを生成する。
func NewService(repo repository.PostRepository, sanitizer Sanitizer) *Service {
	return &Service{
		repo:      repo,
		sanitizer: sanitizer,
	}
}

// List は全投稿を返す。読み取りは未認証アクセスを許可する設計。
func (s *Service) List(ctx context.Context) ([]*model.Post, error) {
	return s.repo.ListAll(ctx)
}

// Create はownerIDが所有する投稿を作成する。
// ownerIDはハンドラー層が認証済み呼び出し元のIDを注入する。
// publishedが省略された場合（false）は下書き（0）として保存する。
func (s *Service) Create(ctx context.Context, ownerID string, input CreateInput) (*model.Post, error) {
	if ownerID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if input.Title == "" {
		return nil, model.NewValidationError("title is required")
	}
	if len(input.Title) > maxTitleLength {
		return nil, model.NewValidationError("title is too long")
	}

	published := model.PostDraft
	if input.Published {
		published = model.PostPublished
	}

	p := &model.Post{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Title:     input.Title,
		Content:   s.sanitizer.Sanitize(input.Content),
		Published: published,
	}

	return s.repo.Create(ctx, p)
}
