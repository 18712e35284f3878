// Package account はアカウント管理のビジネスロジックを提供する。
package account

import (
	"context"

	"github.com/hitoshi/postboard/internal/model"
	"github.com/hitoshi/postboard/internal/repository"
)

// maxEmailLength はemailカラムの上限長。
const maxEmailLength = 255

// CreateInput はアカウント作成の入力。
// アカウントIDは入力に含まれない。常に認証済み呼び出し元のIDを使用する。
type CreateInput struct {
	Email     string
	FullName  string
	AvatarURL string
}

// Service はアカウントに関するビジネスロジックを提供する。
type Service struct {
	repo repository.AccountRepository
}

// NewService はServiceを生成する。
func NewService(repo repository.AccountRepository) *Service {
	return &Service{repo: repo}
}

// List は全アカウントを返す。
// 認証の強制はハンドラー層が行う。
func (s *Service) List(ctx context.Context) ([]*model.Account, error) {
	return s.repo.ListAll(ctx)
}

// Create は認証済み呼び出し元のIDをキーとするアカウントを作成する。
// 呼び出し元が任意のIDを指定することはできない。
// 同一IDのアカウントが既に存在する場合はKindConflictのAPIErrorを返す。
func (s *Service) Create(ctx context.Context, caller *model.Identity, input CreateInput) (*model.Account, error) {
	if caller == nil || caller.ID == "" {
		return nil, model.NewUnauthorizedError()
	}
	if input.Email == "" {
		return nil, model.NewValidationError("email is required")
	}
	if len(input.Email) > maxEmailLength {
		return nil, model.NewValidationError("email is too long")
	}

	account := &model.Account{
		ID:        caller.ID,
		Email:     input.Email,
		FullName:  input.FullName,
		AvatarURL: input.AvatarURL,
	}

	return s.repo.Create(ctx, account)
}
