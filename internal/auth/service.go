package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/postboard/internal/model"
	"github.com/hitoshi/postboard/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service はサインアップ・サインイン・サインアウトとセッション発行を提供する。
// 資格情報の検証は外部IDプロバイダーに委譲し、セッションだけをローカルに保持する。
type Service struct {
	provider    Provider
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(provider Provider, sessionRepo repository.SessionRepository, config ServiceConfig) *Service {
	return &Service{
		provider:    provider,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// SignUp はプロバイダーに新規Identityを登録し、セッションを発行する。
// usersテーブルへのAccount行の作成はここでは行わない（別途POST /api/usersで行う）。
func (s *Service) SignUp(ctx context.Context, email, password string) (*model.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	identity, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, signupError(err)
	}

	session, err := s.createSession(ctx, identity)
	if err != nil {
		return nil, err
	}

	slog.Info("identity signed up",
		slog.String("user_id", identity.ID),
	)
	return session, nil
}

// SignIn はプロバイダーで資格情報を検証し、セッションを発行する。
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, signupError(err)
	}

	session, err := s.createSession(ctx, identity)
	if err != nil {
		return nil, err
	}

	slog.Info("identity signed in",
		slog.String("user_id", identity.ID),
	)
	return session, nil
}

// Logout はセッションを破棄する。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("session destroyed", slog.String("session_id", sessionID))
	return nil
}

// CurrentUser はセッションIDから現在のIdentityを取得する。
// セッションが存在しない・期限切れの場合は(nil, nil)を返す。
// 「セッションなし」は失敗ではなく通常の結果として表現する。
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*model.Identity, error) {
	if sessionID == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	return &model.Identity{
		ID:        session.UserID,
		Email:     session.Email,
		CreatedAt: session.CreatedAt,
	}, nil
}

// createSession はIdentityのスナップショットを持つセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, identity *model.Identity) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    identity.ID,
		Email:     identity.Email,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// validateCredentials はemailとpasswordの存在を検証する。
func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return model.NewValidationError("email and password are required")
	}
	return nil
}

// signupError はプロバイダーのエラーを呼び出し元に伝播させる。
// 型付きAPIErrorはそのまま、それ以外はラップして返す。
func signupError(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return fmt.Errorf("identity provider call failed: %w", err)
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
