// Package auth は外部IDプロバイダーとの連携とセッション管理を提供する。
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hitoshi/postboard/internal/model"
)

// Provider は外部IDプロバイダーのインターフェース。
// プロバイダーの内部（トークン発行・資格情報の保管）はこのシステムにとって不透明であり、
// ここでは「資格情報からIdentityを得る」操作だけを抽象化する。
type Provider interface {
	// SignUp は新しいIdentityをプロバイダーに登録する。
	SignUp(ctx context.Context, email, password string) (*model.Identity, error)
	// SignIn は資格情報を検証し、対応するIdentityを返す。
	SignIn(ctx context.Context, email, password string) (*model.Identity, error)
}

// HTTPProviderConfig はHTTPProviderの設定。
type HTTPProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// テスト用にオーバーライド可能なURL
	SignUpURL string
	SignInURL string
}

// HTTPProvider はHTTP APIを公開するIDプロバイダーのクライアント実装。
type HTTPProvider struct {
	config HTTPProviderConfig
	client *http.Client
}

// NewHTTPProvider はHTTPProviderを生成する。
func NewHTTPProvider(config HTTPProviderConfig) *HTTPProvider {
	if config.SignUpURL == "" {
		config.SignUpURL = config.BaseURL + "/signup"
	}
	if config.SignInURL == "" {
		config.SignInURL = config.BaseURL + "/token?grant_type=password"
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

// identityResponse はプロバイダーのIdentityレスポンス。
type identityResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// credentialsRequest はプロバイダーへの資格情報リクエストボディ。
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp は新しいIdentityをプロバイダーに登録する。
func (p *HTTPProvider) SignUp(ctx context.Context, email, password string) (*model.Identity, error) {
	return p.post(ctx, p.config.SignUpURL, email, password)
}

// SignIn は資格情報を検証し、対応するIdentityを返す。
func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	return p.post(ctx, p.config.SignInURL, email, password)
}

// post は資格情報をプロバイダーにPOSTし、レスポンスをIdentityに変換する。
// プロバイダーの4xxは型付きAPIErrorに分類し、それ以外の失敗はラップして返す。
func (p *HTTPProvider) post(ctx context.Context, url, email, password string) (*model.Identity, error) {
	payload, err := json.Marshal(credentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// fallthroughせず下でデコード
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, model.NewValidationError("invalid email or password")
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, model.NewUnauthorizedError()
	case http.StatusConflict:
		return nil, model.NewConflictError("identity already registered")
	default:
		return nil, fmt.Errorf("identity provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var ir identityResponse
	if err := json.Unmarshal(body, &ir); err != nil {
		return nil, fmt.Errorf("failed to parse identity response: %w", err)
	}
	if ir.ID == "" {
		return nil, fmt.Errorf("identity response missing id")
	}

	return &model.Identity{
		ID:        ir.ID,
		Email:     ir.Email,
		CreatedAt: ir.CreatedAt,
	}, nil
}

// compile-time interface check
var _ Provider = (*HTTPProvider)(nil)
