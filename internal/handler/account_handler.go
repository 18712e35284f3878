package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/postboard/internal/account"
	"github.com/hitoshi/postboard/internal/middleware"
	"github.com/hitoshi/postboard/internal/model"
)

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	// List は全アカウントを返す。
	List(ctx context.Context) ([]*model.Account, error)
	// Create は認証済み呼び出し元のIDをキーとするアカウントを作成する。
	Create(ctx context.Context, caller *model.Identity, input account.CreateInput) (*model.Account, error)
}

// AccountHandler はアカウント管理のHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{
		service: service,
	}
}

// createAccountRequest はアカウント作成リクエストのボディ。
// idは受け付けない。常に認証済み呼び出し元のIDが使われる。
type createAccountRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

// ListAccounts は全アカウント一覧を取得する。
// GET /api/users
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.IdentityFromContext(r.Context()); err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	accounts, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, newAccountResponse(a))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateAccount は認証済み呼び出し元のアカウントを作成する。
// POST /api/users
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), caller, account.CreateInput{
		Email:     req.Email,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newAccountResponse(created))
}
