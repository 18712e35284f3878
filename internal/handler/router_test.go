package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/postboard/internal/account"
	"github.com/hitoshi/postboard/internal/model"
	"github.com/hitoshi/postboard/internal/post"
)

// --- ルーター統合テスト用のモック ---

type routerSessionFinder struct {
	sessions map[string]*model.Session
}

func (f *routerSessionFinder) FindByID(ctx context.Context, id string) (*model.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

// newTestRouter は有効セッション"valid-session"（user-1）を持つテスト用ルーターを構築する。
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	finder := &routerSessionFinder{
		sessions: map[string]*model.Session{
			"valid-session": {
				ID:        "valid-session",
				UserID:    "user-1",
				Email:     "a@example.com",
				ExpiresAt: now.Add(24 * time.Hour),
				CreatedAt: now,
			},
		},
	}

	accountService := &mockAccountService{
		listFn: func(ctx context.Context) ([]*model.Account, error) {
			return []*model.Account{
				{ID: "user-1", Email: "a@example.com", CreatedAt: now, UpdatedAt: now},
			}, nil
		},
		createFn: func(ctx context.Context, caller *model.Identity, input account.CreateInput) (*model.Account, error) {
			return &model.Account{ID: caller.ID, Email: input.Email, CreatedAt: now, UpdatedAt: now}, nil
		},
	}

	postService := &mockPostService{
		listFn: func(ctx context.Context) ([]*model.Post, error) {
			return []*model.Post{
				{ID: "p1", UserID: "user-1", Title: "hello", Published: 1, CreatedAt: now, UpdatedAt: now},
			}, nil
		},
		createFn: func(ctx context.Context, ownerID string, input post.CreateInput) (*model.Post, error) {
			return &model.Post{ID: "p-new", UserID: ownerID, Title: input.Title, CreatedAt: now, UpdatedAt: now}, nil
		},
	}

	authService := &mockAuthService{
		signUpFn: func(ctx context.Context, email, password string) (*model.Session, error) {
			return &model.Session{ID: "signup-session", UserID: "user-new", Email: email, CreatedAt: now}, nil
		},
		currentUserFn: func(ctx context.Context, sessionID string) (*model.Identity, error) {
			if sessionID == "valid-session" {
				return &model.Identity{ID: "user-1", Email: "a@example.com", CreatedAt: now}, nil
			}
			return nil, nil
		},
	}

	return NewRouter(&RouterDeps{
		HealthChecker:     &mockHealthChecker{},
		SessionFinder:     finder,
		CORSAllowedOrigin: "http://localhost:3000",
		AuthService:       authService,
		AuthConfig:        testAuthConfig(),
		AccountService:    accountService,
		PostService:       postService,
	})
}

// --- テスト ---

func TestRouter_Health_Returns200(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

func TestRouter_ListPosts_AnonymousAccess_Returns200(t *testing.T) {
	router := newTestRouter(t)

	// Cookieなしで投稿一覧を取得できる
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(body) != 1 {
		t.Errorf("posts = %d, want 1", len(body))
	}
}

func TestRouter_CreatePost_WithoutSession_Returns401(t *testing.T) {
	router := newTestRouter(t)

	body := `{"title":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	// 401ボディは固定フォーマット
	var errBody map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(errBody) != 1 || errBody["error"] != "Unauthorized" {
		t.Errorf(`body = %v, want {"error":"Unauthorized"}`, errBody)
	}
}

func TestRouter_CreatePost_WithSession_Returns201(t *testing.T) {
	router := newTestRouter(t)

	body := `{"title":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var got map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if got["userId"] != "user-1" {
		t.Errorf("userId = %v, want user-1 (owner forced to caller)", got["userId"])
	}
}

func TestRouter_ListUsers_WithoutSession_Returns401(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestRouter_ListUsers_WithSession_Returns200(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

func TestRouter_CreateUser_WithSession_Returns201(t *testing.T) {
	router := newTestRouter(t)

	body := `{"email":"a@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusCreated)
	}
}

func TestRouter_InvalidSession_Returns401(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "unknown-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

func TestRouter_SignUp_SetsSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	body := `{"email":"new@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if sessionCookieFrom(t, resp) == nil {
		t.Error("session cookie should be set after sign-up")
	}
}

func TestRouter_AuthMe_WithSession_Returns200(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "valid-session"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}
}

func TestRouter_OptionsPreflight_Returns204(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want http://localhost:3000", got)
	}
}

func TestRouter_SecurityHeaders_PresentOnAllResponses(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	resp := w.Result()
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := resp.Header.Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestRouter_UnknownPath_Returns404(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusNotFound)
	}
}
