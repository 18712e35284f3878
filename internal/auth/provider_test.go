package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/postboard/internal/model"
)

func newTestProvider(serverURL string) *HTTPProvider {
	return NewHTTPProvider(HTTPProviderConfig{
		BaseURL:   serverURL,
		APIKey:    "test-api-key",
		Timeout:   5 * time.Second,
		SignUpURL: serverURL + "/signup",
		SignInURL: serverURL + "/signin",
	})
}

func TestHTTPProvider_SignUp_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signup" {
			t.Errorf("path = %q, want /signup", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-api-key" {
			t.Errorf("Authorization = %q, want Bearer test-api-key", got)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["email"] != "new@example.com" {
			t.Errorf("email = %q, want new@example.com", req["email"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":         "provider-user-id",
			"email":      "new@example.com",
			"created_at": "2025-06-01T12:00:00Z",
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	identity, err := provider.SignUp(context.Background(), "new@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if identity.ID != "provider-user-id" {
		t.Errorf("identity.ID = %q, want provider-user-id", identity.ID)
	}
	if identity.Email != "new@example.com" {
		t.Errorf("identity.Email = %q, want new@example.com", identity.Email)
	}
}

func TestHTTPProvider_SignIn_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/signin" {
			t.Errorf("path = %q, want /signin", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":    "user-1",
			"email": "a@example.com",
		})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	identity, err := provider.SignIn(context.Background(), "a@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.ID != "user-1" {
		t.Errorf("identity.ID = %q, want user-1", identity.ID)
	}
}

func TestHTTPProvider_InvalidCredentials_ReturnsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	_, err := provider.SignIn(context.Background(), "a@example.com", "wrong")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != model.KindUnauthorized {
		t.Errorf("error = %v, want unauthorized APIError", err)
	}
}

func TestHTTPProvider_DuplicateEmail_ReturnsConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	_, err := provider.SignUp(context.Background(), "dup@example.com", "secret123")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != model.KindConflict {
		t.Errorf("error = %v, want conflict APIError", err)
	}
}

func TestHTTPProvider_BadRequest_ReturnsValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	_, err := provider.SignUp(context.Background(), "not-an-email", "x")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != model.KindValidation {
		t.Errorf("error = %v, want validation APIError", err)
	}
}

func TestHTTPProvider_ServerError_ReturnsUntypedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	_, err := provider.SignIn(context.Background(), "a@example.com", "secret123")
	if err == nil {
		t.Fatal("expected error")
	}

	// プロバイダーの5xxは型付きAPIErrorにしない
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("5xx should not map to APIError, got %v", apiErr)
	}
}

func TestHTTPProvider_MissingID_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// idのないレスポンス
		json.NewEncoder(w).Encode(map[string]string{"email": "a@example.com"})
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	_, err := provider.SignIn(context.Background(), "a@example.com", "secret123")
	if err == nil {
		t.Fatal("expected error for response without id")
	}
}

func TestHTTPProvider_InvalidJSON_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	_, err := provider.SignIn(context.Background(), "a@example.com", "secret123")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestHTTPProvider_ContextCancellation_ReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := newTestProvider(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := provider.SignIn(ctx, "a@example.com", "secret123")
	if err == nil {
		t.Fatal("expected error on context timeout")
	}
}

func TestNewHTTPProvider_DefaultURLs(t *testing.T) {
	provider := NewHTTPProvider(HTTPProviderConfig{
		BaseURL: "https://idp.example.com/auth/v1",
	})

	if provider.config.SignUpURL != "https://idp.example.com/auth/v1/signup" {
		t.Errorf("SignUpURL = %q, want default /signup", provider.config.SignUpURL)
	}
	if provider.config.SignInURL != "https://idp.example.com/auth/v1/token?grant_type=password" {
		t.Errorf("SignInURL = %q, want default token endpoint", provider.config.SignInURL)
	}
}
