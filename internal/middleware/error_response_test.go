package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestWriteError_WritesUnifiedFormat は統一エラーフォーマットでレスポンスが書き込まれることを検証する。
func TestWriteError_WritesUnifiedFormat(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusBadRequest, "title is required")

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}

	if body["error"] != "title is required" {
		t.Errorf("error = %v, want %q", body["error"], "title is required")
	}
	// ボディには"error"以外のフィールドを含めない
	if len(body) != 1 {
		t.Errorf("body has %d fields, want 1: %v", len(body), body)
	}
}

// TestWriteError_DifferentStatusCodes は異なるステータスコードで正しく動作することを検証する。
func TestWriteError_DifferentStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
	}{
		{"Unauthorized", http.StatusUnauthorized, "Unauthorized"},
		{"BadRequest", http.StatusBadRequest, "email is required"},
		{"NotFound", http.StatusNotFound, "post not found"},
		{"Conflict", http.StatusConflict, "account already exists"},
		{"Internal", http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			WriteError(w, tt.statusCode, tt.message)

			resp := w.Result()
			if resp.StatusCode != tt.statusCode {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.statusCode)
			}

			var body map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}

			if body["error"] != tt.message {
				t.Errorf("error = %q, want %q", body["error"], tt.message)
			}
		})
	}
}

// TestWriteUnauthorized_ExactBody は401レスポンスのボディが固定文言であることを検証する。
func TestWriteUnauthorized_ExactBody(t *testing.T) {
	w := httptest.NewRecorder()

	WriteUnauthorized(w)

	resp := w.Result()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if len(body) != 1 || body["error"] != "Unauthorized" {
		t.Errorf(`body = %v, want {"error":"Unauthorized"}`, body)
	}
}
