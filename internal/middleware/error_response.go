package middleware

import (
	"encoding/json"
	"net/http"
)

// errorResponseBody はAPIエラーレスポンスの統一フォーマット。
// すべてのエンドポイントで {"error": <string>} の形を守る。
type errorResponseBody struct {
	Error string `json:"error"`
}

// WriteError は統一フォーマットでHTTPエラーレスポンスを書き込む。
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponseBody{Error: message})
}

// WriteUnauthorized は401の統一レスポンスを書き込む。
// ボディは常に {"error":"Unauthorized"}。
func WriteUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "Unauthorized")
}
