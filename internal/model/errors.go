// Package model はドメインモデルを定義する。
package model

import "fmt"

// ErrorKind はAPIエラーの原因分類を表す閉じた列挙。
// ハンドラー層はこの列挙を網羅的にHTTPステータスコードへ変換する。
type ErrorKind string

const (
	// KindUnauthorized は有効なセッションが存在しないことを示す。401に対応する。
	KindUnauthorized ErrorKind = "unauthorized"
	// KindConflict は一意制約違反などストアの制約衝突を示す。409に対応する。
	KindConflict ErrorKind = "conflict"
	// KindNotFound は対象リソースが存在しないことを示す。404に対応する。
	KindNotFound ErrorKind = "not_found"
	// KindValidation はリクエスト内容の検証エラーを示す。400に対応する。
	KindValidation ErrorKind = "validation"
	// KindInternal は分類不能な内部エラーを示す。500に対応する。
	KindInternal ErrorKind = "internal"
)

// APIError は型付きのAPIエラーを表す。
// Messageはそのままエラーレスポンスボディ {"error": Message} に使われるため、
// 内部詳細を含めてはならない。
type APIError struct {
	Kind    ErrorKind
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// NewUnauthorizedError は認証必須エンドポイントへの未認証アクセスエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Kind:    KindUnauthorized,
		Message: "Unauthorized",
	}
}

// NewConflictError はストアの一意制約違反エラーを生成する。
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewNotFoundError はリソース未検出エラーを生成する。
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: message,
	}
}

// NewValidationError はリクエスト検証エラーを生成する。
func NewValidationError(message string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
	}
}

// NewInternalError は詳細を漏らさない内部エラーを生成する。
// 元のエラーはログにのみ記録すること。
func NewInternalError() *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: "Internal Server Error",
	}
}
