// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizer はユーザー投稿の本文HTMLをサニタイズし、
// 保存データを経由したXSSからフロントエンドを保護する。
// bluemondayの許可リストベースのポリシーで安全なタグのみを通過させる。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer は投稿本文のサニタイズを行う。
// ポリシーはイミュータブルでスレッドセーフ。同一入力に対して常に同一出力を返す。
type ContentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerを生成する。
// 許可タグ: p, br, a, ul, ol, li, blockquote, pre, code, strong, em。
// scriptやiframe、on*イベント属性は許可リストに含めないことで除去される。
// aタグはhref属性のみ許可し、rel="noreferrer"を強制付与する。
// プレーンテキストの投稿はそのまま通過する。
func NewContentSanitizer() *ContentSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoReferrerOnLinks(true)

	return &ContentSanitizer{
		policy: p,
	}
}

// Sanitize は本文HTMLをサニタイズして安全なHTMLを返す。
// 空文字列の入力には空文字列を返す。
func (s *ContentSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
