package model

import "time"

// 公開フラグの値。publishedカラムは0/1のinteger。
const (
	PostDraft     = 0
	PostPublished = 1
)

// Post はユーザーが所有するコンテンツを表す。
// UserIDは常に認証済み呼び出し元のIDがサーバー側で注入される。
type Post struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Published int
	CreatedAt time.Time
	UpdatedAt time.Time
}
