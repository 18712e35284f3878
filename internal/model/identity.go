package model

import "time"

// Identity は外部IDプロバイダーが保持する「呼び出し元が誰か」の記録を表す。
// このシステムにとってプロバイダーは不透明な外部サービスであり、
// Identityはその応答のスナップショットにすぎない。
type Identity struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Session はユーザーのログインセッションを表す。
// Accountの作成はサインアップと非同期（別の書き込み）であるため、
// セッションはusers行への参照ではなくIdentityのスナップショットを保持する。
type Session struct {
	ID        string
	UserID    string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
