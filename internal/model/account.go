// Package model はドメインモデルを定義する。
package model

import "time"

// Account は外部IDプロバイダーのIDをキーとするローカルプロファイル行を表す。
// IDはプロバイダーが発行した識別子であり、このシステムでは生成しない。
type Account struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
