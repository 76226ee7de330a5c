// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// IDはDB側で生成されるUUID文字列。作成後は読み取り専用として扱う。
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IdentityProvider は外部IdPの種別を表す。
type IdentityProvider string

// サポートするIdP一覧。
const (
	ProviderGoogle   IdentityProvider = "google"
	ProviderTelegram IdentityProvider = "telegram"
	ProviderAppwrite IdentityProvider = "appwrite"
	ProviderSupabase IdentityProvider = "supabase"
	ProviderApple    IdentityProvider = "apple"
)

// Valid はIdentityProviderがサポート対象かを検証する。
func (p IdentityProvider) Valid() bool {
	switch p {
	case ProviderGoogle, ProviderTelegram, ProviderAppwrite, ProviderSupabase, ProviderApple:
		return true
	}
	return false
}

// UserIdentity は外部IdPとの紐付け情報を表す。
// (ID, Provider) の組で一意。同じIDでもProviderが異なれば別のidentityとなる。
// 複数のidentityが同一のUserIDを参照しうる（ユーザーは複数のIdPでログイン可能）。
type UserIdentity struct {
	ID        string           `json:"id"`
	Provider  IdentityProvider `json:"provider"`
	UserID    string           `json:"user_id"`
	CreatedAt time.Time        `json:"created_at"`
}
