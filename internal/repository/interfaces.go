// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// CreateWithIdentity はユーザーとidentityを同一トランザクションで作成する。
	CreateWithIdentity(ctx context.Context, user *model.User, identity *model.UserIdentity) error
}

// IdentityRepository は外部IdP紐付け情報の永続化インターフェース。
type IdentityRepository interface {
	// FindByIDAndProvider は (id, provider) 複合キーでidentityを検索する。
	// 見つからない場合はnilを返す。
	FindByIDAndProvider(ctx context.Context, id string, provider model.IdentityProvider) (*model.UserIdentity, error)

	// Create はidentityを作成する。
	Create(ctx context.Context, identity *model.UserIdentity) error

	// Update は (id, provider) で特定される行の残りのフィールドを更新する。
	// キーフィールド自体は更新対象にならない。更新行が存在しない場合はfalseを返す。
	Update(ctx context.Context, identity *model.UserIdentity) (bool, error)
}

// ShopRepository は店舗データの永続化インターフェース。
type ShopRepository interface {
	// FindByOsmID はosm_id完全一致で店舗を検索する。見つからない場合はnilを返す。
	// osm_idが店舗の正規の重複判定キーである。
	FindByOsmID(ctx context.Context, osmID string) (*model.Shop, error)

	// FindByLocation は (address, company_id, country_code) の3つ組で店舗を検索する。
	// レシートの店舗解決で使用される。見つからない場合はnilを返す。
	FindByLocation(ctx context.Context, address, companyID, countryCode string) (*model.Shop, error)

	// Create は店舗を挿入し、DB側で採番されたidを返す。
	Create(ctx context.Context, shop *model.Shop) (int64, error)
}

// ShopItemRepository は店舗カタログ品目の永続化インターフェース。
type ShopItemRepository interface {
	// FindByNameAndShop は (name, shop_id) でカタログ品目を検索する。
	// 見つからない場合はnilを返す。
	FindByNameAndShop(ctx context.Context, name string, shopID int64) (*model.ShopItem, error)
}

// ReceiptRepository はレシートデータの永続化インターフェース。
type ReceiptRepository interface {
	// FindByID は指定IDのレシートを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Receipt, error)

	// Upsert はレシートを主キーで冪等にUPSERTする。
	// 同じIDでの再送信は重複作成ではなく上書き更新になる。
	Upsert(ctx context.Context, receipt *model.Receipt) error

	// Update は既存レシートを上書き更新する。更新行が存在しない場合はfalseを返す。
	Update(ctx context.Context, receipt *model.Receipt) (bool, error)
}

// ReceiptURLRepository はレシートURL対応表の永続化インターフェース。
type ReceiptURLRepository interface {
	// FindByKey はURLハッシュキーでReceiptURLを取得する。見つからない場合はnilを返す。
	FindByKey(ctx context.Context, key string) (*model.ReceiptURL, error)

	// Create はReceiptURLを作成する。同一キーが既に存在する場合は何もしない
	// （同じURLの再登録は重複行にならない）。
	Create(ctx context.Context, receiptURL *model.ReceiptURL) error
}
