package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// PostgresShopItemRepo はPostgreSQLを使用した店舗カタログ品目リポジトリ。
type PostgresShopItemRepo struct {
	db *sql.DB
}

// NewPostgresShopItemRepo はPostgresShopItemRepoを生成する。
func NewPostgresShopItemRepo(db *sql.DB) *PostgresShopItemRepo {
	return &PostgresShopItemRepo{db: db}
}

// FindByNameAndShop は (name, shop_id) でカタログ品目を検索する。
// 見つからない場合はnilを返す。statusがNULLの行はpendingとして返す。
func (r *PostgresShopItemRepo) FindByNameAndShop(ctx context.Context, name string, shopID int64) (*model.ShopItem, error) {
	item := &model.ShopItem{}
	var status sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, shop_id, name, status
		 FROM shop_items
		 WHERE name = $1 AND shop_id = $2
		 LIMIT 1`,
		name, shopID,
	).Scan(&item.ID, &item.ShopID, &item.Name, &status)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find shop item: %w", err)
	}

	if status.Valid {
		item.Status = model.ItemBarcodeStatus(status.String)
	} else {
		item.Status = model.BarcodeStatusPending
	}

	return item, nil
}

// compile-time interface check
var _ ShopItemRepository = (*PostgresShopItemRepo)(nil)
