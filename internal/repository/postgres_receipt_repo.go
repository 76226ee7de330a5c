package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// PostgresReceiptRepo はPostgreSQLを使用したレシートリポジトリ。
// 購入品目はreceipts.purchases（jsonb列）にレシート本体と一緒に格納される。
type PostgresReceiptRepo struct {
	db *sql.DB
}

// NewPostgresReceiptRepo はPostgresReceiptRepoを生成する。
func NewPostgresReceiptRepo(db *sql.DB) *PostgresReceiptRepo {
	return &PostgresReceiptRepo{db: db}
}

// FindByID は指定IDのレシートを取得する。見つからない場合はnilを返す。
func (r *PostgresReceiptRepo) FindByID(ctx context.Context, id string) (*model.Receipt, error) {
	receipt := &model.Receipt{}
	var (
		currencyCode sql.NullString
		shopID       sql.NullInt64
		canonicalURL sql.NullString
		purchases    []byte
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, user_id, company_id, company_name, shop_address, country_code,
		        cash_register_id, key, currency_code, total_amount, shop_id,
		        receipt_url, receipt_canonical_url, purchases
		 FROM receipts
		 WHERE id = $1`,
		id,
	).Scan(
		&receipt.ID, &receipt.Date, &receipt.UserID, &receipt.CompanyID, &receipt.CompanyName,
		&receipt.ShopAddress, &receipt.CountryCode, &receipt.CashRegisterID, &receipt.Key,
		&currencyCode, &receipt.TotalAmount, &shopID,
		&receipt.ReceiptURL, &canonicalURL, &purchases,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find receipt by ID: %w", err)
	}

	receipt.CurrencyCode = currencyCode.String
	receipt.ReceiptCanonicalURL = canonicalURL.String
	if shopID.Valid {
		receipt.ShopID = &shopID.Int64
	}

	if len(purchases) > 0 {
		if err := json.Unmarshal(purchases, &receipt.Purchases); err != nil {
			return nil, fmt.Errorf("failed to unmarshal purchases: %w", err)
		}
	}

	return receipt, nil
}

// Upsert はレシートを主キーで冪等にUPSERTする。
// 既存行がある場合は全フィールドを上書きする。履歴は保持しない。
func (r *PostgresReceiptRepo) Upsert(ctx context.Context, receipt *model.Receipt) error {
	purchases, err := marshalPurchases(receipt.Purchases)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO receipts (id, date, user_id, company_id, company_name, shop_address,
		                       country_code, cash_register_id, key, currency_code, total_amount,
		                       shop_id, receipt_url, receipt_canonical_url, purchases)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (id) DO UPDATE SET
		   date = EXCLUDED.date,
		   user_id = EXCLUDED.user_id,
		   company_id = EXCLUDED.company_id,
		   company_name = EXCLUDED.company_name,
		   shop_address = EXCLUDED.shop_address,
		   country_code = EXCLUDED.country_code,
		   cash_register_id = EXCLUDED.cash_register_id,
		   key = EXCLUDED.key,
		   currency_code = EXCLUDED.currency_code,
		   total_amount = EXCLUDED.total_amount,
		   shop_id = EXCLUDED.shop_id,
		   receipt_url = EXCLUDED.receipt_url,
		   receipt_canonical_url = EXCLUDED.receipt_canonical_url,
		   purchases = EXCLUDED.purchases`,
		receipt.ID, receipt.Date, receipt.UserID, receipt.CompanyID, receipt.CompanyName,
		receipt.ShopAddress, receipt.CountryCode, receipt.CashRegisterID, receipt.Key,
		nullString(receipt.CurrencyCode), receipt.TotalAmount, nullInt64(receipt.ShopID),
		receipt.ReceiptURL, nullString(receipt.ReceiptCanonicalURL), purchases,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert receipt: %w", err)
	}

	return nil
}

// Update は既存レシートを上書き更新する。更新行が存在しない場合はfalseを返す。
func (r *PostgresReceiptRepo) Update(ctx context.Context, receipt *model.Receipt) (bool, error) {
	purchases, err := marshalPurchases(receipt.Purchases)
	if err != nil {
		return false, err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE receipts SET
		   date = $2, user_id = $3, company_id = $4, company_name = $5, shop_address = $6,
		   country_code = $7, cash_register_id = $8, key = $9, currency_code = $10,
		   total_amount = $11, shop_id = $12, receipt_url = $13, receipt_canonical_url = $14,
		   purchases = $15
		 WHERE id = $1`,
		receipt.ID, receipt.Date, receipt.UserID, receipt.CompanyID, receipt.CompanyName,
		receipt.ShopAddress, receipt.CountryCode, receipt.CashRegisterID, receipt.Key,
		nullString(receipt.CurrencyCode), receipt.TotalAmount, nullInt64(receipt.ShopID),
		receipt.ReceiptURL, nullString(receipt.ReceiptCanonicalURL), purchases,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update receipt: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// marshalPurchases は購入品目リストをjsonb列向けにシリアライズする。
// nilは空配列として格納する。
func marshalPurchases(purchases []model.PurchasedItem) ([]byte, error) {
	if purchases == nil {
		purchases = []model.PurchasedItem{}
	}
	data, err := json.Marshal(purchases)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal purchases: %w", err)
	}
	return data, nil
}

// nullInt64 はnilポインタをNULLとして扱うためのヘルパー。
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// compile-time interface check
var _ ReceiptRepository = (*PostgresReceiptRepo)(nil)
