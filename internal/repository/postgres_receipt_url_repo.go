package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// PostgresReceiptURLRepo はPostgreSQLを使用したレシートURL対応表リポジトリ。
type PostgresReceiptURLRepo struct {
	db *sql.DB
}

// NewPostgresReceiptURLRepo はPostgresReceiptURLRepoを生成する。
func NewPostgresReceiptURLRepo(db *sql.DB) *PostgresReceiptURLRepo {
	return &PostgresReceiptURLRepo{db: db}
}

// FindByKey はURLハッシュキーでReceiptURLを取得する。見つからない場合はnilを返す。
func (r *PostgresReceiptURLRepo) FindByKey(ctx context.Context, key string) (*model.ReceiptURL, error) {
	receiptURL := &model.ReceiptURL{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, url, receipt_id FROM receipt_urls WHERE id = $1`,
		key,
	).Scan(&receiptURL.ID, &receiptURL.URL, &receiptURL.ReceiptID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find receipt URL: %w", err)
	}

	return receiptURL, nil
}

// Create はReceiptURLを作成する。
// 同一キー（同一URL）が既に存在する場合は何もしない。同じレシートの再送信で
// URL対応表が重複したりエラーになったりしないための措置。
func (r *PostgresReceiptURLRepo) Create(ctx context.Context, receiptURL *model.ReceiptURL) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO receipt_urls (id, url, receipt_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		receiptURL.ID, receiptURL.URL, receiptURL.ReceiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt URL: %w", err)
	}
	return nil
}

// compile-time interface check
var _ ReceiptURLRepository = (*PostgresReceiptURLRepo)(nil)
