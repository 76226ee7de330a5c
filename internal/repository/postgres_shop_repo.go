package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// PostgresShopRepo はPostgreSQLを使用した店舗リポジトリ。
type PostgresShopRepo struct {
	db *sql.DB
}

// NewPostgresShopRepo はPostgresShopRepoを生成する。
func NewPostgresShopRepo(db *sql.DB) *PostgresShopRepo {
	return &PostgresShopRepo{db: db}
}

// FindByOsmID はosm_id完全一致で店舗を検索する。見つからない場合はnilを返す。
func (r *PostgresShopRepo) FindByOsmID(ctx context.Context, osmID string) (*model.Shop, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, osm_id, country_code, company_id, address, osm_data, creator_user_id, creation_time
		 FROM shops
		 WHERE osm_id = $1`,
		osmID,
	)
	return scanShop(row)
}

// FindByLocation は (address, company_id, country_code) の3つ組で店舗を検索する。
// 見つからない場合はnilを返す。
func (r *PostgresShopRepo) FindByLocation(ctx context.Context, address, companyID, countryCode string) (*model.Shop, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, osm_id, country_code, company_id, address, osm_data, creator_user_id, creation_time
		 FROM shops
		 WHERE address = $1 AND company_id = $2 AND country_code = $3
		 LIMIT 1`,
		address, companyID, countryCode,
	)
	return scanShop(row)
}

// Create は店舗を挿入し、DB側で採番されたidを返す。
// shop.IDは挿入対象に含めず、bigserialの採番に任せる。
func (r *PostgresShopRepo) Create(ctx context.Context, shop *model.Shop) (int64, error) {
	osmData, err := marshalOsmData(shop.OsmData)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO shops (osm_id, country_code, company_id, address, osm_data, creator_user_id, creation_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		shop.OsmID,
		nullString(shop.CountryCode),
		nullString(shop.CompanyID),
		nullString(shop.Address),
		osmData,
		nullString(shop.CreatorUserID),
		shop.CreationTime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert shop: %w", err)
	}

	return id, nil
}

// scanShop は1行分の店舗レコードをスキャンする。
// country_code等のレガシーなNULL列は空値としてモデルに写す。
func scanShop(row *sql.Row) (*model.Shop, error) {
	shop := &model.Shop{}
	var (
		id            int64
		countryCode   sql.NullString
		companyID     sql.NullString
		address       sql.NullString
		osmData       []byte
		creatorUserID sql.NullString
	)

	err := row.Scan(&id, &shop.OsmID, &countryCode, &companyID, &address, &osmData, &creatorUserID, &shop.CreationTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan shop: %w", err)
	}

	shop.ID = &id
	shop.CountryCode = countryCode.String
	shop.CompanyID = companyID.String
	shop.Address = address.String
	shop.CreatorUserID = creatorUserID.String

	if len(osmData) > 0 {
		var od model.OsmData
		if err := json.Unmarshal(osmData, &od); err != nil {
			return nil, fmt.Errorf("failed to unmarshal osm_data: %w", err)
		}
		shop.OsmData = &od
	}

	return shop, nil
}

// marshalOsmData はosm_dataをjsonb列向けにシリアライズする。nilはNULLになる。
func marshalOsmData(od *model.OsmData) ([]byte, error) {
	if od == nil {
		return nil, nil
	}
	data, err := json.Marshal(od)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal osm_data: %w", err)
	}
	return data, nil
}

// compile-time interface check
var _ ShopRepository = (*PostgresShopRepo)(nil)
