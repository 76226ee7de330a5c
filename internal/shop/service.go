// Package shop は店舗の重複解決ロジックを提供する。
package shop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AnimalLiberationTech/pbapi/internal/metrics"
	"github.com/AnimalLiberationTech/pbapi/internal/model"
	"github.com/AnimalLiberationTech/pbapi/internal/repository"
	"github.com/AnimalLiberationTech/pbapi/internal/security"
)

// Service は店舗に関するビジネスロジックを提供する。
type Service struct {
	shopRepo  repository.ShopRepository
	sanitizer security.TextSanitizerService
	collector metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(
	shopRepo repository.ShopRepository,
	sanitizer security.TextSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		shopRepo:  shopRepo,
		sanitizer: sanitizer,
		collector: collector,
	}
}

// GetOrCreate はosm_idをキーとして店舗を冪等に解決する。
//
// 既存店舗が見つかった場合、保存側でNULLのレガシーフィールド
// （country_code, company_id, address, osm_data）のみを入力側の値で補完して返す。
// 保存済みの非NULL値と osm_id 自体は決して上書きしない。補完は返り値のみに
// 反映され、保存行の書き換えは行わない（レガシー行の片方向移行パス）。
//
// 見つからない場合は店舗を挿入し、DB側で採番されたidを設定して返す。
func (s *Service) GetOrCreate(ctx context.Context, shop *model.Shop) (*model.Shop, error) {
	// osm_id・creation_timeの導出を確定させる。明示指定された値は保持される。
	shop.Normalize()
	if shop.OsmData != nil {
		shop.OsmData.DisplayName = s.sanitizer.Sanitize(shop.OsmData.DisplayName)
	}

	existing, err := s.shopRepo.FindByOsmID(ctx, shop.OsmID)
	if err != nil {
		return nil, fmt.Errorf("failed to find shop by osm_id: %w", err)
	}

	if existing != nil {
		merged := backfill(existing, shop)
		s.collector.RecordShopMatched()
		slog.Info("existing shop matched",
			slog.String("osm_id", merged.OsmID),
			slog.Int64("shop_id", *merged.ID),
		)
		return merged, nil
	}

	id, err := s.shopRepo.Create(ctx, shop)
	if err != nil {
		return nil, fmt.Errorf("failed to create shop: %w", err)
	}
	shop.ID = &id

	s.collector.RecordShopCreated()
	slog.Info("new shop created",
		slog.String("osm_id", shop.OsmID),
		slog.Int64("shop_id", id),
	)

	return shop, nil
}

// backfill は保存済み店舗の空フィールドを入力側の値で補完する。
// 保存側に値がある場合はそのまま残す。osm_idは補完対象外。
func backfill(stored, incoming *model.Shop) *model.Shop {
	if stored.CountryCode == "" {
		stored.CountryCode = incoming.CountryCode
	}
	if stored.CompanyID == "" {
		stored.CompanyID = incoming.CompanyID
	}
	if stored.Address == "" {
		stored.Address = incoming.Address
	}
	if stored.OsmData == nil {
		stored.OsmData = incoming.OsmData
	}
	return stored
}
