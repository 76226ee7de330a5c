// Package receipt はレシートの保存・検索と店舗・品目解決のロジックを提供する。
package receipt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AnimalLiberationTech/pbapi/internal/metrics"
	"github.com/AnimalLiberationTech/pbapi/internal/model"
	"github.com/AnimalLiberationTech/pbapi/internal/repository"
	"github.com/AnimalLiberationTech/pbapi/internal/security"
)

// Service はレシートに関するビジネスロジックを提供する。
type Service struct {
	receiptRepo  repository.ReceiptRepository
	urlRepo      repository.ReceiptURLRepository
	shopRepo     repository.ShopRepository
	shopItemRepo repository.ShopItemRepository
	sanitizer    security.TextSanitizerService
	collector    metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(
	receiptRepo repository.ReceiptRepository,
	urlRepo repository.ReceiptURLRepository,
	shopRepo repository.ShopRepository,
	shopItemRepo repository.ShopItemRepository,
	sanitizer security.TextSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		receiptRepo:  receiptRepo,
		urlRepo:      urlRepo,
		shopRepo:     shopRepo,
		shopItemRepo: shopItemRepo,
		sanitizer:    sanitizer,
		collector:    collector,
	}
}

// GetByID は主キーでレシートを取得する。見つからない場合はnilを返す。
func (s *Service) GetByID(ctx context.Context, receiptID string) (*model.Receipt, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt by id: %w", err)
	}
	return receipt, nil
}

// GetByURL はレシート取得元URLからレシートを解決する。
// URLのハッシュキーでreceipt_urlsを引き、見つかればreceipt_idで本体を取得する
// 2段階の間接参照を行う。どちらの段階でも未検出はnilを返す（エラーにはしない）。
func (s *Service) GetByURL(ctx context.Context, url string) (*model.Receipt, error) {
	receiptURL, err := s.urlRepo.FindByKey(ctx, model.MakeURLKey(url))
	if err != nil {
		return nil, fmt.Errorf("failed to look up receipt URL: %w", err)
	}
	if receiptURL == nil {
		s.collector.RecordReceiptURLLookup(false)
		return nil, nil
	}

	slog.Info("receipt URL resolved", slog.String("receipt_id", receiptURL.ReceiptID))

	receipt, err := s.receiptRepo.FindByID(ctx, receiptURL.ReceiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt by id: %w", err)
	}

	s.collector.RecordReceiptURLLookup(receipt != nil)
	return receipt, nil
}

// GetOrCreate はレシートを冪等にUPSERTし、店舗・品目の参照を解決する。
//
// 処理順序は固定:
//  1. (shop_address, company_id, country_code) で店舗を解決し、shop_idを設定する。
//  2. 店舗が解決できた場合のみ、各購入品目を (name, shop_id) でカタログ品目と
//     照合し、item_idとstatusを付与する。未マッチの品目はitem_id未設定のまま
//     デフォルトのpendingとなる。
//  3. レシート本体を主キーでUPSERTする（同一IDの再送信は上書き更新）。
//  4. receipt_urlをレシートIDに対応付けるReceiptURL行を作成する。
//  5. receipt_canonical_urlがあれば同様に2行目を作成する。
//
// 品目解決が店舗解決に依存し、永続化が両解決の結果を含むため、順序を
// 入れ替えてはならない。複数書き込みはトランザクションで括られない:
// 途中で失敗した場合、先行する書き込みは残る。
func (s *Service) GetOrCreate(ctx context.Context, receipt *model.Receipt) (*model.Receipt, error) {
	s.sanitizeReceipt(receipt)

	// 1. 店舗解決
	shop, err := s.shopRepo.FindByLocation(ctx, receipt.ShopAddress, receipt.CompanyID, receipt.CountryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shop: %w", err)
	}

	if shop != nil {
		receipt.ShopID = shop.ID

		// 2. 品目解決（店舗が解決できた場合のみ）
		for i := range receipt.Purchases {
			item, err := s.shopItemRepo.FindByNameAndShop(ctx, receipt.Purchases[i].Name, *shop.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve purchased item: %w", err)
			}
			if item != nil {
				itemID := item.ID
				receipt.Purchases[i].ItemID = &itemID
				receipt.Purchases[i].Status = item.Status
				if receipt.Purchases[i].Status == "" {
					receipt.Purchases[i].Status = model.BarcodeStatusPending
				}
			}
		}
	}

	// 未マッチ品目のstatusをデフォルトに揃える
	for i := range receipt.Purchases {
		if receipt.Purchases[i].Status == "" {
			receipt.Purchases[i].Status = model.BarcodeStatusPending
		}
	}

	// 3. レシート本体のUPSERT
	if err := s.receiptRepo.Upsert(ctx, receipt); err != nil {
		return nil, fmt.Errorf("failed to upsert receipt: %w", err)
	}

	// 4. URL対応表の作成
	if err := s.urlRepo.Create(ctx, model.NewReceiptURL(receipt.ReceiptURL, receipt.ID)); err != nil {
		return nil, fmt.Errorf("failed to create receipt URL: %w", err)
	}

	// 5. 正規化URLがあれば同一レシートを指す2行目を作成
	if receipt.ReceiptCanonicalURL != "" {
		if err := s.urlRepo.Create(ctx, model.NewReceiptURL(receipt.ReceiptCanonicalURL, receipt.ID)); err != nil {
			return nil, fmt.Errorf("failed to create canonical receipt URL: %w", err)
		}
	}

	s.collector.RecordReceiptUpserted()
	slog.Info("receipt upserted",
		slog.String("receipt_id", receipt.ID),
		slog.Bool("shop_resolved", receipt.ShopID != nil),
		slog.Int("purchases", len(receipt.Purchases)),
	)

	return receipt, nil
}

// AddShopID はレシートに店舗を紐付けて永続化する。
// 永続化層が更新失敗（対象行なし）を報告した場合はエラーを返す。
func (s *Service) AddShopID(ctx context.Context, shopID int64, receipt *model.Receipt) (*model.Receipt, error) {
	receipt.ShopID = &shopID

	ok, err := s.receiptRepo.Update(ctx, receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to update receipt: %w", err)
	}
	if !ok {
		return nil, model.NewShopLinkFailedError(receipt.ID)
	}

	slog.Info("shop linked to receipt",
		slog.String("receipt_id", receipt.ID),
		slog.Int64("shop_id", shopID),
	)

	return receipt, nil
}

// sanitizeReceipt は外部ソース由来の表示テキストをサニタイズする。
func (s *Service) sanitizeReceipt(receipt *model.Receipt) {
	receipt.CompanyName = s.sanitizer.Sanitize(receipt.CompanyName)
	for i := range receipt.Purchases {
		receipt.Purchases[i].Name = s.sanitizer.Sanitize(receipt.Purchases[i].Name)
	}
}
