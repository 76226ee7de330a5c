package handler

import (
	"context"
	"net/http"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// ShopServiceInterface は店舗ハンドラーが必要とするサービスインターフェース。
type ShopServiceInterface interface {
	// GetOrCreate はosm_idで店舗を冪等に解決する。
	GetOrCreate(ctx context.Context, shop *model.Shop) (*model.Shop, error)
}

// ShopHandler は店舗管理のHTTPハンドラー。
type ShopHandler struct {
	service ShopServiceInterface
}

// NewShopHandler はShopHandlerを生成する。
func NewShopHandler(service ShopServiceInterface) *ShopHandler {
	return &ShopHandler{
		service: service,
	}
}

// GetOrCreate は店舗の取得または作成を処理する。
// POST /shop/get-or-create
//
// ボディはShopペイロード。osm_dataは必須、osm_idは任意
// （指定された場合は再計算されない）。
func (h *ShopHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var shop model.Shop
	if !decodeJSONBody(w, r, &shop) {
		return
	}

	if shop.OsmData == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("osm_data is required"))
		return
	}

	if !shop.OsmData.Type.Valid() {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("osm_data.type must be one of NODE, WAY, RELATION"))
		return
	}

	result, err := h.service.GetOrCreate(r.Context(), &shop)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "ok", result)
}
