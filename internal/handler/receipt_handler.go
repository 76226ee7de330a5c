package handler

import (
	"context"
	"net/http"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
	"github.com/AnimalLiberationTech/pbapi/internal/security"
)

// ReceiptServiceInterface はレシートハンドラーが必要とするサービスインターフェース。
type ReceiptServiceInterface interface {
	// GetByID は主キーでレシートを取得する。見つからない場合はnilを返す。
	GetByID(ctx context.Context, receiptID string) (*model.Receipt, error)
	// GetByURL は取得元URLからレシートを解決する。見つからない場合はnilを返す。
	GetByURL(ctx context.Context, url string) (*model.Receipt, error)
	// GetOrCreate はレシートを冪等にUPSERTし、店舗・品目の参照を解決する。
	GetOrCreate(ctx context.Context, receipt *model.Receipt) (*model.Receipt, error)
	// AddShopID はレシートに店舗を紐付けて永続化する。
	AddShopID(ctx context.Context, shopID int64, receipt *model.Receipt) (*model.Receipt, error)
}

// ReceiptHandler はレシート管理のHTTPハンドラー。
type ReceiptHandler struct {
	service  ReceiptServiceInterface
	urlGuard security.URLGuardService
}

// NewReceiptHandler はReceiptHandlerを生成する。
func NewReceiptHandler(service ReceiptServiceInterface, urlGuard security.URLGuardService) *ReceiptHandler {
	return &ReceiptHandler{
		service:  service,
		urlGuard: urlGuard,
	}
}

// getReceiptByURLRequest はURL検索リクエストのボディ。
type getReceiptByURLRequest struct {
	URL string `json:"url"`
}

// addShopRequest は店舗紐付けリクエストのボディ。
type addShopRequest struct {
	ShopID  *int64         `json:"shop_id"`
	Receipt *model.Receipt `json:"receipt"`
}

// GetByID はレシートID指定でのレシート取得を処理する。
// GET /receipt/get-by-id?receipt_id=...
func (h *ReceiptHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	receiptID := r.URL.Query().Get("receipt_id")
	if receiptID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("receipt_id is required"))
		return
	}

	receipt, err := h.service.GetByID(r.Context(), receiptID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if receipt == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewReceiptNotFoundError())
		return
	}

	writeJSONResponse(w, http.StatusOK, "ok", receipt)
}

// GetByURL は取得元URL指定でのレシート検索を処理する。
// POST /receipt/get-by-url
func (h *ReceiptHandler) GetByURL(w http.ResponseWriter, r *http.Request) {
	var req getReceiptByURLRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.URL == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidURLError("url is required"))
		return
	}

	receipt, err := h.service.GetByURL(r.Context(), req.URL)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if receipt == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewReceiptNotFoundError())
		return
	}

	writeJSONResponse(w, http.StatusOK, "ok", receipt)
}

// GetOrCreate はレシートの冪等な登録を処理する。
// POST /receipt/get-or-create
func (h *ReceiptHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	var receipt model.Receipt
	if !decodeJSONBody(w, r, &receipt) {
		return
	}

	if receipt.ID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("id is required"))
		return
	}

	// 保存されたURLは後段のスクレイパーが参照するため、登録時点で検証する
	if err := h.urlGuard.ValidateURL(receipt.ReceiptURL); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidURLError(err.Error()))
		return
	}
	if receipt.ReceiptCanonicalURL != "" {
		if err := h.urlGuard.ValidateURL(receipt.ReceiptCanonicalURL); err != nil {
			writeAPIErrorResponse(w, http.StatusBadRequest,
				model.NewInvalidURLError(err.Error()))
			return
		}
	}

	result, err := h.service.GetOrCreate(r.Context(), &receipt)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "ok", result)
}

// AddShopID はレシートへの店舗紐付けを処理する。
// POST /receipt/add-shop-id
func (h *ReceiptHandler) AddShopID(w http.ResponseWriter, r *http.Request) {
	var req addShopRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.ShopID == nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("shop_id is required"))
		return
	}
	if req.Receipt == nil || req.Receipt.ID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("receipt with id is required"))
		return
	}

	result, err := h.service.AddShopID(r.Context(), *req.ShopID, req.Receipt)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "ok", result)
}
