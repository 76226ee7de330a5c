// Package handler はHTTPハンドラーとルーティングを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// apiResponse は全エンドポイント共通のレスポンスエンベロープ。
type apiResponse struct {
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail"`
	Data       any    `json:"data,omitempty"`
}

// apiErrorDetail は統一エラーフォーマットのエラー詳細。
// エンベロープのdataフィールドに格納される。
type apiErrorDetail struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// writeJSONResponse は成功レスポンスをエンベロープで書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, detail string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiResponse{
		StatusCode: statusCode,
		Detail:     detail,
		Data:       data,
	})
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiResponse{
		StatusCode: statusCode,
		Detail:     apiErr.Message,
		Data: apiErrorDetail{
			Code:     apiErr.Code,
			Category: apiErr.Category,
			Action:   apiErr.Action,
		},
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "internal server error",
		Category: "system",
		Action:   "Retry later.",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidRequest, model.ErrCodeInvalidURL, model.ErrCodeInvalidProvider:
		return http.StatusBadRequest
	case model.ErrCodeReceiptNotFound:
		return http.StatusNotFound
	case model.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case model.ErrCodeShopLinkFailed, model.ErrCodeUserRowMissing:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSONBody はリクエストボディをJSONとしてデコードする。
// 失敗時はエラーレスポンスを書き込みfalseを返す。
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("failed to parse request body"))
		return false
	}
	return true
}
