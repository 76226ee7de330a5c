package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// errorResponseBody はミドルウェア層が書き込むエラーレスポンスのエンベロープ。
// ハンドラー層のレスポンスと同じ {status_code, detail, data} 形式を使う。
type errorResponseBody struct {
	StatusCode int             `json:"status_code"`
	Detail     string          `json:"detail"`
	Data       errorDetailBody `json:"data"`
}

// errorDetailBody はエンベロープのdataフィールドに格納されるエラー詳細。
type errorDetailBody struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// ハンドラー層に到達する前に応答を打ち切るミドルウェアで使用する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponseBody{
		StatusCode: statusCode,
		Detail:     apiErr.Message,
		Data: errorDetailBody{
			Code:     apiErr.Code,
			Category: apiErr.Category,
			Action:   apiErr.Action,
		},
	})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、クライアントには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "internal server error",
		Category: "system",
		Action:   "Retry later.",
	})
}
