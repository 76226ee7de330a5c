package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 原因カテゴリとクライアント向けの対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, receipt, shop, user, system
	Action   string // クライアント向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidURL        = "INVALID_URL"
	ErrCodeInvalidProvider   = "INVALID_PROVIDER"
	ErrCodeReceiptNotFound   = "RECEIPT_NOT_FOUND"
	ErrCodeShopLinkFailed    = "SHOP_LINK_FAILED"
	ErrCodeUserRowMissing    = "USER_ROW_MISSING"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
)

// NewInvalidRequestError はリクエスト形式エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("invalid request: %s", reason),
		Category: "validation",
		Action:   "Check the request body and retry.",
	}
}

// NewInvalidURLError は無効なURLエラーを生成する。
func NewInvalidURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidURL,
		Message:  fmt.Sprintf("invalid URL: %s", reason),
		Category: "validation",
		Action:   "Provide a public http(s) receipt URL.",
	}
}

// NewInvalidProviderError は未対応のIdPエラーを生成する。
func NewInvalidProviderError(provider string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidProvider,
		Message:  fmt.Sprintf("unsupported identity provider: %s", provider),
		Category: "validation",
		Action:   "Use one of: google, telegram, appwrite, supabase, apple.",
	}
}

// NewReceiptNotFoundError はレシート未検出エラーを生成する。
func NewReceiptNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeReceiptNotFound,
		Message:  "Receipt not found",
		Category: "receipt",
		Action:   "Check the receipt id or URL.",
	}
}

// NewShopLinkFailedError は店舗紐付け更新の失敗エラーを生成する。
// 永続化層が更新失敗を報告した場合にadd-shop-idから返される。
func NewShopLinkFailedError(receiptID string) *APIError {
	return &APIError{
		Code:     ErrCodeShopLinkFailed,
		Message:  fmt.Sprintf("failed to link shop to receipt: %s", receiptID),
		Category: "receipt",
		Action:   "Verify the receipt exists and retry.",
	}
}

// NewUserRowMissingError はidentityが存在しないユーザー行を参照している
// データ整合性異常のエラーを生成する。防御的リカバリは行わない。
func NewUserRowMissingError(userID string) *APIError {
	return &APIError{
		Code:     ErrCodeUserRowMissing,
		Message:  fmt.Sprintf("identity references missing user row: %s", userID),
		Category: "system",
		Action:   "Contact the operator; the user record is inconsistent.",
	}
}
