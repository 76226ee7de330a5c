package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// ItemBarcodeStatus は購入品目とカタログ品目の紐付け解決状態を表す。
type ItemBarcodeStatus string

// 紐付け解決状態の一覧。
const (
	BarcodeStatusPending  ItemBarcodeStatus = "pending"
	BarcodeStatusResolved ItemBarcodeStatus = "resolved"
	BarcodeStatusNotFound ItemBarcodeStatus = "not_found"
)

// QuantityUnit は購入品目の数量単位を表す。
type QuantityUnit string

// 数量単位の一覧。
const (
	UnitKilogram   QuantityUnit = "kg"
	UnitGram       QuantityUnit = "g"
	UnitLitre      QuantityUnit = "l"
	UnitMillilitre QuantityUnit = "ml"
	UnitPiece      QuantityUnit = "pcs"
)

// PurchasedItem はレシート上の購入品目1行を表す。
// ItemIDはカタログ品目への参照で、解決されるまでnil。
// Statusはカタログ紐付けの解決状態で、デフォルトはpending。
type PurchasedItem struct {
	Name         string            `json:"name"`
	Quantity     float64           `json:"quantity"`
	Unit         *QuantityUnit     `json:"unit,omitempty"`
	UnitQuantity *float64          `json:"unit_quantity,omitempty"`
	Price        float64           `json:"price"`
	ItemID       *string           `json:"item_id,omitempty"`
	Status       ItemBarcodeStatus `json:"status"`
}

// Receipt は購入レシートを表す。
// IDは呼び出し側が指定する文字列（発行元のレシート識別子）。
// ShopIDは店舗解決後に設定される整数（shopsテーブルの主キーと同型）。
type Receipt struct {
	ID                  string          `json:"id"`
	Date                time.Time       `json:"date"`
	UserID              string          `json:"user_id"`
	CompanyID           string          `json:"company_id"`
	CompanyName         string          `json:"company_name"`
	ShopAddress         string          `json:"shop_address"`
	CountryCode         string          `json:"country_code"`
	CashRegisterID      string          `json:"cash_register_id"`
	Key                 int64           `json:"key"`
	CurrencyCode        string          `json:"currency_code,omitempty"`
	TotalAmount         float64         `json:"total_amount"`
	ShopID              *int64          `json:"shop_id,omitempty"`
	ReceiptURL          string          `json:"receipt_url"`
	ReceiptCanonicalURL string          `json:"receipt_canonical_url,omitempty"`
	Purchases           []PurchasedItem `json:"purchases"`
}

// ReceiptURL はレシート取得元URLとレシートIDの対応を表す。
// IDはURLのSHA-256ハッシュで、URLからのO(1)点検索を可能にする。
// 生URLと正規化URLの両方が同一レシートを指しうる。
type ReceiptURL struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ReceiptID string `json:"receipt_id"`
}

// NewReceiptURL はURLとレシートIDからReceiptURLを構築する。
// IDはMakeURLKeyで導出される。
func NewReceiptURL(url, receiptID string) *ReceiptURL {
	return &ReceiptURL{
		ID:        MakeURLKey(url),
		URL:       url,
		ReceiptID: receiptID,
	}
}

// MakeURLKey はURLからレシートURL検索用のキーを導出する。
// SHA-256ハッシュの16進表現を返す。同じURLには常に同じキーを返す。
func MakeURLKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", hash)
}

// ShopItem は店舗のカタログ品目を表す。
// レシートの購入品目は (name, shop_id) でカタログ品目と照合される。
type ShopItem struct {
	ID     string            `json:"id"`
	ShopID int64             `json:"shop_id"`
	Name   string            `json:"name"`
	Status ItemBarcodeStatus `json:"status"`
}
