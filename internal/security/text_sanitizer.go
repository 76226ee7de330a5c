// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizerService はレシートスクレイピング等の外部ソース由来の表示テキスト
// （会社名、購入品目名、OSM表示名）をサニタイズし、HTMLタグやスクリプトの
// 混入を防ぐ。bluemondayの厳格ポリシーにより全てのマークアップを除去する。
package security

import "github.com/microcosm-cc/bluemonday"

// TextSanitizerService は表示テキストのサニタイズ機能のインターフェースを定義する。
// 店舗・レシートの保存前に使用される。
type TextSanitizerService interface {
	// Sanitize は入力からHTMLタグとマークアップを全て除去したプレーンテキストを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はTextSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは許可タグなしのポリシーで、全てのHTML要素と属性を除去する。
// 表示テキストはマークアップを含む正当なユースケースがないため、これで十分。
func NewTextSanitizer() *textSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグとマークアップを全て除去したプレーンテキストを返す。
func (s *textSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
