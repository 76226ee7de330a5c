// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とミドルウェアから利用する。
type MetricsCollector interface {
	RecordUserCreated(provider string)
	RecordShopCreated()
	RecordShopMatched()
	RecordReceiptUpserted()
	RecordReceiptURLLookup(hit bool)
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	usersCreated      *prometheus.CounterVec
	shopsCreated      prometheus.Counter
	shopsMatched      prometheus.Counter
	receiptsUpserted  prometheus.Counter
	receiptURLLookups *prometheus.CounterVec
	httpStatus        *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		usersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pbapi_users_created_total",
			Help: "IdP経由で新規作成されたユーザーの合計数",
		}, []string{"provider"}),
		shopsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pbapi_shops_created_total",
			Help: "新規作成された店舗の合計数",
		}),
		shopsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pbapi_shops_matched_total",
			Help: "osm_idで既存店舗にマッチした合計数",
		}),
		receiptsUpserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pbapi_receipts_upserted_total",
			Help: "UPSERTされたレシートの合計数",
		}),
		receiptURLLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pbapi_receipt_url_lookups_total",
			Help: "URLによるレシート検索の合計数（結果別）",
		}, []string{"result"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pbapi_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.usersCreated,
		c.shopsCreated,
		c.shopsMatched,
		c.receiptsUpserted,
		c.receiptURLLookups,
		c.httpStatus,
	)

	return c
}

// RecordUserCreated は新規ユーザー作成を記録する。
func (c *Collector) RecordUserCreated(provider string) {
	c.usersCreated.WithLabelValues(provider).Inc()
}

// RecordShopCreated は新規店舗作成を記録する。
func (c *Collector) RecordShopCreated() {
	c.shopsCreated.Inc()
}

// RecordShopMatched は既存店舗へのマッチを記録する。
func (c *Collector) RecordShopMatched() {
	c.shopsMatched.Inc()
}

// RecordReceiptUpserted はレシートのUPSERTを記録する。
func (c *Collector) RecordReceiptUpserted() {
	c.receiptsUpserted.Inc()
}

// RecordReceiptURLLookup はURLによるレシート検索の結果を記録する。
func (c *Collector) RecordReceiptURLLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.receiptURLLookups.WithLabelValues(result).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
