package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AnimalLiberationTech/pbapi/internal/metrics"
	"github.com/AnimalLiberationTech/pbapi/internal/middleware"
	"github.com/AnimalLiberationTech/pbapi/internal/security"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Collector         metrics.MetricsCollector

	// サービス
	UserService    UserServiceInterface
	ShopService    ShopServiceInterface
	ReceiptService ReceiptServiceInterface

	// レシートURLの受け入れ検証
	URLGuard security.URLGuardService

	// ヘルスチェック
	DB DBPinger

	// /metrics のスクレイプ対象レジストリ
	Gatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Metrics → RateLimit(General)
//
// リクエストログはサーバー起動時にルーター全体をラップして適用する。
// ヘルスチェックと/metricsはレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	userHandler := NewUserHandler(deps.UserService)
	shopHandler := NewShopHandler(deps.ShopService)
	receiptHandler := NewReceiptHandler(deps.ReceiptService, deps.URLGuard)
	healthHandler := NewHealthHandler(deps.DB)

	// --- 運用ルート（レート制限・メトリクス記録の対象外） ---

	r.Get("/", healthHandler.Health)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/deep-ping", healthHandler.DeepPing)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- APIルート ---
	// ミドルウェアスタック: Metrics → RateLimit(General)
	r.Group(func(r chi.Router) {
		if deps.Collector != nil {
			r.Use(middleware.NewMetricsMiddleware(deps.Collector))
		}
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ユーザー解決
		r.Route("/user", func(r chi.Router) {
			r.Post("/get-or-create-by-identity", userHandler.GetOrCreateByIdentity)
		})

		// 店舗管理
		r.Route("/shop", func(r chi.Router) {
			r.Post("/get-or-create", shopHandler.GetOrCreate)
		})

		// レシート管理
		r.Route("/receipt", func(r chi.Router) {
			r.Get("/get-by-id", receiptHandler.GetByID)
			r.Post("/get-by-url", receiptHandler.GetByURL)
			r.Post("/add-shop-id", receiptHandler.AddShopID)

			// POST /receipt/get-or-create - レシート登録（登録専用レート制限を追加）
			r.With(deps.RateLimiter.ReceiptRegistrationMiddleware()).Post("/get-or-create", receiptHandler.GetOrCreate)
		})
	})

	return r
}
