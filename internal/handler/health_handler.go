package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// DBPinger はデータベース疎通確認のためのインターフェース。
// *sql.DBが満たす。
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	db DBPinger
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(db DBPinger) *HealthHandler {
	return &HealthHandler{
		db: db,
	}
}

// healthResponse はヘルスチェックのレスポンスデータ。
type healthResponse struct {
	Status string `json:"status"`
}

// Health はプロセスの生存確認を返す。
// GET / および GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, "ok", healthResponse{Status: "healthy"})
}

// DeepPing はデータベースへの疎通を含むヘルスチェックを返す。
// GET /health/deep-ping
func (h *HealthHandler) DeepPing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeAPIErrorResponse(w, http.StatusServiceUnavailable, &model.APIError{
			Code:     "DB_UNAVAILABLE",
			Message:  "database ping failed",
			Category: "system",
			Action:   "Check database connectivity.",
		})
		return
	}

	writeJSONResponse(w, http.StatusOK, "ok", healthResponse{Status: "healthy"})
}
