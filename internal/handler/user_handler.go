package handler

import (
	"context"
	"net/http"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// GetOrCreateUserByIdentity はIdP由来のidentityからユーザーを解決する。
	// 未登録の場合は新規ユーザーを作成して返す。
	GetOrCreateUserByIdentity(ctx context.Context, id string, provider model.IdentityProvider, email, name string) (*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// getOrCreateUserRequest はユーザー解決リクエストのボディ。
// IDはIdPが発行するsubject識別子。
type getOrCreateUserRequest struct {
	ID       string `json:"id"`
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// GetOrCreateByIdentity はIdP identityからのユーザー解決を処理する。
// POST /user/get-or-create-by-identity
func (h *UserHandler) GetOrCreateByIdentity(w http.ResponseWriter, r *http.Request) {
	var req getOrCreateUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.ID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("id is required"))
		return
	}

	provider := model.IdentityProvider(req.Provider)
	if !provider.Valid() {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidProviderError(req.Provider))
		return
	}

	user, err := h.service.GetOrCreateUserByIdentity(r.Context(), req.ID, provider, req.Email, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "ok", user)
}
