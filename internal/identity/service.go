// Package identity は外部IdP経由のユーザー解決ロジックを提供する。
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AnimalLiberationTech/pbapi/internal/metrics"
	"github.com/AnimalLiberationTech/pbapi/internal/model"
	"github.com/AnimalLiberationTech/pbapi/internal/repository"
)

// Service はユーザーidentityに関するビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	identRepo repository.IdentityRepository
	collector metrics.MetricsCollector
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	identRepo repository.IdentityRepository,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		userRepo:  userRepo,
		identRepo: identRepo,
		collector: collector,
	}
}

// Find は (id, provider) 複合キーでidentityを検索する。
// 見つからない場合はnilを返す（エラーにはしない）。
func (s *Service) Find(ctx context.Context, id string, provider model.IdentityProvider) (*model.UserIdentity, error) {
	identity, err := s.identRepo.FindByIDAndProvider(ctx, id, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return identity, nil
}

// Create はidentityを作成する。CreatedAtが未設定の場合は現在時刻を設定する。
func (s *Service) Create(ctx context.Context, identity *model.UserIdentity) error {
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now()
	}
	if err := s.identRepo.Create(ctx, identity); err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}
	return nil
}

// Update は (id, provider) で特定されるidentityの残りのフィールドを更新する。
// キーフィールドは更新対象にならない。更新行が存在しない場合はfalseを返す。
func (s *Service) Update(ctx context.Context, identity *model.UserIdentity) (bool, error) {
	ok, err := s.identRepo.Update(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("failed to update identity: %w", err)
	}
	return ok, nil
}

// GetOrCreateUserByIdentity はIdP由来の (id, provider) からユーザーを解決する。
// 既存のidentityがある場合は紐付くユーザーを返す。
// 未登録の場合はusersレコードとuser_identitiesレコードを同一トランザクションで
// 作成し、新規ユーザーを返す。
//
// identityが存在しないユーザー行を参照している場合はデータ整合性異常として
// エラーを返す。防御的リカバリは行わない。
func (s *Service) GetOrCreateUserByIdentity(
	ctx context.Context,
	id string,
	provider model.IdentityProvider,
	email string,
	name string,
) (*model.User, error) {
	identity, err := s.identRepo.FindByIDAndProvider(ctx, id, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}

	if identity != nil {
		// 既存ユーザー: identityからユーザー行を読み出す
		user, err := s.userRepo.FindByID(ctx, identity.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		if user == nil {
			return nil, model.NewUserRowMissingError(identity.UserID)
		}

		slog.Info("existing identity resolved",
			slog.String("user_id", user.ID),
			slog.String("provider", string(provider)),
		)
		return user, nil
	}

	// 新規ユーザー: usersレコードとuser_identitiesレコードを同時に作成
	now := time.Now()
	newUser := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	newIdentity := &model.UserIdentity{
		ID:        id,
		Provider:  provider,
		UserID:    newUser.ID,
		CreatedAt: now,
	}

	if err := s.userRepo.CreateWithIdentity(ctx, newUser, newIdentity); err != nil {
		return nil, fmt.Errorf("failed to create user and identity: %w", err)
	}

	s.collector.RecordUserCreated(string(provider))
	slog.Info("new user created",
		slog.String("user_id", newUser.ID),
		slog.String("provider", string(provider)),
	)

	return newUser, nil
}
