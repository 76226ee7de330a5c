package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// PostgresIdentityRepo はPostgreSQLを使用したidentityリポジトリ。
type PostgresIdentityRepo struct {
	db *sql.DB
}

// NewPostgresIdentityRepo はPostgresIdentityRepoを生成する。
func NewPostgresIdentityRepo(db *sql.DB) *PostgresIdentityRepo {
	return &PostgresIdentityRepo{db: db}
}

// FindByIDAndProvider は (id, provider) 複合キーでidentityを検索する。
// 見つからない場合はnilを返す。
func (r *PostgresIdentityRepo) FindByIDAndProvider(ctx context.Context, id string, provider model.IdentityProvider) (*model.UserIdentity, error) {
	identity := &model.UserIdentity{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, provider, user_id, created_at
		 FROM user_identities
		 WHERE id = $1 AND provider = $2`,
		id, string(provider),
	).Scan(&identity.ID, &identity.Provider, &identity.UserID, &identity.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}

	return identity, nil
}

// Create はidentityを作成する。
func (r *PostgresIdentityRepo) Create(ctx context.Context, identity *model.UserIdentity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_identities (id, provider, user_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		identity.ID, string(identity.Provider), identity.UserID, identity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}
	return nil
}

// Update は (id, provider) で特定される行のuser_idを更新する。
// キーフィールドはWHERE句にのみ現れ、更新対象にはならない。
// 更新行が存在しない場合はfalseを返す。
func (r *PostgresIdentityRepo) Update(ctx context.Context, identity *model.UserIdentity) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_identities SET user_id = $1 WHERE id = $2 AND provider = $3`,
		identity.UserID, identity.ID, string(identity.Provider),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update identity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// compile-time interface check
var _ IdentityRepository = (*PostgresIdentityRepo)(nil)
