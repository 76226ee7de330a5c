package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

// newMockDB はsqlmockバックエンドの*sql.DBを生成する共有ヘルパー。
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func assertExpectations(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestUserFindByID_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "created_at", "updated_at"}).
			AddRow("user-1", "a@example.com", "Alice", now, now))

	user, err := repo.FindByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "user-1" || user.Email != "a@example.com" || user.Name != "Alice" {
		t.Errorf("user = %+v, want user-1/a@example.com/Alice", user)
	}
	assertExpectations(t, mock)
}

func TestUserFindByID_NullEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "created_at", "updated_at"}).
			AddRow("user-1", nil, "Alice", now, now))

	user, err := repo.FindByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Email != "" {
		t.Errorf("Email = %q, want empty for NULL column", user.Email)
	}
	assertExpectations(t, mock)
}

func TestUserFindByID_Miss_ReturnsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, name, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "created_at", "updated_at"}))

	user, err := repo.FindByID(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected no error on miss, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil user, got %+v", user)
	}
	assertExpectations(t, mock)
}

func TestCreateWithIdentity_CommitsTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)
	now := time.Now()

	user := &model.User{ID: "user-1", Email: "a@example.com", Name: "Alice", CreatedAt: now, UpdatedAt: now}
	identity := &model.UserIdentity{ID: "subject-1", Provider: model.ProviderGoogle, UserID: "user-1", CreatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs("user-1", sqlmock.AnyArg(), "Alice", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_identities`)).
		WithArgs("subject-1", "google", "user-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CreateWithIdentity(context.Background(), user, identity); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestCreateWithIdentity_IdentityInsertFails_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresUserRepo(db)
	now := time.Now()

	user := &model.User{ID: "user-1", Name: "Alice", CreatedAt: now, UpdatedAt: now}
	identity := &model.UserIdentity{ID: "subject-1", Provider: model.ProviderGoogle, UserID: "user-1", CreatedAt: now}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_identities`)).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	if err := repo.CreateWithIdentity(context.Background(), user, identity); err == nil {
		t.Fatal("expected error when identity insert fails")
	}
	assertExpectations(t, mock)
}
