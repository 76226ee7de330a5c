package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/AnimalLiberationTech/pbapi/internal/model"
)

func shopColumns() []string {
	return []string{"id", "osm_id", "country_code", "company_id", "address", "osm_data", "creator_user_id", "creation_time"}
}

func TestShopFindByOsmID_Found(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresShopRepo(db)

	osmData, _ := json.Marshal(model.OsmData{Type: model.OsmTypeNode, Key: 123456})

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE osm_id = $1`)).
		WithArgs("1:123456").
		WillReturnRows(sqlmock.NewRows(shopColumns()).
			AddRow(int64(10), "1:123456", "JP", "company-1", "1-2-3 Shibuya", osmData, "user-1", int64(1700000000)))

	shop, err := repo.FindByOsmID(context.Background(), "1:123456")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if shop.ID == nil || *shop.ID != 10 {
		t.Errorf("shop.ID = %v, want 10", shop.ID)
	}
	if shop.OsmData == nil || shop.OsmData.Key != 123456 {
		t.Errorf("shop.OsmData = %+v, want key 123456", shop.OsmData)
	}
	assertExpectations(t, mock)
}

func TestShopFindByOsmID_LegacyNullColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresShopRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE osm_id = $1`)).
		WithArgs("1:9000").
		WillReturnRows(sqlmock.NewRows(shopColumns()).
			AddRow(int64(42), "1:9000", nil, nil, nil, nil, nil, int64(1600000000)))

	shop, err := repo.FindByOsmID(context.Background(), "1:9000")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if shop.CountryCode != "" || shop.CompanyID != "" || shop.Address != "" {
		t.Errorf("legacy NULL columns should map to empty strings, got %+v", shop)
	}
	if shop.OsmData != nil {
		t.Errorf("OsmData = %+v, want nil for NULL column", shop.OsmData)
	}
	assertExpectations(t, mock)
}

func TestShopFindByOsmID_Miss_ReturnsNilNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresShopRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE osm_id = $1`)).
		WithArgs("1:404").
		WillReturnRows(sqlmock.NewRows(shopColumns()))

	shop, err := repo.FindByOsmID(context.Background(), "1:404")
	if err != nil {
		t.Fatalf("expected no error on miss, got %v", err)
	}
	if shop != nil {
		t.Errorf("expected nil shop, got %+v", shop)
	}
	assertExpectations(t, mock)
}

func TestShopFindByLocation_UsesTripleKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresShopRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE address = $1 AND company_id = $2 AND country_code = $3`)).
		WithArgs("1-2-3 Shibuya", "company-1", "JP").
		WillReturnRows(sqlmock.NewRows(shopColumns()).
			AddRow(int64(10), "1:123456", "JP", "company-1", "1-2-3 Shibuya", nil, nil, int64(1700000000)))

	shop, err := repo.FindByLocation(context.Background(), "1-2-3 Shibuya", "company-1", "JP")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if shop == nil || *shop.ID != 10 {
		t.Fatalf("shop = %+v, want id 10", shop)
	}
	assertExpectations(t, mock)
}

func TestShopCreate_ReturnsGeneratedID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresShopRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO shops`)).
		WithArgs("1:123456", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1700000000)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))

	shop := &model.Shop{
		OsmID:        "1:123456",
		CountryCode:  "JP",
		CompanyID:    "company-1",
		Address:      "1-2-3 Shibuya",
		OsmData:      &model.OsmData{Type: model.OsmTypeNode, Key: 123456},
		CreationTime: 1700000000,
	}

	id, err := repo.Create(context.Background(), shop)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 77 {
		t.Errorf("id = %d, want 77", id)
	}
	assertExpectations(t, mock)
}
