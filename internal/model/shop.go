package model

import (
	"fmt"
	"time"
)

// OsmType はOpenStreetMap要素の種別を表す。
type OsmType string

// OSM要素種別の一覧。
const (
	OsmTypeNode     OsmType = "NODE"
	OsmTypeWay      OsmType = "WAY"
	OsmTypeRelation OsmType = "RELATION"
)

// Valid はOsmTypeが既知の種別かを検証する。
func (t OsmType) Valid() bool {
	switch t {
	case OsmTypeNode, OsmTypeWay, OsmTypeRelation:
		return true
	}
	return false
}

// osmTypeCodes はosm_id導出に使う種別コードのマッピング。
// 歴史的経緯によりアルファベット順でも連番でもない: NODE=1, RELATION=2, WAY=3。
// 既存データとの互換性のため変更してはならない。
var osmTypeCodes = map[OsmType]int{
	OsmTypeNode:     1,
	OsmTypeRelation: 2,
	OsmTypeWay:      3,
}

// DeriveOsmID はOSM要素の種別とキーから決定的なosm_idを導出する。
// 形式は "{種別コード}:{キー}"（例: NODE, 123456 -> "1:123456"）。
// 店舗の重複判定キーとして使用されるため、同じ入力には常に同じ出力を返す。
func DeriveOsmID(osmType OsmType, key int64) string {
	return fmt.Sprintf("%d:%d", osmTypeCodes[osmType], key)
}

// OsmData はOpenStreetMap由来の店舗位置情報を表す。
type OsmData struct {
	Type        OsmType `json:"type"`
	Key         int64   `json:"key"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// Shop は店舗を表す。
// IDはDB側で自動採番される整数。挿入前はnil、永続化後に設定される。
// OsmIDは構築時にOsmDataから1回だけ導出され、以後不変。
type Shop struct {
	ID            *int64   `json:"id"`
	CountryCode   string   `json:"country_code"`
	CompanyID     string   `json:"company_id"`
	Address       string   `json:"address"`
	OsmData       *OsmData `json:"osm_data"`
	OsmID         string   `json:"osm_id"`
	CreatorUserID string   `json:"creator_user_id"`
	CreationTime  int64    `json:"creation_time"`
}

// Normalize はShopの派生フィールドを確定させる。
// OsmIDが未設定の場合のみOsmDataから導出する（明示指定された値は上書きしない）。
// CreationTimeが未設定（0）の場合は現在時刻のエポック秒を設定する。
// JSONデコード直後のShopに対して必ず呼び出すこと。
func (s *Shop) Normalize() {
	if s.OsmID == "" && s.OsmData != nil {
		s.OsmID = DeriveOsmID(s.OsmData.Type, s.OsmData.Key)
	}
	if s.CreationTime == 0 {
		s.CreationTime = time.Now().Unix()
	}
}
