package model

import (
	"testing"
)

func TestDeriveOsmID(t *testing.T) {
	tests := []struct {
		name    string
		osmType OsmType
		key     int64
		want    string
	}{
		{"node", OsmTypeNode, 123456, "1:123456"},
		{"relation", OsmTypeRelation, 98765, "2:98765"},
		{"way", OsmTypeWay, 42, "3:42"},
		{"key_zero", OsmTypeNode, 0, "1:0"},
		{"large_key", OsmTypeWay, 9223372036854775807, "3:9223372036854775807"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveOsmID(tt.osmType, tt.key)
			if got != tt.want {
				t.Errorf("DeriveOsmID(%q, %d) = %q, want %q", tt.osmType, tt.key, got, tt.want)
			}
		})
	}
}

func TestDeriveOsmID_Deterministic(t *testing.T) {
	a := DeriveOsmID(OsmTypeNode, 777)
	b := DeriveOsmID(OsmTypeNode, 777)
	if a != b {
		t.Errorf("DeriveOsmID is not deterministic: %q != %q", a, b)
	}
}

func TestOsmTypeValid(t *testing.T) {
	valid := []OsmType{OsmTypeNode, OsmTypeWay, OsmTypeRelation}
	for _, ot := range valid {
		if !ot.Valid() {
			t.Errorf("OsmType(%q).Valid() = false, want true", ot)
		}
	}

	invalid := []OsmType{"", "node", "POINT", "NODE "}
	for _, ot := range invalid {
		if ot.Valid() {
			t.Errorf("OsmType(%q).Valid() = true, want false", ot)
		}
	}
}

func TestShopNormalize_DerivesOsmIDWhenEmpty(t *testing.T) {
	shop := &Shop{
		OsmData: &OsmData{Type: OsmTypeNode, Key: 555},
	}

	shop.Normalize()

	if shop.OsmID != "1:555" {
		t.Errorf("OsmID = %q, want %q", shop.OsmID, "1:555")
	}
}

func TestShopNormalize_NeverOverwritesExplicitOsmID(t *testing.T) {
	shop := &Shop{
		OsmID:   "custom-id",
		OsmData: &OsmData{Type: OsmTypeWay, Key: 999},
	}

	shop.Normalize()

	if shop.OsmID != "custom-id" {
		t.Errorf("OsmID = %q, want preset %q", shop.OsmID, "custom-id")
	}
}

func TestShopNormalize_SetsCreationTimeWhenZero(t *testing.T) {
	shop := &Shop{
		OsmData: &OsmData{Type: OsmTypeNode, Key: 1},
	}

	shop.Normalize()

	if shop.CreationTime == 0 {
		t.Error("CreationTime should be set when zero")
	}
}

func TestShopNormalize_KeepsExplicitCreationTime(t *testing.T) {
	shop := &Shop{
		OsmData:      &OsmData{Type: OsmTypeNode, Key: 1},
		CreationTime: 1700000000,
	}

	shop.Normalize()

	if shop.CreationTime != 1700000000 {
		t.Errorf("CreationTime = %d, want preset 1700000000", shop.CreationTime)
	}
}
