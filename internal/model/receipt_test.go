package model

import (
	"testing"
)

func TestMakeURLKey_IsDeterministic(t *testing.T) {
	url := "https://mev.sfs.md/receipt-verifier/abc123"

	a := MakeURLKey(url)
	b := MakeURLKey(url)

	if a != b {
		t.Errorf("MakeURLKey is not deterministic: %q != %q", a, b)
	}
}

func TestMakeURLKey_Returns64HexChars(t *testing.T) {
	key := MakeURLKey("https://example.com/r/1")

	if len(key) != 64 {
		t.Errorf("key length = %d, want 64", len(key))
	}
	for _, c := range key {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("key contains non-hex character %q", c)
			break
		}
	}
}

func TestMakeURLKey_DifferentURLsDifferentKeys(t *testing.T) {
	a := MakeURLKey("https://example.com/r/1")
	b := MakeURLKey("https://example.com/r/2")

	if a == b {
		t.Error("different URLs produced the same key")
	}
}

func TestMakeURLKey_KnownValue(t *testing.T) {
	// sha256("hello") の既知の値
	got := MakeURLKey("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Errorf("MakeURLKey(hello) = %q, want %q", got, want)
	}
}

func TestNewReceiptURL(t *testing.T) {
	ru := NewReceiptURL("https://example.com/r/9", "receipt-9")

	if ru.ID != MakeURLKey("https://example.com/r/9") {
		t.Errorf("ID = %q, want hash of URL", ru.ID)
	}
	if ru.URL != "https://example.com/r/9" {
		t.Errorf("URL = %q, want original URL", ru.URL)
	}
	if ru.ReceiptID != "receipt-9" {
		t.Errorf("ReceiptID = %q, want %q", ru.ReceiptID, "receipt-9")
	}
}
