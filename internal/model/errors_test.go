package model

import (
	"errors"
	"strings"
	"testing"
)

func TestAPIError_ImplementsError(t *testing.T) {
	var err error = &APIError{Code: "TEST", Message: "test message"}

	if !strings.Contains(err.Error(), "TEST") {
		t.Errorf("Error() = %q, want code included", err.Error())
	}
	if !strings.Contains(err.Error(), "test message") {
		t.Errorf("Error() = %q, want message included", err.Error())
	}
}

func TestAPIError_MatchableWithErrorsAs(t *testing.T) {
	wrapped := func() error {
		return NewReceiptNotFoundError()
	}()

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As should match *APIError")
	}
	if apiErr.Code != ErrCodeReceiptNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrCodeReceiptNotFound)
	}
}

func TestErrorConstructors_SetExpectedCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		code string
	}{
		{"invalid_request", NewInvalidRequestError("bad body"), ErrCodeInvalidRequest},
		{"invalid_url", NewInvalidURLError("empty"), ErrCodeInvalidURL},
		{"invalid_provider", NewInvalidProviderError("facebook"), ErrCodeInvalidProvider},
		{"receipt_not_found", NewReceiptNotFoundError(), ErrCodeReceiptNotFound},
		{"shop_link_failed", NewShopLinkFailedError("r-1"), ErrCodeShopLinkFailed},
		{"user_row_missing", NewUserRowMissingError("u-1"), ErrCodeUserRowMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
			if tt.err.Category == "" {
				t.Error("Category should not be empty")
			}
			if tt.err.Action == "" {
				t.Error("Action should not be empty")
			}
		})
	}
}
