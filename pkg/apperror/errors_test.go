package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsKind(t *testing.T) {
	err := NewCreditLimitExceededError(decimal.NewFromInt(600), decimal.NewFromInt(500))
	if !IsKind(err, KindCreditLimitExceeded) {
		t.Error("expected CREDIT_LIMIT_EXCEEDED kind")
	}
	if IsKind(err, KindInsufficientStock) {
		t.Error("kind should not match a different kind")
	}
	if IsKind(errors.New("plain"), KindInternal) {
		t.Error("plain errors have no kind")
	}
}

func TestIsKind_Wrapped(t *testing.T) {
	err := fmt.Errorf("recording payment: %w", NewInvalidAmountError("Payment exceeds the remaining balance due"))
	if !IsKind(err, KindInvalidAmount) {
		t.Error("IsKind should see through wrapping")
	}
}

func TestCreditLimitExceededError_CarriesBothAmounts(t *testing.T) {
	err := NewCreditLimitExceededError(decimal.RequireFromString("600.50"), decimal.RequireFromString("500.00"))
	want := "Credit limit exceeded: new balance 600.50 would exceed limit 500.00"
	if err.Message != want {
		t.Errorf("message = %q, want %q", err.Message, want)
	}
	if err.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", err.Code)
	}
}

func TestGetAppError_WrapsUnknownErrors(t *testing.T) {
	appErr := GetAppError(errors.New("disk on fire"))
	if appErr.Code != http.StatusInternalServerError || appErr.Kind != KindInternal {
		t.Errorf("got %d/%s, want 500/INTERNAL", appErr.Code, appErr.Kind)
	}

	original := NewNotFoundError("Invoice")
	if got := GetAppError(original); got != original {
		t.Error("GetAppError should return the original AppError unchanged")
	}
}
