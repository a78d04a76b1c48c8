package apperror

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestNew_UsesMessageCatalog(t *testing.T) {
	err := New(CodeSubgraphEmptyResult, WithContext("pair=0xabc"))

	if err.Message != messages[CodeSubgraphEmptyResult] {
		t.Errorf("Message = %q", err.Message)
	}
	if err.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, http.StatusBadGateway)
	}
	if !strings.Contains(err.Error(), "pair=0xabc") {
		t.Errorf("Error() = %q, want context", err.Error())
	}
}

func TestGetCode_ThroughWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := New(CodeSubgraphRequestFailed, WithCause(cause))
	wrapped := errors.Join(errors.New("outer"), err)

	if got := GetCode(wrapped); got != CodeSubgraphRequestFailed {
		t.Errorf("GetCode = %s", got)
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
	if !errors.Is(wrapped, New(CodeSubgraphRequestFailed)) {
		t.Error("expected code comparison through errors.Is")
	}
	if GetCode(cause) != CodeUnknownError {
		t.Error("plain errors should map to UNKNOWN_ERROR")
	}
}

func TestWrap_KeepsExistingAppError(t *testing.T) {
	orig := New(CodeInvalidSnapshot)
	got := Wrap(orig, CodeInternalError, "loading snapshot")

	if got != orig {
		t.Error("Wrap should return the existing AppError")
	}
	if got.Context != "loading snapshot" {
		t.Errorf("Context = %q", got.Context)
	}
	if Wrap(nil, CodeInternalError, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestDefaultStatusCodes(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidPoolParams, http.StatusBadRequest},
		{CodeUnknownStakingPool, http.StatusInternalServerError},
		{CodeNotFound, http.StatusNotFound},
		{CodePoolStateMissing, http.StatusInternalServerError},
		{CodeEthereumConnectionFailed, http.StatusServiceUnavailable},
		{CodeSubgraphInvalidResponse, http.StatusBadRequest},
		{CodeRateLimitExceeded, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		if got := getDefaultStatusCode(tt.code); got != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.code, got, tt.want)
		}
	}
}
