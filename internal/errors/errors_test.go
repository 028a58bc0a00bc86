package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestForageError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ForageError
		wantMsg string
	}{
		{
			name:    "without cause",
			err:     New(ExitGeneralError, "something went wrong"),
			wantMsg: "something went wrong",
		},
		{
			name:    "with cause",
			err:     Wrap(ExitGeneralError, "operation failed", fmt.Errorf("underlying error")),
			wantMsg: "operation failed: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestForageError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ExitGeneralError, "wrapped", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if unwrapped := New(ExitGeneralError, "no cause").Unwrap(); unwrapped != nil {
		t.Errorf("Unwrap() = %v, want nil", unwrapped)
	}
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *ForageError
		wantCode int
		wantMsg  string
	}{
		{"invalid host", InvalidHost("not a url", cause), ExitInvalidHost, `invalid host "not a url"`},
		{"no valid hosts", NoValidHosts(3), ExitInvalidHost, "none of the 3 input URLs could be parsed"},
		{"runtime failed", RuntimeFailed("start", cause), ExitRuntimeFailed, "sandbox runtime start failed"},
		{"route file unreadable", RouteFileUnreadable("/tmp/r.txt", cause), ExitRouteFileError, "route file /tmp/r.txt is unreadable"},
		{"route file unwritable", RouteFileUnwritable("/tmp/r.txt", cause), ExitRouteFileError, "route file /tmp/r.txt could not be written"},
		{"config", ConfigError("bad config", cause), ExitConfigError, "bad config"},
		{"prompt", PromptFailed(cause), ExitPromptFailed, "confirmation prompt failed"},
		{"validation", ValidationError("need a URL"), ExitGeneralError, "need a URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
			if tt.err.Cause != nil && !strings.HasSuffix(tt.err.Error(), ": boom") {
				t.Errorf("Error() = %q, want cause suffix", tt.err.Error())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"ForageError", RuntimeFailed("run", nil), ExitRuntimeFailed},
		{"wrapped ForageError", fmt.Errorf("outer: %w", RouteFileUnreadable("x", nil)), ExitRouteFileError},
		{"regular error", fmt.Errorf("some error"), ExitGeneralError},
		{"nil error", nil, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.wantCode {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("iteration 2: %w", RuntimeFailed("run", errors.New("exit 1")))

	if !HasCode(err, ExitRuntimeFailed) {
		t.Error("HasCode should find the runtime code through wrapping")
	}
	if HasCode(err, ExitInvalidHost) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(errors.New("plain"), ExitGeneralError) {
		t.Error("HasCode should be false for non-ForageError")
	}
}

func TestIsAndAs(t *testing.T) {
	target := fmt.Errorf("target error")
	wrapped := fmt.Errorf("wrapped: %w", target)

	if !Is(wrapped, target) {
		t.Error("Is() should return true for wrapped error")
	}

	forageErr := InvalidHost("x", nil)
	var got *ForageError
	if !As(fmt.Errorf("wrapped: %w", forageErr), &got) {
		t.Fatal("As() should return true for wrapped ForageError")
	}
	if got != forageErr {
		t.Error("As() should return the original ForageError")
	}
}
