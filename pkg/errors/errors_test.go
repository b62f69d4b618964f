// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/homevault/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "missing_source",
			code:    errors.ErrMissingSource,
			message: "required path does not exist",
			wantStr: "[MISSING_SOURCE] required path does not exist",
		},
		{
			name:    "upgrade_required",
			code:    errors.ErrUpgradeRequired,
			message: "vault is newer",
			wantStr: "[UPGRADE_REQUIRED] vault is newer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrUnknownDataType, "unknown data type: %s", "cache")
	if err.Message != "unknown data type: cache" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrDestinationCreateFailure, "can't create destination")

		if err.Code != errors.ErrDestinationCreateFailure {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrDestinationCreateFailure)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[DESTINATION_CREATE_FAILURE] can't create destination: permission denied"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("wrapf_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrapf(nil, errors.ErrCopy, "copy %s", "x"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrSymlinkEscapesRoot, "link escapes root").
		WithDetail("path", "/home/user/link").
		WithDetails(map[string]interface{}{"root": "/home/user", "required": true})

	details := errors.GetErrorDetails(err)
	if details["path"] != "/home/user/link" {
		t.Errorf("path detail = %v", details["path"])
	}
	if details["root"] != "/home/user" {
		t.Errorf("root detail = %v", details["root"])
	}
	if details["required"] != true {
		t.Errorf("required detail = %v", details["required"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrMissingSource, "error 1")
	err2 := errors.New(errors.ErrMissingSource, "error 2")
	err3 := errors.New(errors.ErrMissingLinkedSource, "error 3")

	if !err1.Is(err2) {
		t.Error("Is() should return true for same code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should work with VaultError")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrVaultDirMissing, "missing"),
			code:     errors.ErrVaultDirMissing,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrVaultDirMissing, "missing"),
			code:     errors.ErrHomeDirMissing,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrConfigLoad, "load"),
			code:     errors.ErrConfigLoad,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrMissingSource,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrMissingSource,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrUnknownAction, "x")); got != errors.ErrUnknownAction {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	copyErr := errors.Wrap(rootCause, errors.ErrCopy, "cannot copy file")
	outer := errors.Wrap(copyErr, errors.ErrDestinationCreateFailure, "restore failed")

	if !errors.IsErrorCode(outer, errors.ErrDestinationCreateFailure) {
		t.Error("top level should carry its own code")
	}

	var inner *errors.VaultError
	if stderrors.As(outer.Unwrap(), &inner) && inner.Code != errors.ErrCopy {
		t.Errorf("middle error code = %v", inner.Code)
	}

	if !stderrors.Is(outer, rootCause) {
		t.Error("should find root cause with errors.Is")
	}
}
