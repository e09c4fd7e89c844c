package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrConfigLoad, "failed to load config")

	if err.Code != ErrConfigLoad {
		t.Errorf("Code = %v, want %v", err.Code, ErrConfigLoad)
	}
	if err.Message != "failed to load config" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != "[CONFIG_LOAD] failed to load config" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrProfileNotFound, "profile %q not found", "Work")

	want := `[PROFILE_NOT_FOUND] profile "Work" not found`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps underlying error", func(t *testing.T) {
		inner := fmt.Errorf("disk full")
		err := Wrap(inner, ErrConfigSave, "could not persist config")

		if !errors.Is(err, inner) {
			t.Error("wrapped error should match errors.Is")
		}
		if errors.Unwrap(err) != inner {
			t.Error("Unwrap() should return the inner error")
		}
	})

	t.Run("nil passthrough", func(t *testing.T) {
		if Wrap(nil, ErrConfigSave, "msg") != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if Wrapf(nil, ErrConfigSave, "msg %d", 1) != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrPositionBounds, "position (4,4) exceeds 3x3 grid")

	if !IsErrorCode(err, ErrPositionBounds) {
		t.Error("IsErrorCode should match the code")
	}
	if IsErrorCode(err, ErrPageNotFound) {
		t.Error("IsErrorCode should not match a different code")
	}
	if IsErrorCode(fmt.Errorf("plain"), ErrPositionBounds) {
		t.Error("IsErrorCode should not match a non-DeckError")
	}

	wrapped := fmt.Errorf("context: %w", err)
	if !IsErrorCode(wrapped, ErrPositionBounds) {
		t.Error("IsErrorCode should see through fmt wrapping")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := GetErrorCode(New(ErrDropRejected, "outside grid")); got != ErrDropRejected {
		t.Errorf("GetErrorCode = %v, want %v", got, ErrDropRejected)
	}
	if got := GetErrorCode(fmt.Errorf("plain")); got != ErrUnknown {
		t.Errorf("GetErrorCode = %v, want %v", got, ErrUnknown)
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrActionExecute, "spawn failed").
		WithDetail("path", "/usr/bin/true").
		WithDetail("attempt", 1)

	if err.Details["path"] != "/usr/bin/true" {
		t.Errorf("Details[path] = %v", err.Details["path"])
	}
	if err.Details["attempt"] != 1 {
		t.Errorf("Details[attempt] = %v", err.Details["attempt"])
	}
}
