package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNoActiveLayout, "no layout selected")
	if err.Code != ErrCodeNoActiveLayout {
		t.Errorf("Code = %q", err.Code)
	}
	if err.Error() != "NO_ACTIVE_LAYOUT: no layout selected" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStore, cause, "write layouts")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
	want := "STORE_ERROR: write layouts: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeLayoutNotFound, "layout %q not found", "main")
	if !Is(err, ErrCodeLayoutNotFound) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeStore) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeStore) {
		t.Error("Is should not match plain errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeNoActiveLayout, "no layout selected")
	outer := fmt.Errorf("export: %w", inner)
	if !Is(outer, ErrCodeNoActiveLayout) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeExport, "boom")); got != ErrCodeExport {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeNoActiveLayout, "no layout selected")
	if got := UserMessage(err); got != "no layout selected" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
