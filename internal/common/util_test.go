package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get /userusers: %w", ErrSessionExpired)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected wrapped error to match ErrSessionExpired")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unexpected match with ErrUnauthorized")
	}
}
