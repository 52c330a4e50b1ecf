package uuid_test

import (
	"testing"
	"time"

	"investapp/internal/uuid"
)

func TestNewProducesValidOrderedIDs(t *testing.T) {
	a := uuid.New()
	time.Sleep(2 * time.Millisecond)
	b := uuid.New()

	if !uuid.IsValid(a) || !uuid.IsValid(b) {
		t.Fatalf("expected valid UUIDs, got %q and %q", a, b)
	}
	if a == b {
		t.Error("expected distinct IDs")
	}
	// UUIDv7 leads with the timestamp, so IDs minted in order sort in order.
	if a > b {
		t.Errorf("expected %q to sort before %q", a, b)
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a[14])
	}
}

func TestIsValid(t *testing.T) {
	if uuid.IsValid("not-a-uuid") {
		t.Error("expected a malformed string to be rejected")
	}
	if !uuid.IsValid("018f3b8a-9d2c-7cde-8f00-0123456789ab") {
		t.Error("expected a well-formed UUID to be accepted")
	}
}
