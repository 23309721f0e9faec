package faults

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrValidation, "movement", "validate", "vehicle id is required", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation marker: %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected ErrNotFound marker: %v", err)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrPersistence, "ledger", "append", "VIN-1", cause)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestWrapNilMarkerDefaultsToPersistence(t *testing.T) {
	err := Wrap(nil, "storage", "open", "", nil)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected persistence fallback: %v", err)
	}
}

func TestWrapMessageComposition(t *testing.T) {
	err := Wrap(ErrNotFound, "locations", "get", "nowhere", nil)
	want := "not found: locations: get: nowhere"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}

	bare := Wrap(ErrValidation, "", "", "", nil)
	if bare.Error() != "validation error: engine failure" {
		t.Fatalf("bare message = %q", bare.Error())
	}
}
