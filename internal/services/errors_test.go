package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrExternalTool, "ytmusic", "search", "request failed", cause)

	if !errors.Is(err, ErrExternalTool) {
		t.Error("marker not preserved")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not preserved")
	}
	for _, fragment := range []string{"ytmusic", "search", "request failed", "connection refused"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("message missing %q: %s", fragment, err)
		}
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "ytdlp", "download", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Error("nil marker should default to ErrTransient")
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrValidation, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Errorf("expected placeholder detail, got %s", err)
	}
}
