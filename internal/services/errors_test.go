package services_test

import (
	"errors"
	"strings"
	"testing"

	"lectern/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "process", "cut", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"process", "cut", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "process", "filter", "", errors.New("io"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected nil marker to default to external tool, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", services.Wrap(services.ErrNotFound, "process", "validate", "missing source", nil), "not found"},
		{"format", services.Wrap(services.ErrFormat, "process", "parse", "bad timestamp", nil), "format"},
		{"validation", services.Wrap(services.ErrValidation, "process", "validate", "range", nil), "validation"},
		{"external", services.Wrap(services.ErrExternalTool, "process", "transcode", "exit 1", nil), "external tool"},
		{"plain", errors.New("boom"), "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}
