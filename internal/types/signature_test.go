package types

import (
	"errors"
	"testing"
)

func TestParseSignature(t *testing.T) {
	in := NewInterner()
	tests := []struct {
		sig  string
		want string
	}{
		{"(float, int) -> float", "fn(float, int) -> float"},
		{"() -> int", "fn() -> int"},
		{"(any...) -> void", "fn(any...) -> void"},
		{"  (string,int,int)->string ", "fn(string, int, int) -> string"},
		{"float", "float"},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			id, err := in.ParseSignature(tt.sig)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := in.Format(id); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSignatureErrors(t *testing.T) {
	in := NewInterner()
	for _, sig := range []string{
		"(int -> int",
		"(int) int",
		"(integer) -> int",
		"(int...,int) -> int",
		"(void) -> int",
		"number",
	} {
		t.Run(sig, func(t *testing.T) {
			_, err := in.ParseSignature(sig)
			if !errors.Is(err, ErrBadSignature) {
				t.Fatalf("expected ErrBadSignature, got %v", err)
			}
		})
	}
}
