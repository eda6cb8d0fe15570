package unbounded

import (
	"context"
	"strings"
	"testing"
)

func TestStringInput(t *testing.T) {
	input := NewStringInput("ab")

	if key, ok := input.PeekKey(); !ok || key != 'a' {
		t.Fatalf("peek got %q %v", key, ok)
	}
	for _, want := range "ab" {
		if key, ok := input.NextKey(); !ok || key != want {
			t.Fatalf("got %q %v, want %q", key, ok, want)
		}
	}
	if _, ok := input.NextKey(); ok {
		t.Error("input should be used up")
	}
	if _, ok := input.PeekKey(); ok {
		t.Error("nothing left to peek at")
	}
}

func TestKeyboardInput(t *testing.T) {
	input := NewKeyboardInput(context.Background(), strings.NewReader("w\x1b[Ax\t\x1b[Cq"))

	for _, want := range "wwxdq" {
		key, ok := input.NextKey()
		if !ok || key != want {
			t.Fatalf("got %q %v, want %q", key, ok, want)
		}
	}
	if _, ok := input.NextKey(); ok {
		t.Error("expected the input to end")
	}
}

func TestKeyboardInputCtrlC(t *testing.T) {
	input := NewKeyboardInput(context.Background(), strings.NewReader("\x03w"))

	if key, ok := input.NextKey(); ok {
		t.Errorf("ctrl-C should end the input, got %q", key)
	}
}
