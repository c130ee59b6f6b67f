package ocr

import (
	"context"
	"testing"
)

type stubEngine struct{ text string }

func (s stubEngine) Name() string { return "stub" }
func (s stubEngine) Recognize(_ context.Context, _ []byte, _ ...string) (Result, error) {
	return Result{PlainText: s.text}, nil
}

func TestRegistry(t *testing.T) {
	prev := registered
	defer Register(prev)

	Register(nil)
	if Available() {
		t.Fatal("Available must be false with no engine")
	}
	if Default() != nil {
		t.Fatal("Default must be nil with no engine")
	}

	Register(stubEngine{text: "hello"})
	if !Available() {
		t.Fatal("Available must be true after Register")
	}
	res, err := Default().Recognize(context.Background(), nil)
	if err != nil || res.PlainText != "hello" {
		t.Fatalf("Recognize = %+v, %v", res, err)
	}
}
