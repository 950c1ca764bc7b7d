package file_test

import (
	"context"
	"errors"
	"testing"

	"github.com/platepos/api/internal/store"
	"github.com/platepos/api/internal/store/file"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	s, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	want := []byte(`{"hello":"world"}`)
	if err := s.Set(ctx, "orders", want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "orders")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("get: got %s, want %s", got, want)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	ctx := context.Background()

	s, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := s.Set(ctx, "order_counter", []byte("1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "order_counter", []byte("2")); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "order_counter")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "2" {
		t.Errorf("get: got %s, want 2", got)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	s, err := file.New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get missing: got %v, want ErrNotFound", err)
	}
}
