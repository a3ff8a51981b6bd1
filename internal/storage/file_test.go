package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"channel-pricer/internal/settings"
)

func TestFileStorageMissingFile(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "nope", "settings.yaml"))

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != settings.Defaults() {
		t.Errorf("Expected defaults, got %+v", got)
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "settings.yaml")
	s := NewFileStorage(path)

	want := settings.Defaults()
	want.ProfitRate = 35
	want.GrabAdFee = 12.5
	want.PriceStyle = "ends900"
	want.IsDetailMode = true

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected file to be removed, stat err = %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Errorf("Second reset should be a no-op, got %v", err)
	}
}

func TestFileStoragePartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := "profitRate: 40\npriceStyle: bogus\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileStorage(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := settings.Defaults()
	want.ProfitRate = 40
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestFileStorageCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("profitRate: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStorage(path).Load(context.Background()); err == nil {
		t.Error("Expected parse error, got nil")
	}
}
