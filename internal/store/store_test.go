package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "palettes.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := palette.SelectPalette([]palette.Candidate{
		{Color: palette.Color{R: 192, G: 32, B: 32}, Count: 10},
		{Color: palette.Color{R: 32, G: 32, B: 192}, Count: 4},
	})
	if err := s.Put(ctx, "k1", "https://a/b.jpg", want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Overwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "k", "ref", palette.Fallback()); err != nil {
		t.Fatal(err)
	}
	next := palette.SelectPalette([]palette.Candidate{{Color: palette.Color{R: 0, G: 160, B: 64}, Count: 1}})
	if err := s.Put(ctx, "k", "ref", next); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if got.Dominant != next.Dominant {
		t.Errorf("Dominant: got %v, want %v", got.Dominant, next.Dominant)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("Count: got %d, want 1", n)
	}
}

func TestStore_NotFoundAndDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing: got %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "k", "ref", palette.Fallback()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palettes.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "k", "ref", palette.Fallback()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
}
