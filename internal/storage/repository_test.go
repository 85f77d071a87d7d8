package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "newsdeck.db")
	repo, err := NewRepository(dbPath)
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return repo
}

func TestLoadSnapshot_EmptyDatabaseReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	payload, err := repo.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}
	if payload != nil {
		t.Fatalf("expected nil payload before first save, got %q", payload)
	}
}

func TestSaveSnapshot_RoundTrips(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	doc := []byte(`{"savedArticles":[],"likedArticles":["a"],"publishedArticles":[],"settings":{"theme":"light"}}`)
	if err := repo.SaveSnapshot(ctx, doc); err != nil {
		t.Fatalf("SaveSnapshot returned error: %v", err)
	}

	payload, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}
	if string(payload) != string(doc) {
		t.Fatalf("expected %s, got %s", doc, payload)
	}
}

func TestSaveSnapshot_ReplacesPreviousDocument(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveSnapshot(ctx, []byte(`{"v":1}`)); err != nil {
		t.Fatalf("first SaveSnapshot returned error: %v", err)
	}
	if err := repo.SaveSnapshot(ctx, []byte(`{"v":2}`)); err != nil {
		t.Fatalf("second SaveSnapshot returned error: %v", err)
	}

	payload, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot returned error: %v", err)
	}
	if string(payload) != `{"v":2}` {
		t.Fatalf("expected latest document, got %s", payload)
	}
}

func TestCheckWritable(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.CheckWritable(context.Background()); err != nil {
		t.Fatalf("CheckWritable returned error: %v", err)
	}
}
