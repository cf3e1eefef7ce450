package repository

import (
	"context"
	"testing"
	"time"

	"github.com/termination/collab-text-editor/internal/document"
)

func TestMemoryRepoSaveAndFind(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &document.Document{
		DocID:         "ABC123",
		Title:         "notes",
		OwnerID:       "u1",
		Collaborators: []string{"u1"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := repo.Save(ctx, doc); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := repo.FindByDocID(ctx, "ABC123")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.Title != "notes" || got.OwnerID != "u1" {
		t.Fatalf("unexpected document: %+v", got)
	}

	if _, err := repo.FindByDocID(ctx, "NOPE99"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoPartialUpdate(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	doc := &document.Document{DocID: "ABC123", Title: "original", OwnerID: "u1"}
	if err := repo.Save(ctx, doc); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	content := "hello"
	ts := time.Now().UTC()
	got, err := repo.Update(ctx, "ABC123", nil, &content, ts)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Title != "original" {
		t.Fatalf("title changed on content-only update: %q", got.Title)
	}
	if got.Content != "hello" {
		t.Fatalf("content not applied: %q", got.Content)
	}
	if !got.UpdatedAt.Equal(ts) {
		t.Fatalf("updatedAt not refreshed: %v != %v", got.UpdatedAt, ts)
	}

	if _, err := repo.Update(ctx, "NOPE99", nil, &content, ts); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on unknown id, got %v", err)
	}
}
