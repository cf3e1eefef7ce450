package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/termination/collab-text-editor/internal/document"
	"github.com/termination/collab-text-editor/internal/document/repository"
)

func newTestService() *Service {
	return NewService(repository.NewMemoryRepo(), document.NewIDGenerator(nil))
}

func TestCreateDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "", "u1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ok, _ := regexp.MatchString(`^[A-Z0-9]{6}$`, doc.DocID); !ok {
		t.Fatalf("docId %q does not match [A-Z0-9]{6}", doc.DocID)
	}
	if doc.Title != document.DefaultTitle {
		t.Fatalf("expected default title, got %q", doc.Title)
	}
	if len(doc.Collaborators) != 1 || doc.Collaborators[0] != "u1" {
		t.Fatalf("collaborators should start as [owner], got %v", doc.Collaborators)
	}

	// freshly created documents are empty
	got, err := svc.Get(ctx, doc.DocID)
	if err != nil {
		t.Fatalf("get after create failed: %v", err)
	}
	if got.Content != "" {
		t.Fatalf("new document content should be empty, got %q", got.Content)
	}
}

func TestGetUnknown(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Get(context.Background(), "ZZZZZZ"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "draft", "u1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	content := "hello"
	updated, err := svc.Update(ctx, doc.DocID, nil, &content)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "draft" {
		t.Fatalf("title changed by content-only update: %q", updated.Title)
	}
	if updated.Content != "hello" {
		t.Fatalf("content not applied: %q", updated.Content)
	}
	if updated.UpdatedAt.Before(doc.UpdatedAt) {
		t.Fatalf("updatedAt went backwards: %v < %v", updated.UpdatedAt, doc.UpdatedAt)
	}

	if _, err := svc.Update(ctx, "ZZZZZZ", nil, &content); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on unknown docId, got %v", err)
	}
}

func TestUpdateIdempotentContent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	doc, err := svc.Create(ctx, "draft", "u1")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	content := "same body"
	first, err := svc.Update(ctx, doc.DocID, nil, &content)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	time.Sleep(time.Millisecond)
	second, err := svc.Update(ctx, doc.DocID, nil, &content)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if first.Content != second.Content {
		t.Fatalf("content diverged on repeated update: %q vs %q", first.Content, second.Content)
	}
	if second.UpdatedAt.Before(first.UpdatedAt) {
		t.Fatalf("updatedAt must be non-decreasing: %v < %v", second.UpdatedAt, first.UpdatedAt)
	}
}
