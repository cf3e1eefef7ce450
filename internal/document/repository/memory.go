package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/termination/collab-text-editor/internal/document"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Repository is the document store capability: save, find by id, partial
// update. Backed by MongoDB in production and by MemoryRepo in tests/dev.
type Repository interface {
	Save(ctx context.Context, doc *document.Document) error
	FindByDocID(ctx context.Context, docID string) (*document.Document, error)
	Update(ctx context.Context, docID string, title, content *string, updatedAt time.Time) (*document.Document, error)
}

// MemoryRepo is a simple in-memory repository used when no MongoDB is
// configured and in unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Document
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Document)}
}

func (m *MemoryRepo) Save(ctx context.Context, doc *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *doc
	m.store[doc.DocID] = &cp
	return nil
}

func (m *MemoryRepo) FindByDocID(ctx context.Context, docID string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[docID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *MemoryRepo) Update(ctx context.Context, docID string, title, content *string, updatedAt time.Time) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[docID]
	if !ok {
		return nil, ErrNotFound
	}
	if title != nil {
		d.Title = *title
	}
	if content != nil {
		d.Content = *content
	}
	d.UpdatedAt = updatedAt
	cp := *d
	return &cp, nil
}
