package service

import (
	"context"
	"errors"
	"time"

	"github.com/termination/collab-text-editor/internal/document"
	"github.com/termination/collab-text-editor/internal/document/repository"
)

// ErrNotFound is returned by Get and Update for an unknown docId.
var ErrNotFound = errors.New("document not found")

// Service owns identifier generation and store access for documents.
type Service struct {
	repo repository.Repository
	gen  *document.IDGenerator
	now  func() time.Time
}

func NewService(repo repository.Repository, gen *document.IDGenerator) *Service {
	return &Service{repo: repo, gen: gen, now: time.Now}
}

// Create generates an identifier and persists an empty document owned by
// ownerID. The owner is accepted as-is, there is no user lookup.
func (s *Service) Create(ctx context.Context, title, ownerID string) (*document.Document, error) {
	if title == "" {
		title = document.DefaultTitle
	}
	now := s.now().UTC()
	doc := &document.Document{
		DocID:         s.gen.Generate(),
		Title:         title,
		OwnerID:       ownerID,
		Content:       "",
		Collaborators: []string{ownerID},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) Get(ctx context.Context, docID string) (*document.Document, error) {
	d, err := s.repo.FindByDocID(ctx, docID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// Update applies only the provided fields (nil means unchanged) and always
// refreshes updatedAt. Concurrent updates apply in arrival order at the
// store; last write wins with no conflict signal.
func (s *Service) Update(ctx context.Context, docID string, title, content *string) (*document.Document, error) {
	d, err := s.repo.Update(ctx, docID, title, content, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}
