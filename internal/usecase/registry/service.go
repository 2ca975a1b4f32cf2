// Package registry exposes catalog reads and the plain CRUD write path.
// Ownership verification workflows live outside this service.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/mcplookup/mcplookup/internal/domain"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// Service handles server record lookups and registration writes.
type Service struct {
	repo Repository
}

// New creates a registry service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the record for an exact domain.
func (s *Service) Get(ctx context.Context, dom string) (server.Record, error) {
	rec, err := s.repo.Get(ctx, dom)
	if err != nil {
		return server.Record{}, fmt.Errorf("get %s: %w", dom, err)
	}
	return rec, nil
}

// ListByCategory returns all records registered under a category.
func (s *Service) ListByCategory(ctx context.Context, cat server.Category) ([]server.Record, error) {
	records, err := s.repo.ListByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("list category %s: %w", cat, err)
	}
	return records, nil
}

// Count returns the number of registered servers.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count servers: %w", err)
	}
	return n, nil
}

// Register creates or replaces a server record. Timestamps are maintained
// here: CreatedAt survives updates, UpdatedAt always advances.
func (s *Service) Register(ctx context.Context, rec server.Record) (server.Record, error) {
	if rec.Domain == "" {
		return server.Record{}, fmt.Errorf("%w: empty domain", domain.ErrInvalidRecord)
	}

	now := time.Now().UTC()
	rec.UpdatedAt = now
	rec.CreatedAt = now
	if prev, err := s.repo.Get(ctx, rec.Domain); err == nil {
		rec.CreatedAt = prev.CreatedAt
	}
	rec.Clamp()

	if err := s.repo.Put(ctx, rec); err != nil {
		return server.Record{}, fmt.Errorf("register %s: %w", rec.Domain, err)
	}
	return rec, nil
}

// Unregister removes a server record and its index entries.
func (s *Service) Unregister(ctx context.Context, dom string) error {
	if err := s.repo.Delete(ctx, dom); err != nil {
		return fmt.Errorf("unregister %s: %w", dom, err)
	}
	return nil
}
