package discovery

import (
	"context"

	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// Catalog defines the read contract against the server catalog.
// Discovery never writes; registration owns the write path.
type Catalog interface {
	// Get returns the record for an exact domain (domain.ErrNotFound on miss).
	Get(ctx context.Context, domain string) (server.Record, error)
	// GetMulti returns records for the given domains, skipping misses.
	GetMulti(ctx context.Context, domains []string) ([]server.Record, error)
	// ListByCategory returns all records indexed under a category.
	ListByCategory(ctx context.Context, cat server.Category) ([]server.Record, error)
	// ListAll returns the whole catalog, bounded by the store's scan cap.
	ListAll(ctx context.Context) ([]server.Record, error)
}
