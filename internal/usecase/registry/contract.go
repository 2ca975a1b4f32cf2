package registry

import (
	"context"

	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// Repository defines the storage contract for the registration path.
type Repository interface {
	Get(ctx context.Context, domain string) (server.Record, error)
	ListByCategory(ctx context.Context, cat server.Category) ([]server.Record, error)
	Count(ctx context.Context) (int64, error)
	Put(ctx context.Context, rec server.Record) error
	Delete(ctx context.Context, domain string) error
}
