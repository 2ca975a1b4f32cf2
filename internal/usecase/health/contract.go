package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogCounter reads the catalog size for the health report.
type CatalogCounter interface {
	Count(ctx context.Context) (int64, error)
}
