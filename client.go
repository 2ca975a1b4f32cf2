// Package mcplookup is the embedded SDK: the full discovery engine wired
// directly against a Redis-backed catalog, without running the HTTP server.
package mcplookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mcplookup/mcplookup/internal/db"
	dbRedis "github.com/mcplookup/mcplookup/internal/db/redis"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
	logpkg "github.com/mcplookup/mcplookup/internal/logger"
	catalogrepo "github.com/mcplookup/mcplookup/internal/repository/catalog"
	discoveryuc "github.com/mcplookup/mcplookup/internal/usecase/discovery"
	healthuc "github.com/mcplookup/mcplookup/internal/usecase/health"
	registryuc "github.com/mcplookup/mcplookup/internal/usecase/registry"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the mcplookup SDK entry point.
type Client struct {
	store     db.Store
	discovery *discoveryuc.Service
	registry  *registryuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// New creates a mcplookup Client and connects to the catalog database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("mcplookup: database address required (use WithRedis or WithAddrs)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("mcplookup: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("mcplookup: database not ready: %w", err)
	}

	catalog := catalogrepo.New(store)
	if cfg.maxScan > 0 {
		catalog = catalog.WithMaxScan(cfg.maxScan)
	}

	return &Client{
		store:     store,
		discovery: discoveryuc.New(catalog),
		registry:  registryuc.New(catalog),
		health:    healthuc.New(store, catalog),
		logger:    cfg.logger,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Discover runs one discovery query against the catalog.
func (c *Client) Discover(ctx context.Context, req DiscoverRequest) (DiscoverResponse, error) {
	ctx = c.withLogger(ctx)

	q, err := query.Normalize(requestToInput(req))
	if err != nil {
		return DiscoverResponse{}, fmt.Errorf("normalize query: %w", err)
	}

	report, err := c.discovery.Discover(ctx, &q)
	if err != nil {
		return DiscoverResponse{}, fmt.Errorf("discover: %w", err)
	}

	return reportToPublic(report), nil
}

// Servers returns the registration/lookup service.
func (c *Client) Servers() *ServerService {
	return &ServerService{client: c}
}

// Health runs the component health checks.
func (c *Client) Health(ctx context.Context) HealthReport {
	report := c.health.Check(c.withLogger(ctx))

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthReport{
		Status:      string(report.Status),
		Checks:      checks,
		ServerCount: report.ServerCount,
	}
}

func (c *Client) withLogger(ctx context.Context) context.Context {
	if c.logger == nil {
		return ctx
	}
	return logpkg.ContextWithLogger(ctx, c.logger)
}

// ServerService manages catalog records through the SDK.
type ServerService struct {
	client *Client
}

// Get returns the record for an exact domain.
func (s *ServerService) Get(ctx context.Context, domain string) (Server, error) {
	rec, err := s.client.registry.Get(s.client.withLogger(ctx), domain)
	if err != nil {
		return Server{}, fmt.Errorf("get server: %w", err)
	}
	return recordToPublic(rec), nil
}

// Put registers or updates a server record.
func (s *ServerService) Put(ctx context.Context, srv Server) (Server, error) {
	rec, err := s.client.registry.Register(s.client.withLogger(ctx), publicToRecord(srv))
	if err != nil {
		return Server{}, fmt.Errorf("put server: %w", err)
	}
	return recordToPublic(rec), nil
}

// Delete removes a server record from the catalog.
func (s *ServerService) Delete(ctx context.Context, domain string) error {
	if err := s.client.registry.Unregister(s.client.withLogger(ctx), domain); err != nil {
		return fmt.Errorf("delete server: %w", err)
	}
	return nil
}

// ListByCategory returns all records in a category, sorted by domain.
func (s *ServerService) ListByCategory(ctx context.Context, category string) ([]Server, error) {
	recs, err := s.client.registry.ListByCategory(
		s.client.withLogger(ctx), server.ParseCategory(category))
	if err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}
	out := make([]Server, len(recs))
	for i, rec := range recs {
		out[i] = recordToPublic(rec)
	}
	return out, nil
}

// Count returns the number of registered servers.
func (s *ServerService) Count(ctx context.Context) (int64, error) {
	n, err := s.client.registry.Count(s.client.withLogger(ctx))
	if err != nil {
		return 0, fmt.Errorf("count servers: %w", err)
	}
	return n, nil
}
