// Package catalog persists server records and their category indexes.
// Discovery reads through this repository; the registration path writes.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mcplookup/mcplookup/internal/db"
	"github.com/mcplookup/mcplookup/internal/domain"
	"github.com/mcplookup/mcplookup/internal/domain/server"
	"github.com/mcplookup/mcplookup/internal/logger"
)

// Key layout under the mcplookup: prefix.
const (
	keyPrefix   = "mcplookup:"
	domainsKey  = keyPrefix + "servers"
	recordKeyF  = keyPrefix + "server:%s"
	categoryKey = keyPrefix + "category:%s"
)

// defaultMaxScan bounds full-catalog reads on free-text queries.
const defaultMaxScan = 10000

// store is the consumer interface for catalog operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// Repo implements usecase/discovery.Catalog over a db store.
type Repo struct {
	store   store
	maxScan int
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s, maxScan: defaultMaxScan}
}

// WithMaxScan bounds ListAll to at most n records (0 keeps the default).
func (r *Repo) WithMaxScan(n int) *Repo {
	if n > 0 {
		r.maxScan = n
	}
	return r
}

// Get returns the record for an exact domain. Returns domain.ErrNotFound on miss.
func (r *Repo) Get(ctx context.Context, dom string) (server.Record, error) {
	raw, err := r.store.Get(ctx, recordKey(dom))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return server.Record{}, domain.ErrNotFound
		}
		return server.Record{}, unavailable("get "+dom, err)
	}
	rec, err := unmarshalRecord(raw)
	if err != nil {
		return server.Record{}, fmt.Errorf("%w: domain %s: %v", domain.ErrInvalidRecord, dom, err)
	}
	return rec, nil
}

// GetMulti returns records for the given domains. Missing domains are
// skipped; malformed records are skipped and logged, never abort the read.
func (r *Repo) GetMulti(ctx context.Context, domains []string) ([]server.Record, error) {
	if len(domains) == 0 {
		return nil, nil
	}
	keys := make([]string, len(domains))
	for i, d := range domains {
		keys[i] = recordKey(d)
	}
	raws, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, unavailable(fmt.Sprintf("get %d records", len(domains)), err)
	}

	log := logger.FromContext(ctx)
	out := make([]server.Record, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		rec, err := unmarshalRecord(raw)
		if err != nil {
			log.Warn("skipping malformed server record",
				zap.String("domain", domains[i]), zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// ListByCategory returns all records indexed under a category.
func (r *Repo) ListByCategory(ctx context.Context, cat server.Category) ([]server.Record, error) {
	domains, err := r.store.SMembers(ctx, catKey(cat))
	if err != nil {
		return nil, unavailable("list category "+string(cat), err)
	}
	sort.Strings(domains)
	return r.GetMulti(ctx, domains)
}

// ListAll returns the whole catalog, bounded by the configured scan cap.
// Domains are read in sorted order so the bound is deterministic.
func (r *Repo) ListAll(ctx context.Context) ([]server.Record, error) {
	domains, err := r.store.SMembers(ctx, domainsKey)
	if err != nil {
		return nil, unavailable("list all", err)
	}
	sort.Strings(domains)
	if len(domains) > r.maxScan {
		logger.FromContext(ctx).Warn("catalog scan capped",
			zap.Int("total", len(domains)), zap.Int("max_scan", r.maxScan))
		domains = domains[:r.maxScan]
	}
	return r.GetMulti(ctx, domains)
}

// Count returns the number of registered domains.
func (r *Repo) Count(ctx context.Context) (int64, error) {
	n, err := r.store.SCard(ctx, domainsKey)
	if err != nil {
		return 0, unavailable("count servers", err)
	}
	return n, nil
}

// Put stores a record and maintains the domain and category indexes.
// The previous category membership, if any, is removed first.
func (r *Repo) Put(ctx context.Context, rec server.Record) error {
	if rec.Domain == "" {
		return fmt.Errorf("%w: empty domain", domain.ErrInvalidRecord)
	}
	rec.Clamp()

	if prev, err := r.Get(ctx, rec.Domain); err == nil && prev.Category != rec.Category {
		if err := r.store.SRem(ctx, catKey(prev.Category), rec.Domain); err != nil {
			return unavailable("reindex "+rec.Domain, err)
		}
	}

	data, err := json.Marshal(toDTO(rec))
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.Domain, err)
	}
	if err := r.store.Set(ctx, recordKey(rec.Domain), data); err != nil {
		return unavailable("put "+rec.Domain, err)
	}
	if err := r.store.SAdd(ctx, domainsKey, rec.Domain); err != nil {
		return unavailable("index "+rec.Domain, err)
	}
	if err := r.store.SAdd(ctx, catKey(rec.Category), rec.Domain); err != nil {
		return unavailable("index "+rec.Domain, err)
	}
	return nil
}

// Delete removes a record and its index memberships.
func (r *Repo) Delete(ctx context.Context, dom string) error {
	rec, err := r.Get(ctx, dom)
	if err != nil {
		return err
	}
	if err := r.store.Del(ctx, recordKey(dom)); err != nil {
		return unavailable("delete "+dom, err)
	}
	if err := r.store.SRem(ctx, domainsKey, dom); err != nil {
		return unavailable("unindex "+dom, err)
	}
	if err := r.store.SRem(ctx, catKey(rec.Category), dom); err != nil {
		return unavailable("unindex "+dom, err)
	}
	return nil
}

func unmarshalRecord(raw []byte) (server.Record, error) {
	var dto recordDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return server.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	if dto.Domain == "" {
		return server.Record{}, errors.New("record has no domain")
	}
	return dto.toDomain(), nil
}

func recordKey(dom string) string { return fmt.Sprintf(recordKeyF, dom) }

func catKey(cat server.Category) string {
	return fmt.Sprintf(categoryKey, string(cat))
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, op, err)
}
