// Package discovery runs the discovery pipeline: candidate selection,
// scoring, policy filtering, ranking, and result assembly. Each call is a
// pure function of (query, catalog snapshot); no state survives a request.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mcplookup/mcplookup/internal/domain"
	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// Service executes discovery queries against an injected catalog.
type Service struct {
	catalog Catalog
}

// New creates a discovery service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Discover runs the full pipeline for one normalized query.
// An empty result set is a successful response, not an error.
func (s *Service) Discover(ctx context.Context, q *query.Query) (domdisc.Report, error) {
	started := time.Now()

	ref, err := s.resolveReference(ctx, q)
	if err != nil {
		return domdisc.Report{}, err
	}

	selectStart := time.Now()
	candidates, err := selectCandidates(ctx, s.catalog, q)
	if err != nil {
		return domdisc.Report{}, fmt.Errorf("select candidates: %w", err)
	}
	selectDur := time.Since(selectStart)

	scoreStart := time.Now()
	sc := newScorer(q, ref)
	scored := make([]domdisc.Scored, 0, len(candidates))
	for i := range candidates {
		if item, ok := sc.score(&candidates[i]); ok {
			scored = append(scored, item)
		}
	}
	scoreDur := time.Since(scoreStart)

	filterStart := time.Now()
	kept, rejected := applyPolicy(q, scored)
	filterDur := time.Since(filterStart)

	rankStart := time.Now()
	rank(q.SortBy(), kept)
	results := page(kept, q.Offset(), q.Limit())

	report := domdisc.Report{
		Results:      results,
		TotalResults: len(kept),
		Stats:        domdisc.ComputeStats(results),
	}
	if q.IncludeAlternatives() {
		report.Alternatives = alternatives(rejected)
	}
	if q.IncludeSimilar() && len(results) > 0 {
		report.Similar = similarTo(&results[0], kept, results)
	}
	rankDur := time.Since(rankStart)

	report.Timing = domdisc.Timing{
		Selection: selectDur,
		Scoring:   scoreDur,
		Filtering: filterDur,
		Ranking:   rankDur,
		Total:     time.Since(started),
	}
	return report, nil
}

// resolveReference fetches the similarity reference record up front.
// An unknown reference domain is the caller's mistake, not a catalog fault.
func (s *Service) resolveReference(ctx context.Context, q *query.Query) (*server.Record, error) {
	ref := q.Similar()
	if ref == nil {
		return nil, nil
	}
	rec, err := s.catalog.Get(ctx, ref.Domain)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewInvalidQuery("similar_to.domain",
				fmt.Sprintf("domain %q is not in the catalog", ref.Domain))
		}
		return nil, fmt.Errorf("resolve similarity reference: %w", err)
	}
	return &rec, nil
}
