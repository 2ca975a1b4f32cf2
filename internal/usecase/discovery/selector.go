package discovery

import (
	"context"

	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// selectCandidates produces the smallest candidate set the query's cheap
// filters allow, without false negatives. Exact domains beat the category
// index, which beats the bounded full scan.
func selectCandidates(ctx context.Context, cat Catalog, q *query.Query) ([]server.Record, error) {
	var (
		records []server.Record
		err     error
	)

	switch {
	case len(q.Domains()) > 0:
		records, err = cat.GetMulti(ctx, q.Domains())
	case len(q.Categories()) > 0:
		records, err = listCategories(ctx, cat, q.Categories())
	default:
		records, err = cat.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	return prefilterCapabilities(records, q.Capabilities()), nil
}

// listCategories unions category index reads, deduplicating by domain.
func listCategories(ctx context.Context, cat Catalog, cats []server.Category) ([]server.Record, error) {
	seen := make(map[string]struct{})
	var out []server.Record
	for _, c := range cats {
		records, err := cat.ListByCategory(ctx, c)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if _, dup := seen[rec.Domain]; dup {
				continue
			}
			seen[rec.Domain] = struct{}{}
			out = append(out, rec)
		}
	}
	return out, nil
}

// prefilterCapabilities drops entries that cannot satisfy the capability
// requirement no matter how the scorer weighs them: entries carrying an
// excluded capability, and entries missing every required capability.
// The latter is skipped for OR with minimum_match 0, where zero matches
// is still a legal outcome.
func prefilterCapabilities(records []server.Record, req query.Requirement) []server.Record {
	if req.IsEmpty() {
		return records
	}

	requireSome := len(req.Required) > 0 &&
		(req.Operator == query.OperatorAND ||
			(req.Operator == query.OperatorOR && req.MinimumMatch > 0))

	out := records[:0]
	for i := range records {
		rec := &records[i]
		if hasAnyCapability(rec, req.Excluded) {
			continue
		}
		if req.Operator == query.OperatorNOT && hasAnyCapability(rec, req.Required) {
			continue
		}
		if requireSome && !hasAnyCapability(rec, req.Required) {
			continue
		}
		out = append(out, *rec)
	}
	return out
}

func hasAnyCapability(rec *server.Record, names []string) bool {
	for _, n := range names {
		if rec.HasCapability(n) {
			return true
		}
	}
	return false
}
