package discovery

import (
	"sort"

	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/query"
)

// maxSuggestions caps alternative and similar-server suggestion lists.
const maxSuggestions = 3

// rank totally orders surviving candidates by the requested sort key.
// Ties break by trust score descending, then domain ascending, so that
// repeated calls over the same catalog snapshot produce identical pages.
func rank(key query.SortKey, candidates []domdisc.Scored) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]
		if less, decided := compareByKey(key, a, b); decided {
			return less
		}
		if a.Record.TrustScore != b.Record.TrustScore {
			return a.Record.TrustScore > b.Record.TrustScore
		}
		return a.Record.Domain < b.Record.Domain
	})
}

// compareByKey orders a before b under the sort key; decided=false means tie.
func compareByKey(key query.SortKey, a, b *domdisc.Scored) (less, decided bool) {
	switch key {
	case query.SortSimilarity:
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity, true
		}
	case query.SortPerformance:
		au, bu := uptimeOf(a), uptimeOf(b)
		if au != bu {
			return au > bu, true
		}
		ar, br := responseOf(a), responseOf(b)
		if ar != br {
			return ar < br, true
		}
	case query.SortPopularity:
		ap, bp := a.Record.Popularity(), b.Record.Popularity()
		if ap != bp {
			return ap > bp, true
		}
	case query.SortTrustScore:
		// Primary key equals the tie-breaker; fall through to it.
	default: // relevance
		if a.Score != b.Score {
			return a.Score > b.Score, true
		}
	}
	return false, false
}

// page slices [offset, offset+limit) out of the ranked candidates.
func page(candidates []domdisc.Scored, offset, limit int) []domdisc.Scored {
	if offset >= len(candidates) {
		return nil
	}
	end := offset + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[offset:end]
}

// alternatives picks the best filter-rejected candidates: servers that were
// relevant but eliminated by a hard constraint, with the reason attached.
func alternatives(rejected []domdisc.Rejection) []domdisc.Rejection {
	sort.Slice(rejected, func(i, j int) bool {
		a, b := &rejected[i], &rejected[j]
		if a.Scored.Score != b.Scored.Score {
			return a.Scored.Score > b.Scored.Score
		}
		if a.Scored.Record.TrustScore != b.Scored.Record.TrustScore {
			return a.Scored.Record.TrustScore > b.Scored.Record.TrustScore
		}
		return a.Scored.Record.Domain < b.Scored.Record.Domain
	})
	if len(rejected) > maxSuggestions {
		rejected = rejected[:maxSuggestions]
	}
	return rejected
}

// similarTo picks the candidates most similar to the top result, excluding
// those already returned in the page.
func similarTo(top *domdisc.Scored, ranked, returned []domdisc.Scored) []domdisc.Scored {
	inPage := make(map[string]struct{}, len(returned))
	for _, r := range returned {
		inPage[r.Record.Domain] = struct{}{}
	}

	var pool []domdisc.Scored
	for _, c := range ranked {
		if _, dup := inPage[c.Record.Domain]; dup {
			continue
		}
		c.Similarity = Similarity(&c.Record, &top.Record)
		if c.Similarity > 0 {
			pool = append(pool, c)
		}
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := &pool[i], &pool[j]
		if a.Similarity != b.Similarity {
			return a.Similarity > b.Similarity
		}
		if a.Record.TrustScore != b.Record.TrustScore {
			return a.Record.TrustScore > b.Record.TrustScore
		}
		return a.Record.Domain < b.Record.Domain
	})
	if len(pool) > maxSuggestions {
		pool = pool[:maxSuggestions]
	}
	return pool
}

func uptimeOf(s *domdisc.Scored) float64 {
	if s.Record.Health.UptimePercentage == nil {
		return -1
	}
	return *s.Record.Health.UptimePercentage
}

func responseOf(s *domdisc.Scored) float64 {
	if s.Record.Health.AvgResponseTimeMS == nil {
		return 1 << 30
	}
	return *s.Record.Health.AvgResponseTimeMS
}
