package discovery

import (
	"strings"

	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// Score weights. Keyword and capability match dominate; quality, trust, and
// popularity only break ties among equally-relevant matches.
const (
	maxKeywordScore    = 40.0
	maxCapabilityScore = 30.0
	maxSimilarityScore = 20.0
	maxTrustBonus      = 5.0
	maxQualityBonus    = 3.0
	maxPopularityBonus = 2.0

	// popularityCeiling saturates the stars+forks signal.
	popularityCeiling = 1000.0
)

// scorer computes one relevance score per candidate. It is the single
// authoritative ranking function: deterministic for identical
// (query, candidate, reference) input.
type scorer struct {
	q *query.Query
	// ref is the resolved similarity reference record, nil when none requested.
	ref *server.Record
}

func newScorer(q *query.Query, ref *server.Record) *scorer {
	return &scorer{q: q, ref: ref}
}

// score returns the scored candidate and whether it survives the scorer's
// hard-exclusion rules (failed AND-required, OR below minimum match,
// NOT violation, excluded capability, similarity below threshold).
// Soft misses never exclude here; that is the policy stage's job.
func (s *scorer) score(rec *server.Record) (domdisc.Scored, bool) {
	var b domdisc.Breakdown

	b.Keyword = s.keywordScore(rec)

	capScore, ok := s.capabilityScore(rec)
	if !ok {
		return domdisc.Scored{}, false
	}
	b.Capability = capScore

	var sim float64
	if s.ref != nil {
		ref := s.q.Similar()
		if ref.ExcludeReference && strings.EqualFold(rec.Domain, s.ref.Domain) {
			return domdisc.Scored{}, false
		}
		sim = Similarity(rec, s.ref)
		if sim < ref.Threshold {
			return domdisc.Scored{}, false
		}
		b.Similarity = sim * maxSimilarityScore
	}

	b.Bonus = qualityBonus(rec)

	return domdisc.Scored{
		Record:     *rec,
		Score:      b.Total(),
		Similarity: sim,
		Breakdown:  b,
	}, true
}

// keywordScore is the fraction of query terms found in the candidate's
// name, description, tags, and capability names.
func (s *scorer) keywordScore(rec *server.Record) float64 {
	terms := s.q.TextTerms()
	if len(terms) == 0 {
		return 0
	}
	haystack := rec.SearchText()
	matched := 0
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms)) * maxKeywordScore
}

// capabilityScore applies the operator semantics over required and preferred
// capabilities. ok=false means hard exclusion.
func (s *scorer) capabilityScore(rec *server.Record) (float64, bool) {
	req := s.q.Capabilities()
	if req.IsEmpty() {
		return 0, true
	}

	if hasAnyCapability(rec, req.Excluded) {
		return 0, false
	}

	switch req.Operator {
	case query.OperatorNOT:
		if hasAnyCapability(rec, req.Required) {
			return 0, false
		}
		return matchRatio(rec, req.Preferred) * maxCapabilityScore, true

	case query.OperatorOR:
		ratio := matchRatio(rec, union(req.Required, req.Preferred))
		if len(req.Required) > 0 && ratio < req.MinimumMatch {
			return 0, false
		}
		return ratio * maxCapabilityScore, true

	default: // AND
		for _, c := range req.Required {
			if !rec.HasCapability(c) {
				return 0, false
			}
		}
		return matchRatio(rec, union(req.Required, req.Preferred)) * maxCapabilityScore, true
	}
}

// qualityBonus is the small additive trust/quality/popularity term.
// Its ceiling (10) is below a single matched keyword on a short query,
// so it can only break ties.
func qualityBonus(rec *server.Record) float64 {
	trust := rec.TrustScore / server.MaxTrustScore * maxTrustBonus
	quality := rec.Quality.Score / server.MaxQualityScore * maxQualityBonus

	pop := float64(rec.Popularity())
	if pop > popularityCeiling {
		pop = popularityCeiling
	}
	return trust + quality + pop/popularityCeiling*maxPopularityBonus
}

// matchRatio is the fraction of wanted capabilities the record exposes.
// An empty want list counts as a full match.
func matchRatio(rec *server.Record, wanted []string) float64 {
	if len(wanted) == 0 {
		return 1
	}
	matched := 0
	for _, c := range wanted {
		if rec.HasCapability(c) {
			matched++
		}
	}
	return float64(matched) / float64(len(wanted))
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	for _, s := range b {
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
