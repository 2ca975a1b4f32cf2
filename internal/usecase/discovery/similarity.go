package discovery

import (
	"strings"

	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// Similarity component weights: category identity, capability overlap, tag overlap.
const (
	categoryWeight   = 0.4
	capabilityWeight = 0.4
	tagWeight        = 0.2
)

// Similarity is a symmetric [0,1] distance between two records over
// category, capability set, and tags. 1 means indistinguishable under
// the metric, 0 means nothing in common.
func Similarity(a, b *server.Record) float64 {
	var sim float64
	if a.Category == b.Category {
		sim += categoryWeight
	}
	sim += capabilityWeight * jaccard(a.AllCapabilities(), b.AllCapabilities())
	sim += tagWeight * jaccard(a.LowercaseTags(), b.LowercaseTags())
	return sim
}

// jaccard computes |a∩b| / |a∪b| over string sets.
// Two empty sets are considered identical (1).
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[strings.ToLower(s)] = struct{}{}
	}
	inter := 0
	unionSize := len(set)
	bseen := make(map[string]struct{}, len(b))
	for _, s := range b {
		s = strings.ToLower(s)
		if _, dup := bseen[s]; dup {
			continue
		}
		bseen[s] = struct{}{}
		if _, ok := set[s]; ok {
			inter++
		} else {
			unionSize++
		}
	}
	if unionSize == 0 {
		return 1
	}
	return float64(inter) / float64(unionSize)
}
