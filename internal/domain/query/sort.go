package query

// SortKey selects the total order over surviving candidates.
type SortKey string

// Sort keys.
const (
	SortRelevance  SortKey = "relevance"
	SortSimilarity SortKey = "similarity"
	// SortPerformance orders by uptime descending, then response time ascending.
	SortPerformance SortKey = "performance"
	SortPopularity  SortKey = "popularity"
	SortTrustScore  SortKey = "trust_score"
)

// IsValid checks if the key is one of the supported sort orders.
func (k SortKey) IsValid() bool {
	switch k {
	case SortRelevance, SortSimilarity, SortPerformance, SortPopularity, SortTrustScore:
		return true
	default:
		return false
	}
}
