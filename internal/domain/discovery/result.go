// Package discovery defines the scored, assembled output of a discovery call.
// Nothing here persists beyond the request/response cycle.
package discovery

import (
	"time"

	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// Breakdown itemizes the additive components of a relevance score.
type Breakdown struct {
	Keyword    float64
	Capability float64
	Similarity float64
	Bonus      float64
}

// Total is the combined relevance score.
func (b Breakdown) Total() float64 {
	return b.Keyword + b.Capability + b.Similarity + b.Bonus
}

// Scored pairs a server record with its computed relevance.
type Scored struct {
	Record server.Record
	Score  float64
	// Similarity is the [0,1] distance to the reference (or top result, for
	// similar-server suggestions). Zero when no reference was involved.
	Similarity float64
	Breakdown  Breakdown
}

// Rejection is a candidate eliminated by a hard filter, kept for
// "here's why not" alternative suggestions.
type Rejection struct {
	Scored Scored
	Reason string
}

// Timing records wall-clock time spent per pipeline stage.
type Timing struct {
	Selection time.Duration
	Scoring   time.Duration
	Filtering time.Duration
	Ranking   time.Duration
	Total     time.Duration
}

// Stats summarizes the returned result page.
type Stats struct {
	ServerTypeBreakdown map[server.ServerType]int
	AvgTrustScore       float64
	VerifiedCount       int
}

// Report is the complete outcome of one discovery invocation: the paginated
// result page, the post-filter pre-pagination total, suggestions, and metadata.
type Report struct {
	Results []Scored
	// TotalResults counts all candidates surviving filters, before pagination.
	TotalResults int
	Alternatives []Rejection
	Similar      []Scored
	Timing       Timing
	Stats        Stats
}

// ComputeStats derives result-page statistics for the response contract.
func ComputeStats(results []Scored) Stats {
	st := Stats{ServerTypeBreakdown: make(map[server.ServerType]int)}
	if len(results) == 0 {
		return st
	}
	var trustSum float64
	for _, r := range results {
		st.ServerTypeBreakdown[r.Record.ServerType]++
		trustSum += r.Record.TrustScore
		if r.Record.Verification == server.VerificationVerified {
			st.VerifiedCount++
		}
	}
	st.AvgTrustScore = trustSum / float64(len(results))
	return st
}
