// Package query defines the normalized discovery query: one canonical,
// fully-defaulted representation of the heterogeneous request shape.
// A Query is created fresh per discovery call and discarded with the response.
package query

import "github.com/mcplookup/mcplookup/internal/domain/server"

// Query parameter limits and defaults.
const (
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 10

	DefaultMinimumMatch        = 0.5
	DefaultSimilarityThreshold = 0.7
)

// Query is a validated, normalized discovery query. Every optional request
// field has been given its explicit default; downstream stages never see
// "maybe present" ambiguity.
type Query struct {
	textTerms    []string
	domains      []string
	capabilities Requirement
	similar      *SimilarityReference
	categories   []server.Category
	technical    TechnicalFilter
	performance  PerformanceFilter
	availability AvailabilityFilter
	serverType   ServerTypeFilter

	limit  int
	offset int
	sortBy SortKey

	includeAlternatives bool
	includeSimilar      bool
}

// TextTerms returns the ordered, deduplicated lowercase keyword terms.
func (q *Query) TextTerms() []string { return q.textTerms }

// Domains returns the exact-match domain filter (empty = no domain filter).
func (q *Query) Domains() []string { return q.domains }

// Capabilities returns the structured capability requirement.
func (q *Query) Capabilities() Requirement { return q.capabilities }

// Similar returns the similarity reference, or nil when not requested.
func (q *Query) Similar() *SimilarityReference { return q.similar }

// Categories returns the category filter (empty = all categories).
func (q *Query) Categories() []server.Category { return q.categories }

// Technical returns the transport/auth/cors constraints.
func (q *Query) Technical() TechnicalFilter { return q.technical }

// Performance returns the performance and verification constraints.
func (q *Query) Performance() PerformanceFilter { return q.performance }

// Availability returns the availability class constraints.
func (q *Query) Availability() AvailabilityFilter { return q.availability }

// ServerType returns the server type and official status constraints.
func (q *Query) ServerType() ServerTypeFilter { return q.serverType }

// Limit returns the page size, clamped to [MinLimit, MaxLimit].
func (q *Query) Limit() int { return q.limit }

// Offset returns the pagination offset (0 when not requested).
func (q *Query) Offset() int { return q.offset }

// SortBy returns the requested sort key.
func (q *Query) SortBy() SortKey { return q.sortBy }

// IncludeAlternatives reports whether filter-rejected suggestions are wanted.
func (q *Query) IncludeAlternatives() bool { return q.includeAlternatives }

// IncludeSimilar reports whether similar-to-top-result suggestions are wanted.
func (q *Query) IncludeSimilar() bool { return q.includeSimilar }

// HasText reports whether free-text terms are present.
func (q *Query) HasText() bool { return len(q.textTerms) > 0 }
