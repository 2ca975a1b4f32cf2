package query

// SimilarityReference asks for servers similar to a known catalog domain.
type SimilarityReference struct {
	Domain string
	// Threshold is the minimum similarity in [0,1]; candidates below it are dropped.
	Threshold float64
	// ExcludeReference drops the reference domain itself from results.
	ExcludeReference bool
}
