package query

import "github.com/mcplookup/mcplookup/internal/domain/server"

// PerformanceFilter holds hard performance and verification constraints.
// Zero bounds mean "no bound"; missing candidate data fails an active bound.
type PerformanceFilter struct {
	MinUptime         float64
	MaxResponseTimeMS float64
	MinTrustScore     float64
	VerifiedOnly      bool
	HealthyOnly       bool
}

// DefaultPerformanceFilter returns the default performance constraints:
// verified and healthy servers only, no numeric bounds.
func DefaultPerformanceFilter() PerformanceFilter {
	return PerformanceFilter{VerifiedOnly: true, HealthyOnly: true}
}

// AvailabilityFilter selects which availability classes are acceptable.
// LiveServersOnly overrides the include flags entirely.
type AvailabilityFilter struct {
	IncludeLive        bool
	IncludePackageOnly bool
	IncludeDeprecated  bool
	IncludeOffline     bool
	LiveServersOnly    bool
}

// DefaultAvailabilityFilter returns the deliberate default narrowing:
// live servers only, excluding package-only, deprecated, and offline entries.
func DefaultAvailabilityFilter() AvailabilityFilter {
	return AvailabilityFilter{IncludeLive: true}
}

// Allows reports whether a record with the given availability status passes.
func (f AvailabilityFilter) Allows(status server.AvailabilityStatus) bool {
	if f.LiveServersOnly {
		return status != server.AvailabilityPackageOnly
	}
	switch status {
	case server.AvailabilityLive, server.AvailabilityBoth:
		return f.IncludeLive
	case server.AvailabilityPackageOnly:
		return f.IncludePackageOnly
	case server.AvailabilityDeprecated:
		return f.IncludeDeprecated
	default:
		return f.IncludeOffline
	}
}

// ServerTypeFilter constrains server type, official status, and verification flags.
type ServerTypeFilter struct {
	IncludeGitHub   bool
	IncludeOfficial bool
	// OfficialOnly and GitHubOnly are exclusive shortcuts overriding the include flags.
	OfficialOnly              bool
	GitHubOnly                bool
	MinimumOfficialStatus     server.OfficialStatus
	RequireDomainVerification bool
	RequireGitHubVerification bool
}

// DefaultServerTypeFilter returns the permissive server type constraints.
func DefaultServerTypeFilter() ServerTypeFilter {
	return ServerTypeFilter{
		IncludeGitHub:         true,
		IncludeOfficial:       true,
		MinimumOfficialStatus: server.OfficialUnofficial,
	}
}

// AllowsType reports whether a record of the given server type passes the
// type portion of the filter.
func (f ServerTypeFilter) AllowsType(t server.ServerType) bool {
	switch {
	case f.OfficialOnly:
		return t == server.TypeOfficial
	case f.GitHubOnly:
		return t == server.TypeGitHub
	case t == server.TypeOfficial:
		return f.IncludeOfficial
	default:
		return f.IncludeGitHub
	}
}

// TechnicalFilter constrains transport, auth schemes, and CORS support.
// Nil/empty fields are permissive.
type TechnicalFilter struct {
	AuthTypes   []server.AuthType
	Transport   server.Transport
	CORSSupport *bool
}

// IsEmpty reports whether no technical constraints are present.
func (f TechnicalFilter) IsEmpty() bool {
	return len(f.AuthTypes) == 0 && f.Transport == "" && f.CORSSupport == nil
}
