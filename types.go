package mcplookup

import "time"

// Server is one discoverable MCP server record. Enum-valued fields are plain
// strings on this public surface; unknown values degrade on the service side
// instead of failing.
type Server struct {
	Domain      string `json:"domain"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Category     string       `json:"category"`
	Tags         []string     `json:"tags,omitempty"`
	Capabilities Capabilities `json:"capabilities"`

	TrustScore         float64 `json:"trust_score"`
	VerificationStatus string  `json:"verification_status"`
	Quality            Quality `json:"quality"`

	Availability     Availability `json:"availability"`
	ServerType       string       `json:"server_type"`
	OfficialStatus   string       `json:"official_status"`
	EndpointVerified bool         `json:"endpoint_verified"`
	DomainVerified   bool         `json:"domain_verified"`
	GitHubVerified   bool         `json:"github_verified"`

	Transport   string `json:"transport"`
	Auth        Auth   `json:"auth"`
	CORSEnabled bool   `json:"cors_enabled"`

	Health     *Health    `json:"health,omitempty"`
	Repository Repository `json:"repository"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Capabilities lists the named tools, resources, and prompts a server exposes.
type Capabilities struct {
	Tools     []string `json:"tools,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Prompts   []string `json:"prompts,omitempty"`
}

// Quality is the composite quality assessment of a record.
type Quality struct {
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

// Availability describes how the server can be consumed.
type Availability struct {
	Status string `json:"status"`
}

// Auth describes the authentication the server requires.
type Auth struct {
	Type string `json:"type"`
}

// Health holds the latest probe results for a live endpoint.
type Health struct {
	Status            string   `json:"status"`
	UptimePercentage  *float64 `json:"uptime_percentage,omitempty"`
	AvgResponseTimeMS *float64 `json:"avg_response_time_ms,omitempty"`
}

// Repository holds source-hosting popularity signals.
type Repository struct {
	Stars int `json:"stars"`
	Forks int `json:"forks"`
}

// DiscoverRequest is a discovery query. Every field is optional; the zero
// value is a legal query returning the default top-N page.
type DiscoverRequest struct {
	Query    string   `json:"query,omitempty"`
	Domain   string   `json:"domain,omitempty"`
	Domains  []string `json:"domains,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	Capabilities *CapabilityFilter `json:"capabilities,omitempty"`
	SimilarTo    *SimilarTo        `json:"similar_to,omitempty"`
	Categories   []string          `json:"categories,omitempty"`

	Performance        *PerformanceFilter  `json:"performance,omitempty"`
	AvailabilityFilter *AvailabilityFilter `json:"availability_filter,omitempty"`
	ServerTypeFilter   *ServerTypeFilter   `json:"server_type_filter,omitempty"`
	Technical          *TechnicalFilter    `json:"technical,omitempty"`

	Limit  *int   `json:"limit,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	SortBy string `json:"sort_by,omitempty"`

	IncludeAlternatives *bool `json:"include_alternatives,omitempty"`
	IncludeSimilar      *bool `json:"include_similar,omitempty"`
}

// CapabilityFilter constrains results by capability names.
type CapabilityFilter struct {
	Operator     string   `json:"operator,omitempty"`
	Required     []string `json:"required,omitempty"`
	Preferred    []string `json:"preferred,omitempty"`
	Exclude      []string `json:"exclude,omitempty"`
	MinimumMatch *float64 `json:"minimum_match,omitempty"`
}

// SimilarTo asks for servers similar to a reference domain.
type SimilarTo struct {
	Domain           string   `json:"domain"`
	Threshold        *float64 `json:"threshold,omitempty"`
	ExcludeReference *bool    `json:"exclude_reference,omitempty"`
}

// PerformanceFilter constrains results by health and trust bounds.
type PerformanceFilter struct {
	MinUptime         *float64 `json:"min_uptime,omitempty"`
	MaxResponseTimeMS *float64 `json:"max_response_time,omitempty"`
	MinTrustScore     *float64 `json:"min_trust_score,omitempty"`
	VerifiedOnly      *bool    `json:"verified_only,omitempty"`
	HealthyOnly       *bool    `json:"healthy_only,omitempty"`
}

// AvailabilityFilter constrains results by availability class.
type AvailabilityFilter struct {
	IncludeLive        *bool `json:"include_live,omitempty"`
	IncludePackageOnly *bool `json:"include_package_only,omitempty"`
	IncludeDeprecated  *bool `json:"include_deprecated,omitempty"`
	IncludeOffline     *bool `json:"include_offline,omitempty"`
	LiveServersOnly    *bool `json:"live_servers_only,omitempty"`
}

// ServerTypeFilter constrains results by server type and official status.
type ServerTypeFilter struct {
	IncludeGitHub             *bool  `json:"include_github,omitempty"`
	IncludeOfficial           *bool  `json:"include_official,omitempty"`
	OfficialOnly              *bool  `json:"official_only,omitempty"`
	GitHubOnly                *bool  `json:"github_only,omitempty"`
	MinimumOfficialStatus     string `json:"minimum_official_status,omitempty"`
	RequireDomainVerification *bool  `json:"require_domain_verification,omitempty"`
	RequireGitHubVerification *bool  `json:"require_github_verification,omitempty"`
}

// TechnicalFilter constrains results by transport, auth, and CORS support.
type TechnicalFilter struct {
	AuthTypes   []string `json:"auth_types,omitempty"`
	Transport   string   `json:"transport,omitempty"`
	CORSSupport *bool    `json:"cors_support,omitempty"`
}

// Result is one ranked discovery hit.
type Result struct {
	Server
	RelevanceScore float64 `json:"relevance_score"`
	Similarity     float64 `json:"similarity,omitempty"`
}

// Alternative is a filter-rejected candidate with the reason it was dropped.
type Alternative struct {
	Server
	RelevanceScore float64 `json:"relevance_score"`
	Reason         string  `json:"reason"`
}

// DiscoverResponse is the outcome of one discovery call.
type DiscoverResponse struct {
	Results []Result `json:"results"`
	// TotalResults counts all candidates surviving filters, before pagination.
	TotalResults    int           `json:"total_results"`
	DiscoveryTimeMS int64         `json:"discovery_time_ms"`
	Alternatives    []Alternative `json:"alternatives,omitempty"`
	Similar         []Result      `json:"similar,omitempty"`
}

// HealthReport is the service health summary.
type HealthReport struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	ServerCount int64             `json:"server_count"`
}
