package chi

import (
	"time"

	"github.com/google/uuid"

	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// discoverRequest is the wire shape of a discovery call. Every field is
// optional; an empty body is legal and degenerates to the default query.
type discoverRequest struct {
	Query    string   `json:"query,omitempty"`
	Domain   string   `json:"domain,omitempty"`
	Domains  []string `json:"domains,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	Capabilities *capabilitiesRequest `json:"capabilities,omitempty"`
	SimilarTo    *similarToRequest    `json:"similar_to,omitempty"`
	Categories   []string             `json:"categories,omitempty"`

	Performance        *performanceRequest  `json:"performance,omitempty"`
	AvailabilityFilter *availabilityRequest `json:"availability_filter,omitempty"`
	ServerTypeFilter   *serverTypeRequest   `json:"server_type_filter,omitempty"`
	Technical          *technicalRequest    `json:"technical,omitempty"`

	Limit  *int   `json:"limit,omitempty"`
	Offset *int   `json:"offset,omitempty"`
	SortBy string `json:"sort_by,omitempty"`

	IncludeAlternatives *bool `json:"include_alternatives,omitempty"`
	IncludeSimilar      *bool `json:"include_similar,omitempty"`
}

type capabilitiesRequest struct {
	Operator     string   `json:"operator,omitempty"`
	Required     []string `json:"required,omitempty"`
	Preferred    []string `json:"preferred,omitempty"`
	Exclude      []string `json:"exclude,omitempty"`
	MinimumMatch *float64 `json:"minimum_match,omitempty"`
}

type similarToRequest struct {
	Domain           string   `json:"domain"`
	Threshold        *float64 `json:"threshold,omitempty"`
	ExcludeReference *bool    `json:"exclude_reference,omitempty"`
}

type performanceRequest struct {
	MinUptime         *float64 `json:"min_uptime,omitempty"`
	MaxResponseTimeMS *float64 `json:"max_response_time,omitempty"`
	MinTrustScore     *float64 `json:"min_trust_score,omitempty"`
	VerifiedOnly      *bool    `json:"verified_only,omitempty"`
	HealthyOnly       *bool    `json:"healthy_only,omitempty"`
}

type availabilityRequest struct {
	IncludeLive        *bool `json:"include_live,omitempty"`
	IncludePackageOnly *bool `json:"include_package_only,omitempty"`
	IncludeDeprecated  *bool `json:"include_deprecated,omitempty"`
	IncludeOffline     *bool `json:"include_offline,omitempty"`
	LiveServersOnly    *bool `json:"live_servers_only,omitempty"`
}

type serverTypeRequest struct {
	IncludeGitHub             *bool  `json:"include_github,omitempty"`
	IncludeOfficial           *bool  `json:"include_official,omitempty"`
	OfficialOnly              *bool  `json:"official_only,omitempty"`
	GitHubOnly                *bool  `json:"github_only,omitempty"`
	MinimumOfficialStatus     string `json:"minimum_official_status,omitempty"`
	RequireDomainVerification *bool  `json:"require_domain_verification,omitempty"`
	RequireGitHubVerification *bool  `json:"require_github_verification,omitempty"`
}

type technicalRequest struct {
	AuthTypes   []string `json:"auth_types,omitempty"`
	Transport   string   `json:"transport,omitempty"`
	CORSSupport *bool    `json:"cors_support,omitempty"`
}

// toInput maps the wire request onto the normalizer's input shape.
func (r discoverRequest) toInput() query.Input {
	in := query.Input{
		Query:               r.Query,
		Domain:              r.Domain,
		Domains:             r.Domains,
		Keywords:            r.Keywords,
		Categories:          r.Categories,
		Limit:               r.Limit,
		Offset:              r.Offset,
		SortBy:              r.SortBy,
		IncludeAlternatives: r.IncludeAlternatives,
		IncludeSimilar:      r.IncludeSimilar,
	}
	if r.Capabilities != nil {
		in.Capabilities = &query.CapabilitiesInput{
			Operator:     r.Capabilities.Operator,
			Required:     r.Capabilities.Required,
			Preferred:    r.Capabilities.Preferred,
			Exclude:      r.Capabilities.Exclude,
			MinimumMatch: r.Capabilities.MinimumMatch,
		}
	}
	if r.SimilarTo != nil {
		in.SimilarTo = &query.SimilarToInput{
			Domain:           r.SimilarTo.Domain,
			Threshold:        r.SimilarTo.Threshold,
			ExcludeReference: r.SimilarTo.ExcludeReference,
		}
	}
	if r.Performance != nil {
		in.Performance = &query.PerformanceInput{
			MinUptime:         r.Performance.MinUptime,
			MaxResponseTimeMS: r.Performance.MaxResponseTimeMS,
			MinTrustScore:     r.Performance.MinTrustScore,
			VerifiedOnly:      r.Performance.VerifiedOnly,
			HealthyOnly:       r.Performance.HealthyOnly,
		}
	}
	if r.AvailabilityFilter != nil {
		in.Availability = &query.AvailabilityInput{
			IncludeLive:        r.AvailabilityFilter.IncludeLive,
			IncludePackageOnly: r.AvailabilityFilter.IncludePackageOnly,
			IncludeDeprecated:  r.AvailabilityFilter.IncludeDeprecated,
			IncludeOffline:     r.AvailabilityFilter.IncludeOffline,
			LiveServersOnly:    r.AvailabilityFilter.LiveServersOnly,
		}
	}
	if r.ServerTypeFilter != nil {
		in.ServerType = &query.ServerTypeInput{
			IncludeGitHub:             r.ServerTypeFilter.IncludeGitHub,
			IncludeOfficial:           r.ServerTypeFilter.IncludeOfficial,
			OfficialOnly:              r.ServerTypeFilter.OfficialOnly,
			GitHubOnly:                r.ServerTypeFilter.GitHubOnly,
			MinimumOfficialStatus:     r.ServerTypeFilter.MinimumOfficialStatus,
			RequireDomainVerification: r.ServerTypeFilter.RequireDomainVerification,
			RequireGitHubVerification: r.ServerTypeFilter.RequireGitHubVerification,
		}
	}
	if r.Technical != nil {
		in.Technical = &query.TechnicalInput{
			AuthTypes:   r.Technical.AuthTypes,
			Transport:   r.Technical.Transport,
			CORSSupport: r.Technical.CORSSupport,
		}
	}
	return in
}

// serverPayload is the wire shape of a server record, used both for
// registration bodies and response items.
type serverPayload struct {
	Domain      string `json:"domain"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Category     string              `json:"category"`
	Tags         []string            `json:"tags,omitempty"`
	Capabilities capabilitiesPayload `json:"capabilities"`

	TrustScore         float64        `json:"trust_score"`
	VerificationStatus string         `json:"verification_status"`
	Quality            qualityPayload `json:"quality"`

	Availability     availabilityPayload `json:"availability"`
	ServerType       string              `json:"server_type"`
	OfficialStatus   string              `json:"official_status"`
	EndpointVerified bool                `json:"endpoint_verified"`
	DomainVerified   bool                `json:"domain_verified"`
	GitHubVerified   bool                `json:"github_verified"`

	Transport   string      `json:"transport"`
	Auth        authPayload `json:"auth"`
	CORSEnabled bool        `json:"cors_enabled"`

	Health     *healthPayload    `json:"health,omitempty"`
	Repository repositoryPayload `json:"repository"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type capabilitiesPayload struct {
	Tools     []string `json:"tools,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Prompts   []string `json:"prompts,omitempty"`
}

type qualityPayload struct {
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

type availabilityPayload struct {
	Status string `json:"status"`
}

type authPayload struct {
	Type string `json:"type"`
}

type healthPayload struct {
	Status            string   `json:"status"`
	UptimePercentage  *float64 `json:"uptime_percentage,omitempty"`
	AvgResponseTimeMS *float64 `json:"avg_response_time_ms,omitempty"`
}

type repositoryPayload struct {
	Stars int `json:"stars"`
	Forks int `json:"forks"`
}

func recordToWire(rec server.Record) serverPayload {
	return serverPayload{
		Domain:      rec.Domain,
		Name:        rec.Name,
		Description: rec.Description,
		Category:    string(rec.Category),
		Tags:        rec.Tags,
		Capabilities: capabilitiesPayload{
			Tools:     rec.Capabilities.Tools,
			Resources: rec.Capabilities.Resources,
			Prompts:   rec.Capabilities.Prompts,
		},
		TrustScore:         rec.TrustScore,
		VerificationStatus: string(rec.Verification),
		Quality: qualityPayload{
			Score:    rec.Quality.Score,
			Category: string(rec.Quality.Category),
		},
		Availability:     availabilityPayload{Status: string(rec.Availability.Status)},
		ServerType:       string(rec.ServerType),
		OfficialStatus:   string(rec.OfficialStatus),
		EndpointVerified: rec.EndpointVerified,
		DomainVerified:   rec.DomainVerified,
		GitHubVerified:   rec.GitHubVerified,
		Transport:        string(rec.Transport),
		Auth:             authPayload{Type: string(rec.Auth.Type)},
		CORSEnabled:      rec.CORSEnabled,
		Health: &healthPayload{
			Status:            string(rec.Health.Status),
			UptimePercentage:  rec.Health.UptimePercentage,
			AvgResponseTimeMS: rec.Health.AvgResponseTimeMS,
		},
		Repository: repositoryPayload{
			Stars: rec.Repository.Stars,
			Forks: rec.Repository.Forks,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// recordFromWire parses a registration body leniently: unknown enum values
// degrade to their "other"/"unknown" forms instead of rejecting.
func recordFromWire(p serverPayload) server.Record {
	rec := server.Record{
		Domain:      p.Domain,
		Name:        p.Name,
		Description: p.Description,
		Category:    server.ParseCategory(p.Category),
		Tags:        p.Tags,
		Capabilities: server.Capabilities{
			Tools:     p.Capabilities.Tools,
			Resources: p.Capabilities.Resources,
			Prompts:   p.Capabilities.Prompts,
		},
		TrustScore:   p.TrustScore,
		Verification: server.ParseVerificationStatus(p.VerificationStatus),
		Quality: server.Quality{
			Score:    p.Quality.Score,
			Category: server.ParseQualityCategory(p.Quality.Category),
		},
		Availability:     server.Availability{Status: server.ParseAvailabilityStatus(p.Availability.Status)},
		ServerType:       server.ParseServerType(p.ServerType),
		OfficialStatus:   server.ParseOfficialStatus(p.OfficialStatus),
		EndpointVerified: p.EndpointVerified,
		DomainVerified:   p.DomainVerified,
		GitHubVerified:   p.GitHubVerified,
		Transport:        server.ParseTransport(p.Transport),
		Auth:             server.Auth{Type: server.ParseAuthType(p.Auth.Type)},
		CORSEnabled:      p.CORSEnabled,
		Health:           server.Health{Status: server.HealthUnknown},
		Repository: server.Repository{
			Stars: p.Repository.Stars,
			Forks: p.Repository.Forks,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Health != nil {
		rec.Health = server.Health{
			Status:            server.ParseHealthStatus(p.Health.Status),
			UptimePercentage:  p.Health.UptimePercentage,
			AvgResponseTimeMS: p.Health.AvgResponseTimeMS,
		}
	}
	return rec
}

// resultPayload is one ranked discovery result: the record plus its score.
type resultPayload struct {
	serverPayload
	RelevanceScore float64          `json:"relevance_score"`
	Similarity     float64          `json:"similarity,omitempty"`
	ScoreBreakdown breakdownPayload `json:"score_breakdown"`
}

type breakdownPayload struct {
	Keyword    float64 `json:"keyword"`
	Capability float64 `json:"capability"`
	Similarity float64 `json:"similarity"`
	Bonus      float64 `json:"bonus"`
}

// alternativePayload is a filter-rejected candidate with the reason it was
// dropped.
type alternativePayload struct {
	serverPayload
	RelevanceScore float64 `json:"relevance_score"`
	Reason         string  `json:"reason"`
}

// queryEcho mirrors the normalized query back to the caller.
type queryEcho struct {
	ID         string    `json:"id"`
	TextTerms  []string  `json:"text_terms,omitempty"`
	Domains    []string  `json:"domains,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	SortBy     string    `json:"sort_by"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
	Timestamp  time.Time `json:"timestamp"`
}

type enhancementInfo struct {
	ServerTypeBreakdown map[string]int `json:"server_type_breakdown"`
	AvgTrustScore       float64        `json:"avg_trust_score"`
	VerifiedCount       int            `json:"verified_count"`
	Timing              timingPayload  `json:"timing"`
}

type timingPayload struct {
	SelectionMS int64 `json:"selection_ms"`
	ScoringMS   int64 `json:"scoring_ms"`
	FilteringMS int64 `json:"filtering_ms"`
	RankingMS   int64 `json:"ranking_ms"`
}

type discoverResponse struct {
	Query           queryEcho            `json:"query"`
	Results         []resultPayload      `json:"results"`
	TotalResults    int                  `json:"total_results"`
	DiscoveryTimeMS int64                `json:"discovery_time_ms"`
	Alternatives    []alternativePayload `json:"alternatives,omitempty"`
	Similar         []resultPayload      `json:"similar,omitempty"`
	EnhancementInfo enhancementInfo      `json:"enhancement_info"`
}

func reportToWire(q *query.Query, rep domdisc.Report) discoverResponse {
	results := make([]resultPayload, len(rep.Results))
	for i, r := range rep.Results {
		results[i] = scoredToWire(r)
	}

	var alternatives []alternativePayload
	for _, a := range rep.Alternatives {
		alternatives = append(alternatives, alternativePayload{
			serverPayload:  recordToWire(a.Scored.Record),
			RelevanceScore: a.Scored.Score,
			Reason:         a.Reason,
		})
	}

	var similar []resultPayload
	for _, s := range rep.Similar {
		similar = append(similar, scoredToWire(s))
	}

	breakdown := make(map[string]int, len(rep.Stats.ServerTypeBreakdown))
	for t, n := range rep.Stats.ServerTypeBreakdown {
		breakdown[string(t)] = n
	}

	categories := make([]string, len(q.Categories()))
	for i, c := range q.Categories() {
		categories[i] = string(c)
	}

	return discoverResponse{
		Query: queryEcho{
			ID:         uuid.NewString(),
			TextTerms:  q.TextTerms(),
			Domains:    q.Domains(),
			Categories: categories,
			SortBy:     string(q.SortBy()),
			Limit:      q.Limit(),
			Offset:     q.Offset(),
			Timestamp:  time.Now().UTC(),
		},
		Results:         results,
		TotalResults:    rep.TotalResults,
		DiscoveryTimeMS: rep.Timing.Total.Milliseconds(),
		Alternatives:    alternatives,
		Similar:         similar,
		EnhancementInfo: enhancementInfo{
			ServerTypeBreakdown: breakdown,
			AvgTrustScore:       rep.Stats.AvgTrustScore,
			VerifiedCount:       rep.Stats.VerifiedCount,
			Timing: timingPayload{
				SelectionMS: rep.Timing.Selection.Milliseconds(),
				ScoringMS:   rep.Timing.Scoring.Milliseconds(),
				FilteringMS: rep.Timing.Filtering.Milliseconds(),
				RankingMS:   rep.Timing.Ranking.Milliseconds(),
			},
		},
	}
}

func scoredToWire(s domdisc.Scored) resultPayload {
	return resultPayload{
		serverPayload:  recordToWire(s.Record),
		RelevanceScore: s.Score,
		Similarity:     s.Similarity,
		ScoreBreakdown: breakdownPayload{
			Keyword:    s.Breakdown.Keyword,
			Capability: s.Breakdown.Capability,
			Similarity: s.Breakdown.Similarity,
			Bonus:      s.Breakdown.Bonus,
		},
	}
}

// listResponse is the category listing shape.
type listResponse struct {
	Servers []serverPayload `json:"servers"`
	Total   int             `json:"total"`
}

// errorResponse is the uniform error shape.
type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// healthResponse is the health endpoint shape.
type healthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	ServerCount int64             `json:"server_count"`
}
