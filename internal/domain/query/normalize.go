package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mcplookup/mcplookup/internal/domain"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// domainPattern accepts DNS-style names (at least two labels, lowercase).
var domainPattern = regexp.MustCompile(
	`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)+$`)

// Input is the loosely-typed discovery request as received from a caller.
// Any subset of fields may be present; Normalize gives every absent field
// its explicit default.
type Input struct {
	Query    string
	Domain   string
	Domains  []string
	Keywords []string

	Capabilities *CapabilitiesInput
	SimilarTo    *SimilarToInput
	Categories   []string

	Performance  *PerformanceInput
	Availability *AvailabilityInput
	ServerType   *ServerTypeInput
	Technical    *TechnicalInput

	Limit  *int
	Offset *int
	SortBy string

	IncludeAlternatives *bool
	IncludeSimilar      *bool
}

// CapabilitiesInput is the raw capability constraint shape.
type CapabilitiesInput struct {
	Operator     string
	Required     []string
	Preferred    []string
	Exclude      []string
	MinimumMatch *float64
}

// SimilarToInput is the raw similarity reference shape.
type SimilarToInput struct {
	Domain           string
	Threshold        *float64
	ExcludeReference *bool
}

// PerformanceInput is the raw performance constraint shape.
type PerformanceInput struct {
	MinUptime         *float64
	MaxResponseTimeMS *float64
	MinTrustScore     *float64
	VerifiedOnly      *bool
	HealthyOnly       *bool
}

// AvailabilityInput is the raw availability constraint shape.
type AvailabilityInput struct {
	IncludeLive        *bool
	IncludePackageOnly *bool
	IncludeDeprecated  *bool
	IncludeOffline     *bool
	LiveServersOnly    *bool
}

// ServerTypeInput is the raw server type constraint shape.
type ServerTypeInput struct {
	IncludeGitHub             *bool
	IncludeOfficial           *bool
	OfficialOnly              *bool
	GitHubOnly                *bool
	MinimumOfficialStatus     string
	RequireDomainVerification *bool
	RequireGitHubVerification *bool
}

// TechnicalInput is the raw technical constraint shape.
type TechnicalInput struct {
	AuthTypes   []string
	Transport   string
	CORSSupport *bool
}

// Normalize validates and defaults a raw Input into a Query.
// Unknown-but-well-typed enum values are dropped from filters; only
// structurally invalid input (bad limit, malformed domain, out-of-range
// thresholds) produces an error. The error is always an InvalidQueryError
// naming the offending field, and is returned before any catalog read.
func Normalize(in Input) (Query, error) {
	q := Query{
		capabilities:        DefaultRequirement(),
		technical:           TechnicalFilter{},
		performance:         DefaultPerformanceFilter(),
		availability:        DefaultAvailabilityFilter(),
		serverType:          DefaultServerTypeFilter(),
		limit:               DefaultLimit,
		sortBy:              SortRelevance,
		includeAlternatives: true,
	}

	text := in.Query
	if len(in.Keywords) > 0 {
		text += " " + strings.Join(in.Keywords, " ")
	}
	q.textTerms = Tokenize(text)

	domains, err := normalizeDomains(in.Domain, in.Domains)
	if err != nil {
		return Query{}, err
	}
	q.domains = domains

	if in.Capabilities != nil {
		req, err := normalizeCapabilities(in.Capabilities)
		if err != nil {
			return Query{}, err
		}
		q.capabilities = req
	}

	if in.SimilarTo != nil {
		ref, err := normalizeSimilarTo(in.SimilarTo)
		if err != nil {
			return Query{}, err
		}
		q.similar = &ref
	}

	// Unrecognized categories are dropped, never rejected.
	for _, c := range in.Categories {
		if cat := server.ParseCategory(c); cat != server.CategoryOther || isOtherLiteral(c) {
			q.categories = append(q.categories, cat)
		}
	}

	if in.Performance != nil {
		perf, err := normalizePerformance(in.Performance)
		if err != nil {
			return Query{}, err
		}
		q.performance = perf
	}

	if in.Availability != nil {
		q.availability = AvailabilityFilter{
			IncludeLive:        boolOr(in.Availability.IncludeLive, true),
			IncludePackageOnly: boolOr(in.Availability.IncludePackageOnly, false),
			IncludeDeprecated:  boolOr(in.Availability.IncludeDeprecated, false),
			IncludeOffline:     boolOr(in.Availability.IncludeOffline, false),
			LiveServersOnly:    boolOr(in.Availability.LiveServersOnly, false),
		}
	}

	if in.ServerType != nil {
		q.serverType = normalizeServerType(in.ServerType)
	}

	if in.Technical != nil {
		q.technical = normalizeTechnical(in.Technical)
	}

	if in.Limit != nil {
		if *in.Limit < MinLimit || *in.Limit > MaxLimit {
			return Query{}, domain.NewInvalidQuery("limit", "must be between 1 and 100")
		}
		q.limit = *in.Limit
	}
	if in.Offset != nil {
		if *in.Offset < 0 {
			return Query{}, domain.NewInvalidQuery("offset", "must not be negative")
		}
		q.offset = *in.Offset
	}

	// Unknown sort keys fall back to relevance.
	if key := SortKey(strings.ToLower(in.SortBy)); key.IsValid() {
		q.sortBy = key
	}

	q.includeAlternatives = boolOr(in.IncludeAlternatives, true)
	q.includeSimilar = boolOr(in.IncludeSimilar, false)

	return q, nil
}

func normalizeDomains(single string, many []string) ([]string, error) {
	raw := make([]string, 0, len(many)+1)
	if single != "" {
		raw = append(raw, single)
	}
	raw = append(raw, many...)

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, d := range raw {
		d = strings.ToLower(strings.TrimSpace(d))
		if !domainPattern.MatchString(d) {
			return nil, domain.NewInvalidQuery("domain", "malformed domain "+strconv.Quote(d))
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}

func normalizeCapabilities(in *CapabilitiesInput) (Requirement, error) {
	// Unknown operators fall back to AND.
	op, _ := ParseOperator(in.Operator)

	match := DefaultMinimumMatch
	if in.MinimumMatch != nil {
		if *in.MinimumMatch < 0 || *in.MinimumMatch > 1 {
			return Requirement{}, domain.NewInvalidQuery(
				"capabilities.minimum_match", "must be between 0 and 1")
		}
		match = *in.MinimumMatch
	}

	return Requirement{
		Required:     lowercaseSet(in.Required),
		Preferred:    lowercaseSet(in.Preferred),
		Excluded:     lowercaseSet(in.Exclude),
		Operator:     op,
		MinimumMatch: match,
	}, nil
}

func normalizeSimilarTo(in *SimilarToInput) (SimilarityReference, error) {
	d := strings.ToLower(strings.TrimSpace(in.Domain))
	if !domainPattern.MatchString(d) {
		return SimilarityReference{}, domain.NewInvalidQuery(
			"similar_to.domain", "malformed domain "+strconv.Quote(d))
	}

	threshold := DefaultSimilarityThreshold
	if in.Threshold != nil {
		if *in.Threshold < 0 || *in.Threshold > 1 {
			return SimilarityReference{}, domain.NewInvalidQuery(
				"similar_to.threshold", "must be between 0 and 1")
		}
		threshold = *in.Threshold
	}

	return SimilarityReference{
		Domain:           d,
		Threshold:        threshold,
		ExcludeReference: boolOr(in.ExcludeReference, true),
	}, nil
}

func normalizePerformance(in *PerformanceInput) (PerformanceFilter, error) {
	f := DefaultPerformanceFilter()
	if in.MinUptime != nil {
		if *in.MinUptime < 0 || *in.MinUptime > 100 {
			return PerformanceFilter{}, domain.NewInvalidQuery(
				"performance.min_uptime", "must be between 0 and 100")
		}
		f.MinUptime = *in.MinUptime
	}
	if in.MaxResponseTimeMS != nil {
		if *in.MaxResponseTimeMS <= 0 {
			return PerformanceFilter{}, domain.NewInvalidQuery(
				"performance.max_response_time", "must be positive")
		}
		f.MaxResponseTimeMS = *in.MaxResponseTimeMS
	}
	if in.MinTrustScore != nil {
		if *in.MinTrustScore < 0 || *in.MinTrustScore > server.MaxTrustScore {
			return PerformanceFilter{}, domain.NewInvalidQuery(
				"performance.min_trust_score", "must be between 0 and 100")
		}
		f.MinTrustScore = *in.MinTrustScore
	}
	f.VerifiedOnly = boolOr(in.VerifiedOnly, true)
	f.HealthyOnly = boolOr(in.HealthyOnly, true)
	return f, nil
}

func normalizeServerType(in *ServerTypeInput) ServerTypeFilter {
	return ServerTypeFilter{
		IncludeGitHub:             boolOr(in.IncludeGitHub, true),
		IncludeOfficial:           boolOr(in.IncludeOfficial, true),
		OfficialOnly:              boolOr(in.OfficialOnly, false),
		GitHubOnly:                boolOr(in.GitHubOnly, false),
		MinimumOfficialStatus:     server.ParseOfficialStatus(in.MinimumOfficialStatus),
		RequireDomainVerification: boolOr(in.RequireDomainVerification, false),
		RequireGitHubVerification: boolOr(in.RequireGitHubVerification, false),
	}
}

func normalizeTechnical(in *TechnicalInput) TechnicalFilter {
	f := TechnicalFilter{CORSSupport: in.CORSSupport}

	// Unknown transports and auth types are dropped, never rejected.
	if t := server.ParseTransport(in.Transport); in.Transport != "" && t != server.TransportUnknown {
		f.Transport = t
	}
	for _, a := range in.AuthTypes {
		if parsed := server.ParseAuthType(a); parsed != server.AuthUnknown {
			f.AuthTypes = append(f.AuthTypes, parsed)
		}
	}
	return f
}

func lowercaseSet(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func isOtherLiteral(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), string(server.CategoryOther))
}
