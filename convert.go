package mcplookup

import (
	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

func requestToInput(req DiscoverRequest) query.Input {
	in := query.Input{
		Query:               req.Query,
		Domain:              req.Domain,
		Domains:             req.Domains,
		Keywords:            req.Keywords,
		Categories:          req.Categories,
		Limit:               req.Limit,
		Offset:              req.Offset,
		SortBy:              req.SortBy,
		IncludeAlternatives: req.IncludeAlternatives,
		IncludeSimilar:      req.IncludeSimilar,
	}
	if req.Capabilities != nil {
		in.Capabilities = &query.CapabilitiesInput{
			Operator:     req.Capabilities.Operator,
			Required:     req.Capabilities.Required,
			Preferred:    req.Capabilities.Preferred,
			Exclude:      req.Capabilities.Exclude,
			MinimumMatch: req.Capabilities.MinimumMatch,
		}
	}
	if req.SimilarTo != nil {
		in.SimilarTo = &query.SimilarToInput{
			Domain:           req.SimilarTo.Domain,
			Threshold:        req.SimilarTo.Threshold,
			ExcludeReference: req.SimilarTo.ExcludeReference,
		}
	}
	if req.Performance != nil {
		in.Performance = &query.PerformanceInput{
			MinUptime:         req.Performance.MinUptime,
			MaxResponseTimeMS: req.Performance.MaxResponseTimeMS,
			MinTrustScore:     req.Performance.MinTrustScore,
			VerifiedOnly:      req.Performance.VerifiedOnly,
			HealthyOnly:       req.Performance.HealthyOnly,
		}
	}
	if req.AvailabilityFilter != nil {
		in.Availability = &query.AvailabilityInput{
			IncludeLive:        req.AvailabilityFilter.IncludeLive,
			IncludePackageOnly: req.AvailabilityFilter.IncludePackageOnly,
			IncludeDeprecated:  req.AvailabilityFilter.IncludeDeprecated,
			IncludeOffline:     req.AvailabilityFilter.IncludeOffline,
			LiveServersOnly:    req.AvailabilityFilter.LiveServersOnly,
		}
	}
	if req.ServerTypeFilter != nil {
		in.ServerType = &query.ServerTypeInput{
			IncludeGitHub:             req.ServerTypeFilter.IncludeGitHub,
			IncludeOfficial:           req.ServerTypeFilter.IncludeOfficial,
			OfficialOnly:              req.ServerTypeFilter.OfficialOnly,
			GitHubOnly:                req.ServerTypeFilter.GitHubOnly,
			MinimumOfficialStatus:     req.ServerTypeFilter.MinimumOfficialStatus,
			RequireDomainVerification: req.ServerTypeFilter.RequireDomainVerification,
			RequireGitHubVerification: req.ServerTypeFilter.RequireGitHubVerification,
		}
	}
	if req.Technical != nil {
		in.Technical = &query.TechnicalInput{
			AuthTypes:   req.Technical.AuthTypes,
			Transport:   req.Technical.Transport,
			CORSSupport: req.Technical.CORSSupport,
		}
	}
	return in
}

func recordToPublic(rec server.Record) Server {
	return Server{
		Domain:      rec.Domain,
		Name:        rec.Name,
		Description: rec.Description,
		Category:    string(rec.Category),
		Tags:        rec.Tags,
		Capabilities: Capabilities{
			Tools:     rec.Capabilities.Tools,
			Resources: rec.Capabilities.Resources,
			Prompts:   rec.Capabilities.Prompts,
		},
		TrustScore:         rec.TrustScore,
		VerificationStatus: string(rec.Verification),
		Quality: Quality{
			Score:    rec.Quality.Score,
			Category: string(rec.Quality.Category),
		},
		Availability:     Availability{Status: string(rec.Availability.Status)},
		ServerType:       string(rec.ServerType),
		OfficialStatus:   string(rec.OfficialStatus),
		EndpointVerified: rec.EndpointVerified,
		DomainVerified:   rec.DomainVerified,
		GitHubVerified:   rec.GitHubVerified,
		Transport:        string(rec.Transport),
		Auth:             Auth{Type: string(rec.Auth.Type)},
		CORSEnabled:      rec.CORSEnabled,
		Health: &Health{
			Status:            string(rec.Health.Status),
			UptimePercentage:  rec.Health.UptimePercentage,
			AvgResponseTimeMS: rec.Health.AvgResponseTimeMS,
		},
		Repository: Repository{
			Stars: rec.Repository.Stars,
			Forks: rec.Repository.Forks,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func publicToRecord(srv Server) server.Record {
	rec := server.Record{
		Domain:      srv.Domain,
		Name:        srv.Name,
		Description: srv.Description,
		Category:    server.ParseCategory(srv.Category),
		Tags:        srv.Tags,
		Capabilities: server.Capabilities{
			Tools:     srv.Capabilities.Tools,
			Resources: srv.Capabilities.Resources,
			Prompts:   srv.Capabilities.Prompts,
		},
		TrustScore:   srv.TrustScore,
		Verification: server.ParseVerificationStatus(srv.VerificationStatus),
		Quality: server.Quality{
			Score:    srv.Quality.Score,
			Category: server.ParseQualityCategory(srv.Quality.Category),
		},
		Availability:     server.Availability{Status: server.ParseAvailabilityStatus(srv.Availability.Status)},
		ServerType:       server.ParseServerType(srv.ServerType),
		OfficialStatus:   server.ParseOfficialStatus(srv.OfficialStatus),
		EndpointVerified: srv.EndpointVerified,
		DomainVerified:   srv.DomainVerified,
		GitHubVerified:   srv.GitHubVerified,
		Transport:        server.ParseTransport(srv.Transport),
		Auth:             server.Auth{Type: server.ParseAuthType(srv.Auth.Type)},
		CORSEnabled:      srv.CORSEnabled,
		Health:           server.Health{Status: server.HealthUnknown},
		Repository: server.Repository{
			Stars: srv.Repository.Stars,
			Forks: srv.Repository.Forks,
		},
		CreatedAt: srv.CreatedAt,
		UpdatedAt: srv.UpdatedAt,
	}
	if srv.Health != nil {
		rec.Health = server.Health{
			Status:            server.ParseHealthStatus(srv.Health.Status),
			UptimePercentage:  srv.Health.UptimePercentage,
			AvgResponseTimeMS: srv.Health.AvgResponseTimeMS,
		}
	}
	return rec
}

func reportToPublic(rep domdisc.Report) DiscoverResponse {
	results := make([]Result, len(rep.Results))
	for i, r := range rep.Results {
		results[i] = Result{
			Server:         recordToPublic(r.Record),
			RelevanceScore: r.Score,
			Similarity:     r.Similarity,
		}
	}

	var alternatives []Alternative
	for _, a := range rep.Alternatives {
		alternatives = append(alternatives, Alternative{
			Server:         recordToPublic(a.Scored.Record),
			RelevanceScore: a.Scored.Score,
			Reason:         a.Reason,
		})
	}

	var similar []Result
	for _, s := range rep.Similar {
		similar = append(similar, Result{
			Server:         recordToPublic(s.Record),
			RelevanceScore: s.Score,
			Similarity:     s.Similarity,
		})
	}

	return DiscoverResponse{
		Results:         results,
		TotalResults:    rep.TotalResults,
		DiscoveryTimeMS: rep.Timing.Total.Milliseconds(),
		Alternatives:    alternatives,
		Similar:         similar,
	}
}
