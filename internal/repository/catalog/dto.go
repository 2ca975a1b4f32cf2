package catalog

import (
	"time"

	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// recordDTO is the stored JSON shape of a server record. Enum fields are kept
// as raw strings and re-parsed on read so that records written by older or
// sloppier registration paths still load (unknown values degrade, never fail).
type recordDTO struct {
	Domain      string `json:"domain"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Category     string          `json:"category"`
	Tags         []string        `json:"tags,omitempty"`
	Capabilities capabilitiesDTO `json:"capabilities"`

	TrustScore         float64    `json:"trust_score"`
	VerificationStatus string     `json:"verification_status"`
	Quality            qualityDTO `json:"quality"`

	Availability     availabilityDTO `json:"availability"`
	ServerType       string          `json:"server_type"`
	OfficialStatus   string          `json:"official_status"`
	EndpointVerified bool            `json:"endpoint_verified"`
	DomainVerified   bool            `json:"domain_verified"`
	GitHubVerified   bool            `json:"github_verified"`

	Transport   string  `json:"transport"`
	Auth        authDTO `json:"auth"`
	CORSEnabled bool    `json:"cors_enabled"`

	Health     *healthDTO    `json:"health,omitempty"`
	Repository repositoryDTO `json:"repository"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type capabilitiesDTO struct {
	Tools     []string `json:"tools,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Prompts   []string `json:"prompts,omitempty"`
}

type qualityDTO struct {
	Score    float64 `json:"score"`
	Category string  `json:"category"`
}

type availabilityDTO struct {
	Status string `json:"status"`
}

type authDTO struct {
	Type string `json:"type"`
}

type healthDTO struct {
	Status            string   `json:"status"`
	UptimePercentage  *float64 `json:"uptime_percentage,omitempty"`
	AvgResponseTimeMS *float64 `json:"avg_response_time_ms,omitempty"`
}

type repositoryDTO struct {
	Stars int `json:"stars"`
	Forks int `json:"forks"`
}

// toDTO converts a domain record into its stored shape.
func toDTO(rec server.Record) recordDTO {
	dto := recordDTO{
		Domain:      rec.Domain,
		Name:        rec.Name,
		Description: rec.Description,
		Category:    string(rec.Category),
		Tags:        rec.Tags,
		Capabilities: capabilitiesDTO{
			Tools:     rec.Capabilities.Tools,
			Resources: rec.Capabilities.Resources,
			Prompts:   rec.Capabilities.Prompts,
		},
		TrustScore:         rec.TrustScore,
		VerificationStatus: string(rec.Verification),
		Quality: qualityDTO{
			Score:    rec.Quality.Score,
			Category: string(rec.Quality.Category),
		},
		Availability:     availabilityDTO{Status: string(rec.Availability.Status)},
		ServerType:       string(rec.ServerType),
		OfficialStatus:   string(rec.OfficialStatus),
		EndpointVerified: rec.EndpointVerified,
		DomainVerified:   rec.DomainVerified,
		GitHubVerified:   rec.GitHubVerified,
		Transport:        string(rec.Transport),
		Auth:             authDTO{Type: string(rec.Auth.Type)},
		CORSEnabled:      rec.CORSEnabled,
		Repository: repositoryDTO{
			Stars: rec.Repository.Stars,
			Forks: rec.Repository.Forks,
		},
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	dto.Health = &healthDTO{
		Status:            string(rec.Health.Status),
		UptimePercentage:  rec.Health.UptimePercentage,
		AvgResponseTimeMS: rec.Health.AvgResponseTimeMS,
	}
	return dto
}

// toDomain converts a stored record back to the domain shape, parsing enums
// leniently and clamping scores.
func (d recordDTO) toDomain() server.Record {
	rec := server.Record{
		Domain:      d.Domain,
		Name:        d.Name,
		Description: d.Description,
		Category:    server.ParseCategory(d.Category),
		Tags:        d.Tags,
		Capabilities: server.Capabilities{
			Tools:     d.Capabilities.Tools,
			Resources: d.Capabilities.Resources,
			Prompts:   d.Capabilities.Prompts,
		},
		TrustScore:   d.TrustScore,
		Verification: server.ParseVerificationStatus(d.VerificationStatus),
		Quality: server.Quality{
			Score:    d.Quality.Score,
			Category: server.ParseQualityCategory(d.Quality.Category),
		},
		Availability:     server.Availability{Status: server.ParseAvailabilityStatus(d.Availability.Status)},
		ServerType:       server.ParseServerType(d.ServerType),
		OfficialStatus:   server.ParseOfficialStatus(d.OfficialStatus),
		EndpointVerified: d.EndpointVerified,
		DomainVerified:   d.DomainVerified,
		GitHubVerified:   d.GitHubVerified,
		Transport:        server.ParseTransport(d.Transport),
		Auth:             server.Auth{Type: server.ParseAuthType(d.Auth.Type)},
		CORSEnabled:      d.CORSEnabled,
		Health:           server.Health{Status: server.HealthUnknown},
		Repository: server.Repository{
			Stars: d.Repository.Stars,
			Forks: d.Repository.Forks,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Health != nil {
		rec.Health = server.Health{
			Status:            server.ParseHealthStatus(d.Health.Status),
			UptimePercentage:  d.Health.UptimePercentage,
			AvgResponseTimeMS: d.Health.AvgResponseTimeMS,
		}
	}
	rec.Clamp()
	return rec
}
