// Package server defines the catalog's unit of discovery: the server record.
package server

import (
	"sort"
	"strings"
	"time"
)

// Score bounds for trust and quality.
const (
	MaxTrustScore   = 100
	MaxQualityScore = 170
)

// Capabilities lists the named tools, resources, and prompts a server exposes.
type Capabilities struct {
	Tools     []string
	Resources []string
	Prompts   []string
}

// Quality is the composite quality assessment of a record.
type Quality struct {
	Score    float64
	Category QualityCategory
}

// Availability describes how the server can be consumed.
type Availability struct {
	Status AvailabilityStatus
}

// Auth describes the authentication the server requires.
type Auth struct {
	Type AuthType
}

// Health holds the latest probe results for a live endpoint.
type Health struct {
	Status            HealthStatus
	UptimePercentage  *float64
	AvgResponseTimeMS *float64
}

// Repository holds source-hosting popularity signals.
type Repository struct {
	Stars int
	Forks int
}

// Record is one discoverable MCP server. Domain is the unique catalog key.
// Discovery reads records but never mutates them; writes happen through the
// registration path.
type Record struct {
	Domain      string
	Name        string
	Description string

	Category     Category
	Tags         []string
	Capabilities Capabilities

	TrustScore   float64
	Verification VerificationStatus
	Quality      Quality

	Availability     Availability
	ServerType       ServerType
	OfficialStatus   OfficialStatus
	EndpointVerified bool
	DomainVerified   bool
	GitHubVerified   bool

	Transport   Transport
	Auth        Auth
	CORSEnabled bool

	Health     Health
	Repository Repository

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clamp forces trust and quality scores into their stated ranges.
func (r *Record) Clamp() {
	r.TrustScore = clamp(r.TrustScore, 0, MaxTrustScore)
	r.Quality.Score = clamp(r.Quality.Score, 0, MaxQualityScore)
}

// AllCapabilities returns the sorted union of tools, resources, and prompts,
// lowercased for matching.
func (r *Record) AllCapabilities() []string {
	seen := make(map[string]struct{},
		len(r.Capabilities.Tools)+len(r.Capabilities.Resources)+len(r.Capabilities.Prompts))
	for _, group := range [][]string{r.Capabilities.Tools, r.Capabilities.Resources, r.Capabilities.Prompts} {
		for _, c := range group {
			seen[strings.ToLower(c)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// HasCapability reports whether the record exposes the named capability
// in any group (case-insensitive).
func (r *Record) HasCapability(name string) bool {
	name = strings.ToLower(name)
	for _, group := range [][]string{r.Capabilities.Tools, r.Capabilities.Resources, r.Capabilities.Prompts} {
		for _, c := range group {
			if strings.ToLower(c) == name {
				return true
			}
		}
	}
	return false
}

// SearchText returns the lowercased haystack for keyword matching:
// name, description, tags, and capability names.
func (r *Record) SearchText() string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteByte(' ')
	b.WriteString(r.Description)
	for _, t := range r.Tags {
		b.WriteByte(' ')
		b.WriteString(t)
	}
	for _, c := range r.AllCapabilities() {
		b.WriteByte(' ')
		b.WriteString(c)
	}
	return strings.ToLower(b.String())
}

// Popularity is the raw popularity signal (stars + forks).
func (r *Record) Popularity() int {
	return r.Repository.Stars + r.Repository.Forks
}

// LowercaseTags returns the record's tags lowercased.
func (r *Record) LowercaseTags() []string {
	out := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		out[i] = strings.ToLower(t)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
