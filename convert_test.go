package mcplookup

import (
	"testing"
	"time"

	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

func TestPublicToRecord_LenientEnums(t *testing.T) {
	rec := publicToRecord(Server{
		Domain:             "x.example.com",
		Name:               "X",
		Category:           "no-such-category",
		VerificationStatus: "definitely-not-a-status",
		Availability:       Availability{Status: "???"},
		Transport:          "smoke-signals",
	})

	if rec.Category != server.CategoryOther {
		t.Errorf("category = %q, want other", rec.Category)
	}
	if rec.Verification != server.VerificationUnverified {
		t.Errorf("verification = %q, want unverified", rec.Verification)
	}
	if rec.Availability.Status != server.AvailabilityOffline {
		t.Errorf("availability = %q, want offline", rec.Availability.Status)
	}
	if rec.Transport != server.TransportUnknown {
		t.Errorf("transport = %q, want unknown", rec.Transport)
	}
	if rec.Health.Status != server.HealthUnknown {
		t.Errorf("nil health must default to unknown, got %q", rec.Health.Status)
	}
}

func TestRecordToPublic_RoundTrip(t *testing.T) {
	uptime := 99.5
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	rec := server.Record{
		Domain:       "mail.example.com",
		Name:         "Mail",
		Category:     server.CategoryCommunication,
		Tags:         []string{"email"},
		Capabilities: server.Capabilities{Tools: []string{"send_email"}},
		TrustScore:   80,
		Verification: server.VerificationVerified,
		Availability: server.Availability{Status: server.AvailabilityLive},
		Transport:    server.TransportHTTP,
		Auth:         server.Auth{Type: server.AuthAPIKey},
		Health: server.Health{
			Status:           server.HealthHealthy,
			UptimePercentage: &uptime,
		},
		Repository: server.Repository{Stars: 42},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	back := publicToRecord(recordToPublic(rec))
	if back.Domain != rec.Domain || back.Category != rec.Category ||
		back.Verification != rec.Verification || back.Transport != rec.Transport {
		t.Errorf("round trip mismatch: %+v", back)
	}
	if back.Health.Status != server.HealthHealthy || *back.Health.UptimePercentage != uptime {
		t.Errorf("health lost in round trip: %+v", back.Health)
	}
	if back.Repository.Stars != 42 {
		t.Errorf("stars = %d", back.Repository.Stars)
	}
}

func TestReportToPublic(t *testing.T) {
	rep := domdisc.Report{
		Results: []domdisc.Scored{
			{Record: server.Record{Domain: "top.example.com"}, Score: 55, Similarity: 0.8},
		},
		TotalResults: 3,
		Alternatives: []domdisc.Rejection{
			{Scored: domdisc.Scored{Record: server.Record{Domain: "alt.example.com"}, Score: 12},
				Reason: "not verified"},
		},
		Timing: domdisc.Timing{Total: 42 * time.Millisecond},
	}

	resp := reportToPublic(rep)
	if len(resp.Results) != 1 || resp.Results[0].Domain != "top.example.com" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
	if resp.Results[0].RelevanceScore != 55 || resp.Results[0].Similarity != 0.8 {
		t.Errorf("scores lost: %+v", resp.Results[0])
	}
	if resp.TotalResults != 3 {
		t.Errorf("total = %d", resp.TotalResults)
	}
	if len(resp.Alternatives) != 1 || resp.Alternatives[0].Reason != "not verified" {
		t.Errorf("alternatives lost: %+v", resp.Alternatives)
	}
	if resp.DiscoveryTimeMS != 42 {
		t.Errorf("discovery time = %d, want 42", resp.DiscoveryTimeMS)
	}
}

func TestRequestToInput_CarriesNestedFilters(t *testing.T) {
	threshold := 0.4
	limit := 25
	req := DiscoverRequest{
		Query:      "email",
		Categories: []string{"communication"},
		Capabilities: &CapabilityFilter{
			Operator: "OR",
			Required: []string{"send_email"},
		},
		SimilarTo: &SimilarTo{Domain: "ref.example.com", Threshold: &threshold},
		Limit:     &limit,
	}

	in := requestToInput(req)
	if in.Query != "email" || len(in.Categories) != 1 {
		t.Errorf("top-level fields lost: %+v", in)
	}
	if in.Capabilities == nil || in.Capabilities.Operator != "OR" {
		t.Errorf("capabilities lost: %+v", in.Capabilities)
	}
	if in.SimilarTo == nil || *in.SimilarTo.Threshold != threshold {
		t.Errorf("similar_to lost: %+v", in.SimilarTo)
	}
	if in.Limit == nil || *in.Limit != 25 {
		t.Errorf("limit lost: %v", in.Limit)
	}
}
