package discovery

import (
	"context"
	"strings"
	"testing"

	"github.com/mcplookup/mcplookup/internal/domain"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// --- Mocks ---

// mockCatalog implements Catalog over an in-memory map.
type mockCatalog struct {
	records map[string]server.Record
	err     error

	getCalls      int
	getMultiCalls int
	categoryCalls int
	listAllCalls  int
}

func newMockCatalog(records ...server.Record) *mockCatalog {
	m := &mockCatalog{records: make(map[string]server.Record, len(records))}
	for _, r := range records {
		m.records[r.Domain] = r
	}
	return m
}

func (m *mockCatalog) Get(_ context.Context, dom string) (server.Record, error) {
	m.getCalls++
	if m.err != nil {
		return server.Record{}, m.err
	}
	rec, ok := m.records[strings.ToLower(dom)]
	if !ok {
		return server.Record{}, domain.ErrNotFound
	}
	return rec, nil
}

func (m *mockCatalog) GetMulti(_ context.Context, domains []string) ([]server.Record, error) {
	m.getMultiCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []server.Record
	for _, d := range domains {
		if rec, ok := m.records[strings.ToLower(d)]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockCatalog) ListByCategory(_ context.Context, cat server.Category) ([]server.Record, error) {
	m.categoryCalls++
	if m.err != nil {
		return nil, m.err
	}
	var out []server.Record
	for _, rec := range m.records {
		if rec.Category == cat {
			out = append(out, rec)
		}
	}
	sortByDomain(out)
	return out, nil
}

func (m *mockCatalog) ListAll(_ context.Context) ([]server.Record, error) {
	m.listAllCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]server.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sortByDomain(out)
	return out, nil
}

func sortByDomain(records []server.Record) {
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && records[j].Domain < records[j-1].Domain; j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
}

// --- Builders ---

// testRecord builds a record that passes the default filters: verified,
// healthy, live. Options mutate from there.
func testRecord(dom string, opts ...func(*server.Record)) server.Record {
	uptime := 99.9
	respTime := 120.0
	rec := server.Record{
		Domain:         dom,
		Name:           dom,
		Description:    "test server",
		Category:       server.CategoryCommunication,
		TrustScore:     50,
		Verification:   server.VerificationVerified,
		Quality:        server.Quality{Score: 85, Category: server.QualityMedium},
		Availability:   server.Availability{Status: server.AvailabilityLive},
		ServerType:     server.TypeGitHub,
		OfficialStatus: server.OfficialCommunity,
		Transport:      server.TransportHTTP,
		Auth:           server.Auth{Type: server.AuthNone},
		Health: server.Health{
			Status:            server.HealthHealthy,
			UptimePercentage:  &uptime,
			AvgResponseTimeMS: &respTime,
		},
	}
	for _, o := range opts {
		o(&rec)
	}
	return rec
}

func withCategory(c server.Category) func(*server.Record) {
	return func(r *server.Record) { r.Category = c }
}

func withTools(tools ...string) func(*server.Record) {
	return func(r *server.Record) { r.Capabilities.Tools = tools }
}

func withTags(tags ...string) func(*server.Record) {
	return func(r *server.Record) { r.Tags = tags }
}

func withTrust(score float64) func(*server.Record) {
	return func(r *server.Record) { r.TrustScore = score }
}

func withDescription(d string) func(*server.Record) {
	return func(r *server.Record) { r.Description = d }
}

func withUnverified() func(*server.Record) {
	return func(r *server.Record) { r.Verification = server.VerificationUnverified }
}

func withAvailability(s server.AvailabilityStatus) func(*server.Record) {
	return func(r *server.Record) { r.Availability.Status = s }
}

func withStars(n int) func(*server.Record) {
	return func(r *server.Record) { r.Repository.Stars = n }
}

func normalize(t *testing.T, in query.Input) *query.Query {
	t.Helper()
	q, err := query.Normalize(in)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return &q
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }
