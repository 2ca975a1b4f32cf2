package discovery

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mcplookup/mcplookup/internal/domain"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

func pageDomains(t *testing.T, svc *Service, q *query.Query) []string {
	t.Helper()
	report, err := svc.Discover(context.Background(), q)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	out := make([]string, len(report.Results))
	for i, r := range report.Results {
		out[i] = r.Record.Domain
	}
	return out
}

func TestDiscover_CategoryScenario(t *testing.T) {
	cat := newMockCatalog(
		testRecord("gmail.com"),
		testRecord("outlook.com"),
		testRecord("github.com", withCategory(server.CategoryDevelopment)),
	)
	svc := New(cat)

	q := normalize(t, query.Input{Categories: []string{"communication"}, Limit: intPtr(10)})
	report, err := svc.Discover(context.Background(), q)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if report.TotalResults != 2 {
		t.Fatalf("expected total_results 2, got %d", report.TotalResults)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if cat.listAllCalls != 0 {
		t.Error("category query must not trigger a full scan")
	}
}

func TestDiscover_NonexistentDomainIsEmptySuccess(t *testing.T) {
	svc := New(newMockCatalog(testRecord("gmail.com")))

	q := normalize(t, query.Input{Domain: "nonexistent.test"})
	report, err := svc.Discover(context.Background(), q)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(report.Results) != 0 || report.TotalResults != 0 {
		t.Fatalf("expected empty result set, got %d/%d", len(report.Results), report.TotalResults)
	}
}

func TestDiscover_DomainExactMatchPrecedence(t *testing.T) {
	cat := newMockCatalog(
		testRecord("gmail.com"),
		testRecord("outlook.com"),
	)
	svc := New(cat)

	q := normalize(t, query.Input{Domain: "gmail.com"})
	got := pageDomains(t, svc, q)

	if len(got) != 1 || got[0] != "gmail.com" {
		t.Fatalf("expected exactly gmail.com, got %v", got)
	}
	if cat.listAllCalls != 0 || cat.categoryCalls != 0 {
		t.Error("domain query must use exact lookups only")
	}
}

func TestDiscover_HardCapabilityExclusion(t *testing.T) {
	cat := newMockCatalog(
		testRecord("files.example.com", withTools("file_read", "file_write")),
		testRecord("mail.example.com", withTools("send_email")),
		testRecord("bare.example.com"),
	)
	svc := New(cat)

	q := normalize(t, query.Input{
		Capabilities: &query.CapabilitiesInput{Operator: "AND", Required: []string{"file_read"}},
	})
	got := pageDomains(t, svc, q)

	if len(got) != 1 || got[0] != "files.example.com" {
		t.Fatalf("expected only files.example.com, got %v", got)
	}
}

func TestDiscover_Determinism(t *testing.T) {
	cat := newMockCatalog(
		testRecord("a.example.com", withTools("search"), withTrust(50)),
		testRecord("b.example.com", withTools("search"), withTrust(50)),
		testRecord("c.example.com", withTools("search"), withTrust(80)),
		testRecord("d.example.com", withDescription("full text search engine")),
	)
	svc := New(cat)

	first := pageDomains(t, svc, normalize(t, query.Input{Query: "search engine"}))
	for i := 0; i < 5; i++ {
		again := pageDomains(t, svc, normalize(t, query.Input{Query: "search engine"}))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("ordering changed between calls: %v vs %v", first, again)
		}
	}
}

func TestDiscover_FilterClosure(t *testing.T) {
	cat := newMockCatalog(
		testRecord("both.example.com"),
		testRecord("verified-sick.example.com", func(r *server.Record) {
			r.Health.Status = server.HealthUnhealthy
		}),
		testRecord("healthy-unverified.example.com", withUnverified()),
	)
	svc := New(cat)

	verifiedOnly := pageDomains(t, svc, normalize(t, query.Input{
		Performance: &query.PerformanceInput{VerifiedOnly: boolPtr(true), HealthyOnly: boolPtr(false)},
	}))
	bothFilters := pageDomains(t, svc, normalize(t, query.Input{
		Performance: &query.PerformanceInput{VerifiedOnly: boolPtr(true), HealthyOnly: boolPtr(true)},
	}))

	inVerified := make(map[string]bool, len(verifiedOnly))
	for _, d := range verifiedOnly {
		inVerified[d] = true
	}
	for _, d := range bothFilters {
		if !inVerified[d] {
			t.Fatalf("%s returned under both filters but not under verified_only alone", d)
		}
	}
}

func TestDiscover_PaginationPartition(t *testing.T) {
	records := []server.Record{
		testRecord("a.example.com", withTrust(90)),
		testRecord("b.example.com", withTrust(80)),
		testRecord("c.example.com", withTrust(70)),
		testRecord("d.example.com", withTrust(60)),
		testRecord("e.example.com", withTrust(50)),
	}
	svc := New(newMockCatalog(records...))

	full := pageDomains(t, svc, normalize(t, query.Input{Limit: intPtr(10), SortBy: "trust_score"}))
	page1 := pageDomains(t, svc, normalize(t, query.Input{Limit: intPtr(2), SortBy: "trust_score"}))
	page2 := pageDomains(t, svc, normalize(t, query.Input{
		Limit: intPtr(2), Offset: intPtr(2), SortBy: "trust_score"}))
	page3 := pageDomains(t, svc, normalize(t, query.Input{
		Limit: intPtr(2), Offset: intPtr(4), SortBy: "trust_score"}))

	var joined []string
	joined = append(joined, page1...)
	joined = append(joined, page2...)
	joined = append(joined, page3...)
	if !reflect.DeepEqual(full, joined) {
		t.Fatalf("pages do not partition the ranked list: full=%v joined=%v", full, joined)
	}
}

func TestDiscover_SimilarityThresholdMonotonicity(t *testing.T) {
	cat := newMockCatalog(
		testRecord("ref.example.com", withTools("send_email"), withTags("email")),
		testRecord("close.example.com", withTools("send_email"), withTags("email")),
		testRecord("near.example.com", withTools("send_email", "list_inbox"), withTags("mail")),
		testRecord("far.example.com", withCategory(server.CategoryFinance), withTools("get_quote")),
	)
	svc := New(cat)

	counts := make([]int, 0, 3)
	for _, th := range []float64{0.1, 0.5, 0.9} {
		report, err := svc.Discover(context.Background(), normalize(t, query.Input{
			SimilarTo: &query.SimilarToInput{Domain: "ref.example.com", Threshold: floatPtr(th)},
		}))
		if err != nil {
			t.Fatalf("Discover(threshold=%v): %v", th, err)
		}
		counts = append(counts, report.TotalResults)
	}
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[i-1] {
			t.Fatalf("raising threshold increased result count: %v", counts)
		}
	}
}

func TestDiscover_DefaultAvailabilityExcludesPackageOnly(t *testing.T) {
	cat := newMockCatalog(
		testRecord("live.example.com"),
		testRecord("pkg.example.com", withAvailability(server.AvailabilityPackageOnly)),
	)
	svc := New(cat)

	got := pageDomains(t, svc, normalize(t, query.Input{}))
	if len(got) != 1 || got[0] != "live.example.com" {
		t.Fatalf("default availability should exclude package_only, got %v", got)
	}
}

func TestDiscover_AlternativesCarryRejectionReason(t *testing.T) {
	cat := newMockCatalog(
		testRecord("kept.example.com", withTools("search")),
		testRecord("dropped.example.com", withTools("search"), withUnverified()),
	)
	svc := New(cat)

	report, err := svc.Discover(context.Background(), normalize(t, query.Input{Query: "search"}))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Alternatives) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(report.Alternatives))
	}
	alt := report.Alternatives[0]
	if alt.Scored.Record.Domain != "dropped.example.com" {
		t.Errorf("unexpected alternative %s", alt.Scored.Record.Domain)
	}
	if alt.Reason == "" {
		t.Error("alternative must carry a rejection reason")
	}
}

func TestDiscover_SimilarSuggestionsExcludePage(t *testing.T) {
	cat := newMockCatalog(
		testRecord("top.example.com", withTools("send_email"), withTags("email"), withTrust(90)),
		testRecord("second.example.com", withTools("send_email"), withTags("email"), withTrust(80)),
		testRecord("third.example.com", withTools("send_email"), withTrust(70)),
	)
	svc := New(cat)

	report, err := svc.Discover(context.Background(), normalize(t, query.Input{
		Limit:          intPtr(1),
		SortBy:         "trust_score",
		IncludeSimilar: boolPtr(true),
	}))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(report.Results) != 1 || report.Results[0].Record.Domain != "top.example.com" {
		t.Fatalf("unexpected page: %+v", report.Results)
	}
	for _, s := range report.Similar {
		if s.Record.Domain == "top.example.com" {
			t.Error("similar suggestions must exclude returned results")
		}
	}
	if len(report.Similar) == 0 {
		t.Error("expected similar suggestions")
	}
}

func TestDiscover_UnknownReferenceDomainIsInvalidQuery(t *testing.T) {
	svc := New(newMockCatalog(testRecord("gmail.com")))

	_, err := svc.Discover(context.Background(), normalize(t, query.Input{
		SimilarTo: &query.SimilarToInput{Domain: "missing.example.com"},
	}))
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestDiscover_CatalogErrorPropagates(t *testing.T) {
	cat := newMockCatalog()
	cat.err = domain.ErrCatalogUnavailable
	svc := New(cat)

	_, err := svc.Discover(context.Background(), normalize(t, query.Input{Query: "anything"}))
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestDiscover_TimingPopulated(t *testing.T) {
	svc := New(newMockCatalog(testRecord("gmail.com")))

	report, err := svc.Discover(context.Background(), normalize(t, query.Input{}))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if report.Timing.Total <= 0 {
		t.Error("total timing must be positive")
	}
	if report.Timing.Total < report.Timing.Selection {
		t.Error("total must cover the selection stage")
	}
}

func TestDiscover_StatsSummarizePage(t *testing.T) {
	cat := newMockCatalog(
		testRecord("a.example.com", withTrust(80)),
		testRecord("b.example.com", withTrust(40)),
	)
	svc := New(cat)

	report, err := svc.Discover(context.Background(), normalize(t, query.Input{}))
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if report.Stats.AvgTrustScore != 60 {
		t.Errorf("expected avg trust 60, got %v", report.Stats.AvgTrustScore)
	}
	if report.Stats.VerifiedCount != 2 {
		t.Errorf("expected 2 verified, got %d", report.Stats.VerifiedCount)
	}
	if report.Stats.ServerTypeBreakdown[server.TypeGitHub] != 2 {
		t.Errorf("unexpected type breakdown: %v", report.Stats.ServerTypeBreakdown)
	}
}
