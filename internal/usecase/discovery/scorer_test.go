package discovery

import (
	"testing"

	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

func TestScorer_KeywordFraction(t *testing.T) {
	q := normalize(t, query.Input{Query: "email calendar contacts"})
	sc := newScorer(q, nil)

	rec := testRecord("x.example.com", withDescription("email and calendar integration"))
	scored, ok := sc.score(&rec)
	if !ok {
		t.Fatal("record should not be excluded")
	}

	// 2 of 3 terms match.
	want := 2.0 / 3.0 * maxKeywordScore
	if scored.Breakdown.Keyword != want {
		t.Errorf("keyword score = %v, want %v", scored.Breakdown.Keyword, want)
	}
}

func TestScorer_AndRequiredMissDrops(t *testing.T) {
	q := normalize(t, query.Input{
		Capabilities: &query.CapabilitiesInput{Operator: "AND", Required: []string{"file_read", "file_write"}},
	})
	sc := newScorer(q, nil)

	rec := testRecord("x.example.com", withTools("file_read"))
	if _, ok := sc.score(&rec); ok {
		t.Error("missing AND-required capability must drop the candidate")
	}
}

func TestScorer_OrMinimumMatch(t *testing.T) {
	rec := testRecord("x.example.com", withTools("a"))

	cases := []struct {
		name    string
		minimum float64
		wantOK  bool
	}{
		{"below minimum drops", 0.75, false},
		{"at minimum keeps", 0.5, true},
		{"zero minimum keeps", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := normalize(t, query.Input{
				Capabilities: &query.CapabilitiesInput{
					Operator:     "OR",
					Required:     []string{"a", "b"},
					MinimumMatch: floatPtr(tc.minimum),
				},
			})
			_, ok := newScorer(q, nil).score(&rec)
			if ok != tc.wantOK {
				t.Errorf("ok = %v, want %v", ok, tc.wantOK)
			}
		})
	}
}

func TestScorer_NotOperatorDrops(t *testing.T) {
	q := normalize(t, query.Input{
		Capabilities: &query.CapabilitiesInput{Operator: "NOT", Required: []string{"delete_data"}},
	})
	sc := newScorer(q, nil)

	banned := testRecord("bad.example.com", withTools("delete_data"))
	if _, ok := sc.score(&banned); ok {
		t.Error("NOT-listed capability must drop the candidate")
	}

	clean := testRecord("good.example.com", withTools("read_data"))
	if _, ok := sc.score(&clean); !ok {
		t.Error("candidate without NOT-listed capability must survive")
	}
}

func TestScorer_ExcludedCapabilityDrops(t *testing.T) {
	q := normalize(t, query.Input{
		Capabilities: &query.CapabilitiesInput{
			Operator: "OR",
			Required: []string{"search"},
			Exclude:  []string{"telemetry"},
		},
	})
	sc := newScorer(q, nil)

	rec := testRecord("x.example.com", withTools("search", "telemetry"))
	if _, ok := sc.score(&rec); ok {
		t.Error("excluded capability must drop the candidate regardless of matches")
	}
}

func TestScorer_ReferenceExcludedByDefault(t *testing.T) {
	ref := testRecord("ref.example.com", withTools("send_email"))
	q := normalize(t, query.Input{
		SimilarTo: &query.SimilarToInput{Domain: "ref.example.com", Threshold: floatPtr(0.1)},
	})
	sc := newScorer(q, &ref)

	if _, ok := sc.score(&ref); ok {
		t.Error("reference record must be excluded when exclude_reference is default true")
	}

	other := testRecord("other.example.com", withTools("send_email"))
	scored, ok := sc.score(&other)
	if !ok {
		t.Fatal("similar record should survive")
	}
	if scored.Similarity <= 0 {
		t.Error("similarity must be populated when a reference is set")
	}
}

func TestScorer_BaselineIsBonusOnly(t *testing.T) {
	q := normalize(t, query.Input{Query: "unrelated terms"})
	sc := newScorer(q, nil)

	rec := testRecord("plain.example.com")
	rec.Description = ""
	rec.Tags = nil

	scored, ok := sc.score(&rec)
	if !ok {
		t.Fatal("no keyword overlap must not exclude; that is the filter stage's job")
	}
	if scored.Breakdown.Keyword != 0 || scored.Breakdown.Capability != 0 {
		t.Errorf("expected zero match components, got %+v", scored.Breakdown)
	}
	if scored.Score <= 0 {
		t.Error("quality/trust baseline must be positive")
	}
	if scored.Score > maxTrustBonus+maxQualityBonus+maxPopularityBonus {
		t.Errorf("baseline %v exceeds the bonus ceiling", scored.Score)
	}
}

func TestScorer_BonusNeverOutweighsKeywordMatch(t *testing.T) {
	q := normalize(t, query.Input{Query: "email"})
	sc := newScorer(q, nil)

	matched := testRecord("match.example.com", withDescription("email server"), withTrust(0))
	popular := testRecord("popular.example.com", withDescription("unrelated"),
		withTrust(100), withStars(100000))
	popular.Quality.Score = server.MaxQualityScore

	ms, _ := sc.score(&matched)
	ps, _ := sc.score(&popular)
	if ms.Score <= ps.Score {
		t.Errorf("keyword match (%v) must outrank maxed-out bonus (%v)", ms.Score, ps.Score)
	}
}

func TestSimilarity_Components(t *testing.T) {
	a := testRecord("a.example.com", withTools("x", "y"), withTags("email"))
	b := testRecord("b.example.com", withTools("x", "y"), withTags("email"))
	if got := Similarity(&a, &b); got != 1 {
		t.Errorf("identical records: similarity = %v, want 1", got)
	}

	c := testRecord("c.example.com", withCategory(server.CategoryFinance), withTools("z"), withTags("money"))
	if got := Similarity(&a, &c); got != 0 {
		t.Errorf("disjoint records: similarity = %v, want 0", got)
	}

	// Symmetry.
	d := testRecord("d.example.com", withTools("x"), withTags("email", "mail"))
	if Similarity(&a, &d) != Similarity(&d, &a) {
		t.Error("similarity must be symmetric")
	}
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 1},
		{"one empty", []string{"a"}, nil, 0},
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1},
		{"half overlap", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"duplicates ignored", []string{"a"}, []string{"a", "a"}, 1},
		{"case insensitive", []string{"A"}, []string{"a"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := jaccard(tc.a, tc.b); got != tc.want {
				t.Errorf("jaccard(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
