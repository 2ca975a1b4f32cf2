package discovery

import (
	"strings"
	"testing"

	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

func TestCheckPolicy_DefaultsPassHealthyVerifiedLive(t *testing.T) {
	q := normalize(t, query.Input{})
	rec := testRecord("ok.example.com")
	if reason := checkPolicy(q, &rec); reason != "" {
		t.Errorf("default record should pass default filters, got %q", reason)
	}
}

func TestCheckPerformance(t *testing.T) {
	cases := []struct {
		name   string
		in     query.PerformanceInput
		mutate func(*server.Record)
		want   string // substring of the reason, "" for pass
	}{
		{
			name:   "unverified dropped",
			in:     query.PerformanceInput{VerifiedOnly: boolPtr(true)},
			mutate: func(r *server.Record) { r.Verification = server.VerificationPending },
			want:   "not verified",
		},
		{
			name:   "unhealthy dropped",
			in:     query.PerformanceInput{HealthyOnly: boolPtr(true)},
			mutate: func(r *server.Record) { r.Health.Status = server.HealthUnknown },
			want:   "not healthy",
		},
		{
			name:   "trust below bound",
			in:     query.PerformanceInput{MinTrustScore: floatPtr(70)},
			mutate: func(r *server.Record) { r.TrustScore = 50 },
			want:   "trust score",
		},
		{
			name:   "missing uptime fails closed",
			in:     query.PerformanceInput{MinUptime: floatPtr(99)},
			mutate: func(r *server.Record) { r.Health.UptimePercentage = nil },
			want:   "uptime",
		},
		{
			name:   "missing response time fails closed",
			in:     query.PerformanceInput{MaxResponseTimeMS: floatPtr(200)},
			mutate: func(r *server.Record) { r.Health.AvgResponseTimeMS = nil },
			want:   "response time",
		},
		{
			name:   "bounds satisfied",
			in:     query.PerformanceInput{MinUptime: floatPtr(99), MaxResponseTimeMS: floatPtr(200)},
			mutate: func(r *server.Record) {},
			want:   "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := normalize(t, query.Input{Performance: &tc.in})
			rec := testRecord("x.example.com")
			tc.mutate(&rec)
			reason := checkPolicy(q, &rec)
			if tc.want == "" {
				if reason != "" {
					t.Errorf("expected pass, got %q", reason)
				}
				return
			}
			if !strings.Contains(reason, tc.want) {
				t.Errorf("reason %q does not mention %q", reason, tc.want)
			}
		})
	}
}

func TestAvailabilityFilter_LiveServersOnlyOverrides(t *testing.T) {
	// live_servers_only keeps everything except package_only, even when the
	// include flags would say otherwise.
	q := normalize(t, query.Input{Availability: &query.AvailabilityInput{
		IncludeLive:     boolPtr(false),
		LiveServersOnly: boolPtr(true),
	}})

	live := testRecord("live.example.com")
	if reason := checkPolicy(q, &live); reason != "" {
		t.Errorf("live record should pass under live_servers_only, got %q", reason)
	}

	pkg := testRecord("pkg.example.com", withAvailability(server.AvailabilityPackageOnly))
	if reason := checkPolicy(q, &pkg); reason == "" {
		t.Error("package_only record must be dropped under live_servers_only")
	}
}

func TestAvailabilityFilter_FlagUnion(t *testing.T) {
	q := normalize(t, query.Input{Availability: &query.AvailabilityInput{
		IncludeLive:       boolPtr(false),
		IncludeDeprecated: boolPtr(true),
	}})

	deprecated := testRecord("old.example.com", withAvailability(server.AvailabilityDeprecated))
	if reason := checkPolicy(q, &deprecated); reason != "" {
		t.Errorf("deprecated should pass when its flag is on, got %q", reason)
	}

	live := testRecord("live.example.com")
	if reason := checkPolicy(q, &live); reason == "" {
		t.Error("live record must be dropped when include_live is off")
	}
}

func TestCheckServerType(t *testing.T) {
	official := testRecord("official.example.com", func(r *server.Record) {
		r.ServerType = server.TypeOfficial
		r.OfficialStatus = server.OfficialEnterprise
	})
	github := testRecord("github.example.com") // TypeGitHub, community

	t.Run("official only shortcut", func(t *testing.T) {
		q := normalize(t, query.Input{ServerType: &query.ServerTypeInput{OfficialOnly: boolPtr(true)}})
		if reason := checkPolicy(q, &official); reason != "" {
			t.Errorf("official record should pass, got %q", reason)
		}
		if reason := checkPolicy(q, &github); reason == "" {
			t.Error("github record must be dropped under official_only")
		}
	})

	t.Run("minimum official status ladder", func(t *testing.T) {
		q := normalize(t, query.Input{ServerType: &query.ServerTypeInput{
			MinimumOfficialStatus: "verified",
		}})
		if reason := checkPolicy(q, &official); reason != "" {
			t.Errorf("enterprise should clear a verified minimum, got %q", reason)
		}
		if reason := checkPolicy(q, &github); reason == "" {
			t.Error("community record must fail a verified minimum")
		}
	})

	t.Run("verification requirements", func(t *testing.T) {
		q := normalize(t, query.Input{ServerType: &query.ServerTypeInput{
			RequireDomainVerification: boolPtr(true),
		}})
		verified := testRecord("v.example.com", func(r *server.Record) { r.DomainVerified = true })
		if reason := checkPolicy(q, &verified); reason != "" {
			t.Errorf("domain-verified record should pass, got %q", reason)
		}
		if reason := checkPolicy(q, &github); reason == "" {
			t.Error("unverified domain must be dropped")
		}
	})
}

func TestCheckTechnical(t *testing.T) {
	q := normalize(t, query.Input{Technical: &query.TechnicalInput{
		Transport: "http",
		AuthTypes: []string{"none", "api_key"},
	}})

	match := testRecord("ok.example.com")
	if reason := checkPolicy(q, &match); reason != "" {
		t.Errorf("matching record should pass, got %q", reason)
	}

	stdio := testRecord("stdio.example.com", func(r *server.Record) {
		r.Transport = server.TransportStdio
	})
	if reason := checkPolicy(q, &stdio); reason == "" {
		t.Error("transport mismatch must be dropped")
	}

	oauth := testRecord("oauth.example.com", func(r *server.Record) {
		r.Auth.Type = server.AuthOAuth2
	})
	if reason := checkPolicy(q, &oauth); reason == "" {
		t.Error("auth type outside the accepted set must be dropped")
	}
}

func TestApplyPolicy_NeverChangesScores(t *testing.T) {
	q := normalize(t, query.Input{})
	sc := newScorer(q, nil)

	recs := []server.Record{
		testRecord("a.example.com", withTrust(80)),
		testRecord("b.example.com", withUnverified()),
	}
	scored := make([]domdisc.Scored, 0, len(recs))
	for i := range recs {
		item, ok := sc.score(&recs[i])
		if !ok {
			t.Fatalf("unexpected scorer exclusion of %s", recs[i].Domain)
		}
		scored = append(scored, item)
	}

	kept, rejected := applyPolicy(q, scored)
	if len(kept) != 1 || kept[0].Record.Domain != "a.example.com" {
		t.Fatalf("unexpected kept set: %+v", kept)
	}
	if len(rejected) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(rejected))
	}
	if kept[0].Score != scored[0].Score {
		t.Error("policy stage must not change scores")
	}
	if rejected[0].Scored.Score != scored[1].Score {
		t.Error("rejected candidates must keep their scores")
	}
}
