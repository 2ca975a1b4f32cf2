package discovery

import (
	"fmt"

	domdisc "github.com/mcplookup/mcplookup/internal/domain/discovery"
	"github.com/mcplookup/mcplookup/internal/domain/query"
	"github.com/mcplookup/mcplookup/internal/domain/server"
)

// applyPolicy drops scored candidates that violate a hard constraint.
// It never adds or changes scores. Rejected candidates are retained with
// the first failing rule's reason, for alternative suggestions.
func applyPolicy(q *query.Query, scored []domdisc.Scored) (kept []domdisc.Scored, rejected []domdisc.Rejection) {
	kept = make([]domdisc.Scored, 0, len(scored))
	for _, s := range scored {
		if reason := checkPolicy(q, &s.Record); reason != "" {
			rejected = append(rejected, domdisc.Rejection{Scored: s, Reason: reason})
			continue
		}
		kept = append(kept, s)
	}
	return kept, rejected
}

// checkPolicy returns the first violated rule's reason, or "" when the
// record passes every active filter. Missing data fails an active bound
// (fail closed, not open).
func checkPolicy(q *query.Query, rec *server.Record) string {
	if reason := checkPerformance(q.Performance(), rec); reason != "" {
		return reason
	}
	if !q.Availability().Allows(rec.Availability.Status) {
		return fmt.Sprintf("availability class %q excluded", rec.Availability.Status)
	}
	if reason := checkServerType(q.ServerType(), rec); reason != "" {
		return reason
	}
	return checkTechnical(q.Technical(), rec)
}

func checkPerformance(f query.PerformanceFilter, rec *server.Record) string {
	if f.VerifiedOnly && rec.Verification != server.VerificationVerified {
		return fmt.Sprintf("verification status is %q, not verified", rec.Verification)
	}
	if f.HealthyOnly && rec.Health.Status != server.HealthHealthy {
		return fmt.Sprintf("health status is %q, not healthy", rec.Health.Status)
	}
	if f.MinTrustScore > 0 && rec.TrustScore < f.MinTrustScore {
		return fmt.Sprintf("trust score %.0f below minimum %.0f", rec.TrustScore, f.MinTrustScore)
	}
	if f.MinUptime > 0 {
		if rec.Health.UptimePercentage == nil || *rec.Health.UptimePercentage < f.MinUptime {
			return fmt.Sprintf("uptime below minimum %.1f%%", f.MinUptime)
		}
	}
	if f.MaxResponseTimeMS > 0 {
		if rec.Health.AvgResponseTimeMS == nil || *rec.Health.AvgResponseTimeMS > f.MaxResponseTimeMS {
			return fmt.Sprintf("response time above maximum %.0fms", f.MaxResponseTimeMS)
		}
	}
	return ""
}

func checkServerType(f query.ServerTypeFilter, rec *server.Record) string {
	if !f.AllowsType(rec.ServerType) {
		return fmt.Sprintf("server type %q excluded", rec.ServerType)
	}
	if rec.OfficialStatus.Rank() < f.MinimumOfficialStatus.Rank() {
		return fmt.Sprintf("official status %q below minimum %q",
			rec.OfficialStatus, f.MinimumOfficialStatus)
	}
	if f.RequireDomainVerification && !rec.DomainVerified {
		return "domain ownership not verified"
	}
	if f.RequireGitHubVerification && !rec.GitHubVerified {
		return "github repository not verified"
	}
	return ""
}

func checkTechnical(f query.TechnicalFilter, rec *server.Record) string {
	if f.Transport != "" && rec.Transport != f.Transport {
		return fmt.Sprintf("transport %q does not match required %q", rec.Transport, f.Transport)
	}
	if len(f.AuthTypes) > 0 {
		ok := false
		for _, a := range f.AuthTypes {
			if rec.Auth.Type == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Sprintf("auth type %q not accepted", rec.Auth.Type)
		}
	}
	if f.CORSSupport != nil && rec.CORSEnabled != *f.CORSSupport {
		return "cors support does not match"
	}
	return ""
}
