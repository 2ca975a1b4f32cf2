package server

import "strings"

// Category classifies a server's primary purpose.
type Category string

// Category constants.
const (
	CategoryCommunication Category = "communication"
	CategoryProductivity  Category = "productivity"
	CategoryDevelopment   Category = "development"
	CategoryFinance       Category = "finance"
	CategorySocial        Category = "social"
	CategoryStorage       Category = "storage"
	CategoryOther         Category = "other"
)

// ParseCategory maps a raw string to a Category.
// Unknown values become CategoryOther; they are still discoverable.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryCommunication, CategoryProductivity, CategoryDevelopment,
		CategoryFinance, CategorySocial, CategoryStorage:
		return Category(strings.ToLower(strings.TrimSpace(s)))
	default:
		return CategoryOther
	}
}

// IsKnown reports whether the category is a member of the closed set
// (CategoryOther counts as known; only never-parsed values are unknown).
func (c Category) IsKnown() bool {
	return ParseCategory(string(c)) == c
}

// VerificationStatus is the registration verification state of a record.
type VerificationStatus string

// Verification states.
const (
	VerificationVerified   VerificationStatus = "verified"
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationRejected   VerificationStatus = "rejected"
)

// ParseVerificationStatus maps a raw string to a VerificationStatus.
// Unknown values become VerificationUnverified (fail closed for verified-only queries).
func ParseVerificationStatus(s string) VerificationStatus {
	switch v := VerificationStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case VerificationVerified, VerificationPending, VerificationRejected:
		return v
	default:
		return VerificationUnverified
	}
}

// AvailabilityStatus describes how a server can be reached.
type AvailabilityStatus string

// Availability classes.
const (
	AvailabilityLive        AvailabilityStatus = "live_service"
	AvailabilityPackageOnly AvailabilityStatus = "package_only"
	AvailabilityBoth        AvailabilityStatus = "both"
	AvailabilityDeprecated  AvailabilityStatus = "deprecated"
	AvailabilityOffline     AvailabilityStatus = "offline"
)

// ParseAvailabilityStatus maps a raw string to an AvailabilityStatus.
// Unknown values become AvailabilityOffline (fail closed under the live-only default).
func ParseAvailabilityStatus(s string) AvailabilityStatus {
	switch v := AvailabilityStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case AvailabilityLive, AvailabilityPackageOnly, AvailabilityBoth, AvailabilityDeprecated:
		return v
	default:
		return AvailabilityOffline
	}
}

// Live reports whether the server is reachable as a live service.
func (a AvailabilityStatus) Live() bool {
	return a == AvailabilityLive || a == AvailabilityBoth
}

// ServerType distinguishes GitHub-sourced entries from official registrations.
type ServerType string

// Server types.
const (
	TypeGitHub   ServerType = "github"
	TypeOfficial ServerType = "official"
)

// ParseServerType maps a raw string to a ServerType, defaulting to TypeGitHub.
func ParseServerType(s string) ServerType {
	if ServerType(strings.ToLower(strings.TrimSpace(s))) == TypeOfficial {
		return TypeOfficial
	}
	return TypeGitHub
}

// OfficialStatus is the trust ladder of a registration.
type OfficialStatus string

// Official status ladder, weakest first.
const (
	OfficialUnofficial OfficialStatus = "unofficial"
	OfficialCommunity  OfficialStatus = "community"
	OfficialVerified   OfficialStatus = "verified"
	OfficialEnterprise OfficialStatus = "enterprise"
)

// ParseOfficialStatus maps a raw string to an OfficialStatus, defaulting to
// OfficialUnofficial (bottom of the ladder).
func ParseOfficialStatus(s string) OfficialStatus {
	switch v := OfficialStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case OfficialCommunity, OfficialVerified, OfficialEnterprise:
		return v
	default:
		return OfficialUnofficial
	}
}

// Rank returns the ladder position: unofficial(0) < community(1) < verified(2) < enterprise(3).
func (o OfficialStatus) Rank() int {
	switch o {
	case OfficialCommunity:
		return 1
	case OfficialVerified:
		return 2
	case OfficialEnterprise:
		return 3
	default:
		return 0
	}
}

// Transport is the wire protocol a server speaks.
type Transport string

// Transport kinds.
const (
	TransportStdio     Transport = "stdio"
	TransportHTTP      Transport = "http"
	TransportWebSocket Transport = "websocket"
	TransportSSE       Transport = "sse"
	TransportUnknown   Transport = "unknown"
)

// ParseTransport maps a raw string to a Transport.
// Unknown values become TransportUnknown and still rank (lowest priority).
func ParseTransport(s string) Transport {
	switch v := Transport(strings.ToLower(strings.TrimSpace(s))); v {
	case TransportStdio, TransportHTTP, TransportWebSocket, TransportSSE:
		return v
	default:
		return TransportUnknown
	}
}

// AuthType is the authentication scheme a server requires.
type AuthType string

// Auth schemes.
const (
	AuthNone    AuthType = "none"
	AuthAPIKey  AuthType = "api_key"
	AuthOAuth2  AuthType = "oauth2"
	AuthBasic   AuthType = "basic"
	AuthCustom  AuthType = "custom"
	AuthUnknown AuthType = "unknown"
)

// ParseAuthType maps a raw string to an AuthType, unknown values become AuthUnknown.
func ParseAuthType(s string) AuthType {
	switch v := AuthType(strings.ToLower(strings.TrimSpace(s))); v {
	case AuthNone, AuthAPIKey, AuthOAuth2, AuthBasic, AuthCustom:
		return v
	default:
		return AuthUnknown
	}
}

// HealthStatus is the probed health of a live endpoint.
type HealthStatus string

// Health states.
const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthUnknown   HealthStatus = "unknown"
)

// ParseHealthStatus maps a raw string to a HealthStatus, defaulting to HealthUnknown.
func ParseHealthStatus(s string) HealthStatus {
	switch v := HealthStatus(strings.ToLower(strings.TrimSpace(s))); v {
	case HealthHealthy, HealthUnhealthy:
		return v
	default:
		return HealthUnknown
	}
}

// QualityCategory buckets the composite quality score.
type QualityCategory string

// Quality buckets.
const (
	QualityHigh   QualityCategory = "high"
	QualityMedium QualityCategory = "medium"
	QualityLow    QualityCategory = "low"
)

// ParseQualityCategory maps a raw string to a QualityCategory, defaulting to QualityLow.
func ParseQualityCategory(s string) QualityCategory {
	switch v := QualityCategory(strings.ToLower(strings.TrimSpace(s))); v {
	case QualityHigh, QualityMedium:
		return v
	default:
		return QualityLow
	}
}
