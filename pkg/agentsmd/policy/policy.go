package policy

// Trust level bounds.
const (
	MinTrustLevel = 0
	MaxTrustLevel = 5
)

// Policy is the root of a parsed AGENTS.md document.
type Policy struct {
	Identity            Identity            `json:"identity" yaml:"identity"`
	TrustRequirements   TrustRequirements   `json:"trust_requirements" yaml:"trust_requirements"`
	AllowedActions      AllowedActions      `json:"allowed_actions" yaml:"allowed_actions"`
	RateLimits          RateLimits          `json:"rate_limits" yaml:"rate_limits"`
	DataHandling        DataHandling        `json:"data_handling" yaml:"data_handling"`
	Restrictions        Restrictions        `json:"restrictions" yaml:"restrictions"`
	AgentIdentification AgentIdentification `json:"agent_identification" yaml:"agent_identification"`
}

// New returns a policy for the given site with every optional section at its default.
func New(site string) *Policy {
	return &Policy{
		Identity:          Identity{Site: site},
		TrustRequirements: DefaultTrustRequirements(),
		AllowedActions:    DefaultAllowedActions(),
		Restrictions:      DefaultRestrictions(),
	}
}

// Identity identifies the web property that publishes the policy.
type Identity struct {
	// Site is the domain name without scheme (e.g. "example.com"). Required.
	Site string `json:"site" yaml:"site"`

	// Contact is an optional address for agent operators.
	Contact string `json:"contact,omitempty" yaml:"contact,omitempty"`

	// LastUpdated is an ISO-8601 date or date-time, nil when not declared.
	LastUpdated *string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`

	// SpecVersion is the AGENTS.md specification version the file targets.
	SpecVersion string `json:"spec_version,omitempty" yaml:"spec_version,omitempty"`
}

// TrustRequirements declares the minimum trust an agent needs.
type TrustRequirements struct {
	MinimumTrustLevel     int                `json:"minimum_trust_level" yaml:"minimum_trust_level"`
	Authentication        AuthenticationMode `json:"authentication" yaml:"authentication"`
	AuthenticationMethods []string           `json:"authentication_methods" yaml:"authentication_methods"`
}

// DefaultTrustRequirements returns anonymous access without authentication.
func DefaultTrustRequirements() TrustRequirements {
	return TrustRequirements{
		MinimumTrustLevel:     MinTrustLevel,
		Authentication:        AuthenticationNone,
		AuthenticationMethods: []string{},
	}
}

// RateLimits holds optional ceilings. A nil field means unspecified, not zero.
type RateLimits struct {
	RequestsPerMinute  *int `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty"`
	RequestsPerHour    *int `json:"requests_per_hour,omitempty" yaml:"requests_per_hour,omitempty"`
	ConcurrentSessions *int `json:"concurrent_sessions,omitempty" yaml:"concurrent_sessions,omitempty"`
}

// IsEmpty reports whether no limit is declared.
func (r RateLimits) IsEmpty() bool {
	return r.RequestsPerMinute == nil && r.RequestsPerHour == nil && r.ConcurrentSessions == nil
}

// DataHandling declares how data gathered from agents is treated.
// Empty enum values mean the site did not say.
type DataHandling struct {
	PersonalDataCollection PersonalDataCollection `json:"personal_data_collection,omitempty" yaml:"personal_data_collection,omitempty"`
	DataRetention          DataRetention          `json:"data_retention,omitempty" yaml:"data_retention,omitempty"`
	ThirdPartySharing      ThirdPartySharing      `json:"third_party_sharing,omitempty" yaml:"third_party_sharing,omitempty"`
	GDPRCompliance         *bool                  `json:"gdpr_compliance,omitempty" yaml:"gdpr_compliance,omitempty"`
}

// Restrictions lists path patterns. The three lists are independent and may overlap.
type Restrictions struct {
	DisallowedPaths      []string `json:"disallowed_paths" yaml:"disallowed_paths"`
	RequireHumanApproval []string `json:"require_human_approval" yaml:"require_human_approval"`
	ReadOnlyPaths        []string `json:"read_only_paths" yaml:"read_only_paths"`
}

// DefaultRestrictions returns three empty lists.
func DefaultRestrictions() Restrictions {
	return Restrictions{
		DisallowedPaths:      []string{},
		RequireHumanApproval: []string{},
		ReadOnlyPaths:        []string{},
	}
}

// All returns the patterns of every list, in disallowed, approval, read-only order.
func (r Restrictions) All() []string {
	all := make([]string, 0, len(r.DisallowedPaths)+len(r.RequireHumanApproval)+len(r.ReadOnlyPaths))
	all = append(all, r.DisallowedPaths...)
	all = append(all, r.RequireHumanApproval...)
	all = append(all, r.ReadOnlyPaths...)
	return all
}

// AgentIdentification declares how agents must identify themselves.
type AgentIdentification struct {
	RequireAgentHeader bool    `json:"require_agent_header" yaml:"require_agent_header"`
	AgentHeaderName    *string `json:"agent_header_name,omitempty" yaml:"agent_header_name,omitempty"`
	RequireDisclosure  bool    `json:"require_disclosure" yaml:"require_disclosure"`
}
