package validator

import (
	"fmt"
	"regexp"
	"strings"

	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

// isoDatePattern accepts YYYY-MM-DD with an optional time, fraction and offset.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?)?$`)

func (c *checker) checkIdentity(identity policy.Identity) {
	site := identity.Site
	if strings.TrimSpace(site) == "" {
		c.add("Identity.site is required and must not be empty.")
	} else {
		if strings.Contains(site, "://") {
			c.add(fmt.Sprintf(`Identity.site "%s" must be a domain name only (without protocol, e.g., "example.com").`, site))
		}
		if strings.Contains(site, " ") {
			c.add(fmt.Sprintf(`Identity.site "%s" must not contain spaces.`, site))
		}
	}

	if identity.LastUpdated != nil && !isoDatePattern.MatchString(*identity.LastUpdated) {
		c.add(fmt.Sprintf(`Identity.last_updated "%s" is not a valid ISO 8601 date.`, *identity.LastUpdated))
	}
}

func (c *checker) checkTrustRequirements(trust policy.TrustRequirements) {
	level := trust.MinimumTrustLevel
	if level < policy.MinTrustLevel || level > policy.MaxTrustLevel {
		c.add(fmt.Sprintf("TrustRequirements.minimum_trust_level must be an integer between %d and %d. Got: %d.",
			policy.MinTrustLevel, policy.MaxTrustLevel, level))
	}

	if !trust.Authentication.IsValid() {
		c.add(fmt.Sprintf(`TrustRequirements.authentication must be one of: %s. Got: "%s".`,
			strings.Join(policy.Strings(policy.AuthenticationModes), ", "), trust.Authentication))
	}

	for _, method := range trust.AuthenticationMethods {
		if strings.TrimSpace(method) == "" {
			c.add("TrustRequirements.authentication_methods must contain non-empty strings.")
			break
		}
	}
}

func (c *checker) checkRateLimits(limits policy.RateLimits) {
	fields := []struct {
		name  string
		value *int
	}{
		{"requests_per_minute", limits.RequestsPerMinute},
		{"requests_per_hour", limits.RequestsPerHour},
		{"concurrent_sessions", limits.ConcurrentSessions},
	}

	for _, field := range fields {
		if field.value != nil && *field.value < 0 {
			c.add(fmt.Sprintf("RateLimits.%s must be a non-negative integer. Got: %d.", field.name, *field.value))
		}
	}
}

// checkDataHandling rejects values outside the closed sets. Empty values are unset.
func (c *checker) checkDataHandling(data policy.DataHandling) {
	if data.PersonalDataCollection != "" && !data.PersonalDataCollection.IsValid() {
		c.add(oneOf("DataHandling.personal_data_collection", policy.Strings(policy.PersonalDataCollections)))
	}
	if data.DataRetention != "" && !data.DataRetention.IsValid() {
		c.add(oneOf("DataHandling.data_retention", policy.Strings(policy.DataRetentions)))
	}
	if data.ThirdPartySharing != "" && !data.ThirdPartySharing.IsValid() {
		c.add(oneOf("DataHandling.third_party_sharing", policy.Strings(policy.ThirdPartySharings)))
	}
}

func oneOf(field string, allowed []string) string {
	return fmt.Sprintf("%s must be one of: %s.", field, strings.Join(allowed, ", "))
}

// checkRestrictions reports every path that does not start with "/".
func (c *checker) checkRestrictions(restrictions policy.Restrictions) {
	lists := []struct {
		name  string
		paths []string
	}{
		{"disallowed_paths", restrictions.DisallowedPaths},
		{"require_human_approval", restrictions.RequireHumanApproval},
		{"read_only_paths", restrictions.ReadOnlyPaths},
	}

	for _, list := range lists {
		for _, path := range list.paths {
			if !strings.HasPrefix(path, "/") {
				c.add(fmt.Sprintf(`Restrictions.%s path "%s" must start with "/".`, list.name, path))
			}
		}
	}
}

func (c *checker) checkAgentIdentification(ident policy.AgentIdentification) {
	if ident.AgentHeaderName != nil && strings.TrimSpace(*ident.AgentHeaderName) == "" {
		c.add("AgentIdentification.agent_header_name must be a non-empty string if specified.")
	}
}
