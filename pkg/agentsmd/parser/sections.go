package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	agentsErrors "aumos-oss/agentsmd/pkg/agentsmd/errors"
	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

// Section headings, lowercased.
const (
	sectionIdentity            = agentsErrors.SectionIdentity
	sectionTrustRequirements   = agentsErrors.SectionTrustRequirements
	sectionAllowedActions      = agentsErrors.SectionAllowedActions
	sectionRateLimits          = agentsErrors.SectionRateLimits
	sectionDataHandling        = agentsErrors.SectionDataHandling
	sectionRestrictions        = agentsErrors.SectionRestrictions
	sectionAgentIdentification = agentsErrors.SectionAgentIdentification
)

// identityKeys are the recognised Identity directives.
var identityKeys = []string{"site", "contact", "last-updated", "spec-version"}

// extensionPrefix marks forward-compatible keys that are accepted silently.
const extensionPrefix = "x-"

// builder turns extracted sections into policy structures.
// It owns the warnings accumulator for a single parse.
type builder struct {
	warnings *agentsErrors.Warnings
}

// newBuilder creates a builder with an empty warnings accumulator.
func newBuilder() *builder {
	return &builder{
		warnings: agentsErrors.NewWarnings(),
	}
}

// buildIdentity parses the Identity section. It returns ok=false when site is
// missing or blank, before any key is inspected.
func (b *builder) buildIdentity(section *Section) (policy.Identity, bool) {
	site, _ := section.Get("site")
	site = strings.TrimSpace(site)
	if site == "" {
		return policy.Identity{}, false
	}

	identity := policy.Identity{Site: site}
	if contact, _ := section.Get("contact"); contact != "" {
		identity.Contact = contact
	}
	if lastUpdated, _ := section.Get("last-updated"); lastUpdated != "" {
		identity.LastUpdated = &lastUpdated
	}
	if specVersion, _ := section.Get("spec-version"); specVersion != "" {
		identity.SpecVersion = specVersion
	}

	b.warnUnknownIdentityKeys(section)
	return identity, true
}

// warnUnknownIdentityKeys records one warning per unrecognised Identity key.
// Keys with the x- prefix are extensions and never warn.
func (b *builder) warnUnknownIdentityKeys(section *Section) {
	for _, key := range section.Keys() {
		if isIdentityKey(key) || strings.HasPrefix(key, extensionPrefix) {
			continue
		}
		b.warnings.AddWithSuggestion(sectionIdentity,
			fmt.Sprintf(`Unrecognized key "%s" in Identity section.`, key),
			agentsErrors.SuggestKey(key, identityKeys))
	}
}

func isIdentityKey(key string) bool {
	for _, known := range identityKeys {
		if key == known {
			return true
		}
	}
	return false
}

// buildTrustRequirements parses the Trust Requirements section. Out-of-range
// levels are clamped to [0,5] with a warning.
func (b *builder) buildTrustRequirements(section *Section) policy.TrustRequirements {
	result := policy.DefaultTrustRequirements()
	if section == nil {
		return result
	}

	if raw, ok := section.Get("minimum-trust-level"); ok {
		if level, ok := b.trustLevel(raw); ok {
			result.MinimumTrustLevel = level
		}
	}

	if raw, ok := section.Get("authentication"); ok {
		mode := policy.AuthenticationMode(strings.ToLower(strings.TrimSpace(raw)))
		if mode.IsValid() {
			result.Authentication = mode
		} else {
			b.warnings.Addf(sectionTrustRequirements,
				`Unrecognized authentication value "%s". Expected: %s.`,
				raw, strings.Join(policy.Strings(policy.AuthenticationModes), "/"))
		}
	}

	if raw, ok := section.Get("authentication-methods"); ok {
		result.AuthenticationMethods = parseList(raw)
	}

	return result
}

// trustLevel parses and clamps a minimum-trust-level value. Integers too large
// for int are clamped by sign like any other out-of-range level.
func (b *builder) trustLevel(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	level, err := strconv.Atoi(trimmed)
	switch {
	case errors.Is(err, strconv.ErrRange):
		level = policy.MaxTrustLevel
		if strings.HasPrefix(trimmed, "-") {
			level = policy.MinTrustLevel
		}
	case err != nil:
		b.warnings.Addf(sectionTrustRequirements,
			`Invalid integer value "%s" for key "minimum-trust-level".`, raw)
		return 0, false
	case level >= policy.MinTrustLevel && level <= policy.MaxTrustLevel:
		return level, true
	default:
		level = max(policy.MinTrustLevel, min(policy.MaxTrustLevel, level))
	}

	b.warnings.Addf(sectionTrustRequirements,
		"Trust level %s is outside the valid %d-%d range. Clamping to nearest valid value.",
		trimmed, policy.MinTrustLevel, policy.MaxTrustLevel)
	return level, true
}

// buildAllowedActions overlays declared actions on the default map. Values that
// are not booleans keep the default.
func (b *builder) buildAllowedActions(section *Section) policy.AllowedActions {
	result := policy.DefaultAllowedActions()
	if section == nil {
		return result
	}

	for _, key := range section.Keys() {
		raw, _ := section.Get(key)
		if allowed, ok := parseBool(raw, sectionAllowedActions, key, b.warnings); ok {
			result[actionName(key)] = allowed
		}
	}

	return result
}

// buildRateLimits parses the Rate Limits section. Unparseable values stay nil;
// range checks are left to the validator.
func (b *builder) buildRateLimits(section *Section) policy.RateLimits {
	var result policy.RateLimits
	if section == nil {
		return result
	}

	result.RequestsPerMinute = b.optionalInt(section, sectionRateLimits, "requests-per-minute")
	result.RequestsPerHour = b.optionalInt(section, sectionRateLimits, "requests-per-hour")
	result.ConcurrentSessions = b.optionalInt(section, sectionRateLimits, "concurrent-sessions")

	return result
}

func (b *builder) optionalInt(section *Section, sectionName, key string) *int {
	raw, ok := section.Get(key)
	if !ok {
		return nil
	}
	value, ok := parseInt(raw, sectionName, key, b.warnings)
	if !ok {
		return nil
	}
	return &value
}

// buildDataHandling parses the Data Handling section. Enum values outside their
// closed set are dropped with a warning listing the allowed values.
func (b *builder) buildDataHandling(section *Section) policy.DataHandling {
	var result policy.DataHandling
	if section == nil {
		return result
	}

	if value, ok := b.enumValue(section, "personal-data-collection",
		policy.Strings(policy.PersonalDataCollections)); ok {
		result.PersonalDataCollection = policy.PersonalDataCollection(value)
	}
	if value, ok := b.enumValue(section, "data-retention",
		policy.Strings(policy.DataRetentions)); ok {
		result.DataRetention = policy.DataRetention(value)
	}
	if value, ok := b.enumValue(section, "third-party-sharing",
		policy.Strings(policy.ThirdPartySharings)); ok {
		result.ThirdPartySharing = policy.ThirdPartySharing(value)
	}

	if raw, ok := section.Get("gdpr-compliance"); ok {
		if compliant, ok := parseBool(raw, sectionDataHandling, "gdpr-compliance", b.warnings); ok {
			result.GDPRCompliance = &compliant
		}
	}

	return result
}

// enumValue returns the case-folded value of key when it belongs to allowed.
func (b *builder) enumValue(section *Section, key string, allowed []string) (string, bool) {
	raw, ok := section.Get(key)
	if !ok {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range allowed {
		if normalized == candidate {
			return normalized, true
		}
	}

	b.warnings.Addf(sectionDataHandling,
		`Unrecognized %s value "%s". Expected: %s.`,
		key, raw, strings.Join(allowed, "/"))
	return "", false
}

// buildRestrictions parses the three path lists. Patterns without a leading "/"
// are kept but produce an advisory warning.
func (b *builder) buildRestrictions(section *Section) policy.Restrictions {
	result := policy.DefaultRestrictions()
	if section == nil {
		return result
	}

	if raw, ok := section.Get("disallowed-paths"); ok {
		result.DisallowedPaths = parseList(raw)
	}
	if raw, ok := section.Get("require-human-approval"); ok {
		result.RequireHumanApproval = parseList(raw)
	}
	if raw, ok := section.Get("read-only-paths"); ok {
		result.ReadOnlyPaths = parseList(raw)
	}

	for _, path := range result.All() {
		if !strings.HasPrefix(path, "/") {
			b.warnings.Addf(sectionRestrictions,
				`Path pattern "%s" does not start with "/". Path patterns should be absolute paths.`,
				path)
		}
	}

	return result
}

// buildAgentIdentification parses the Agent Identification section.
func (b *builder) buildAgentIdentification(section *Section) policy.AgentIdentification {
	var result policy.AgentIdentification
	if section == nil {
		return result
	}

	if raw, ok := section.Get("require-agent-header"); ok {
		if value, ok := parseBool(raw, sectionAgentIdentification, "require-agent-header", b.warnings); ok {
			result.RequireAgentHeader = value
		}
	}

	if name, _ := section.Get("agent-header-name"); name != "" {
		result.AgentHeaderName = &name
	}

	if raw, ok := section.Get("require-disclosure"); ok {
		if value, ok := parseBool(raw, sectionAgentIdentification, "require-disclosure", b.warnings); ok {
			result.RequireDisclosure = value
		}
	}

	return result
}
