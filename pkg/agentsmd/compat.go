package agentsmd

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

// SupportedSpecVersions is the range of AGENTS.md spec versions this toolkit
// understands.
const SupportedSpecVersions = ">= 1.0.0, < 2.0.0"

// CheckSpecVersion reports whether the policy's declared spec-version falls in
// SupportedSpecVersions. A policy without a spec-version is accepted.
func CheckSpecVersion(p *policy.Policy) error {
	if p == nil || p.Identity.SpecVersion == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(SupportedSpecVersions)
	if err != nil {
		return fmt.Errorf("invalid supported version constraint: %w", err)
	}

	version, err := semver.NewVersion(p.Identity.SpecVersion)
	if err != nil {
		return fmt.Errorf("invalid spec-version %q: %w", p.Identity.SpecVersion, err)
	}

	if !constraint.Check(version) {
		return fmt.Errorf("spec-version %s is outside the supported range %s", version, SupportedSpecVersions)
	}

	return nil
}
