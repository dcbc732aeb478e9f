// Package policy defines the data model of an AGENTS.md policy document.
//
// A Policy is the assembled, typed form of one AGENTS.md file. It is produced by
// the parser package and checked by the validator package, but the types carry no
// dependency on either: a Policy may be built by hand, decoded from JSON, or
// produced by any other tool and still be validated.
//
// # Core Types
//
// Policy: Root document composed of seven sections
//
// Identity: Who publishes the policy (site, contact, last update, spec version)
//
// TrustRequirements: Minimum trust level (0-5) and authentication expectations
//
// AllowedActions: Action name to permission flag, seeded from DefaultAllowedActions
//
// RateLimits: Optional request and session ceilings
//
// DataHandling: Declared personal-data commitments
//
// Restrictions: Path patterns that are disallowed, gated or read-only
//
// AgentIdentification: Header and disclosure requirements
//
// # Defaults
//
// Only Identity is mandatory. Every other section has a documented zero state,
// returned by the Default* constructors:
//
//	p := &policy.Policy{
//	    Identity:            policy.Identity{Site: "example.com"},
//	    TrustRequirements:   policy.DefaultTrustRequirements(),
//	    AllowedActions:      policy.DefaultAllowedActions(),
//	    Restrictions:        policy.DefaultRestrictions(),
//	}
//
// # Trust Levels
//
//	0 = Anonymous, 1 = Identified, 2 = Verified,
//	3 = Authorized, 4 = Privileged, 5 = Administrative
package policy
