package validator

import (
	"strings"

	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

// ValidationResult holds every violation found in a policy, in check order.
type ValidationResult struct {
	Valid  bool     `json:"valid" yaml:"valid"`
	Errors []string `json:"errors" yaml:"errors"`
}

// Error joins the violations into one message. It returns "" for a valid result.
func (r *ValidationResult) Error() string {
	return strings.Join(r.Errors, "; ")
}

// Err returns the result as an error, or nil when the policy is valid.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return r
}

// Validator re-checks an assembled policy against the AGENTS.md value domains.
// It is independent of the parser and accepts hand-built policies.
type Validator struct{}

// New creates a validator.
func New() *Validator {
	return &Validator{}
}

// Validate checks p and returns all violations. It never stops at the first
// one. A nil policy reports a missing Identity section.
func (v *Validator) Validate(p *policy.Policy) *ValidationResult {
	c := newChecker()

	if p == nil {
		c.add("Identity section is missing.")
		return c.result()
	}

	c.checkIdentity(p.Identity)
	c.checkTrustRequirements(p.TrustRequirements)
	c.checkRateLimits(p.RateLimits)
	c.checkDataHandling(p.DataHandling)
	c.checkRestrictions(p.Restrictions)
	c.checkAgentIdentification(p.AgentIdentification)

	return c.result()
}

// Validate checks p with a default Validator.
func Validate(p *policy.Policy) *ValidationResult {
	return New().Validate(p)
}

// checker accumulates violation messages for a single validation.
type checker struct {
	errors []string
}

func newChecker() *checker {
	return &checker{
		errors: make([]string, 0),
	}
}

func (c *checker) add(message string) {
	c.errors = append(c.errors, message)
}

func (c *checker) result() *ValidationResult {
	return &ValidationResult{
		Valid:  len(c.errors) == 0,
		Errors: c.errors,
	}
}
