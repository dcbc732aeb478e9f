// Package validator checks an assembled policy.Policy against the AGENTS.md
// value domains.
//
// The validator is independent of the parser. The parser is lenient and clamps
// or drops bad values with warnings; the validator is strict and reports them.
// A trust level of 7 in a file parses to 5 with a warning, while a Policy built
// directly with level 7 fails validation.
//
// # Checks
//
// Checks run in a fixed order and every violation is collected:
//
//   - Identity: site non-empty, no scheme, no spaces; last_updated is ISO-8601
//   - TrustRequirements: level in 0-5, authentication in the closed set,
//     no blank authentication method
//   - RateLimits: declared limits are non-negative
//   - DataHandling: declared values are in their closed sets
//   - Restrictions: every path pattern starts with "/"
//   - AgentIdentification: a declared header name is not blank
//
// Unknown Allowed Actions are accepted and not checked.
//
// # Basic Usage
//
//	result := validator.Validate(p)
//	if !result.Valid {
//	    for _, msg := range result.Errors {
//	        fmt.Println(msg)
//	    }
//	}
package validator
