package agentsmd

import (
	"aumos-oss/agentsmd/pkg/agentsmd/parser"
	"aumos-oss/agentsmd/pkg/agentsmd/policy"
	"aumos-oss/agentsmd/pkg/agentsmd/validator"
)

// Report combines a parse and, when the parse succeeded, a validation.
type Report struct {
	Parse      *parser.ParseResult         `json:"parse" yaml:"parse"`
	Validation *validator.ValidationResult `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// OK reports whether the document parsed and validated.
func (r *Report) OK() bool {
	return r.Parse.Success && r.Validation != nil && r.Validation.Valid
}

// Parse parses AGENTS.md content.
func Parse(content string) *parser.ParseResult {
	return parser.Parse(content)
}

// ParseFile parses the AGENTS.md file at path.
func ParseFile(path string) (*parser.ParseResult, error) {
	return parser.NewParser().ParseFile(path)
}

// Validate checks an assembled policy.
func Validate(p *policy.Policy) *validator.ValidationResult {
	return validator.Validate(p)
}

// ParseAndValidate parses content and validates the resulting policy.
// Validation is skipped when the parse fails.
func ParseAndValidate(content string) *Report {
	report := &Report{Parse: parser.Parse(content)}
	if report.Parse.Success {
		report.Validation = validator.Validate(report.Parse.Policy)
	}
	return report
}
