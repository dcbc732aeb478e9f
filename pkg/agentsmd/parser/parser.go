package parser

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	agentsErrors "aumos-oss/agentsmd/pkg/agentsmd/errors"
	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

// DefaultMaxSize is the largest AGENTS.md document accepted by ParseBytes and
// ParseFile (1 MiB).
const DefaultMaxSize int64 = 1_048_576

// ParseResult is the outcome of a parse. Policy is non-nil iff Success is true.
type ParseResult struct {
	Success  bool                        `json:"success" yaml:"success"`
	Policy   *policy.Policy              `json:"policy,omitempty" yaml:"policy,omitempty"`
	Errors   []*agentsErrors.ParseError  `json:"errors" yaml:"errors"`
	Warnings []agentsErrors.ParseWarning `json:"warnings" yaml:"warnings"`
}

// WarningSections returns the section of each warning, in order.
func (r *ParseResult) WarningSections() []string {
	sections := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		sections[i] = w.Section
	}
	return sections
}

// failure builds an unsuccessful result carrying a single error.
func failure(err *agentsErrors.ParseError, warnings []agentsErrors.ParseWarning) *ParseResult {
	if warnings == nil {
		warnings = []agentsErrors.ParseWarning{}
	}
	return &ParseResult{
		Success:  false,
		Errors:   []*agentsErrors.ParseError{err},
		Warnings: warnings,
	}
}

// Parser converts AGENTS.md content into a policy.Policy.
// A Parser holds no per-parse state and is safe for concurrent use.
type Parser struct {
	maxSize int64 // Maximum document size in bytes for ParseBytes/ParseFile
}

// NewParser creates a parser with the default size limit.
func NewParser() *Parser {
	return &Parser{
		maxSize: DefaultMaxSize,
	}
}

// WithMaxSize sets the maximum document size accepted by ParseBytes and ParseFile.
func (p *Parser) WithMaxSize(size int64) *Parser {
	p.maxSize = size
	return p
}

// MaxSize returns the configured size limit.
func (p *Parser) MaxSize() int64 {
	return p.maxSize
}

// Parse parses the text of an AGENTS.md file. It never returns a Go error:
// malformed values become warnings, and the only fatal conditions (empty input,
// no Identity section, no site) are reported in ParseResult.Errors.
func (p *Parser) Parse(content string) *ParseResult {
	if strings.TrimSpace(content) == "" {
		return failure(&agentsErrors.ParseError{
			Section: agentsErrors.SectionFile,
			Message: "File is empty.",
		}, nil)
	}

	sections := ExtractSections(content)

	identitySection := sections.Get(sectionIdentity)
	if identitySection == nil {
		return failure(&agentsErrors.ParseError{
			Section: agentsErrors.SectionIdentity,
			Message: "Missing required ## Identity section. " +
				"An AGENTS.md file must contain an Identity section.",
		}, nil)
	}

	b := newBuilder()

	identity, ok := b.buildIdentity(identitySection)
	if !ok {
		return failure(&agentsErrors.ParseError{
			Section:    agentsErrors.SectionIdentity,
			Message:    `The Identity section is missing the required "site" key.`,
			Line:       identitySection.HeadingLine,
			Suggestion: agentsErrors.SuggestMissingKey("site", "example.com"),
		}, b.warnings.List())
	}

	doc := &policy.Policy{
		Identity:            identity,
		TrustRequirements:   b.buildTrustRequirements(sections.Get(sectionTrustRequirements)),
		AllowedActions:      b.buildAllowedActions(sections.Get(sectionAllowedActions)),
		RateLimits:          b.buildRateLimits(sections.Get(sectionRateLimits)),
		DataHandling:        b.buildDataHandling(sections.Get(sectionDataHandling)),
		Restrictions:        b.buildRestrictions(sections.Get(sectionRestrictions)),
		AgentIdentification: b.buildAgentIdentification(sections.Get(sectionAgentIdentification)),
	}

	return &ParseResult{
		Success:  true,
		Policy:   doc,
		Errors:   []*agentsErrors.ParseError{},
		Warnings: b.warnings.List(),
	}
}

// ParseBytes parses raw AGENTS.md bytes. It returns an error when data exceeds
// the size limit or is not valid UTF-8; content problems are reported in the
// result instead.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if p.maxSize > 0 && int64(len(data)) > p.maxSize {
		return nil, fmt.Errorf("document size %d exceeds maximum %d bytes", len(data), p.maxSize)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("document is not valid UTF-8")
	}
	return p.Parse(string(data)), nil
}

// ParseFile reads and parses the AGENTS.md file at path.
func (p *Parser) ParseFile(path string) (*ParseResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if p.maxSize > 0 && info.Size() > p.maxSize {
		return nil, fmt.Errorf("file %s size %d exceeds maximum %d bytes", path, info.Size(), p.maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return result, nil
}

// Parse parses content with a default Parser.
func Parse(content string) *ParseResult {
	return NewParser().Parse(content)
}
