package errors

import (
	"fmt"
	"strings"
)

// Section names used in diagnostics. They match the lowercased AGENTS.md headings,
// except SectionFile which refers to the document as a whole.
const (
	SectionFile                = "file"
	SectionIdentity            = "identity"
	SectionTrustRequirements   = "trust requirements"
	SectionAllowedActions      = "allowed actions"
	SectionRateLimits          = "rate limits"
	SectionDataHandling        = "data handling"
	SectionRestrictions        = "restrictions"
	SectionAgentIdentification = "agent identification"
)

// ParseError is a fatal parse diagnostic.
type ParseError struct {
	Section string `json:"section" yaml:"section"`
	Message string `json:"message" yaml:"message"`
	// Line is the 1-based source line, or 0 when unknown.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Suggestion is an optional fix such as "Add '- site: example.com' to the section".
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", e.Section, e.Line, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Section, e.Message)
}

// ParseWarning is a recoverable parse diagnostic.
type ParseWarning struct {
	Section string `json:"section" yaml:"section"`
	Message string `json:"message" yaml:"message"`
	// Suggestion is an optional hint such as "Did you mean 'contact'?".
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// String returns the warning formatted for display.
func (w ParseWarning) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", w.Section, w.Message))
	if w.Suggestion != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", w.Suggestion))
	}
	return sb.String()
}

// Warnings accumulates ParseWarnings in insertion order.
// It is not safe for concurrent use; each parse owns its own accumulator.
type Warnings struct {
	items []ParseWarning
}

// NewWarnings creates an empty accumulator.
func NewWarnings() *Warnings {
	return &Warnings{
		items: make([]ParseWarning, 0),
	}
}

// Add appends a warning.
func (w *Warnings) Add(section, message string) {
	w.items = append(w.items, ParseWarning{Section: section, Message: message})
}

// Addf appends a warning with a formatted message.
func (w *Warnings) Addf(section, format string, args ...any) {
	w.Add(section, fmt.Sprintf(format, args...))
}

// AddWithSuggestion appends a warning carrying a hint.
func (w *Warnings) AddWithSuggestion(section, message, suggestion string) {
	w.items = append(w.items, ParseWarning{
		Section:    section,
		Message:    message,
		Suggestion: suggestion,
	})
}

// List returns the accumulated warnings. The slice is never nil.
func (w *Warnings) List() []ParseWarning {
	out := make([]ParseWarning, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of warnings.
func (w *Warnings) Len() int {
	return len(w.items)
}

// HasWarnings returns true if at least one warning was recorded.
func (w *Warnings) HasWarnings() bool {
	return len(w.items) > 0
}

// BySection returns the warnings recorded for the given section.
func (w *Warnings) BySection(section string) []ParseWarning {
	var result []ParseWarning
	for _, item := range w.items {
		if item.Section == section {
			result = append(result, item)
		}
	}
	return result
}
