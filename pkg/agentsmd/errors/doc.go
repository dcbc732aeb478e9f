// Package errors provides the diagnostic types produced while parsing AGENTS.md.
//
// There are exactly two severities:
//
// ParseError: fatal. The parse fails and no policy is returned. Only three
// conditions produce one: empty input, a missing Identity section, and an
// Identity section without a site.
//
// ParseWarning: recoverable. A malformed value was replaced by its default or
// omitted, and parsing continued.
//
// # Accumulating Warnings
//
// Section parsers share a single *Warnings accumulator so the final order of
// warnings follows the order in which sections were processed:
//
//	w := errors.NewWarnings()
//	w.Add("restrictions", `Path pattern "admin/*" does not start with "/".`)
//	for _, warning := range w.List() {
//	    fmt.Println(warning)
//	}
//
// # Suggestions
//
// Unknown keys can carry a hint computed with Levenshtein distance:
//
//	hint := errors.SuggestKey("conact", []string{"site", "contact"})
//	// Returns: "Did you mean 'contact'?"
//
// # Context
//
// ExtractContext renders the lines around a ParseError line for terminal output.
package errors
