package parser

import (
	"regexp"
	"strings"
)

var (
	// headingPattern matches a level-2 heading. "#" and "###" headings do not match.
	// Unicode spaces such as U+00A0 count as separators.
	headingPattern = regexp.MustCompile(`^##[\s\p{Zs}\v]+(.+)$`)

	// lineBreak splits on LF and CRLF.
	lineBreak = regexp.MustCompile(`\r?\n`)
)

// bulletPrefix marks a directive line once surrounding whitespace is trimmed.
const bulletPrefix = "- "

// Section is one level-2 block of an AGENTS.md file reduced to its directives.
// Keys are lowercased; values are trimmed but otherwise verbatim.
type Section struct {
	// Name is the trimmed, lowercased heading text.
	Name string

	// HeadingLine is the 1-based line of the heading.
	HeadingLine int

	keys    []string
	entries map[string]entry
}

type entry struct {
	value string
	line  int
}

func newSection(name string, line int) *Section {
	return &Section{
		Name:        name,
		HeadingLine: line,
		entries:     make(map[string]entry),
	}
}

// set records a directive. A repeated key keeps its first position but takes the
// later value.
func (s *Section) set(key, value string, line int) {
	if _, exists := s.entries[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = entry{value: value, line: line}
}

// Get returns the value of key and whether it was declared.
func (s *Section) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	e, ok := s.entries[key]
	return e.value, ok
}

// KeyLine returns the 1-based line of the directive that set key, or 0.
func (s *Section) KeyLine(key string) int {
	if s == nil {
		return 0
	}
	return s.entries[key].line
}

// Keys returns the declared keys in first-declaration order.
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of distinct keys.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Sections maps a lowercased heading to its section. A repeated heading replaces
// the earlier block entirely.
type Sections map[string]*Section

// Get returns the named section or nil.
func (s Sections) Get(name string) *Section {
	return s[name]
}

// ExtractSections splits content into level-2 sections and reduces each body to
// key-value directives. Lines before the first heading are discarded.
func ExtractSections(content string) Sections {
	sections := make(Sections)
	var current *Section

	for i, line := range lineBreak.Split(content, -1) {
		lineNum := i + 1

		if match := headingPattern.FindStringSubmatch(line); match != nil {
			name := strings.ToLower(strings.TrimSpace(match[1]))
			current = newSection(name, lineNum)
			sections[name] = current
			continue
		}

		if current != nil {
			parseDirective(current, line, lineNum)
		}
	}

	return sections
}

// parseDirective adds line to section when it is a "- key: value" bullet.
// Blank lines, comment lines and prose are ignored.
func parseDirective(section *Section, line string, lineNum int) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}
	if !strings.HasPrefix(trimmed, bulletPrefix) {
		return
	}

	withoutBullet := trimmed[len(bulletPrefix):]
	rawKey, rawValue, found := strings.Cut(withoutBullet, ":")
	if !found {
		return
	}

	key := strings.ToLower(strings.TrimSpace(rawKey))
	if key == "" {
		return
	}

	section.set(key, strings.TrimSpace(rawValue), lineNum)
}
