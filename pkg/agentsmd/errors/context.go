package errors

import (
	"fmt"
	"regexp"
	"strings"
)

var lineSplit = regexp.MustCompile(`\r?\n`)

// ExtractContext renders the lines surrounding line (1-based) of content,
// marking the target line with "->". It returns "" when line is out of range.
func ExtractContext(content string, line, contextLines int) string {
	if line <= 0 {
		return ""
	}

	lines := lineSplit.Split(content, -1)
	if line > len(lines) {
		return ""
	}

	target := line - 1
	start := max(target-contextLines, 0)
	end := min(target+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", end+1))

	for i := start; i <= end; i++ {
		prefix := "  "
		if i == target {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, lines[i]))
	}

	return sb.String()
}

// WithContext renders err's line of content with two lines of context on each side.
func WithContext(err *ParseError, content string) string {
	if err == nil {
		return ""
	}
	return ExtractContext(content, err.Line, 2)
}
