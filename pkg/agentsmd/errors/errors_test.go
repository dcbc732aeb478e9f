package errors

import (
	"strings"
	"testing"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "with line",
			err:  &ParseError{Section: SectionIdentity, Message: "missing site", Line: 3},
			want: "[identity] line 3: missing site",
		},
		{
			name: "without line",
			err:  &ParseError{Section: SectionFile, Message: "File is empty."},
			want: "[file] File is empty.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseWarning_String(t *testing.T) {
	w := ParseWarning{Section: SectionIdentity, Message: "Unrecognized key", Suggestion: "Did you mean 'site'?"}
	if got, want := w.String(), "[identity] Unrecognized key (Did you mean 'site'?)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	w.Suggestion = ""
	if got, want := w.String(), "[identity] Unrecognized key"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWarnings(t *testing.T) {
	w := NewWarnings()
	if w.HasWarnings() {
		t.Error("new accumulator should be empty")
	}
	if list := w.List(); list == nil || len(list) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", list)
	}

	w.Add(SectionIdentity, "first")
	w.Addf(SectionRestrictions, "path %q", "admin")
	w.AddWithSuggestion(SectionIdentity, "third", "hint")

	if w.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", w.Len())
	}

	list := w.List()
	if list[0].Message != "first" || list[1].Message != `path "admin"` || list[2].Suggestion != "hint" {
		t.Errorf("List() = %v, insertion order not preserved", list)
	}

	list[0].Message = "mutated"
	if w.List()[0].Message != "first" {
		t.Error("List() should return a copy")
	}

	if got := w.BySection(SectionIdentity); len(got) != 2 {
		t.Errorf("BySection(identity) = %d warnings, want 2", len(got))
	}
	if got := w.BySection(SectionRateLimits); len(got) != 0 {
		t.Errorf("BySection(rate limits) = %d warnings, want 0", len(got))
	}
}

func TestSuggestKey(t *testing.T) {
	keys := []string{"site", "contact", "last-updated", "spec-version"}

	tests := []struct {
		unknown string
		want    string
	}{
		{"sitr", "Did you mean 'site'?"},
		{"contcat", "Did you mean 'contact'?"},
		{"last-update", "Did you mean 'last-updated'?"},
		{"specversion", "Did you mean 'spec-version'?"},
		{"homepage", ""},
		{"x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			if got := SuggestKey(tt.unknown, keys); got != tt.want {
				t.Errorf("SuggestKey(%q) = %q, want %q", tt.unknown, got, tt.want)
			}
		})
	}

	if got := SuggestKey("site", nil); got != "" {
		t.Errorf("SuggestKey() with no keys = %q, want empty", got)
	}
}

func TestSuggestMissingKey(t *testing.T) {
	if got, want := SuggestMissingKey("site", "example.com"), "Add '- site: example.com' to the section"; got != want {
		t.Errorf("SuggestMissingKey() = %q, want %q", got, want)
	}
	if got, want := SuggestMissingKey("site", ""), "Add a '- site:' directive to the section"; got != want {
		t.Errorf("SuggestMissingKey() = %q, want %q", got, want)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"site", "site", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"contact", "contcat", 2},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestExtractContext(t *testing.T) {
	content := "line1\nline2\nline3\nline4\nline5"

	got := ExtractContext(content, 3, 1)
	want := "   2 | line2\n-> 3 | line3\n   4 | line4\n"
	if got != want {
		t.Errorf("ExtractContext() =\n%s\nwant\n%s", got, want)
	}

	if got := ExtractContext(content, 0, 2); got != "" {
		t.Errorf("ExtractContext(line 0) = %q, want empty", got)
	}
	if got := ExtractContext(content, 9, 2); got != "" {
		t.Errorf("ExtractContext(line 9) = %q, want empty", got)
	}

	err := &ParseError{Section: SectionIdentity, Message: "x", Line: 1}
	if ctx := WithContext(err, content); !strings.HasPrefix(ctx, "-> 1 | line1") {
		t.Errorf("WithContext() = %q", ctx)
	}
	if WithContext(nil, content) != "" {
		t.Error("WithContext(nil) should be empty")
	}
}
