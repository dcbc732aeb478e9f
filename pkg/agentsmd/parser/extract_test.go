package parser

import (
	"reflect"
	"testing"
)

func TestExtractSections(t *testing.T) {
	content := `# AGENTS.md

Preamble text is discarded.
- stray: directive

## Identity
- site: example.com
- Contact: ai@example.com

### Notes
- note: kept under identity

##   Rate Limits  
- requests-per-minute: 10
`
	sections := ExtractSections(content)

	if len(sections) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(sections))
	}

	identity := sections.Get("identity")
	if identity == nil {
		t.Fatal("identity section missing")
	}
	if identity.HeadingLine != 6 {
		t.Errorf("HeadingLine = %d, want 6", identity.HeadingLine)
	}
	wantKeys := []string{"site", "contact", "note"}
	if got := identity.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want %v", got, wantKeys)
	}
	if line := identity.KeyLine("contact"); line != 8 {
		t.Errorf("KeyLine(contact) = %d, want 8", line)
	}

	limits := sections.Get("rate limits")
	if limits == nil {
		t.Fatal("rate limits section missing, heading should be trimmed")
	}
	if v, ok := limits.Get("requests-per-minute"); !ok || v != "10" {
		t.Errorf("Get(requests-per-minute) = %q, %v", v, ok)
	}
}

func TestExtractSections_UnicodeHeadingSpace(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no-break space", "##\u00a0Identity\n- site: example.com\n"},
		{"ideographic space", "##\u3000Identity\n- site: example.com\n"},
		{"mixed spaces", "## \u00a0 Identity\n- site: example.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := ExtractSections(tt.content).Get("identity")
			if identity == nil {
				t.Fatal("identity section missing")
			}
			if v, ok := identity.Get("site"); !ok || v != "example.com" {
				t.Errorf("Get(site) = %q, %v", v, ok)
			}
		})
	}
}

func TestSection_RepeatedKeyKeepsFirstPosition(t *testing.T) {
	sections := ExtractSections("## Allowed Actions\n- a: 1\n- b: 2\n- a: 3\n")
	section := sections.Get("allowed actions")

	if got := section.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", got)
	}
	if v, _ := section.Get("a"); v != "3" {
		t.Errorf("Get(a) = %q, want 3", v)
	}
	if line := section.KeyLine("a"); line != 4 {
		t.Errorf("KeyLine(a) = %d, want 4", line)
	}
}

func TestSection_NilSafe(t *testing.T) {
	var section *Section
	if _, ok := section.Get("site"); ok {
		t.Error("Get() on nil section should report not found")
	}
	if section.Keys() != nil {
		t.Error("Keys() on nil section should be nil")
	}
	if section.Len() != 0 {
		t.Error("Len() on nil section should be 0")
	}
	if section.KeyLine("site") != 0 {
		t.Error("KeyLine() on nil section should be 0")
	}
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		line      string
		wantKey   string
		wantValue string
		wantFound bool
	}{
		{"- site: example.com", "site", "example.com", true},
		{"  - Site :  example.com  ", "site", "example.com", true},
		{"- url: https://example.com:8443/path", "url", "https://example.com:8443/path", true},
		{"- empty:", "empty", "", true},
		{"-site: example.com", "", "", false},
		{"* site: example.com", "", "", false},
		{"- no colon here", "", "", false},
		{"- : value", "", "", false},
		{"# - site: example.com", "", "", false},
		{"", "", "", false},
		{"site: example.com", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			section := newSection("test", 1)
			parseDirective(section, tt.line, 2)

			if !tt.wantFound {
				if section.Len() != 0 {
					t.Errorf("parseDirective(%q) recorded %v, want nothing", tt.line, section.Keys())
				}
				return
			}
			value, ok := section.Get(tt.wantKey)
			if !ok {
				t.Fatalf("parseDirective(%q) did not record key %q", tt.line, tt.wantKey)
			}
			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
		})
	}
}
