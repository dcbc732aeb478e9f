package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	agentsErrors "aumos-oss/agentsmd/pkg/agentsmd/errors"
	"aumos-oss/agentsmd/pkg/agentsmd/policy"
)

func minimalFile(extra string) string {
	return "# AGENTS.md\n\n## Identity\n- site: example.com\n" + extra
}

func stringPtr(v string) *string { return &v }

func mustParse(t *testing.T, content string) *policy.Policy {
	t.Helper()
	result := Parse(content)
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}
	if result.Policy == nil {
		t.Fatal("Parse() succeeded with nil policy")
	}
	return result.Policy
}

func hasWarning(warnings []agentsErrors.ParseWarning, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w.Message, substr) {
			return true
		}
	}
	return false
}

func TestParser_Parse_Failures(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantSection    string
		wantMessage    string
		wantLine       int
		wantSuggestion string
	}{
		{
			name:        "empty string",
			content:     "",
			wantSection: agentsErrors.SectionFile,
			wantMessage: "File is empty.",
		},
		{
			name:        "whitespace only",
			content:     "   \n\n  \t  ",
			wantSection: agentsErrors.SectionFile,
			wantMessage: "File is empty.",
		},
		{
			name:        "missing identity section",
			content:     "# AGENTS.md\n\n## Trust Requirements\n- minimum-trust-level: 2\n",
			wantSection: agentsErrors.SectionIdentity,
			wantMessage: "Missing required ## Identity section. An AGENTS.md file must contain an Identity section.",
		},
		{
			name:           "missing site",
			content:        "# AGENTS.md\n\n## Identity\n- contact: admin@example.com\n",
			wantSection:    agentsErrors.SectionIdentity,
			wantMessage:    `The Identity section is missing the required "site" key.`,
			wantLine:       3,
			wantSuggestion: "Add '- site: example.com' to the section",
		},
		{
			name:           "blank site",
			content:        "## Identity\n- site:   \n",
			wantSection:    agentsErrors.SectionIdentity,
			wantMessage:    `The Identity section is missing the required "site" key.`,
			wantLine:       1,
			wantSuggestion: "Add '- site: example.com' to the section",
		},
		{
			name:        "level three identity heading",
			content:     "### Identity\n- site: example.com\n",
			wantSection: agentsErrors.SectionIdentity,
			wantMessage: "Missing required ## Identity section. An AGENTS.md file must contain an Identity section.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.content)
			if result.Success {
				t.Fatal("Parse() succeeded, want failure")
			}
			if result.Policy != nil {
				t.Error("Policy should be nil on failure")
			}
			if len(result.Errors) != 1 {
				t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
			}
			err := result.Errors[0]
			if err.Section != tt.wantSection {
				t.Errorf("Section = %q, want %q", err.Section, tt.wantSection)
			}
			if err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMessage)
			}
			if err.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", err.Line, tt.wantLine)
			}
			if err.Suggestion != tt.wantSuggestion {
				t.Errorf("Suggestion = %q, want %q", err.Suggestion, tt.wantSuggestion)
			}
			if result.Warnings == nil {
				t.Error("Warnings should be an empty slice, not nil")
			}
		})
	}
}

func TestParser_Parse_MissingSiteSkipsIdentityKeyScan(t *testing.T) {
	result := Parse("## Identity\n- contact: admin@example.com\n- sitee: example.com\n")
	if result.Success {
		t.Fatal("Parse() succeeded, want failure")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestParser_Parse_Minimal(t *testing.T) {
	result := Parse(minimalFile(""))
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("len(Errors) = %d, want 0", len(result.Errors))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("len(Warnings) = %d, want 0", len(result.Warnings))
	}

	doc := result.Policy
	if doc.Identity.Site != "example.com" {
		t.Errorf("Site = %q, want %q", doc.Identity.Site, "example.com")
	}
	if !reflect.DeepEqual(doc.TrustRequirements, policy.DefaultTrustRequirements()) {
		t.Errorf("TrustRequirements = %+v, want defaults", doc.TrustRequirements)
	}
	if !reflect.DeepEqual(doc.AllowedActions, policy.DefaultAllowedActions()) {
		t.Errorf("AllowedActions = %v, want defaults", doc.AllowedActions)
	}
	if !doc.RateLimits.IsEmpty() {
		t.Errorf("RateLimits = %+v, want empty", doc.RateLimits)
	}
	if doc.DataHandling != (policy.DataHandling{}) {
		t.Errorf("DataHandling = %+v, want unset", doc.DataHandling)
	}
	if !reflect.DeepEqual(doc.Restrictions, policy.DefaultRestrictions()) {
		t.Errorf("Restrictions = %+v, want empty lists", doc.Restrictions)
	}
	if doc.AgentIdentification != (policy.AgentIdentification{}) {
		t.Errorf("AgentIdentification = %+v, want defaults", doc.AgentIdentification)
	}
}

func TestParser_Parse_Identity(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    policy.Identity
	}{
		{
			name: "all fields",
			content: `# AGENTS.md

## Identity
- site: example.com
- contact: ai@example.com
- last-updated: 2026-03-15
- spec-version: 1.0.0
`,
			want: policy.Identity{
				Site:        "example.com",
				Contact:     "ai@example.com",
				LastUpdated: stringPtr("2026-03-15"),
				SpecVersion: "1.0.0",
			},
		},
		{
			name:    "trims whitespace",
			content: "# AGENTS.md\n\n## Identity\n-   site:   example.com   \n",
			want:    policy.Identity{Site: "example.com"},
		},
		{
			name:    "comment lines ignored",
			content: "# AGENTS.md\n\n## Identity\n# this is a comment\n- site: example.com\n",
			want:    policy.Identity{Site: "example.com"},
		},
		{
			name:    "splits on first colon only",
			content: "## Identity\n- site: example.com\n- contact: admin@example.com:8080\n",
			want:    policy.Identity{Site: "example.com", Contact: "admin@example.com:8080"},
		},
		{
			name:    "crlf line endings",
			content: "# AGENTS.md\r\n\r\n## Identity\r\n- site: example.com\r\n- contact: ai@example.com\r\n",
			want:    policy.Identity{Site: "example.com", Contact: "ai@example.com"},
		},
		{
			name:    "heading case insensitive",
			content: "## IDENTITY\n- SITE: example.com\n",
			want:    policy.Identity{Site: "example.com"},
		},
		{
			name:    "repeated key takes later value",
			content: "## Identity\n- site: first.com\n- site: second.com\n",
			want:    policy.Identity{Site: "second.com"},
		},
		{
			name:    "repeated heading replaces section",
			content: "## Identity\n- site: first.com\n- contact: a@first.com\n\n## Identity\n- site: second.com\n",
			want:    policy.Identity{Site: "second.com"},
		},
		{
			name:    "prose lines ignored",
			content: "## Identity\nThis site welcomes agents.\n- site: example.com\n",
			want:    policy.Identity{Site: "example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.content)
			if doc.Identity != tt.want {
				t.Errorf("Identity = %+v, want %+v", doc.Identity, tt.want)
			}
		})
	}
}

func TestParser_Parse_UnknownIdentityKeys(t *testing.T) {
	result := Parse("## Identity\n- site: example.com\n- contcat: a@example.com\n- unknown-key: value\n- x-custom-key: value\n")
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("len(Warnings) = %d, want 2: %v", len(result.Warnings), result.Warnings)
	}

	first := result.Warnings[0]
	if first.Message != `Unrecognized key "contcat" in Identity section.` {
		t.Errorf("Message = %q", first.Message)
	}
	if first.Suggestion != "Did you mean 'contact'?" {
		t.Errorf("Suggestion = %q, want %q", first.Suggestion, "Did you mean 'contact'?")
	}

	second := result.Warnings[1]
	if !strings.Contains(second.Message, "unknown-key") {
		t.Errorf("Message = %q, want mention of unknown-key", second.Message)
	}
	if second.Suggestion != "" {
		t.Errorf("Suggestion = %q, want none", second.Suggestion)
	}

	if hasWarning(result.Warnings, "x-custom-key") {
		t.Error("x- prefixed keys should not warn")
	}
}

func TestParser_Parse_TrustRequirements(t *testing.T) {
	tests := []struct {
		name        string
		section     string
		want        policy.TrustRequirements
		wantWarning string
	}{
		{
			name: "all fields",
			section: `
## Trust Requirements
- minimum-trust-level: 3
- authentication: required
- authentication-methods: oauth2, api-key, bearer
`,
			want: policy.TrustRequirements{
				MinimumTrustLevel:     3,
				Authentication:        policy.AuthenticationRequired,
				AuthenticationMethods: []string{"oauth2", "api-key", "bearer"},
			},
		},
		{
			name:    "clamps above range",
			section: "\n## Trust Requirements\n- minimum-trust-level: 7\n",
			want: policy.TrustRequirements{
				MinimumTrustLevel:     5,
				Authentication:        policy.AuthenticationNone,
				AuthenticationMethods: []string{},
			},
			wantWarning: "Trust level 7 is outside the valid 0-5 range. Clamping to nearest valid value.",
		},
		{
			name:    "clamps below range",
			section: "\n## Trust Requirements\n- minimum-trust-level: -2\n",
			want: policy.TrustRequirements{
				MinimumTrustLevel:     0,
				Authentication:        policy.AuthenticationNone,
				AuthenticationMethods: []string{},
			},
			wantWarning: "Trust level -2 is outside the valid 0-5 range.",
		},
		{
			name:    "clamps overflowing level",
			section: "\n## Trust Requirements\n- minimum-trust-level: 99999999999999999999\n",
			want: policy.TrustRequirements{
				MinimumTrustLevel:     5,
				Authentication:        policy.AuthenticationNone,
				AuthenticationMethods: []string{},
			},
			wantWarning: "Trust level 99999999999999999999 is outside the valid 0-5 range.",
		},
		{
			name:    "clamps overflowing negative level",
			section: "\n## Trust Requirements\n- minimum-trust-level: -99999999999999999999\n",
			want: policy.TrustRequirements{
				MinimumTrustLevel:     0,
				Authentication:        policy.AuthenticationNone,
				AuthenticationMethods: []string{},
			},
			wantWarning: "Trust level -99999999999999999999 is outside the valid 0-5 range.",
		},
		{
			name:        "non integer level",
			section:     "\n## Trust Requirements\n- minimum-trust-level: high\n",
			want:        policy.DefaultTrustRequirements(),
			wantWarning: `Invalid integer value "high" for key "minimum-trust-level".`,
		},
		{
			name:        "invalid authentication",
			section:     "\n## Trust Requirements\n- authentication: maybe\n",
			want:        policy.DefaultTrustRequirements(),
			wantWarning: `Unrecognized authentication value "maybe". Expected: required/optional/none.`,
		},
		{
			name:    "authentication case folded",
			section: "\n## Trust Requirements\n- authentication: Optional\n",
			want: policy.TrustRequirements{
				MinimumTrustLevel:     0,
				Authentication:        policy.AuthenticationOptional,
				AuthenticationMethods: []string{},
			},
		},
		{
			name:    "list drops empty items",
			section: "\n## Trust Requirements\n- authentication-methods: oauth2, , api-key,\n",
			want: policy.TrustRequirements{
				MinimumTrustLevel:     0,
				Authentication:        policy.AuthenticationNone,
				AuthenticationMethods: []string{"oauth2", "api-key"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(minimalFile(tt.section))
			if !result.Success {
				t.Fatalf("Parse() failed: %v", result.Errors)
			}
			if !reflect.DeepEqual(result.Policy.TrustRequirements, tt.want) {
				t.Errorf("TrustRequirements = %+v, want %+v", result.Policy.TrustRequirements, tt.want)
			}
			if tt.wantWarning == "" {
				if len(result.Warnings) != 0 {
					t.Errorf("unexpected warnings: %v", result.Warnings)
				}
				return
			}
			if !hasWarning(result.Warnings, tt.wantWarning) {
				t.Errorf("Warnings = %v, want one containing %q", result.Warnings, tt.wantWarning)
			}
			for _, w := range result.Warnings {
				if w.Section != agentsErrors.SectionTrustRequirements {
					t.Errorf("warning section = %q, want %q", w.Section, agentsErrors.SectionTrustRequirements)
				}
			}
		})
	}
}

func TestParser_Parse_AllowedActions(t *testing.T) {
	doc := mustParse(t, minimalFile(`
## Allowed Actions
- read-content: true
- submit-forms: false
- make-purchases: yes
- modify-account: no
- access-api: 1
- download-files: 0
- upload-files: ON
- send-messages: off
`))

	want := map[string]bool{
		policy.ActionReadContent:   true,
		policy.ActionSubmitForms:   false,
		policy.ActionMakePurchases: true,
		policy.ActionModifyAccount: false,
		policy.ActionAccessAPI:     true,
		policy.ActionDownloadFiles: false,
		policy.ActionUploadFiles:   true,
		policy.ActionSendMessages:  false,
		policy.ActionDeleteData:    false,
		policy.ActionCreateContent: false,
	}
	for name, allowed := range want {
		got, ok := doc.AllowedActions[name]
		if !ok {
			t.Errorf("action %q missing", name)
			continue
		}
		if got != allowed {
			t.Errorf("AllowedActions[%q] = %v, want %v", name, got, allowed)
		}
	}
}

func TestParser_Parse_AllowedActions_UnknownAndInvalid(t *testing.T) {
	result := Parse(minimalFile("\n## Allowed Actions\n- read-content: maybe\n- book-flights: true\n"))
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}

	actions := result.Policy.AllowedActions
	if !actions[policy.ActionReadContent] {
		t.Error("read_content should keep its default when the value is invalid")
	}
	if !actions["book_flights"] {
		t.Error("unknown action book_flights should be kept as declared")
	}
	if got := actions.Extra(); !reflect.DeepEqual(got, []string{"book_flights"}) {
		t.Errorf("Extra() = %v, want [book_flights]", got)
	}

	want := `Unrecognized boolean value "maybe" for key "read-content". Expected: true/false/yes/no/1/0/on/off.`
	if len(result.Warnings) != 1 || result.Warnings[0].Message != want {
		t.Errorf("Warnings = %v, want [%s]", result.Warnings, want)
	}
	if result.Warnings[0].Section != agentsErrors.SectionAllowedActions {
		t.Errorf("Section = %q, want %q", result.Warnings[0].Section, agentsErrors.SectionAllowedActions)
	}
}

func TestParser_Parse_RateLimits(t *testing.T) {
	doc := mustParse(t, minimalFile(`
## Rate Limits
- requests-per-minute: 30
- requests-per-hour: 500
- concurrent-sessions: 3
`))

	checks := []struct {
		name string
		got  *int
		want int
	}{
		{"requests-per-minute", doc.RateLimits.RequestsPerMinute, 30},
		{"requests-per-hour", doc.RateLimits.RequestsPerHour, 500},
		{"concurrent-sessions", doc.RateLimits.ConcurrentSessions, 3},
	}
	for _, c := range checks {
		if c.got == nil {
			t.Errorf("%s = nil, want %d", c.name, c.want)
			continue
		}
		if *c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, *c.got, c.want)
		}
	}
}

func TestParser_Parse_RateLimits_Invalid(t *testing.T) {
	result := Parse(minimalFile("\n## Rate Limits\n- requests-per-minute: fast\n- requests-per-hour: -5\n"))
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}

	limits := result.Policy.RateLimits
	if limits.RequestsPerMinute != nil {
		t.Errorf("RequestsPerMinute = %d, want nil", *limits.RequestsPerMinute)
	}
	// Negative values parse; the validator rejects them.
	if limits.RequestsPerHour == nil || *limits.RequestsPerHour != -5 {
		t.Errorf("RequestsPerHour = %v, want -5", limits.RequestsPerHour)
	}
	if !hasWarning(result.Warnings, `"fast"`) {
		t.Errorf("Warnings = %v, want one mentioning \"fast\"", result.Warnings)
	}
}

func TestParser_Parse_DataHandling(t *testing.T) {
	doc := mustParse(t, minimalFile(`
## Data Handling
- personal-data-collection: Minimal
- data-retention: session-only
- third-party-sharing: none
- gdpr-compliance: true
`))

	dh := doc.DataHandling
	if dh.PersonalDataCollection != policy.CollectionMinimal {
		t.Errorf("PersonalDataCollection = %q, want %q", dh.PersonalDataCollection, policy.CollectionMinimal)
	}
	if dh.DataRetention != policy.RetentionSessionOnly {
		t.Errorf("DataRetention = %q, want %q", dh.DataRetention, policy.RetentionSessionOnly)
	}
	if dh.ThirdPartySharing != policy.SharingNone {
		t.Errorf("ThirdPartySharing = %q, want %q", dh.ThirdPartySharing, policy.SharingNone)
	}
	if dh.GDPRCompliance == nil || !*dh.GDPRCompliance {
		t.Errorf("GDPRCompliance = %v, want true", dh.GDPRCompliance)
	}
}

func TestParser_Parse_DataHandling_Invalid(t *testing.T) {
	result := Parse(minimalFile("\n## Data Handling\n- personal-data-collection: extreme\n- gdpr-compliance: perhaps\n"))
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}

	dh := result.Policy.DataHandling
	if dh.PersonalDataCollection != "" {
		t.Errorf("PersonalDataCollection = %q, want unset", dh.PersonalDataCollection)
	}
	if dh.GDPRCompliance != nil {
		t.Errorf("GDPRCompliance = %v, want nil", *dh.GDPRCompliance)
	}

	want := `Unrecognized personal-data-collection value "extreme". Expected: none/minimal/standard/extensive.`
	if !hasWarning(result.Warnings, want) {
		t.Errorf("Warnings = %v, want %q", result.Warnings, want)
	}
	if !hasWarning(result.Warnings, `"perhaps"`) {
		t.Errorf("Warnings = %v, want one mentioning \"perhaps\"", result.Warnings)
	}
	for _, w := range result.Warnings {
		if w.Section != agentsErrors.SectionDataHandling {
			t.Errorf("warning section = %q, want %q", w.Section, agentsErrors.SectionDataHandling)
		}
	}
}

func TestParser_Parse_Restrictions(t *testing.T) {
	doc := mustParse(t, minimalFile(`
## Restrictions
- disallowed-paths: /admin/*, /internal/*
- require-human-approval: /checkout/*, /account/delete
- read-only-paths: /blog/*, /docs/**
`))

	want := policy.Restrictions{
		DisallowedPaths:      []string{"/admin/*", "/internal/*"},
		RequireHumanApproval: []string{"/checkout/*", "/account/delete"},
		ReadOnlyPaths:        []string{"/blog/*", "/docs/**"},
	}
	if !reflect.DeepEqual(doc.Restrictions, want) {
		t.Errorf("Restrictions = %+v, want %+v", doc.Restrictions, want)
	}
}

func TestParser_Parse_Restrictions_RelativePaths(t *testing.T) {
	result := Parse(minimalFile("\n## Restrictions\n- disallowed-paths: admin/*, internal\n- read-only-paths: /ok\n"))
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}

	if got := result.Policy.Restrictions.DisallowedPaths; !reflect.DeepEqual(got, []string{"admin/*", "internal"}) {
		t.Errorf("DisallowedPaths = %v, relative patterns should be kept", got)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("len(Warnings) = %d, want 2", len(result.Warnings))
	}
	want := `Path pattern "admin/*" does not start with "/". Path patterns should be absolute paths.`
	if result.Warnings[0].Message != want {
		t.Errorf("Message = %q, want %q", result.Warnings[0].Message, want)
	}
	for _, w := range result.Warnings {
		if w.Section != agentsErrors.SectionRestrictions {
			t.Errorf("warning section = %q, want %q", w.Section, agentsErrors.SectionRestrictions)
		}
	}
}

func TestParser_Parse_AgentIdentification(t *testing.T) {
	doc := mustParse(t, minimalFile(`
## Agent Identification
- require-agent-header: true
- agent-header-name: X-Agent-ID
- require-disclosure: yes
`))

	ai := doc.AgentIdentification
	if !ai.RequireAgentHeader {
		t.Error("RequireAgentHeader = false, want true")
	}
	if ai.AgentHeaderName == nil || *ai.AgentHeaderName != "X-Agent-ID" {
		t.Errorf("AgentHeaderName = %v, want X-Agent-ID", ai.AgentHeaderName)
	}
	if !ai.RequireDisclosure {
		t.Error("RequireDisclosure = false, want true")
	}
}

func TestParser_Parse_AgentIdentification_EmptyHeaderName(t *testing.T) {
	doc := mustParse(t, minimalFile("\n## Agent Identification\n- agent-header-name:\n"))
	if doc.AgentIdentification.AgentHeaderName != nil {
		t.Errorf("AgentHeaderName = %q, want nil", *doc.AgentIdentification.AgentHeaderName)
	}
}

func TestParser_Parse_UnknownSectionIgnored(t *testing.T) {
	result := Parse(minimalFile("\n## Pricing\n- tier: gold\n"))
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, unknown sections should be silent", result.Warnings)
	}
}

func TestParser_Parse_WarningOrder(t *testing.T) {
	result := Parse(`## Identity
- site: example.com
- bogus: 1

## Restrictions
- disallowed-paths: admin

## Trust Requirements
- authentication: maybe
`)
	if !result.Success {
		t.Fatalf("Parse() failed: %v", result.Errors)
	}

	var sections []string
	for _, w := range result.Warnings {
		sections = append(sections, w.Section)
	}
	want := []string{
		agentsErrors.SectionIdentity,
		agentsErrors.SectionTrustRequirements,
		agentsErrors.SectionRestrictions,
	}
	if !reflect.DeepEqual(sections, want) {
		t.Errorf("warning sections = %v, want %v", sections, want)
	}
}

func TestParser_ParseBytes(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		result, err := NewParser().ParseBytes([]byte(minimalFile("")))
		if err != nil {
			t.Fatalf("ParseBytes() error = %v", err)
		}
		if !result.Success {
			t.Errorf("ParseBytes() failed: %v", result.Errors)
		}
	})

	t.Run("too large", func(t *testing.T) {
		p := NewParser().WithMaxSize(16)
		if _, err := p.ParseBytes([]byte(minimalFile(""))); err == nil {
			t.Error("ParseBytes() should reject oversized input")
		}
	})

	t.Run("invalid utf8", func(t *testing.T) {
		if _, err := NewParser().ParseBytes([]byte{0xff, 0xfe, 0xfd}); err == nil {
			t.Error("ParseBytes() should reject invalid UTF-8")
		}
	})
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "AGENTS.md")
	if err := os.WriteFile(path, []byte(minimalFile("- contact: ai@example.com\n")), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	result, err := NewParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if result.Policy.Identity.Contact != "ai@example.com" {
		t.Errorf("Contact = %q, want %q", result.Policy.Identity.Contact, "ai@example.com")
	}

	if _, err := NewParser().ParseFile(filepath.Join(dir, "missing.md")); err == nil {
		t.Error("ParseFile() should fail for a missing file")
	}
	if _, err := NewParser().ParseFile(dir); err == nil {
		t.Error("ParseFile() should fail for a directory")
	}
}

func TestParser_Parse_Deterministic(t *testing.T) {
	content := minimalFile(`
## Allowed Actions
- read-content: maybe
- make-purchases: yes

## Restrictions
- disallowed-paths: admin, /internal
`)
	first := Parse(content)
	for i := 0; i < 5; i++ {
		if got := Parse(content); !reflect.DeepEqual(got, first) {
			t.Fatalf("Parse() run %d differs from first run", i)
		}
	}
}
