package logging

import (
	"regexp"
	"strings"
)

// Redactor masks sensitive values in log fields. AGENTS.md contact values are
// usually e-mail addresses and fetch errors may echo authorization headers.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Pattern names.
const (
	PatternEmail       = "email"
	PatternBearerToken = "bearer_token"
	PatternURLUserInfo = "url_userinfo"
)

// NewRedactor creates a Redactor with the built-in patterns.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*redactPattern{
			{
				name:        PatternBearerToken,
				regex:       regexp.MustCompile(`Bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
				replacement: "Bearer ***",
			},
			{
				name:        PatternURLUserInfo,
				regex:       regexp.MustCompile(`(https?://)[^/@\s]+@`),
				replacement: "${1}***@",
			},
			{
				name:        PatternEmail,
				regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
				replacement: "***@$1",
			},
		},
	}
}

// RedactString applies every pattern to value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, pattern := range r.patterns {
		value = pattern.regex.ReplaceAllString(value, pattern.replacement)
	}
	return value
}

// RedactArgs redacts variadic log arguments of the form key1, value1, ...
// Values under sensitive keys are replaced outright; other string and error
// values are pattern-redacted.
func (r *Redactor) RedactArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 1; i < len(redacted); i += 2 {
		if key, ok := redacted[i-1].(string); ok && isSensitiveKey(key) {
			redacted[i] = "***"
			continue
		}

		switch v := redacted[i].(type) {
		case string:
			redacted[i] = r.RedactString(v)
		case error:
			redacted[i] = r.RedactString(v.Error())
		}
	}

	return redacted
}

// isSensitiveKey checks if a key name indicates secret material.
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range []string{"password", "secret", "token", "authorization", "api_key"} {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// RedactEmail redacts an email address partially (shows first char and domain).
func RedactEmail(email string) string {
	username, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	if username == "" {
		return "***@" + domain
	}
	return username[:1] + "***@" + domain
}
