// Package logging provides structured logging with redaction of contact
// details and credentials.
//
// # Overview
//
// The logging package wraps log/slog and adds:
//   - Text and JSON output formats
//   - Redaction of e-mail addresses, bearer tokens and URL credentials
//   - Context-aware logging with run IDs, request IDs, sites and URLs
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Redact: true,
//	})
//
//	ctx = logging.WithSite(ctx, "https://example.com")
//	logger.InfoContext(ctx, "fetched AGENTS.md", "contact", "ops@example.com")
//	// site=https://example.com contact=***@example.com
//
// Logs are written to stderr by default so command output on stdout stays
// machine-readable.
package logging
