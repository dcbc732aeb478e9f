// Package agentsmd is the entry point for reading AGENTS.md policy files.
//
// AGENTS.md is a markdown dialect in which a web property declares how
// autonomous agents may interact with it. This package wires the parser and
// validator subpackages together and adds two helpers used by the CLI and the
// monitor: a spec-version compatibility check and a content digest.
//
// # Basic Usage
//
//	report := agentsmd.ParseAndValidate(content)
//	if !report.Parse.Success {
//	    // fatal: empty file, no Identity section or no site
//	}
//	for _, w := range report.Parse.Warnings {
//	    fmt.Println(w)
//	}
//	if report.Validation != nil && !report.Validation.Valid {
//	    fmt.Println(report.Validation.Errors)
//	}
//
// # Subpackages
//
//   - policy: data model
//   - parser: markdown to policy, with warnings
//   - validator: semantic checks on an assembled policy
//   - errors: diagnostics and suggestions
//   - fetcher: HTTPS retrieval from a site's well-known locations
package agentsmd
