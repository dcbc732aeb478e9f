package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aumos-oss/agentsmd/pkg/agentsmd"
	agentsErrors "aumos-oss/agentsmd/pkg/agentsmd/errors"
	"aumos-oss/agentsmd/pkg/agentsmd/parser"
	"aumos-oss/agentsmd/pkg/agentsmd/validator"
	"aumos-oss/agentsmd/pkg/cli"
	"aumos-oss/agentsmd/pkg/telemetry/metrics"
	"aumos-oss/agentsmd/pkg/watch"
)

var lintFlags struct {
	dir    string
	strict bool
	format string
	watch  bool
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Check AGENTS.md files",
	Long: `Parse and validate local AGENTS.md files.

For each file lint reports:
  - Fatal parse errors, with the surrounding source lines
  - Warnings for malformed values and unknown keys, with suggestions
  - Validation problems such as malformed sites, dates or header names
  - An advisory when spec-version is outside the supported range

Examples:
  # Lint a single file
  agentsmd lint AGENTS.md

  # Lint every AGENTS.md under a directory
  agentsmd lint --dir public/

  # Strict mode (warnings as errors)
  agentsmd lint AGENTS.md --strict

  # JSON output for CI/CD
  agentsmd lint AGENTS.md --format json

  # Re-lint whenever a file changes
  agentsmd lint --dir public/ --watch`,
	RunE: lintFiles,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory to search for AGENTS.md files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json, yaml")
	lintCmd.Flags().BoolVarP(&lintFlags.watch, "watch", "w", false, "re-lint files when they change")
}

// LintResult is the outcome of linting one file.
type LintResult struct {
	File     string                      `json:"file" yaml:"file"`
	Valid    bool                        `json:"valid" yaml:"valid"`
	Site     string                      `json:"site,omitempty" yaml:"site,omitempty"`
	Errors   []*agentsErrors.ParseError  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []agentsErrors.ParseWarning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Problems []string                    `json:"validation_errors,omitempty" yaml:"validation_errors,omitempty"`
	Advisory string                      `json:"advisory,omitempty" yaml:"advisory,omitempty"`

	// contexts holds the rendered source lines for each entry in Errors.
	contexts []string
}

// Failed reports whether the file should fail the run.
func (r LintResult) Failed(strict bool) bool {
	return !r.Valid || (strict && len(r.Warnings) > 0)
}

// LintReport is the outcome of one lint pass.
type LintReport struct {
	Files    []LintResult `json:"files" yaml:"files"`
	Strict   bool         `json:"strict" yaml:"strict"`
	Failed   int          `json:"failed" yaml:"failed"`
	Warnings int          `json:"warnings" yaml:"warnings"`
}

func newLintReport(results []LintResult, strict bool) *LintReport {
	report := &LintReport{Files: results, Strict: strict}
	for _, r := range results {
		if r.Failed(strict) {
			report.Failed++
		}
		report.Warnings += len(r.Warnings)
	}
	return report
}

// RenderText prints the report for a terminal.
func (r *LintReport) RenderText(w io.Writer) error {
	for _, res := range r.Files {
		status := "ok"
		if res.Failed(r.Strict) {
			status = "FAIL"
		}
		if res.Site != "" {
			fmt.Fprintf(w, "%s: %s (%s)\n", status, res.File, res.Site)
		} else {
			fmt.Fprintf(w, "%s: %s\n", status, res.File)
		}

		for i, e := range res.Errors {
			fmt.Fprintf(w, "  error: %s\n", e.Error())
			if e.Suggestion != "" {
				fmt.Fprintf(w, "  hint: %s\n", e.Suggestion)
			}
			if i < len(res.contexts) && res.contexts[i] != "" {
				for _, line := range strings.Split(strings.TrimRight(res.contexts[i], "\n"), "\n") {
					fmt.Fprintf(w, "    %s\n", line)
				}
			}
		}
		for _, warning := range res.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning.String())
		}
		for _, problem := range res.Problems {
			fmt.Fprintf(w, "  invalid: %s\n", problem)
		}
		if res.Advisory != "" {
			fmt.Fprintf(w, "  note: %s\n", res.Advisory)
		}
	}

	_, err := fmt.Fprintf(w, "\n%d file(s), %d failed, %d warning(s)\n",
		len(r.Files), r.Failed, r.Warnings)
	return err
}

func lintFiles(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatterFor(lintFlags.format)
	if err != nil {
		return err
	}

	files := append([]string(nil), args...)
	if lintFlags.dir != "" {
		found, err := discoverAgentsFiles(lintFlags.dir)
		if err != nil {
			return fmt.Errorf("failed to search %s: %w", lintFlags.dir, err)
		}
		files = append(files, found...)
	}

	if len(files) == 0 {
		if len(args) == 0 && lintFlags.dir == "" {
			return fmt.Errorf("specify files to lint or --dir")
		}
		return fmt.Errorf("no AGENTS.md files found")
	}

	tel, err := newTelemetry()
	if err != nil {
		return err
	}
	defer tel.shutdown(context.Background())

	out := cmd.OutOrStdout()
	report := lintAll(files, tel.metrics)
	if err := formatter.FormatTo(out, report); err != nil {
		return err
	}

	if lintFlags.watch {
		return watchAndLint(cmd.Context(), out, formatter, args, tel.metrics)
	}

	if report.Failed > 0 {
		return cli.NewExitError(1)
	}
	return nil
}

// watchAndLint re-lints changed files until interrupted.
func watchAndLint(parent context.Context, out io.Writer, formatter cli.Formatter, files []string, collector *metrics.Collector) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := cli.SignalContext(parent)
	defer stop()

	paths := append([]string(nil), files...)
	if lintFlags.dir != "" {
		paths = append(paths, lintFlags.dir)
	}

	w, err := watch.New(watch.Config{Paths: paths, SkipHidden: true}, logger.Slog())
	if err != nil {
		return err
	}
	defer w.Stop()

	return w.Watch(ctx, func(changed []string) error {
		existing := changed[:0:0]
		for _, path := range changed {
			if _, err := os.Stat(path); err == nil {
				existing = append(existing, path)
			}
		}
		if len(existing) == 0 {
			return nil
		}
		fmt.Fprintf(out, "\n[%s] %d file(s) changed\n", time.Now().Format(time.TimeOnly), len(existing))
		return formatter.FormatTo(out, lintAll(existing, collector))
	})
}

func lintAll(files []string, collector *metrics.Collector) *LintReport {
	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(file, collector))
	}
	return newLintReport(results, lintFlags.strict)
}

// lintFile parses and validates one file. Read failures become a file error.
func lintFile(path string, collector *metrics.Collector) LintResult {
	result := LintResult{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = []*agentsErrors.ParseError{{
			Section: agentsErrors.SectionFile,
			Message: err.Error(),
		}}
		return result
	}

	start := time.Now()
	parsed, err := parser.NewParser().ParseBytes(data)
	if err != nil {
		result.Errors = []*agentsErrors.ParseError{{
			Section: agentsErrors.SectionFile,
			Message: err.Error(),
		}}
		return result
	}
	collector.RecordParse(parsed.Success, parsed.WarningSections(), time.Since(start))

	result.Errors = parsed.Errors
	result.Warnings = parsed.Warnings
	for _, e := range parsed.Errors {
		result.contexts = append(result.contexts, agentsErrors.WithContext(e, string(data)))
	}

	if !parsed.Success {
		return result
	}

	result.Site = parsed.Policy.Identity.Site
	validation := validator.Validate(parsed.Policy)
	collector.RecordValidation(validation.Valid, len(validation.Errors))
	result.Valid = validation.Valid
	result.Problems = validation.Errors

	if err := agentsmd.CheckSpecVersion(parsed.Policy); err != nil {
		result.Advisory = err.Error()
	}

	return result
}

// discoverAgentsFiles walks dir for AGENTS.md files, skipping hidden
// directories other than .well-known.
func discoverAgentsFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && strings.HasPrefix(name, ".") && name != ".well-known" {
				return filepath.SkipDir
			}
			return nil
		}
		if watch.IsAgentsFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
