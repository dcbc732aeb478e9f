package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"aumos-oss/agentsmd/pkg/agentsmd"
	"aumos-oss/agentsmd/pkg/agentsmd/fetcher"
	"aumos-oss/agentsmd/pkg/agentsmd/parser"
	"aumos-oss/agentsmd/pkg/agentsmd/validator"
	"aumos-oss/agentsmd/pkg/cli"
	"aumos-oss/agentsmd/pkg/history"
)

var fetchFlags struct {
	insecure bool
	timeout  time.Duration
	format   string
	record   bool
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <base-url>",
	Short: "Fetch and check a site's AGENTS.md",
	Long: `Fetch a site's AGENTS.md and report the parsed policy.

The document is requested from {base}/AGENTS.md and then from
{base}/.well-known/agents.md. Only HTTPS is accepted unless --insecure is set.

Examples:
  # Fetch and summarise
  agentsmd fetch https://example.com

  # Store a history snapshot as well
  agentsmd fetch https://example.com --record

  # Full result as JSON
  agentsmd fetch https://example.com --format json`,
	Args: cobra.ExactArgs(1),
	RunE: fetchSite,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchFlags.insecure, "insecure", false, "allow http:// and skip certificate checks (testing only)")
	fetchCmd.Flags().DurationVar(&fetchFlags.timeout, "timeout", 0, "per-request timeout (default from config)")
	fetchCmd.Flags().StringVar(&fetchFlags.format, "format", "text", "output format: text, json, yaml")
	fetchCmd.Flags().BoolVar(&fetchFlags.record, "record", false, "record a snapshot in the history store")
}

// FetchReport is the outcome of fetching one site.
type FetchReport struct {
	Site       string                      `json:"site" yaml:"site"`
	Found      bool                        `json:"found" yaml:"found"`
	URL        string                      `json:"url,omitempty" yaml:"url,omitempty"`
	Parse      *parser.ParseResult         `json:"parse,omitempty" yaml:"parse,omitempty"`
	Validation *validator.ValidationResult `json:"validation,omitempty" yaml:"validation,omitempty"`
	Digest     string                      `json:"digest,omitempty" yaml:"digest,omitempty"`
	SnapshotID string                      `json:"snapshot_id,omitempty" yaml:"snapshot_id,omitempty"`
}

// OK reports whether a valid policy was found.
func (r *FetchReport) OK() bool {
	return r.Found && r.Parse.Success && r.Validation != nil && r.Validation.Valid
}

// RenderText prints the report for a terminal.
func (r *FetchReport) RenderText(w io.Writer) error {
	if !r.Found {
		_, err := fmt.Fprintf(w, "No AGENTS.md found for %s\n", r.Site)
		return err
	}

	fmt.Fprintf(w, "Fetched %s\n", r.URL)
	for _, e := range r.Parse.Errors {
		fmt.Fprintf(w, "  error: %s\n", e.Error())
	}
	if r.Parse.Success {
		p := r.Parse.Policy
		fmt.Fprintf(w, "  site: %s\n", p.Identity.Site)
		if p.Identity.SpecVersion != "" {
			fmt.Fprintf(w, "  spec-version: %s\n", p.Identity.SpecVersion)
		}
		fmt.Fprintf(w, "  minimum-trust-level: %d\n", p.TrustRequirements.MinimumTrustLevel)
		fmt.Fprintf(w, "  authentication: %s\n", p.TrustRequirements.Authentication)
		fmt.Fprintf(w, "  digest: %s\n", r.Digest)
	}
	for _, warning := range r.Parse.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning.String())
	}
	if r.Validation != nil {
		for _, problem := range r.Validation.Errors {
			fmt.Fprintf(w, "  invalid: %s\n", problem)
		}
	}
	if r.SnapshotID != "" {
		fmt.Fprintf(w, "  snapshot: %s\n", r.SnapshotID)
	}

	status := "valid"
	if !r.OK() {
		status = "invalid"
	}
	_, err := fmt.Fprintf(w, "Policy is %s\n", status)
	return err
}

func fetchSite(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatterFor(fetchFlags.format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := cli.SignalContext(ctx)
	defer stop()

	tel, err := newTelemetry()
	if err != nil {
		return err
	}
	defer tel.shutdown(context.Background())

	f := tel.newFetcher(func(cfg *fetcher.Config) {
		if fetchFlags.insecure {
			cfg.EnforceHTTPS = false
		}
		if fetchFlags.timeout > 0 {
			cfg.Timeout = fetchFlags.timeout
		}
	})

	site := args[0]
	result, err := f.FetchDetailed(ctx, site)
	if err != nil {
		return cli.NewCommandError("fetch", err)
	}

	report, snapshot, err := buildFetchReport(site, result)
	if err != nil {
		return cli.NewCommandError("fetch", err)
	}

	if fetchFlags.record {
		if err := recordSnapshot(ctx, tel, snapshot); err != nil {
			return cli.NewCommandError("fetch", err)
		}
		report.SnapshotID = snapshot.ID
	}

	if err := formatter.FormatTo(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if !report.OK() {
		return cli.NewExitError(1)
	}
	return nil
}

// buildFetchReport validates a fetch result and prepares its history snapshot.
func buildFetchReport(site string, result *fetcher.Result) (*FetchReport, *history.Snapshot, error) {
	report := &FetchReport{Site: site}
	snapshot := &history.Snapshot{Site: site}
	if result == nil {
		return report, snapshot, nil
	}

	report.Found = true
	report.URL = result.URL
	report.Parse = result.Parse

	snapshot.Found = true
	snapshot.URL = result.URL
	snapshot.FetchedAt = result.FetchedAt
	snapshot.Content = result.Content
	snapshot.Success = result.Parse.Success
	snapshot.WarningCount = len(result.Parse.Warnings)
	snapshot.ErrorCount = len(result.Parse.Errors)

	if result.Parse.Success {
		digest, err := agentsmd.Digest(result.Parse.Policy)
		if err != nil {
			return nil, nil, err
		}
		report.Digest = digest
		snapshot.Digest = digest
		report.Validation = validator.Validate(result.Parse.Policy)
	}

	return report, snapshot, nil
}

func recordSnapshot(ctx context.Context, tel *telemetry, snapshot *history.Snapshot) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Record(ctx, snapshot); err != nil {
		return err
	}
	tel.metrics.RecordSnapshot(store.Backend())
	logger.Info("snapshot recorded", "site", snapshot.Site, "id", snapshot.ID, "backend", store.Backend())
	return nil
}
