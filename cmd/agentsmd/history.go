package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"aumos-oss/agentsmd/pkg/cli"
	"aumos-oss/agentsmd/pkg/history"
)

var historyFlags struct {
	limit  int
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history <site>",
	Short: "List recorded snapshots for a site",
	Long: `List the AGENTS.md snapshots recorded by fetch --record and monitor,
newest first. <site> is the base URL the snapshots were recorded under.

Examples:
  agentsmd history https://example.com
  agentsmd history https://example.com --limit 5 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: listHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum number of snapshots (0 for all)")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, yaml")
}

// HistoryReport lists snapshots for one site.
type HistoryReport struct {
	Site      string              `json:"site" yaml:"site"`
	Snapshots []*history.Snapshot `json:"snapshots" yaml:"snapshots"`
}

// RenderText prints the snapshots as a table.
func (r *HistoryReport) RenderText(w io.Writer) error {
	if len(r.Snapshots) == 0 {
		_, err := fmt.Fprintf(w, "No snapshots recorded for %s\n", r.Site)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FETCHED\tFOUND\tPARSED\tWARNINGS\tDIGEST")
	for _, s := range r.Snapshots {
		digest := s.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		if digest == "" {
			digest = "-"
		}
		fmt.Fprintf(tw, "%s\t%t\t%t\t%d\t%s\n",
			s.FetchedAt.Local().Format(time.DateTime), s.Found, s.Success, s.WarningCount, digest)
	}
	return tw.Flush()
}

func listHistory(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatterFor(historyFlags.format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore(ctx)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	snapshots, err := store.List(ctx, args[0], historyFlags.limit)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	return formatter.FormatTo(cmd.OutOrStdout(), &HistoryReport{Site: args[0], Snapshots: snapshots})
}
