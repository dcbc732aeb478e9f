package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"aumos-oss/agentsmd/pkg/cli"
	"aumos-oss/agentsmd/pkg/monitor"
)

var monitorFlags struct {
	once   bool
	format string
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch published AGENTS.md policies for changes",
	Long: `Fetch the AGENTS.md of every site in monitor.sites on a cron schedule,
record a history snapshot for each and report sites whose policy changed.

Fetches within a run are paced by monitor.requests_per_second. Snapshots older
than history.retention_days are pruned after each run. When
telemetry.metrics.enabled is set, Prometheus metrics are served while the
monitor runs.

Examples:
  # Run on the configured schedule until interrupted
  agentsmd monitor --config agentsmd.yaml

  # Check every site once and exit
  agentsmd monitor --once`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().BoolVar(&monitorFlags.once, "once", false, "check every site once and exit")
	monitorCmd.Flags().StringVar(&monitorFlags.format, "format", "text", "output format for --once: text, json, yaml")
}

// runReport renders a monitor run for the terminal and encodes as the
// underlying result otherwise.
type runReport struct {
	result *monitor.RunResult
}

func (r runReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.result)
}

func (r runReport) MarshalYAML() (interface{}, error) {
	return r.result, nil
}

// RenderText prints one line per site and a summary.
func (r runReport) RenderText(w io.Writer) error {
	res := r.result
	for _, s := range res.Sites {
		switch {
		case s.Err != nil:
			fmt.Fprintf(w, "%-10s %s: %v\n", s.Outcome, s.Site, s.Err)
		case s.Found && !s.Valid:
			fmt.Fprintf(w, "%-10s %s (invalid policy)\n", s.Outcome, s.Site)
		default:
			fmt.Fprintf(w, "%-10s %s\n", s.Outcome, s.Site)
		}
	}
	_, err := fmt.Fprintf(w, "\nrun %s: %s, %d changed, %d failed, %d pruned\n",
		res.RunID, res.Status(), len(res.Changed()), res.Failed(), res.Pruned)
	return err
}

func runMonitor(cmd *cobra.Command, args []string) error {
	formatter, err := cli.NewFormatterFor(monitorFlags.format)
	if err != nil {
		return err
	}
	if len(appConfig.Monitor.Sites) == 0 {
		return fmt.Errorf("no sites configured (set monitor.sites in %s)", cfgFile)
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

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := monitor.New(monitor.FromConfig(appConfig), tel.newFetcher(nil), store,
		monitor.WithLogger(logger.Slog()),
		monitor.WithMetrics(tel.metrics),
		monitor.WithTracer(tel.tracer),
	)
	if err != nil {
		return cli.NewCommandError("monitor", err)
	}

	if monitorFlags.once {
		result, err := m.RunOnce(ctx)
		if err != nil {
			return cli.NewCommandError("monitor", err)
		}
		if err := formatter.FormatTo(cmd.OutOrStdout(), runReport{result}); err != nil {
			return err
		}
		if result.Failed() > 0 {
			return cli.NewExitError(1)
		}
		return nil
	}

	if appConfig.Telemetry.Metrics.Enabled {
		go func() {
			if err := tel.metrics.Serve(ctx); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		logger.Info("serving metrics",
			"address", appConfig.Telemetry.Metrics.ListenAddress,
			"path", appConfig.Telemetry.Metrics.Path,
		)
	}

	if err := m.Run(ctx); err != nil {
		return cli.NewCommandError("monitor", err)
	}

	logger.Info("monitor stopped")
	return nil
}
