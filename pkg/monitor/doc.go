// Package monitor watches a list of sites for changes to their AGENTS.md
// policy.
//
// Each run fetches every configured site in order, paced by a token-bucket
// limiter (golang.org/x/time/rate), records a history snapshot, and compares
// the canonical policy digest with the site's previous snapshot. A site whose
// digest or availability differs is reported as changed. After the sites are
// checked, snapshots older than the retention window are pruned.
//
// Runs are scheduled with a standard cron expression (robfig/cron). A run that
// would overlap one still in progress is skipped.
//
//	m, err := monitor.New(monitor.FromConfig(cfg), f, store, monitor.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	return m.Run(ctx) // one run now, then on schedule until ctx is done
package monitor
