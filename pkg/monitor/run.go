package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aumos-oss/agentsmd/pkg/agentsmd"
	"aumos-oss/agentsmd/pkg/agentsmd/validator"
	"aumos-oss/agentsmd/pkg/history"
	"aumos-oss/agentsmd/pkg/telemetry/tracing"

	"github.com/google/uuid"
)

// Site check outcomes, used as metric labels.
const (
	OutcomeNew       = "new"
	OutcomeChanged   = "changed"
	OutcomeUnchanged = "unchanged"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Run statuses.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailure = "failure"
)

// SiteResult is the outcome of checking one site.
type SiteResult struct {
	Site    string `json:"site" yaml:"site"`
	Outcome string `json:"outcome" yaml:"outcome"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`

	Found   bool `json:"found" yaml:"found"`
	Success bool `json:"success" yaml:"success"`

	// Valid is set only for documents that parsed.
	Valid bool `json:"valid" yaml:"valid"`

	Digest         string `json:"digest,omitempty" yaml:"digest,omitempty"`
	PreviousDigest string `json:"previous_digest,omitempty" yaml:"previous_digest,omitempty"`

	// Changed is true when a previous snapshot exists and differs in digest or
	// availability.
	Changed bool `json:"changed" yaml:"changed"`

	Err error `json:"-" yaml:"-"`
}

// RunResult summarises one monitor run.
type RunResult struct {
	RunID    string       `json:"run_id" yaml:"run_id"`
	Started  time.Time    `json:"started" yaml:"started"`
	Finished time.Time    `json:"finished" yaml:"finished"`
	Sites    []SiteResult `json:"sites" yaml:"sites"`
	Pruned   int64        `json:"pruned" yaml:"pruned"`
}

// Changed returns the sites whose policy changed.
func (r *RunResult) Changed() []SiteResult {
	changed := make([]SiteResult, 0)
	for _, s := range r.Sites {
		if s.Changed {
			changed = append(changed, s)
		}
	}
	return changed
}

// Failed returns the number of sites that could not be checked.
func (r *RunResult) Failed() int {
	failed := 0
	for _, s := range r.Sites {
		if s.Err != nil {
			failed++
		}
	}
	return failed
}

// Status classifies the run for metrics.
func (r *RunResult) Status() string {
	switch failed := r.Failed(); {
	case failed == 0:
		return StatusSuccess
	case failed < len(r.Sites):
		return StatusPartial
	default:
		return StatusFailure
	}
}

// RunOnce checks every configured site once, in order, paced by the rate
// limiter, then applies history retention. Per-site failures are reported in
// the result; the returned error is reserved for cancellation and retention
// failures.
func (m *Monitor) RunOnce(ctx context.Context) (*RunResult, error) {
	if !m.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer m.runMu.Unlock()

	result := &RunResult{
		RunID:   uuid.NewString(),
		Started: m.now(),
		Sites:   make([]SiteResult, 0, len(m.cfg.Sites)),
	}
	logger := m.logger.With("run_id", result.RunID)

	ctx, span := m.tracer.Start(ctx, "agentsmd.monitor.run")
	defer span.End()

	var runErr error
	for _, site := range m.cfg.Sites {
		if err := m.limiter.Wait(ctx); err != nil {
			runErr = fmt.Errorf("run interrupted: %w", err)
			break
		}

		siteResult := m.checkSite(ctx, result.RunID, site)
		if siteResult.Err != nil {
			logger.Warn("site check failed", "site", site, "error", siteResult.Err)
		} else if siteResult.Changed {
			logger.Info("AGENTS.md policy changed",
				"site", site,
				"previous_digest", siteResult.PreviousDigest,
				"digest", siteResult.Digest,
				"found", siteResult.Found,
			)
		}
		result.Sites = append(result.Sites, siteResult)
	}

	if runErr == nil {
		pruned, err := m.applyRetention(ctx)
		if err != nil {
			runErr = err
		}
		result.Pruned = pruned
	}

	result.Finished = m.now()
	m.metrics.RecordMonitorRun(result.Status(), result.Finished.Sub(result.Started))
	tracing.SetStatus(span, runErr)

	return result, runErr
}

// checkSite fetches one site, records a snapshot and compares it with the
// previous one.
func (m *Monitor) checkSite(ctx context.Context, runID, site string) (out SiteResult) {
	out = SiteResult{Site: site}

	ctx, span := m.tracer.Start(ctx, "agentsmd.monitor.site")
	defer func() {
		tracing.SetSiteCheckAttributes(span, runID, site, out.Digest, out.Changed)
		tracing.SetStatus(span, out.Err)
		m.metrics.RecordSiteCheck(site, out.Outcome)
		span.End()
	}()

	fetched, err := m.fetcher.FetchDetailed(ctx, site)
	if err != nil {
		out.Outcome, out.Err = OutcomeError, err
		return out
	}

	snapshot := &history.Snapshot{
		Site:      site,
		FetchedAt: m.now(),
	}

	if fetched != nil {
		out.Found = true
		out.URL = fetched.URL
		out.Success = fetched.Parse.Success

		snapshot.Found = true
		snapshot.URL = fetched.URL
		snapshot.Content = fetched.Content
		snapshot.Success = fetched.Parse.Success
		snapshot.WarningCount = len(fetched.Parse.Warnings)
		snapshot.ErrorCount = len(fetched.Parse.Errors)

		if fetched.Parse.Success {
			digest, err := agentsmd.Digest(fetched.Parse.Policy)
			if err != nil {
				out.Outcome, out.Err = OutcomeError, err
				return out
			}
			out.Digest = digest
			snapshot.Digest = digest
			out.Valid = validator.Validate(fetched.Parse.Policy).Valid
		}
	}

	previous, err := m.store.Latest(ctx, site)
	switch {
	case errors.Is(err, history.ErrNotFound):
		previous = nil
	case err != nil:
		out.Outcome, out.Err = OutcomeError, err
		return out
	}

	if err := m.store.Record(ctx, snapshot); err != nil {
		out.Outcome, out.Err = OutcomeError, err
		return out
	}
	m.metrics.RecordSnapshot(m.store.Backend())

	switch {
	case previous == nil:
		out.Outcome = OutcomeNew
	case previous.Digest != out.Digest || previous.Found != out.Found:
		out.PreviousDigest = previous.Digest
		out.Changed = true
		out.Outcome = OutcomeChanged
		m.metrics.RecordPolicyChange(site)
	case !out.Found:
		out.PreviousDigest = previous.Digest
		out.Outcome = OutcomeNotFound
	default:
		out.PreviousDigest = previous.Digest
		out.Outcome = OutcomeUnchanged
	}

	return out
}

// applyRetention prunes snapshots older than the retention window.
func (m *Monitor) applyRetention(ctx context.Context) (int64, error) {
	cutoff := history.RetentionCutoff(m.now(), m.cfg.RetentionDays)
	if cutoff.IsZero() {
		return 0, nil
	}

	pruned, err := m.store.Prune(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history retention: %w", err)
	}
	m.metrics.RecordPruned(m.store.Backend(), pruned)
	return pruned, nil
}
