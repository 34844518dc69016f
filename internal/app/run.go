// Package app wires the scan, fetch, extract and report stages together.
package app

import (
	"context"

	"github.com/drewdunne/contributors/internal/collector"
	"github.com/drewdunne/contributors/internal/contributors"
	"github.com/drewdunne/contributors/internal/fragment"
	"github.com/drewdunne/contributors/internal/metrics"
	"github.com/drewdunne/contributors/internal/progress"
	"github.com/drewdunne/contributors/internal/provider"
	"github.com/drewdunne/contributors/internal/report"
	"github.com/rs/zerolog"
)

// Options collect the inputs of a single run.
type Options struct {
	ProjectDir string
	OutputPath string
}

// Runner produces the contributor report for a project.
type Runner struct {
	Provider provider.Provider
	Logger   zerolog.Logger
	Progress progress.Bar
	Bots     report.Bots
}

// Run scans the project's change fragments, collects the contributors of
// the referenced pull requests and writes the report. With no fragments it
// writes an empty report without contacting the provider.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	numbers, err := fragment.Scan(fragment.Dir(opts.ProjectDir))
	if err != nil {
		return err
	}

	if len(numbers) == 0 {
		r.Logger.Info().Msg("No significant changes.")
		return report.WriteEmpty(opts.OutputPath)
	}

	r.Logger.Info().Int("pull_requests", len(numbers)).Msg("Getting all commits from upcoming changes...")

	result, err := collector.New(r.Provider, r.Logger, r.Progress).Fetch(ctx, numbers)
	if err != nil {
		return err
	}

	sets, err := contributors.Extract(result.Commits, result.Reviews)
	if err != nil {
		return err
	}

	if err := report.WriteFile(opts.OutputPath, sets, r.Bots); err != nil {
		return err
	}

	m := metrics.Get()
	r.Logger.Info().
		Uint64("fetched", m.PullRequestsFetched).
		Uint64("skipped", m.PullRequestsSkipped).
		Int("authors", sets.Authors.Len()).
		Int("reviewers", sets.Reviewers.Len()).
		Str("output", opts.OutputPath).
		Msg("wrote contributor report")

	return nil
}
