// Package collector fetches the commits and reviews of a set of pull
// requests from a repository host.
package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/drewdunne/contributors/internal/metrics"
	"github.com/drewdunne/contributors/internal/progress"
	"github.com/drewdunne/contributors/internal/provider"
	"github.com/rs/zerolog"
)

// Result pools the commits and reviews of every fetched pull request.
// Nothing is deduplicated.
type Result struct {
	Commits []provider.Commit
	Reviews []provider.Review
	Skipped []int
}

// Collector fetches pull requests one at a time.
type Collector struct {
	provider provider.Provider
	logger   zerolog.Logger
	bar      progress.Bar
}

// New creates a collector. A nil bar draws nothing.
func New(p provider.Provider, logger zerolog.Logger, bar progress.Bar) *Collector {
	if bar == nil {
		bar = progress.Nop()
	}
	return &Collector{provider: p, logger: logger, bar: bar}
}

// Fetch collects commits and reviews for numbers. A pull request that can't
// be fetched is logged and skipped; failing to list the commits or reviews
// of a fetched pull request aborts, as does cancellation of ctx.
func (c *Collector) Fetch(ctx context.Context, numbers []int) (*Result, error) {
	result := &Result{}

	for number := range progress.Range(c.bar, "Fetching pull requests", numbers) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("collecting pull requests: %w", err)
		}
		metrics.PullRequestRequested()

		pr, err := c.provider.GetPullRequest(ctx, number)
		if isInterrupted(err) {
			return nil, fmt.Errorf("collecting pull request #%d: %w", number, err)
		}
		if err != nil {
			metrics.PullRequestSkipped()
			c.logger.Warn().Int("pr", number).Err(err).Msg("skipping pull request")
			result.Skipped = append(result.Skipped, number)
			continue
		}

		commits, err := c.provider.ListCommits(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("collecting pull request #%d: %w", number, err)
		}
		reviews, err := c.provider.ListReviews(ctx, pr.Number)
		if err != nil {
			return nil, fmt.Errorf("collecting pull request #%d: %w", number, err)
		}

		metrics.PullRequestFetched()
		metrics.CommitsAdded(len(commits))
		metrics.ReviewsAdded(len(reviews))
		c.logger.Debug().
			Int("pr", number).
			Int("commits", len(commits)).
			Int("reviews", len(reviews)).
			Msg("fetched pull request")

		result.Commits = append(result.Commits, commits...)
		result.Reviews = append(result.Reviews, reviews...)
	}

	return result, nil
}

// isInterrupted reports whether err comes from a cancelled or expired
// context rather than from the pull request itself.
func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
