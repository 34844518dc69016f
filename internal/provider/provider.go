package provider

import (
	"context"
	"errors"
)

// ErrNotFound indicates a pull request doesn't exist or isn't accessible
// with the configured credential.
var ErrNotFound = errors.New("pull request not found")

// Provider is a handle on a single hosted repository.
type Provider interface {
	// Name returns the provider name (github, gitlab).
	Name() string

	// GetPullRequest fetches a pull request by number.
	GetPullRequest(ctx context.Context, number int) (*PullRequest, error)

	// ListCommits returns every commit belonging to a pull request.
	ListCommits(ctx context.Context, number int) ([]Commit, error)

	// ListReviews returns every review submitted on a pull request.
	ListReviews(ctx context.Context, number int) ([]Review, error)
}
