package metrics

import (
	"sync/atomic"
)

// Metrics tracks what a run fetched from the repository host.
type Metrics struct {
	PullRequestsRequested uint64 `json:"pull_requests_requested"`
	PullRequestsFetched   uint64 `json:"pull_requests_fetched"`
	PullRequestsSkipped   uint64 `json:"pull_requests_skipped"`
	CommitsCollected      uint64 `json:"commits_collected"`
	ReviewsCollected      uint64 `json:"reviews_collected"`
}

var global = &Metrics{}

// PullRequestRequested increments the count of pull requests looked up.
func PullRequestRequested() { atomic.AddUint64(&global.PullRequestsRequested, 1) }

// PullRequestFetched increments the count of pull requests fetched successfully.
func PullRequestFetched() { atomic.AddUint64(&global.PullRequestsFetched, 1) }

// PullRequestSkipped increments the count of pull requests that could not be fetched.
func PullRequestSkipped() { atomic.AddUint64(&global.PullRequestsSkipped, 1) }

// CommitsAdded adds n to the count of collected commits.
func CommitsAdded(n int) { atomic.AddUint64(&global.CommitsCollected, uint64(n)) }

// ReviewsAdded adds n to the count of collected reviews.
func ReviewsAdded(n int) { atomic.AddUint64(&global.ReviewsCollected, uint64(n)) }

// Get returns a snapshot of the current metrics.
func Get() Metrics {
	return Metrics{
		PullRequestsRequested: atomic.LoadUint64(&global.PullRequestsRequested),
		PullRequestsFetched:   atomic.LoadUint64(&global.PullRequestsFetched),
		PullRequestsSkipped:   atomic.LoadUint64(&global.PullRequestsSkipped),
		CommitsCollected:      atomic.LoadUint64(&global.CommitsCollected),
		ReviewsCollected:      atomic.LoadUint64(&global.ReviewsCollected),
	}
}

// Reset resets all metrics to zero (useful for testing).
func Reset() {
	atomic.StoreUint64(&global.PullRequestsRequested, 0)
	atomic.StoreUint64(&global.PullRequestsFetched, 0)
	atomic.StoreUint64(&global.PullRequestsSkipped, 0)
	atomic.StoreUint64(&global.CommitsCollected, 0)
	atomic.StoreUint64(&global.ReviewsCollected, 0)
}
