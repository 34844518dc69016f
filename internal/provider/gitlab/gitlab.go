package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/drewdunne/contributors/internal/provider"
	"github.com/xanzy/go-gitlab"
)

const perPage = 100

// GitLabProvider implements provider.Provider for a GitLab project.
//
// GitLab commits carry only git identities, so commit authors never map to
// a platform account. Merge request approvers stand in for reviewers.
type GitLabProvider struct {
	client  *gitlab.Client
	token   string
	project string // owner/repo
}

// Option configures the GitLab provider.
type Option func(*GitLabProvider)

// WithBaseURL sets a custom base URL (for testing or self-hosted GitLab).
func WithBaseURL(baseURL string) Option {
	return func(p *GitLabProvider) {
		p.client, _ = gitlab.NewClient(p.token, gitlab.WithBaseURL(baseURL+"/api/v4"))
	}
}

// New creates a GitLab provider bound to owner/repo.
func New(token, owner, repo string, opts ...Option) *GitLabProvider {
	client, _ := gitlab.NewClient(token)
	p := &GitLabProvider{client: client, token: token, project: owner + "/" + repo}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the provider name.
func (p *GitLabProvider) Name() string {
	return "gitlab"
}

// GetPullRequest fetches a merge request by IID.
func (p *GitLabProvider) GetPullRequest(ctx context.Context, number int) (*provider.PullRequest, error) {
	mr, _, err := p.client.MergeRequests.GetMergeRequest(p.project, number, nil, gitlab.WithContext(ctx))
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("fetching merge request !%d: %w: %w", number, provider.ErrNotFound, err)
		}
		return nil, fmt.Errorf("fetching merge request !%d: %w", number, err)
	}

	result := &provider.PullRequest{
		Number: mr.IID,
		Title:  mr.Title,
		State:  mr.State,
		URL:    mr.WebURL,
	}
	if mr.Author != nil {
		result.Author = mr.Author.Username
	}

	return result, nil
}

// ListCommits returns all commits of a merge request.
func (p *GitLabProvider) ListCommits(ctx context.Context, number int) ([]provider.Commit, error) {
	var result []provider.Commit

	opts := &gitlab.GetMergeRequestCommitsOptions{PerPage: perPage}
	for {
		commits, resp, err := p.client.MergeRequests.GetMergeRequestCommits(p.project, number, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing commits of !%d: %w", number, err)
		}

		for _, c := range commits {
			commit := provider.Commit{
				SHA:           c.ID,
				GitAuthorName: c.AuthorName,
			}
			if c.CommitterName != "" {
				commit.Committer = &provider.User{Name: c.CommitterName}
			}
			result = append(result, commit)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// ListReviews returns one approved review per merge request approver.
func (p *GitLabProvider) ListReviews(ctx context.Context, number int) ([]provider.Review, error) {
	approvals, _, err := p.client.MergeRequestApprovals.GetConfiguration(p.project, number, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching approvals of !%d: %w", number, err)
	}

	result := make([]provider.Review, 0, len(approvals.ApprovedBy))
	for _, a := range approvals.ApprovedBy {
		review := provider.Review{State: "APPROVED"}
		if a.User != nil {
			review.ID = int64(a.User.ID)
			review.User = &provider.User{Login: a.User.Username, Name: a.User.Name}
		}
		result = append(result, review)
	}
	return result, nil
}

// isMissing reports whether err is a 404 or 403 from the API. go-gitlab
// turns 404s into its own sentinel.
func isMissing(err error) bool {
	if errors.Is(err, gitlab.ErrNotFound) {
		return true
	}
	var errResp *gitlab.ErrorResponse
	if !errors.As(err, &errResp) || errResp.Response == nil {
		return false
	}
	switch errResp.Response.StatusCode {
	case http.StatusNotFound, http.StatusForbidden:
		return true
	}
	return false
}
