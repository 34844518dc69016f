package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/drewdunne/contributors/internal/provider"
	"github.com/google/go-github/v60/github"
)

// perPage is the largest page size the GitHub REST API accepts.
const perPage = 100

// GitHubProvider implements provider.Provider for a GitHub repository.
type GitHubProvider struct {
	client *github.Client
	owner  string
	repo   string

	mu    sync.Mutex
	names map[string]string // login -> display name
}

// Option configures the GitHub provider.
type Option func(*GitHubProvider)

// WithBaseURL sets a custom base URL (for testing or GitHub Enterprise).
func WithBaseURL(url string) Option {
	return func(p *GitHubProvider) {
		p.client.BaseURL, _ = p.client.BaseURL.Parse(url + "/")
	}
}

// New creates a GitHub provider bound to owner/repo.
func New(token, owner, repo string, opts ...Option) *GitHubProvider {
	httpClient := &http.Client{
		Transport: &tokenTransport{token: token},
	}

	p := &GitHubProvider{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
		names:  make(map[string]string),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// tokenTransport adds authorization header to requests.
type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// GetPullRequest fetches a pull request by number.
func (p *GitHubProvider) GetPullRequest(ctx context.Context, number int) (*provider.PullRequest, error) {
	pr, _, err := p.client.PullRequests.Get(ctx, p.owner, p.repo, number)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("fetching pull request #%d: %w: %w", number, provider.ErrNotFound, err)
		}
		return nil, fmt.Errorf("fetching pull request #%d: %w", number, err)
	}

	return &provider.PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		State:  pr.GetState(),
		Author: pr.GetUser().GetLogin(),
		URL:    pr.GetHTMLURL(),
	}, nil
}

// ListCommits returns all commits of a pull request, following pagination.
func (p *GitHubProvider) ListCommits(ctx context.Context, number int) ([]provider.Commit, error) {
	var result []provider.Commit

	opts := &github.ListOptions{PerPage: perPage}
	for {
		commits, resp, err := p.client.PullRequests.ListCommits(ctx, p.owner, p.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits of #%d: %w", number, err)
		}

		for _, c := range commits {
			author, err := p.user(ctx, c.GetAuthor())
			if err != nil {
				return nil, err
			}
			committer, err := p.user(ctx, c.GetCommitter())
			if err != nil {
				return nil, err
			}
			result = append(result, provider.Commit{
				SHA:           c.GetSHA(),
				Author:        author,
				Committer:     committer,
				GitAuthorName: c.GetCommit().GetAuthor().GetName(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// ListReviews returns all reviews of a pull request, following pagination.
func (p *GitHubProvider) ListReviews(ctx context.Context, number int) ([]provider.Review, error) {
	var result []provider.Review

	opts := &github.ListOptions{PerPage: perPage}
	for {
		reviews, resp, err := p.client.PullRequests.ListReviews(ctx, p.owner, p.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing reviews of #%d: %w", number, err)
		}

		for _, r := range reviews {
			review := provider.Review{
				ID:    r.GetID(),
				State: r.GetState(),
			}
			// Reviewers are identified by login only.
			if r.User != nil {
				review.User = &provider.User{Login: r.User.GetLogin()}
			}
			result = append(result, review)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// user converts a GitHub account into a provider.User, filling in the
// display name that list endpoints omit.
func (p *GitHubProvider) user(ctx context.Context, u *github.User) (*provider.User, error) {
	if u == nil || u.GetLogin() == "" {
		return nil, nil
	}

	name := u.GetName()
	if name == "" {
		var err error
		name, err = p.displayName(ctx, u.GetLogin())
		if err != nil {
			return nil, err
		}
	}

	return &provider.User{Login: u.GetLogin(), Name: name}, nil
}

// displayName looks up the profile name of login, caching results so each
// account is fetched once per run.
func (p *GitHubProvider) displayName(ctx context.Context, login string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if name, ok := p.names[login]; ok {
		return name, nil
	}

	u, _, err := p.client.Users.Get(ctx, login)
	if err != nil {
		if !isMissing(err) {
			return "", fmt.Errorf("fetching user %s: %w", login, err)
		}
		// Some app accounts have no public profile; fall back to the login.
		u = nil
	}

	name := u.GetName()
	p.names[login] = name
	return name, nil
}

// isMissing reports whether err is a 404 or 403 from the API.
func isMissing(err error) bool {
	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) || errResp.Response == nil {
		return false
	}
	switch errResp.Response.StatusCode {
	case http.StatusNotFound, http.StatusForbidden:
		return true
	}
	return false
}
