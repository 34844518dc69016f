package provider

// PullRequest represents a pull request/merge request.
type PullRequest struct {
	Number int // PR number (GitHub) or MR IID (GitLab)
	Title  string
	State  string
	Author string
	URL    string
}

// User is a platform account as seen on a commit or review.
type User struct {
	Login string
	Name  string // empty when the account has no display name
}

// Commit represents a commit on a pull request.
type Commit struct {
	SHA string

	// Author is nil when the git author has no platform account,
	// e.g. the account was deleted.
	Author *User

	// Committer is nil when the commit carries no committer identity.
	Committer *User

	// GitAuthorName is the author name recorded in the git object itself.
	GitAuthorName string
}

// Review represents a review submitted on a pull request.
type Review struct {
	ID    int64
	State string
	User  *User
}
