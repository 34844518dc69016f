// Package contributors derives author, committer and reviewer names from
// fetched commits and reviews.
package contributors

import (
	"errors"
	"fmt"

	"github.com/drewdunne/contributors/internal/provider"
)

// ErrMissingReviewer is returned when a review has no submitting user.
var ErrMissingReviewer = errors.New("review has no user")

// Sets holds the contributor names of a release.
type Sets struct {
	Authors    Set
	Committers Set
	Reviewers  Set
}

// NewSets returns empty sets.
func NewSets() *Sets {
	return &Sets{
		Authors:    NewSet(),
		Committers: NewSet(),
		Reviewers:  NewSet(),
	}
}

// ResolveCommitter returns the committer's display name, falling back to
// the login. ok is false when the commit has no committer.
func ResolveCommitter(c provider.Commit) (name string, ok bool) {
	if c.Committer == nil {
		return "", false
	}
	if c.Committer.Name != "" {
		return c.Committer.Name, true
	}
	return c.Committer.Login, true
}

// ResolveAuthor returns the author's display name. Accounts without a
// display name resolve to "login (git author name)"; commits whose author
// account was deleted resolve to the git author name.
func ResolveAuthor(c provider.Commit) string {
	if c.Author == nil {
		return c.GitAuthorName
	}
	if c.Author.Name != "" {
		return c.Author.Name
	}
	return fmt.Sprintf("%s (%s)", c.Author.Login, c.GitAuthorName)
}

// Extract builds the contributor sets. It only reads its inputs.
func Extract(commits []provider.Commit, reviews []provider.Review) (*Sets, error) {
	sets := NewSets()

	for _, c := range commits {
		if committer, ok := ResolveCommitter(c); ok {
			sets.Committers.Add(committer)
		}
		sets.Authors.Add(ResolveAuthor(c))
	}

	for _, r := range reviews {
		if r.User == nil {
			return nil, fmt.Errorf("review %d: %w", r.ID, ErrMissingReviewer)
		}
		sets.Reviewers.Add(r.User.Login)
	}

	return sets, nil
}
