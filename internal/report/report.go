// Package report renders the contributor list written into release notes.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/drewdunne/contributors/internal/contributors"
	"github.com/moby/sys/atomicwriter"
)

// DefaultFilename is the report written into the working directory.
const DefaultFilename = "reviewers_and_authors.txt"

// Default bot identities excluded from the report.
const (
	DefaultCommitterBot = "GitHub Web Flow"
	DefaultAuthorBot    = "Azure Pipelines Bot"
)

// Bots names the automation accounts dropped from each set.
type Bots struct {
	Committer string
	Author    string
}

type section struct {
	name string
	set  contributors.Set
}

// Write renders sets to w. Committers are filtered but not listed; only
// authors and reviewers appear in release notes.
func Write(w io.Writer, sets *contributors.Sets, bots Bots) error {
	sets.Committers.Remove(bots.Committer)
	sets.Authors.Remove(bots.Author)

	sections := []section{
		{name: "authors", set: sets.Authors},
		{name: "reviewers", set: sets.Reviewers},
	}

	var b strings.Builder
	for _, s := range sections {
		header := fmt.Sprintf("%d %s added to this release [alphabetical by first name or login]\n",
			s.set.Len(), s.name)

		b.WriteString("\n")
		b.WriteString(header)
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(header)))
		b.WriteString("\n")

		// An empty name means an identity that resolved to nothing.
		s.set.Remove("")

		for _, name := range s.set.Sorted() {
			fmt.Fprintf(&b, "- %s \n", name)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile renders sets and replaces path with the result. The previous
// file is left untouched if rendering or writing fails.
func WriteFile(path string, sets *contributors.Sets, bots Bots) error {
	var buf bytes.Buffer
	if err := Write(&buf, sets, bots); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := atomicwriter.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteEmpty truncates path to an empty report.
func WriteEmpty(path string) error {
	if err := atomicwriter.WriteFile(path, nil, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
