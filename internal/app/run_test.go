package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drewdunne/contributors/internal/contributors"
	"github.com/drewdunne/contributors/internal/fragment"
	"github.com/drewdunne/contributors/internal/logging"
	"github.com/drewdunne/contributors/internal/progress"
	"github.com/drewdunne/contributors/internal/provider"
	"github.com/drewdunne/contributors/internal/report"
	"github.com/rs/zerolog"
)

var defaultBots = report.Bots{Committer: report.DefaultCommitterBot, Author: report.DefaultAuthorBot}

type fakeProvider struct {
	prs     map[int]bool
	commits map[int][]provider.Commit
	reviews map[int][]provider.Review
	calls   int

	// afterReviews runs once the reviews of a pull request are listed.
	afterReviews func()
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GetPullRequest(ctx context.Context, number int) (*provider.PullRequest, error) {
	f.calls++
	if !f.prs[number] {
		return nil, fmt.Errorf("fetching pull request #%d: %w", number, provider.ErrNotFound)
	}
	return &provider.PullRequest{Number: number}, nil
}

func (f *fakeProvider) ListCommits(ctx context.Context, number int) ([]provider.Commit, error) {
	f.calls++
	return f.commits[number], nil
}

func (f *fakeProvider) ListReviews(ctx context.Context, number int) ([]provider.Review, error) {
	f.calls++
	if f.afterReviews != nil {
		f.afterReviews()
	}
	return f.reviews[number], nil
}

func setupProject(t *testing.T, fragments ...string) string {
	t.Helper()
	root := t.TempDir()
	dir := fragment.Dir(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create fragment dir: %v", err)
	}
	for _, name := range fragments {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("change"), 0644); err != nil {
			t.Fatalf("Failed to write fragment: %v", err)
		}
	}
	return root
}

func TestRun_NoFragments(t *testing.T) {
	root := setupProject(t, "towncrier_template.rst")
	output := filepath.Join(t.TempDir(), report.DefaultFilename)
	os.WriteFile(output, []byte("previous release"), 0644)

	var logs bytes.Buffer
	logger, _ := logging.New(&logs, "info")
	fake := &fakeProvider{}

	r := &Runner{Provider: fake, Logger: logger, Progress: progress.Nop(), Bots: defaultBots}
	if err := r.Run(context.Background(), Options{ProjectDir: root, OutputPath: output}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if fake.calls != 0 {
		t.Errorf("provider called %d times, want 0", fake.calls)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("output = %q, want empty", data)
	}
	if !strings.Contains(logs.String(), "No significant changes.") {
		t.Errorf("expected informational message, got %q", logs.String())
	}
}

func TestRun_WritesReport(t *testing.T) {
	root := setupProject(t, "10.feature", "11.bugfix", "12.doc")
	output := filepath.Join(t.TempDir(), report.DefaultFilename)

	fake := &fakeProvider{
		prs: map[int]bool{10: true, 11: true},
		commits: map[int][]provider.Commit{
			10: {
				{
					Author:        &provider.User{Login: "octo"},
					Committer:     &provider.User{Login: "web-flow", Name: "GitHub Web Flow"},
					GitAuthorName: "Jane Doe",
				},
			},
			11: {
				{Author: &provider.User{Login: "azp", Name: "Azure Pipelines Bot"}, GitAuthorName: "azp"},
				{Author: &provider.User{Login: "al", Name: "alice"}, GitAuthorName: "alice"},
			},
		},
		reviews: map[int][]provider.Review{
			10: {{ID: 1, User: &provider.User{Login: "Zed"}}},
			11: {{ID: 2, User: &provider.User{Login: "bob"}}, {ID: 3, User: &provider.User{Login: "bob"}}},
		},
	}

	var logs bytes.Buffer
	logger, _ := logging.New(&logs, "info")
	r := &Runner{Provider: fake, Logger: logger, Progress: progress.Nop(), Bots: defaultBots}
	if err := r.Run(context.Background(), Options{ProjectDir: root, OutputPath: output}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, "2 authors added to this release") {
		t.Errorf("missing authors header in %q", out)
	}
	if !strings.Contains(out, "- alice \n- octo (Jane Doe) \n") {
		t.Errorf("authors not sorted as expected in %q", out)
	}
	if !strings.Contains(out, "2 reviewers added to this release") {
		t.Errorf("missing reviewers header in %q", out)
	}
	if !strings.Contains(out, "- bob \n- Zed \n") {
		t.Errorf("reviewers not sorted case-insensitively in %q", out)
	}
	if strings.Contains(out, "Azure Pipelines Bot") || strings.Contains(out, "GitHub Web Flow") {
		t.Errorf("bots should be excluded from %q", out)
	}
	if !strings.Contains(logs.String(), "skipping pull request") {
		t.Errorf("expected skipped pull request to be logged, got %q", logs.String())
	}
}

func TestRun_MissingReviewerAborts(t *testing.T) {
	root := setupProject(t, "1.feature")
	output := filepath.Join(t.TempDir(), report.DefaultFilename)
	os.WriteFile(output, []byte("previous release"), 0644)

	fake := &fakeProvider{
		prs:     map[int]bool{1: true},
		reviews: map[int][]provider.Review{1: {{ID: 4}}},
	}

	r := &Runner{Provider: fake, Logger: zerolog.Nop(), Progress: progress.Nop(), Bots: defaultBots}
	err := r.Run(context.Background(), Options{ProjectDir: root, OutputPath: output})
	if !errors.Is(err, contributors.ErrMissingReviewer) {
		t.Fatalf("Run() error = %v, want ErrMissingReviewer", err)
	}

	data, _ := os.ReadFile(output)
	if string(data) != "previous release" {
		t.Errorf("previous report should be untouched, got %q", data)
	}
}

func TestRun_MissingFragmentDir(t *testing.T) {
	r := &Runner{Provider: &fakeProvider{}, Logger: zerolog.Nop(), Progress: progress.Nop()}
	err := r.Run(context.Background(), Options{ProjectDir: t.TempDir(), OutputPath: filepath.Join(t.TempDir(), "out.txt")})
	if err == nil {
		t.Error("Run() expected error for missing fragment directory, got nil")
	}
}

func TestRun_InterruptedKeepsPreviousReport(t *testing.T) {
	root := setupProject(t, "1.feature", "2.bugfix")
	output := filepath.Join(t.TempDir(), report.DefaultFilename)
	os.WriteFile(output, []byte("previous release"), 0644)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fake := &fakeProvider{
		prs:          map[int]bool{1: true, 2: true},
		commits:      map[int][]provider.Commit{1: {{Author: &provider.User{Login: "a", Name: "A"}}}},
		afterReviews: cancel,
	}

	r := &Runner{Provider: fake, Logger: zerolog.Nop(), Progress: progress.Nop(), Bots: defaultBots}
	err := r.Run(ctx, Options{ProjectDir: root, OutputPath: output})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}

	data, _ := os.ReadFile(output)
	if string(data) != "previous release" {
		t.Errorf("previous report should be untouched, got %q", data)
	}
}
