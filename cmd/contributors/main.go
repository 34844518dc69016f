package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/drewdunne/contributors/internal/app"
	"github.com/drewdunne/contributors/internal/config"
	"github.com/drewdunne/contributors/internal/logging"
	"github.com/drewdunne/contributors/internal/progress"
	"github.com/drewdunne/contributors/internal/registry"
	"github.com/drewdunne/contributors/internal/report"
	"github.com/joho/godotenv"
)

var version = "0.1.0"

func main() {
	if len(os.Args) != 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("contributors v%s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		run(os.Args[1])
	}
}

func printUsage() {
	fmt.Println("Usage: contributors <project-dir>")
	fmt.Println()
	fmt.Println("Writes the authors and reviewers of the pull requests referenced in")
	fmt.Println("<project-dir>/doc/source/upcoming_changes to reviewers_and_authors.txt.")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  GH_TOKEN             GitHub access token (required)")
	fmt.Println("  GITLAB_TOKEN         GitLab access token (gitlab provider only)")
	fmt.Println("  CONTRIBUTORS_CONFIG  Path to a YAML config file (optional)")
	fmt.Println("  LOG_LEVEL            debug, info, warn or error (default info)")
}

func run(projectDir string) {
	// Load .env if present
	godotenv.Load(".env")

	logger, _ := logging.New(os.Stdout, "")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if leveled, err := logging.New(os.Stdout, cfg.Env.LogLevel); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	} else {
		logger = leveled
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	runner := &app.Runner{
		Provider: registry.New(cfg).Get(cfg.Provider),
		Logger:   logger,
		Progress: progress.Auto(os.Stderr),
		Bots:     report.Bots{Committer: cfg.Bots.Committer, Author: cfg.Bots.Author},
	}

	opts := app.Options{ProjectDir: projectDir, OutputPath: cfg.Output}
	if err := runner.Run(ctx, opts); err != nil {
		logger.Fatal().Err(err).Msg("collecting contributors failed")
	}
}
