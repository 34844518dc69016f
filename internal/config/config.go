package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/caarlos0/env/v11"
	"github.com/drewdunne/contributors/internal/report"
	"gopkg.in/yaml.v3"
)

// ErrMissingToken indicates the API credential for the provider isn't set.
var ErrMissingToken = errors.New("missing API token")

// Config represents the tool configuration.
type Config struct {
	Provider string     `yaml:"provider"`
	Owner    string     `yaml:"owner"`
	Repo     string     `yaml:"repo"`
	BaseURL  string     `yaml:"base_url"`
	Output   string     `yaml:"output"`
	Bots     BotsConfig `yaml:"bots"`

	Env EnvConfig `yaml:"-"`
}

// BotsConfig names automation accounts excluded from the report.
type BotsConfig struct {
	Committer string `yaml:"committer"`
	Author    string `yaml:"author"`
}

// EnvConfig holds settings read from the environment.
type EnvConfig struct {
	GitHubToken string `env:"GH_TOKEN"`
	GitLabToken string `env:"GITLAB_TOKEN"`
	ConfigPath  string `env:"CONTRIBUTORS_CONFIG"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Provider: "github",
		Owner:    "scikit-image",
		Repo:     "scikit-image",
		Output:   report.DefaultFilename,
		Bots: BotsConfig{
			Committer: report.DefaultCommitterBot,
			Author:    report.DefaultAuthorBot,
		},
	}
}

// Load reads the environment and, when CONTRIBUTORS_CONFIG names one, the
// YAML config file on top of the defaults.
func Load() (*Config, error) {
	var envCfg EnvConfig
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	cfg := DefaultConfig()
	if envCfg.ConfigPath != "" {
		var err error
		cfg, err = LoadFile(envCfg.ConfigPath)
		if err != nil {
			return nil, err
		}
	}
	cfg.Env = envCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses the config file at the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Substitute environment variables
	data = envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(varName)))
	})

	// Start with defaults
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the provider name and that its credential is present.
func (c *Config) Validate() error {
	switch c.Provider {
	case "github":
		if c.Env.GitHubToken == "" {
			return fmt.Errorf("%w: the environment variable `GH_TOKEN` must be set "+
				"to avoid running into problems with rate limiting. "+
				"One can be acquired at https://github.com/settings/tokens.\n\n"+
				"You do not need to select any permission boxes while generating the token", ErrMissingToken)
		}
	case "gitlab":
		if c.Env.GitLabToken == "" {
			return fmt.Errorf("%w: the environment variable `GITLAB_TOKEN` must be set. "+
				"Create a personal access token with the read_api scope", ErrMissingToken)
		}
	default:
		return fmt.Errorf("unknown provider %q (want github or gitlab)", c.Provider)
	}

	if c.Owner == "" || c.Repo == "" {
		return errors.New("owner and repo must be set")
	}
	return nil
}
