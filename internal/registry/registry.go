package registry

import (
	"github.com/drewdunne/contributors/internal/config"
	"github.com/drewdunne/contributors/internal/provider"
	"github.com/drewdunne/contributors/internal/provider/github"
	"github.com/drewdunne/contributors/internal/provider/gitlab"
)

// Registry holds a provider for every host with a credential configured.
type Registry struct {
	providers map[string]provider.Provider
}

// New creates a provider registry from config. Providers are bound to the
// configured owner/repo; base_url applies to the selected provider only.
func New(cfg *config.Config) *Registry {
	r := &Registry{
		providers: make(map[string]provider.Provider),
	}

	if cfg.Env.GitHubToken != "" {
		var opts []github.Option
		if cfg.Provider == "github" && cfg.BaseURL != "" {
			opts = append(opts, github.WithBaseURL(cfg.BaseURL))
		}
		r.providers["github"] = github.New(cfg.Env.GitHubToken, cfg.Owner, cfg.Repo, opts...)
	}

	if cfg.Env.GitLabToken != "" {
		var opts []gitlab.Option
		if cfg.Provider == "gitlab" && cfg.BaseURL != "" {
			opts = append(opts, gitlab.WithBaseURL(cfg.BaseURL))
		}
		r.providers["gitlab"] = gitlab.New(cfg.Env.GitLabToken, cfg.Owner, cfg.Repo, opts...)
	}

	return r
}

// Get returns the provider for the given name, or nil if not configured.
func (r *Registry) Get(name string) provider.Provider {
	return r.providers[name]
}
