// Package updatecfg parses the per-repository update configuration file.
package updatecfg

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the path of the configuration file in a repository.
const DefaultFileName = "updater.yml"

const (
	TypeGithub     = "github"
	DefaultPattern = "Dockerfile"
)

// Config declares the upstream repository a repository tracks and the file
// that is updated when the upstream publishes a new version.
type Config struct {
	Type                string `yaml:"type"`
	RepositoryNamespace string `yaml:"repositoryNamespace"`
	RepositoryName      string `yaml:"repositoryName"`
	Pattern             string `yaml:"pattern"`
}

// Parse unmarshals and validates a configuration file.
// Unset optional fields are set to their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Config{
		Type: TypeGithub,
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling yaml failed: %w", err)
	}

	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Type != TypeGithub {
		return fmt.Errorf("unsupported type: %q, only %q is supported", c.Type, TypeGithub)
	}

	if c.RepositoryNamespace == "" {
		return errors.New("missing field: 'repositoryNamespace'")
	}

	if c.RepositoryName == "" {
		return errors.New("missing field: 'repositoryName'")
	}

	// pattern is a path relative to the repository root, glob patterns are
	// not supported
	if path.IsAbs(c.Pattern) || strings.HasPrefix(path.Clean(c.Pattern), "..") {
		return fmt.Errorf("pattern %q must be a path inside the repository", c.Pattern)
	}

	if strings.ContainsAny(c.Pattern, "*?[") {
		return fmt.Errorf("pattern %q: wildcards are not supported, specify a file name", c.Pattern)
	}

	return nil
}

// Upstream returns the upstream repository in the form namespace/name.
func (c *Config) Upstream() string {
	return c.RepositoryNamespace + "/" + c.RepositoryName
}
