// Package cfg loads the upstream-updater configuration.
package cfg

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml"
	"go.uber.org/multierr"
)

// EnvPrefix is the prefix of environment variables that overwrite
// configuration file settings.
const EnvPrefix = "UPSTREAM_UPDATER_"

type Config struct {
	GithubUser          string `toml:"github_user"`
	GithubAPIToken      string `toml:"github_api_token"`
	GithubHost          string `toml:"github_host" default:"github.com"`
	Organization        string `toml:"organization"`
	CommitAuthorName    string `toml:"commit_author_name"`
	CommitAuthorEmail   string `toml:"commit_author_email"`
	RepositoryFilter    string `toml:"repository_filter"`
	RepositoryDelay     string `toml:"repository_delay" default:"1s"`
	UpdateConfigFile    string `toml:"update_config_file" default:"updater.yml"`
	WorkDir             string `toml:"work_dir"`
	RunInterval         string `toml:"run_interval"`
	RetryTimeout        string `toml:"retry_timeout" default:"10m"`
	DryRun              bool   `toml:"dry_run"`
	FailOnPipelineError bool   `toml:"fail_on_pipeline_error"`
	HTTPListenAddr      string `toml:"http_server_listen_addr"`
	LogFormat           string `toml:"log_format" default:"logfmt"`
	LogTimeKey          string `toml:"log_time_key" default:"time"`
	LogLevel            string `toml:"log_level" default:"info"`
}

func Load(reader io.Reader) (*Config, error) {
	var result Config

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	if result.WorkDir == "" {
		result.WorkDir = os.TempDir()
	}

	return &result, nil
}

// ApplyEnv overwrites settings with the values of the environment variables
// that are set. lookupFn is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookupFn func(string) (string, bool)) {
	envVars := map[string]*string{
		"GITHUB_USER":         &c.GithubUser,
		"GITHUB_API_TOKEN":    &c.GithubAPIToken,
		"ORGANIZATION":        &c.Organization,
		"COMMIT_AUTHOR_NAME":  &c.CommitAuthorName,
		"COMMIT_AUTHOR_EMAIL": &c.CommitAuthorEmail,
	}

	for name, field := range envVars {
		if val, ok := lookupFn(EnvPrefix + name); ok {
			*field = val
		}
	}
}

var logFormats = map[string]struct{}{
	"logfmt":  {},
	"json":    {},
	"console": {},
}

// Validate returns an error describing all invalid and missing settings.
func (c *Config) Validate() error {
	var errs error

	required := []struct {
		key string
		val string
	}{
		{key: "github_api_token", val: c.GithubAPIToken},
		{key: "github_host", val: c.GithubHost},
		{key: "organization", val: c.Organization},
		{key: "commit_author_name", val: c.CommitAuthorName},
		{key: "commit_author_email", val: c.CommitAuthorEmail},
		{key: "update_config_file", val: c.UpdateConfigFile},
	}

	for _, r := range required {
		if r.val == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s: setting is missing", r.key))
		}
	}

	if _, err := c.RepositoryDelayDuration(); err != nil {
		errs = multierr.Append(errs, err)
	}

	if _, err := c.RunIntervalDuration(); err != nil {
		errs = multierr.Append(errs, err)
	}

	if d, err := c.RetryTimeoutDuration(); err != nil {
		errs = multierr.Append(errs, err)
	} else if d <= 0 {
		errs = multierr.Append(errs, errors.New("retry_timeout: must be greater than 0"))
	}

	if _, ok := logFormats[c.LogFormat]; !ok {
		errs = multierr.Append(errs, fmt.Errorf("log_format: unsupported value: %q", c.LogFormat))
	}

	return errs
}

func parseDuration(key, val string) (time.Duration, error) {
	if val == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}

	return d, nil
}

func (c *Config) RepositoryDelayDuration() (time.Duration, error) {
	return parseDuration("repository_delay", c.RepositoryDelay)
}

// RunIntervalDuration returns the interval of periodic runs, 0 means a
// single run.
func (c *Config) RunIntervalDuration() (time.Duration, error) {
	return parseDuration("run_interval", c.RunInterval)
}

func (c *Config) RetryTimeoutDuration() (time.Duration, error) {
	return parseDuration("retry_timeout", c.RetryTimeout)
}
