package cfg

import (
	"io"

	"github.com/BurntSushi/toml"
)

const hiddenValue = "**hidden**"

func hide(in string) string {
	if in == "" {
		return in
	}

	return hiddenValue
}

// Hidden returns a copy of the configuration with secrets replaced.
func (c *Config) Hidden() *Config {
	result := *c
	result.GithubAPIToken = hide(c.GithubAPIToken)

	return &result
}

// Marshal writes the configuration in TOML format to writer.
// Secrets are written in clear text.
func (c *Config) Marshal(writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(c)
}
