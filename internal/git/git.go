// Package git runs git operations on local repository clones by executing
// the git command.
package git

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/logfields"
)

const loggerName = "git"

const defaultExecutable = "git"

// Identity is the author or committer of a commit or tag.
type Identity struct {
	Name  string
	Email string
}

func (i *Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// RemoteURL returns the https URL of a hosted repository with the credentials
// embedded as userinfo.
func RemoteURL(host, user, token, owner, repo string) string {
	u := url.URL{
		Scheme: "https",
		Host:   host,
		Path:   "/" + owner + "/" + repo + ".git",
	}

	switch {
	case user != "" && token != "":
		u.User = url.UserPassword(user, token)
	case token != "":
		u.User = url.User(token)
	}

	return u.String()
}

// CLI runs operations by executing the git binary.
type CLI struct {
	executable string
	secrets    []string
	logger     *zap.Logger
}

// Option configures a CLI.
type Option func(*CLI)

// WithExecutable sets the path of the git binary.
func WithExecutable(path string) Option {
	return func(c *CLI) {
		c.executable = path
	}
}

// WithSecrets sets values that are replaced by a mask in logs and returned
// errors.
func WithSecrets(secrets ...string) Option {
	return func(c *CLI) {
		for _, s := range secrets {
			if s != "" {
				c.secrets = append(c.secrets, s, url.QueryEscape(s), url.PathEscape(s))
			}
		}
	}
}

func NewCLI(opts ...Option) *CLI {
	c := CLI{
		executable: defaultExecutable,
		logger:     zap.L().Named(loggerName),
	}

	for _, o := range opts {
		o(&c)
	}

	return &c
}

// Clone creates a clone of the branch of the repository at remoteURL in the
// directory dest.
func (c *CLI) Clone(ctx context.Context, remoteURL, branch, dest string) error {
	_, err := c.run(ctx, "", "clone", "--quiet", "--branch", branch, "--single-branch", remoteURL, dest)
	return err
}

// Add stages the file at path, relative to dir.
func (c *CLI) Add(ctx context.Context, dir, path string) error {
	_, err := c.run(ctx, dir, "add", "--", path)
	return err
}

// Commit creates a commit of the staged changes.
// Commit signing is disabled.
func (c *CLI) Commit(ctx context.Context, dir, msg string, author Identity) error {
	_, err := c.run(ctx, dir,
		"-c", "user.name="+author.Name,
		"-c", "user.email="+author.Email,
		"-c", "commit.gpgsign=false",
		"commit", "--no-gpg-sign", "--author", author.String(), "-m", msg,
	)
	return err
}

// Tag creates an annotated tag for the HEAD commit.
func (c *CLI) Tag(ctx context.Context, dir, name, msg string, tagger Identity) error {
	_, err := c.run(ctx, dir,
		"-c", "user.name="+tagger.Name,
		"-c", "user.email="+tagger.Email,
		"-c", "tag.gpgsign=false",
		"tag", "-a", name, "-m", msg,
	)
	return err
}

// Push pushes the branch and the tag to remoteURL.
func (c *CLI) Push(ctx context.Context, dir, remoteURL, branch, tag string) error {
	_, err := c.run(ctx, dir,
		"push", "--quiet", "--atomic", remoteURL,
		"refs/heads/"+branch+":refs/heads/"+branch,
		"refs/tags/"+tag+":refs/tags/"+tag,
	)
	return err
}

func (c *CLI) run(ctx context.Context, dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.executable, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(
		os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"LC_ALL=C",
	)

	cmdStr := c.mask(c.executable + " " + strings.Join(args, " "))

	c.logger.Debug(
		"running git command",
		logfields.Event("git_command_running"),
		zap.String("git.command", cmdStr),
		zap.String("git.dir", dir),
	)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf(
			"%s failed: %s: %s",
			cmdStr,
			c.mask(err.Error()),
			c.mask(strings.TrimSpace(stderr.String())),
		)
	}

	return stdout.String(), nil
}

const secretMask = "***"

func (c *CLI) mask(s string) string {
	for _, secret := range c.secrets {
		s = strings.ReplaceAll(s, secret, secretMask)
	}

	return s
}
