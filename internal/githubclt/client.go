// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/upstream-updater/internal/logfields"
	"github.com/simplesurance/upstream-updater/internal/updaterr"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

const perPage = 100

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("not found")

// New returns a new github api client.
func New(oauthAPItoken string) *Client {
	httpClient := newHTTPClient(oauthAPItoken)
	return &Client{
		restClt:    github.NewClient(httpClient),
		graphQLClt: githubv4.NewClient(httpClient),
		logger:     zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is an github API client.
// All methods return a updaterr.RetryableError when an operation can be retried.
// This can be e.g. the case when the API ratelimit is exceeded.
type Client struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger
}

// Authenticate returns the login of the user the API token belongs to.
// It fails if the token is rejected.
func (clt *Client) Authenticate(ctx context.Context) (string, error) {
	user, _, err := clt.restClt.Users.Get(ctx, "")
	if err != nil {
		return "", clt.wrapRetryableErrors(err)
	}

	return user.GetLogin(), nil
}

// ListOrgRepositories returns all repositories of an organization.
func (clt *Client) ListOrgRepositories(ctx context.Context, org string) ([]*Repository, error) {
	var result []*Repository

	opts := github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := clt.restClt.Repositories.ListByOrg(ctx, org, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, repo := range repos {
			result = append(result, fromGithubRepository(repo))
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// FetchFile returns the content of the file at path in the repository at the
// given ref.
// If the file does not exist an error wrapping ErrNotFound is returned.
func (clt *Client) FetchFile(ctx context.Context, owner, repo, ref, path string) ([]byte, error) {
	file, _, _, err := clt.restClt.Repositories.GetContents(
		ctx,
		owner,
		repo,
		path,
		&github.RepositoryContentGetOptions{Ref: ref},
	)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("file %s: %w", path, ErrNotFound)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	if file == nil {
		return nil, fmt.Errorf("%s is a directory, expected a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decoding content of %s failed: %w", path, err)
	}

	return []byte(content), nil
}

// ListTags returns all tags of a repository.
// The tags are ordered like github returns them, the newest tag first.
func (clt *Client) ListTags(ctx context.Context, owner, repo string) ([]*Tag, error) {
	var result []*Tag

	opts := github.ListOptions{PerPage: perPage}

	for {
		tags, resp, err := clt.restClt.Repositories.ListTags(ctx, owner, repo, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, t := range tags {
			result = append(result, &Tag{
				Name:      t.GetName(),
				CommitSHA: t.GetCommit().GetSHA(),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// ReleaseByTag returns the release for the given tag name.
// If no release exists an error wrapping ErrNotFound is returned.
func (clt *Client) ReleaseByTag(ctx context.Context, owner, repo, tag string) (*Release, error) {
	rel, _, err := clt.restClt.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("release for tag %s: %w", tag, ErrNotFound)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	return &Release{
		TagName: rel.GetTagName(),
		Name:    rel.GetName(),
		Body:    rel.GetBody(),
	}, nil
}

// CreateRelease publishes a release for an existing tag.
func (clt *Client) CreateRelease(ctx context.Context, owner, repo string, rel *NewRelease) error {
	_, _, err := clt.restClt.Repositories.CreateRelease(ctx, owner, repo, &github.RepositoryRelease{
		TagName:    github.String(rel.TagName),
		Name:       github.String(rel.Name),
		Body:       github.String(rel.Body),
		Draft:      github.Bool(rel.Draft),
		Prerelease: github.Bool(rel.Prerelease),
	})
	if err != nil {
		return clt.wrapRetryableErrors(err)
	}

	clt.logger.Debug(
		"release created",
		logfields.Event("github_release_created"),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Tag(rel.TagName),
	)

	return nil
}

// OrgRepository returns a repository that is owned by the organization org.
// If org is not an organization or the repository does not exist, an error
// wrapping ErrNotFound is returned.
func (clt *Client) OrgRepository(ctx context.Context, org, name string) (*Repository, error) {
	_, _, err := clt.restClt.Organizations.Get(ctx, org)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("organization %s: %w", org, ErrNotFound)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	return clt.repository(ctx, org, name)
}

// UserRepository returns a repository that is owned by the user account
// login.
// If login is not a user or the repository does not exist, an error
// wrapping ErrNotFound is returned.
func (clt *Client) UserRepository(ctx context.Context, login, name string) (*Repository, error) {
	user, _, err := clt.restClt.Users.Get(ctx, login)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", login, ErrNotFound)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	if user.GetType() != "User" {
		return nil, fmt.Errorf("user %s: account has type %q: %w", login, user.GetType(), ErrNotFound)
	}

	return clt.repository(ctx, login, name)
}

func (clt *Client) repository(ctx context.Context, owner, name string) (*Repository, error) {
	repo, _, err := clt.restClt.Repositories.Get(ctx, owner, name)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("repository %s/%s: %w", owner, name, ErrNotFound)
		}

		return nil, clt.wrapRetryableErrors(err)
	}

	return fromGithubRepository(repo), nil
}

func isNotFound(err error) bool {
	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound
	}

	return false
}

func (clt *Client) wrapRetryableErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return updaterr.NewRetryableError(err, v.Rate.Reset.Time)

	case *github.AbuseRateLimitError:
		clt.logger.Info(
			"secondary rate limit exceeded",
			logfields.Event("github_api_secondary_rate_limit_exceeded"),
			zap.Duration("github_api_retry_after", v.GetRetryAfter()),
		)

		if v.RetryAfter == nil {
			return updaterr.NewRetryableAnytimeError(err)
		}

		return updaterr.NewRetryableError(err, time.Now().Add(*v.RetryAfter))

	case *github.ErrorResponse:
		if v.Response != nil && v.Response.StatusCode >= 500 && v.Response.StatusCode < 600 {
			return updaterr.NewRetryableAnytimeError(err)
		}
	}

	return err
}

var graphQlHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (clt *Client) wrapGraphQLRetryableErrors(err error) error {
	matches := graphQlHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return err
	}

	errcode, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		clt.logger.Info(
			"parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
			zap.String("http_errcode", matches[1]),
		)
		return err
	}

	if errcode >= 500 && errcode < 600 {
		return updaterr.NewRetryableAnytimeError(err)
	}

	return err
}
