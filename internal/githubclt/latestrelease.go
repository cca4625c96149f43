package githubclt

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
)

type queryLatestRelease struct {
	Repository struct {
		LatestRelease *struct {
			TagName githubv4.String
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// LatestReleaseTag returns the tag name of the latest published release of a
// repository.
// If the repository has no release, an error wrapping ErrNotFound is
// returned.
func (clt *Client) LatestReleaseTag(ctx context.Context, owner, repo string) (string, error) {
	var q queryLatestRelease

	vars := map[string]any{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
	}

	if err := clt.graphQLClt.Query(ctx, &q, vars); err != nil {
		return "", clt.wrapGraphQLRetryableErrors(err)
	}

	if q.Repository.LatestRelease == nil {
		return "", fmt.Errorf("latest release of %s/%s: %w", owner, repo, ErrNotFound)
	}

	return string(q.Repository.LatestRelease.TagName), nil
}
