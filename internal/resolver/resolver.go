// Package resolver determines the version a repository is at and selects the
// upstream version it is updated to.
package resolver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/dockerfile"
	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/logfields"
	"github.com/simplesurance/upstream-updater/internal/version"
)

const loggerName = "resolver"

//go:generate mockgen -destination=mocks/releaseclient.go -package=mocks . ReleaseClient

// ReleaseClient retrieves releases of hosted repositories.
type ReleaseClient interface {
	LatestReleaseTag(ctx context.Context, owner, repo string) (string, error)
	ReleaseByTag(ctx context.Context, owner, repo, tag string) (*githubclt.Release, error)
}

// Candidate is the upstream version a repository is updated to.
type Candidate struct {
	Version  *version.Version
	TagName  string
	ShortSHA string
	LongSHA  string
	// ReleaseNotes is the body of the upstream release of the tag,
	// HasReleaseNotes is false if no release for the tag was found.
	ReleaseNotes    string
	HasReleaseNotes bool
}

type Resolver struct {
	clt    ReleaseClient
	logger *zap.Logger
}

func New(clt ReleaseClient) *Resolver {
	return &Resolver{
		clt:    clt,
		logger: zap.L().Named(loggerName),
	}
}

// ResolveCurrent returns the version of the latest release of repo.
// If the repository has no release, the lookup fails or the tag of the
// release is not a valid version, version.Zero is returned.
func (r *Resolver) ResolveCurrent(ctx context.Context, repo *githubclt.Repository) *version.Version {
	logger := r.logger.With(
		logfields.RepositoryOwner(repo.Owner),
		logfields.Repository(repo.Name),
	)

	tag, err := r.clt.LatestReleaseTag(ctx, repo.Owner, repo.Name)
	if err != nil {
		if errors.Is(err, githubclt.ErrNotFound) {
			logger.Debug(
				"repository has no release, assuming version 0.0.0",
				logfields.Event("current_version_no_release"),
			)
		} else {
			logger.Warn(
				"retrieving latest release failed, assuming version 0.0.0",
				logfields.Event("current_version_retrieval_failed"),
				zap.Error(err),
			)
		}

		return version.Zero
	}

	v, err := version.Parse(tag)
	if err != nil {
		logger.Warn(
			"tag of latest release is not a valid version, assuming version 0.0.0",
			logfields.Event("current_version_invalid"),
			logfields.Tag(tag),
			zap.Error(err),
		)

		return version.Zero
	}

	return v
}

// SelectCandidate selects the version from upstreamTags that repo is updated
// to, upstreamTags must be ordered newest first. The rules are described at
// SelectTag.
// The release notes of the upstream release for the selected tag are added
// to the candidate, when they can be retrieved.
// If no tag qualifies, nil is returned.
func (r *Resolver) SelectCandidate(
	ctx context.Context,
	upstream *githubclt.Repository,
	upstreamTags []*githubclt.Tag,
	current *version.Version,
) *Candidate {
	logger := r.logger.With(logfields.UpstreamRepository(upstream.String()))

	c := SelectTag(upstreamTags, current, func(tag *githubclt.Tag, err error) {
		logger.Debug(
			"skipping tag",
			logfields.Event("upstream_tag_skipped"),
			logfields.Tag(tag.Name),
			zap.Error(err),
		)
	})
	if c == nil {
		return nil
	}

	rel, err := r.clt.ReleaseByTag(ctx, upstream.Owner, upstream.Name, c.TagName)
	if err != nil {
		if !errors.Is(err, githubclt.ErrNotFound) {
			logger.Info(
				"retrieving release notes of upstream tag failed, continuing without",
				logfields.Event("upstream_release_notes_retrieval_failed"),
				logfields.Tag(c.TagName),
				zap.Error(err),
			)
		}

		return c
	}

	c.ReleaseNotes = rel.Body
	c.HasReleaseNotes = true

	return c
}

var errShortSHA = errors.New("commit sha is too short")

// SelectTag returns the update candidate from tags without release notes.
//
// tags must be ordered newest first, they are evaluated from the oldest to the
// newest. A tag qualifies when its name is a valid version without a
// pre-release marker that is greater than 0.0.0 and
// greater than current.
// The first qualifying tag is returned, which is the oldest release that is
// newer than current.
// Tags that can not be evaluated are passed to skipFn, if it is not nil.
func SelectTag(tags []*githubclt.Tag, current *version.Version, skipFn func(*githubclt.Tag, error)) *Candidate {
	for i := len(tags) - 1; i >= 0; i-- {
		tag := tags[i]

		v, err := version.Parse(tag.Name)
		if err != nil {
			if skipFn != nil {
				skipFn(tag, err)
			}
			continue
		}

		if v.IsPrerelease() || !v.GreaterThan(version.Zero) || !v.GreaterThan(current) {
			continue
		}

		shortSHA, ok := dockerfile.ShortSHA(tag.CommitSHA)
		if !ok {
			if skipFn != nil {
				skipFn(tag, errShortSHA)
			}
			continue
		}

		return &Candidate{
			Version:  v,
			TagName:  tag.Name,
			ShortSHA: shortSHA,
			LongSHA:  tag.CommitSHA,
		}
	}

	return nil
}
