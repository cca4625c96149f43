package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/git"
	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/logfields"
)

// DryOperations are RepositoryOperations that do not change remote
// repositories.
// Push is simulated and always succeeds, all other operations only modify
// the local clone and are forwarded to the wrapped RepositoryOperations.
type DryOperations struct {
	ops    RepositoryOperations
	logger *zap.Logger
}

func NewDryOperations(ops RepositoryOperations) *DryOperations {
	return &DryOperations{
		ops:    ops,
		logger: zap.L().Named("dry_repository_operations"),
	}
}

func (d *DryOperations) Clone(ctx context.Context, remoteURL, branch, dest string) error {
	return d.ops.Clone(ctx, remoteURL, branch, dest)
}

func (d *DryOperations) Add(ctx context.Context, dir, path string) error {
	return d.ops.Add(ctx, dir, path)
}

func (d *DryOperations) Commit(ctx context.Context, dir, msg string, author git.Identity) error {
	return d.ops.Commit(ctx, dir, msg, author)
}

func (d *DryOperations) Tag(ctx context.Context, dir, name, msg string, tagger git.Identity) error {
	return d.ops.Tag(ctx, dir, name, msg, tagger)
}

func (d *DryOperations) Push(_ context.Context, _, _, branch, tag string) error {
	d.logger.Info(
		"simulated pushing of branch and tag, nothing was pushed",
		logfields.Event("git_push_simulated"),
		logfields.Branch(branch),
		logfields.Tag(tag),
	)

	return nil
}

// DryReleaseCreator simulates the creation of releases.
type DryReleaseCreator struct {
	logger *zap.Logger
}

func NewDryReleaseCreator() *DryReleaseCreator {
	return &DryReleaseCreator{
		logger: zap.L().Named("dry_release_creator"),
	}
}

func (d *DryReleaseCreator) CreateRelease(_ context.Context, owner, repo string, rel *githubclt.NewRelease) error {
	d.logger.Info(
		"simulated creating of github release, no release created on github",
		logfields.Event("github_release_simulated"),
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.Tag(rel.TagName),
		zap.String("github.release_body", rel.Body),
	)

	return nil
}
