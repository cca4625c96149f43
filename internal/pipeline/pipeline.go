// Package pipeline updates a repository to a new upstream version.
//
// An update is a linear sequence of steps:
//
//	init -> clone -> patch -> commit -> tag -> push -> release
//
// A failing step terminates the pipeline, the following steps are not
// executed. Steps are not retried and already applied changes are not
// reverted.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/dockerfile"
	"github.com/simplesurance/upstream-updater/internal/git"
	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/logfields"
	"github.com/simplesurance/upstream-updater/internal/resolver"
)

const loggerName = "pipeline"

const workDirPrefix = "upstream-updater-"

//go:generate mockgen -destination=mocks/repositoryoperations.go -package=mocks . RepositoryOperations,ReleaseCreator

// RepositoryOperations are the git operations that are run on a local clone
// of a repository.
type RepositoryOperations interface {
	Clone(ctx context.Context, remoteURL, branch, dest string) error
	Add(ctx context.Context, dir, path string) error
	Commit(ctx context.Context, dir, msg string, author git.Identity) error
	Tag(ctx context.Context, dir, name, msg string, tagger git.Identity) error
	Push(ctx context.Context, dir, remoteURL, branch, tag string) error
}

// ReleaseCreator publishes releases of hosted repositories.
type ReleaseCreator interface {
	CreateRelease(ctx context.Context, owner, repo string, rel *githubclt.NewRelease) error
}

// Credentials are used to authenticate git remote operations.
type Credentials struct {
	Host  string
	User  string
	Token string
}

// Config is the configuration of a Pipeline.
type Config struct {
	// WorkDir is the directory in that the working directories of the
	// update attempts are created.
	WorkDir     string
	Author      git.Identity
	Credentials Credentials
}

// Job describes the update of a repository.
type Job struct {
	Repository *githubclt.Repository
	Candidate  *resolver.Candidate
	// File is the path of the file, relative to the repository root, that
	// contains the version.
	File string
}

// Result is the outcome of a pipeline run.
// FailedStep and Err are only set when State is StateFailed.
type Result struct {
	State      State
	FailedStep Step
	Err        error
}

func (r *Result) Succeeded() bool {
	return r.State == StateDone
}

type Pipeline struct {
	cfg      Config
	ops      RepositoryOperations
	releaser ReleaseCreator
	logger   *zap.Logger
}

func New(cfg Config, ops RepositoryOperations, releaser ReleaseCreator) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		ops:      ops,
		releaser: releaser,
		logger:   zap.L().Named(loggerName),
	}
}

// run holds the data of a single pipeline run.
type run struct {
	*Pipeline

	job       *Job
	logger    *zap.Logger
	remoteURL string
	tag       string
	dir       string
	cloneDir  string
	state     State
}

// Run executes the pipeline for job.
// The working directory of the run is removed when Run returns.
func (p *Pipeline) Run(ctx context.Context, job *Job) *Result {
	attemptID := uuid.NewString()
	startTime := time.Now()

	r := run{
		Pipeline: p,
		job:      job,
		tag:      job.Candidate.Version.Tag(),
		remoteURL: git.RemoteURL(
			p.cfg.Credentials.Host,
			p.cfg.Credentials.User,
			p.cfg.Credentials.Token,
			job.Repository.Owner,
			job.Repository.Name,
		),
		dir:   filepath.Join(p.cfg.WorkDir, workDirPrefix+attemptID),
		state: StateInit,
		logger: p.logger.With(
			logfields.AttemptID(attemptID),
			logfields.RepositoryOwner(job.Repository.Owner),
			logfields.Repository(job.Repository.Name),
			logfields.Version(job.Candidate.Version.String()),
		),
	}
	r.cloneDir = filepath.Join(r.dir, job.Repository.Name)

	r.logger.Debug("starting update pipeline", logfields.Event("pipeline_started"))

	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return r.failed(StepInit, fmt.Errorf("creating working directory failed: %w", err))
	}
	defer r.removeWorkDir()

	steps := []struct {
		step Step
		next State
		fn   func(context.Context) error
	}{
		{step: StepClone, next: StateCloned, fn: r.clone},
		{step: StepPatch, next: StatePatched, fn: r.patch},
		{step: StepCommit, next: StateCommitted, fn: r.commit},
		{step: StepTag, next: StateTagged, fn: r.createTag},
		{step: StepPush, next: StatePushed, fn: r.push},
		{step: StepRelease, next: StateReleased, fn: r.release},
	}

	for _, s := range steps {
		if err := s.fn(ctx); err != nil {
			return r.failed(s.step, err)
		}

		r.state = s.next
		r.logger.Debug(
			"pipeline step completed",
			logfields.Event("pipeline_step_completed"),
			logfields.Step(string(s.step)),
			zap.Stringer("pipeline.state", r.state),
		)
	}

	r.state = StateDone
	r.logger.Info(
		"repository updated",
		logfields.Event("pipeline_succeeded"),
		logfields.Tag(r.tag),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &Result{State: StateDone}
}

func (r *run) failed(step Step, err error) *Result {
	r.logger.Error(
		"update pipeline failed",
		logfields.Event("pipeline_failed"),
		logfields.Step(string(step)),
		zap.Stringer("pipeline.state", r.state),
		zap.Error(err),
	)

	return &Result{
		State:      StateFailed,
		FailedStep: step,
		Err:        fmt.Errorf("%s step failed: %w", step, err),
	}
}

func (r *run) removeWorkDir() {
	if err := os.RemoveAll(r.dir); err != nil {
		r.logger.Warn(
			"removing working directory failed",
			logfields.Event("pipeline_workdir_removal_failed"),
			zap.String("pipeline.work_dir", r.dir),
			zap.Error(err),
		)
	}
}

func (r *run) clone(ctx context.Context) error {
	return r.ops.Clone(ctx, r.remoteURL, r.job.Repository.DefaultBranch, r.cloneDir)
}

func (r *run) patch(context.Context) error {
	path := filepath.Join(r.cloneDir, filepath.FromSlash(r.job.File))

	fi, err := r.regularFileInCloneDir(path)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := r.job.Candidate
	patched := dockerfile.Patch(content, dockerfile.Values{
		Version:  c.Version.String(),
		ShortSHA: c.ShortSHA,
		LongSHA:  c.LongSHA,
	})

	if string(patched) == string(content) {
		r.logger.Warn(
			"patching did not change the file, it might not contain the version variables",
			logfields.Event("pipeline_patch_no_changes"),
			zap.String("file", r.job.File),
		)
	}

	return os.WriteFile(path, patched, fi.Mode().Perm())
}

// regularFileInCloneDir returns the FileInfo of path.
// It fails if path is not a regular file or one of its parent directories
// resolves to a location outside of the clone directory.
func (r *run) regularFileInCloneDir(path string) (os.FileInfo, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s does not exist in repository", r.job.File)
		}
		return nil, err
	}

	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file (mode: %s)", r.job.File, fi.Mode().Type())
	}

	cloneDir, err := filepath.EvalSymlinks(r.cloneDir)
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(cloneDir, resolved)
	if err != nil {
		return nil, err
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%s resolves to %s, outside of the repository", r.job.File, resolved)
	}

	return fi, nil
}

func (r *run) commit(ctx context.Context) error {
	if err := r.ops.Add(ctx, r.cloneDir, r.job.File); err != nil {
		return err
	}

	return r.ops.Commit(
		ctx,
		r.cloneDir,
		fmt.Sprintf("feature: upgrade to %s", r.tag),
		r.cfg.Author,
	)
}

func (r *run) createTag(ctx context.Context) error {
	return r.ops.Tag(
		ctx,
		r.cloneDir,
		r.tag,
		"Release "+r.job.Candidate.Version.String(),
		r.cfg.Author,
	)
}

func (r *run) push(ctx context.Context) error {
	return r.ops.Push(ctx, r.cloneDir, r.remoteURL, r.job.Repository.DefaultBranch, r.tag)
}

func (r *run) release(ctx context.Context) error {
	return r.releaser.CreateRelease(ctx, r.job.Repository.Owner, r.job.Repository.Name, &githubclt.NewRelease{
		TagName:    r.tag,
		Name:       r.tag,
		Body:       ReleaseBody(r.job.Candidate),
		Draft:      false,
		Prerelease: false,
	})
}

// ReleaseBody returns the description of the release for c.
func ReleaseBody(c *resolver.Candidate) string {
	if c.HasReleaseNotes {
		return "\n\n" + c.ReleaseNotes
	}

	return fmt.Sprintf("Automated release of [%s]", c.Version.Tag())
}
