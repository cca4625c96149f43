// Package batch processes all repositories of a GitHub organization and
// updates the ones whose upstream repository published a newer version.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/logfields"
	"github.com/simplesurance/upstream-updater/internal/pipeline"
	"github.com/simplesurance/upstream-updater/internal/resolver"
	"github.com/simplesurance/upstream-updater/internal/updatecfg"
	"github.com/simplesurance/upstream-updater/internal/version"
)

const loggerName = "batch"

// DefaultRepositoryDelay is the default time that is waited between
// processing 2 repositories.
const DefaultRepositoryDelay = time.Second

// ErrRunInProgress is returned by Run when another run of the same Runner
// has not finished yet.
var ErrRunInProgress = errors.New("a run is already in progress")

//go:generate mockgen -destination=mocks/batch.go -package=mocks . GithubClient,Locator,Resolver,Pipeline

// GithubClient is the part of the github API client that is used to
// enumerate repositories and retrieve their update configuration and the
// tags of their upstream repositories.
type GithubClient interface {
	Authenticate(ctx context.Context) (string, error)
	ListOrgRepositories(ctx context.Context, org string) ([]*githubclt.Repository, error)
	FetchFile(ctx context.Context, owner, repo, ref, path string) ([]byte, error)
	ListTags(ctx context.Context, owner, repo string) ([]*githubclt.Tag, error)
}

// Locator finds upstream repositories.
type Locator interface {
	Locate(ctx context.Context, namespace, name string) (*githubclt.Repository, error)
}

// Resolver determines the current version of a repository and the version
// it is updated to.
type Resolver interface {
	ResolveCurrent(ctx context.Context, repo *githubclt.Repository) *version.Version
	SelectCandidate(ctx context.Context, upstream *githubclt.Repository, upstreamTags []*githubclt.Tag, current *version.Version) *resolver.Candidate
}

// Pipeline updates a repository.
type Pipeline interface {
	Run(ctx context.Context, job *pipeline.Job) *pipeline.Result
}

// Retryer retries operations that failed with a retryable error.
type Retryer interface {
	Run(ctx context.Context, fn func(context.Context) error, logF []zap.Field) error
}

type Config struct {
	Organization string
	// UpdateConfigFile is the path of the update configuration file in
	// the repositories.
	UpdateConfigFile string
	RepositoryDelay  time.Duration
	// Filter selects the repositories that are processed, when it is nil
	// all repositories are processed.
	Filter *Filter
}

// Runner processes the repositories of an organization sequentially.
type Runner struct {
	cfg      Config
	clt      GithubClient
	locator  Locator
	resolver Resolver
	pipeline Pipeline
	retryer  Retryer

	runLock sync.Mutex
	logger  *zap.Logger
}

func NewRunner(
	cfg Config,
	clt GithubClient,
	locator Locator,
	resolver Resolver,
	pipeline Pipeline,
	retryer Retryer,
) *Runner {
	if cfg.UpdateConfigFile == "" {
		cfg.UpdateConfigFile = updatecfg.DefaultFileName
	}

	return &Runner{
		cfg:      cfg,
		clt:      clt,
		locator:  locator,
		resolver: resolver,
		pipeline: pipeline,
		retryer:  retryer,
		logger:   zap.L().Named(loggerName),
	}
}

// Run processes all repositories of the organization.
//
// An error is returned when the github API rejects the credentials or the
// repositories of the organization can not be listed. Failures while
// processing a repository are recorded in its Outcome and do not abort the
// run.
// When ctx is cancelled, the repository that is processed is finished, the
// remaining ones are skipped and the partial report is returned together with
// the context error.
// If Run is called while another run is in progress, ErrRunInProgress is
// returned.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if !r.runLock.TryLock() {
		return nil, ErrRunInProgress
	}
	defer r.runLock.Unlock()

	report := Report{StartTime: time.Now()}
	logger := r.logger.With(zap.String("github.organization", r.cfg.Organization))

	logger.Info("starting run", logfields.Event("batch_run_started"))

	repos, err := r.listRepositories(ctx)
	if err != nil {
		metrics.RunFinished(resultLabelAbortedVal, time.Since(report.StartTime))
		return nil, err
	}

	logger.Debug(
		"retrieved repositories of organization",
		logfields.Event("batch_repositories_retrieved"),
		zap.Int("batch.repositories", len(repos)),
	)

	var processed int
	for _, repo := range repos {
		if !r.selected(ctx, repo) {
			continue
		}

		if processed > 0 {
			if err := r.wait(ctx); err != nil {
				return r.aborted(&report, err)
			}
		}

		if err := ctx.Err(); err != nil {
			return r.aborted(&report, err)
		}

		// a started repository is always processed to completion
		outcome := r.processRepository(context.WithoutCancel(ctx), repo)
		report.Outcomes = append(report.Outcomes, outcome)
		metrics.OutcomeInc(outcome)
		processed++
	}

	report.EndTime = time.Now()

	result := resultLabelSuccessVal
	if report.HasFailures() {
		result = resultLabelFailuresVal
	}
	metrics.RunFinished(result, report.EndTime.Sub(report.StartTime))

	logger.Info("run finished", append(report.LogFields(), logfields.Event("batch_run_finished"))...)

	return &report, nil
}

func (r *Runner) aborted(report *Report, err error) (*Report, error) {
	report.EndTime = time.Now()
	metrics.RunFinished(resultLabelAbortedVal, report.EndTime.Sub(report.StartTime))

	r.logger.Info(
		"run aborted",
		append(report.LogFields(), logfields.Event("batch_run_aborted"), zap.Error(err))...,
	)

	return report, fmt.Errorf("run aborted: %w", err)
}

func (r *Runner) wait(ctx context.Context) error {
	if r.cfg.RepositoryDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(r.cfg.RepositoryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Runner) listRepositories(ctx context.Context) ([]*githubclt.Repository, error) {
	var login string
	var repos []*githubclt.Repository

	err := r.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		login, err = r.clt.Authenticate(ctx)
		return err
	}, []zap.Field{logfields.Event("github_authenticate")})
	if err != nil {
		return nil, fmt.Errorf("authenticating at github failed: %w", err)
	}

	r.logger.Debug(
		"authenticated at github",
		logfields.Event("github_authenticated"),
		zap.String("github.login", login),
	)

	err = r.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		repos, err = r.clt.ListOrgRepositories(ctx, r.cfg.Organization)
		return err
	}, []zap.Field{logfields.Event("github_list_org_repositories")})
	if err != nil {
		return nil, fmt.Errorf("listing repositories of organization %s failed: %w", r.cfg.Organization, err)
	}

	return repos, nil
}

func (r *Runner) selected(ctx context.Context, repo *githubclt.Repository) bool {
	if r.cfg.Filter == nil {
		return true
	}

	match, err := r.cfg.Filter.Match(ctx, repo)
	if err != nil {
		r.logger.Warn(
			"evaluating repository filter failed, skipping repository",
			logfields.Event("batch_repository_filter_failed"),
			logfields.RepositoryOwner(repo.Owner),
			logfields.Repository(repo.Name),
			zap.Stringer("batch.repository_filter", r.cfg.Filter),
			zap.Error(err),
		)

		return false
	}

	if !match {
		r.logger.Debug(
			"repository does not match filter, skipping",
			logfields.Event("batch_repository_filtered"),
			logfields.RepositoryOwner(repo.Owner),
			logfields.Repository(repo.Name),
			zap.Stringer("batch.repository_filter", r.cfg.Filter),
		)
	}

	return match
}

func (r *Runner) processRepository(ctx context.Context, repo *githubclt.Repository) (outcome *Outcome) {
	logger := r.logger.With(
		logfields.RepositoryOwner(repo.Owner),
		logfields.Repository(repo.Name),
	)

	defer func() {
		if p := recover(); p != nil {
			logger.Error(
				"panic while processing repository",
				logfields.Event("batch_repository_panic"),
				zap.Any("panic", p),
				zap.ByteString("stacktrace", debug.Stack()),
			)

			outcome = &Outcome{
				Repository: repo,
				Status:     StatusFailed,
				FailedStep: StepUnexpected,
				Err:        fmt.Errorf("panic: %v", p),
			}
		}
	}()

	outcome = r.updateRepository(ctx, logger, repo)

	fields := []zap.Field{
		logfields.Event("batch_repository_processed"),
		zap.String("batch.status", string(outcome.Status)),
		zap.Stringer("batch.outcome", outcome),
	}
	if outcome.Version != nil {
		fields = append(fields, logfields.Version(outcome.Version.String()))
	}
	if outcome.Upstream != nil {
		fields = append(fields, logfields.UpstreamRepository(outcome.Upstream.String()))
	}
	if outcome.Err != nil {
		fields = append(fields, zap.Error(outcome.Err))
	}

	switch outcome.Status {
	case StatusFailed:
		logger.Error("processing repository failed", append(fields, logfields.Step(string(outcome.FailedStep)))...)
	case StatusUpdated:
		logger.Info("repository updated", fields...)
	case StatusSkippedNoUpstream:
		logger.Warn("upstream repository not found, skipping repository", fields...)
	default:
		logger.Debug("repository processed", fields...)
	}

	return outcome
}

func (r *Runner) updateRepository(ctx context.Context, logger *zap.Logger, repo *githubclt.Repository) *Outcome {
	updCfg, err := r.fetchUpdateConfig(ctx, repo)
	if err != nil {
		if !errors.Is(err, githubclt.ErrNotFound) {
			logger.Warn(
				"retrieving update configuration failed, skipping repository",
				logfields.Event("batch_update_config_invalid"),
				zap.Error(err),
			)
		}

		return &Outcome{Repository: repo, Status: StatusSkippedNoConfig, Err: err}
	}

	logger = logger.With(zap.String("update_config.upstream", updCfg.Upstream()))

	upstream, err := r.locator.Locate(ctx, updCfg.RepositoryNamespace, updCfg.RepositoryName)
	if err != nil {
		return &Outcome{Repository: repo, Status: StatusSkippedNoUpstream, Err: err}
	}

	current := r.resolver.ResolveCurrent(ctx, repo)

	var tags []*githubclt.Tag
	err = r.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		tags, err = r.clt.ListTags(ctx, upstream.Owner, upstream.Name)
		return err
	}, []zap.Field{
		logfields.Event("github_list_tags"),
		logfields.UpstreamRepository(upstream.String()),
	})
	if err != nil {
		return &Outcome{
			Repository: repo,
			Upstream:   upstream,
			Status:     StatusFailed,
			FailedStep: StepResolve,
			Err:        fmt.Errorf("listing tags of %s failed: %w", upstream, err),
		}
	}

	candidate := r.resolver.SelectCandidate(ctx, upstream, tags, current)
	if candidate == nil {
		return &Outcome{Repository: repo, Upstream: upstream, Status: StatusUpToDate, Version: current}
	}

	logger.Info(
		"upstream repository has a newer version",
		logfields.Event("batch_update_available"),
		logfields.UpstreamRepository(upstream.String()),
		logfields.CurrentVersion(current.String()),
		logfields.Version(candidate.Version.String()),
	)

	res := r.pipeline.Run(ctx, &pipeline.Job{
		Repository: repo,
		Candidate:  candidate,
		File:       updCfg.Pattern,
	})
	if !res.Succeeded() {
		return &Outcome{
			Repository: repo,
			Upstream:   upstream,
			Status:     StatusFailed,
			FailedStep: res.FailedStep,
			Err:        res.Err,
		}
	}

	return &Outcome{Repository: repo, Upstream: upstream, Status: StatusUpdated, Version: candidate.Version}
}

func (r *Runner) fetchUpdateConfig(ctx context.Context, repo *githubclt.Repository) (*updatecfg.Config, error) {
	var data []byte

	err := r.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		data, err = r.clt.FetchFile(ctx, repo.Owner, repo.Name, repo.DefaultBranch, r.cfg.UpdateConfigFile)
		return err
	}, []zap.Field{
		logfields.Event("github_fetch_update_config"),
		logfields.RepositoryOwner(repo.Owner),
		logfields.Repository(repo.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s failed: %w", r.cfg.UpdateConfigFile, err)
	}

	cfg, err := updatecfg.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s failed: %w", r.cfg.UpdateConfigFile, err)
	}

	return cfg, nil
}
