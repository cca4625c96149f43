package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/batch"
	"github.com/simplesurance/upstream-updater/internal/cfg"
	"github.com/simplesurance/upstream-updater/internal/git"
	"github.com/simplesurance/upstream-updater/internal/githubclt"
	"github.com/simplesurance/upstream-updater/internal/logfields"
	"github.com/simplesurance/upstream-updater/internal/pipeline"
	"github.com/simplesurance/upstream-updater/internal/resolver"
	"github.com/simplesurance/upstream-updater/internal/retry"
	"github.com/simplesurance/upstream-updater/internal/upstream"
)

// runShutdownTimeout is how long termination waits for the repository that
// is processed to finish.
const runShutdownTimeout = 5 * time.Minute

const metricsEndpoint = "/metrics"

func mustDuration(d time.Duration, err error) time.Duration {
	exitOnErr(exitCodeInvalidArgs, "parsing configuration failed", err)
	return d
}

func mustNewRunner(config *cfg.Config) *batch.Runner {
	clt := githubclt.New(config.GithubAPIToken)
	gitCLI := git.NewCLI(git.WithSecrets(config.GithubAPIToken))

	var ops pipeline.RepositoryOperations = gitCLI
	var releaser pipeline.ReleaseCreator = clt

	if config.DryRun {
		ops = pipeline.NewDryOperations(gitCLI)
		releaser = pipeline.NewDryReleaseCreator()
	}

	p := pipeline.New(
		pipeline.Config{
			WorkDir: config.WorkDir,
			Author: git.Identity{
				Name:  config.CommitAuthorName,
				Email: config.CommitAuthorEmail,
			},
			Credentials: pipeline.Credentials{
				Host:  config.GithubHost,
				User:  config.GithubUser,
				Token: config.GithubAPIToken,
			},
		},
		ops,
		releaser,
	)

	var filter *batch.Filter
	if config.RepositoryFilter != "" {
		var err error
		filter, err = batch.NewFilter(config.RepositoryFilter)
		exitOnErr(exitCodeInvalidArgs, "repository_filter setting is invalid", err)
	}

	return batch.NewRunner(
		batch.Config{
			Organization:     config.Organization,
			UpdateConfigFile: config.UpdateConfigFile,
			RepositoryDelay:  mustDuration(config.RepositoryDelayDuration()),
			Filter:           filter,
		},
		clt,
		upstream.NewGithubLocator(clt),
		resolver.New(clt),
		p,
		retry.NewRetryer(retry.WithTimeout(mustDuration(config.RetryTimeoutDuration()))),
	)
}

func run() int {
	config := mustParseCfg()
	if args.DryRun {
		config.DryRun = true
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: configuration file %s is invalid:\n%s\n", args.ConfigFile, err)
		return exitCodeInvalidArgs
	}

	mustInitLogger(config)

	logger.Info(
		"loaded cfg file",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", args.ConfigFile),
		zap.String("github_user", config.GithubUser),
		zap.String("github_api_token", config.Hidden().GithubAPIToken),
		zap.String("github_host", config.GithubHost),
		zap.String("organization", config.Organization),
		zap.String("commit_author_name", config.CommitAuthorName),
		zap.String("commit_author_email", config.CommitAuthorEmail),
		zap.String("repository_filter", config.RepositoryFilter),
		zap.String("repository_delay", config.RepositoryDelay),
		zap.String("update_config_file", config.UpdateConfigFile),
		zap.String("work_dir", config.WorkDir),
		zap.String("run_interval", config.RunInterval),
		zap.String("retry_timeout", config.RetryTimeout),
		zap.Bool("dry_run", config.DryRun),
		zap.Bool("fail_on_pipeline_error", config.FailOnPipelineError),
		zap.String("http_server_listen_addr", config.HTTPListenAddr),
		zap.String("log_format", config.LogFormat),
		zap.String("log_time_key", config.LogTimeKey),
		zap.String("log_level", config.LogLevel),
	)

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
	})

	if config.HTTPListenAddr != "" {
		startMetricsServer(config.HTTPListenAddr)
	}

	runner := mustNewRunner(config)
	interval := mustDuration(config.RunIntervalDuration())

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	runDone := make(chan struct{})
	defer close(runDone)

	goodbye.Register(func(context.Context, os.Signal) {
		cancelFn()

		logger.Debug(
			"waiting for running update to finish",
			logfields.Event("run_terminating"),
			zap.Duration("shutdown_timeout", runShutdownTimeout),
		)

		select {
		case <-runDone:
		case <-time.After(runShutdownTimeout):
			logger.Warn("running update did not finish in time", logfields.Event("run_termination_timeout"))
		}
	})

	if args.Once || interval == 0 {
		return runOnce(ctx, runner, config)
	}

	return runPeriodically(ctx, runner, interval)
}

func runOnce(ctx context.Context, runner *batch.Runner, config *cfg.Config) int {
	report, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("run was cancelled", logfields.Event("run_cancelled"))
			return exitCodeSuccess
		}

		logger.Error("run failed", logfields.Event("run_failed"), zap.Error(err))
		return exitCodeFatal
	}

	fmt.Print(report.String())

	if config.FailOnPipelineError && report.HasFailures() {
		logger.Info(
			"updating repositories failed, exiting with error",
			logfields.Event("run_finished_with_failures"),
			zap.Int("exit_code", exitCodePipelineFailure),
		)

		return exitCodePipelineFailure
	}

	return exitCodeSuccess
}

func runPeriodically(ctx context.Context, runner *batch.Runner, interval time.Duration) int {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := runner.Run(ctx)
		switch {
		case errors.Is(err, context.Canceled):
			return exitCodeSuccess
		case err != nil:
			logger.Error(
				"run failed, retrying at next interval",
				logfields.Event("run_failed"),
				zap.Error(err),
				zap.Duration("run_interval", interval),
			)
		default:
			logger.Info(
				"run finished",
				logfields.Event("run_finished"),
				zap.String("report", report.String()),
				zap.Duration("run_interval", interval),
			)
		}

		select {
		case <-ctx.Done():
			return exitCodeSuccess
		case <-ticker.C:
		}
	}
}
