package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/simplesurance/upstream-updater/internal/cfg"
	"github.com/simplesurance/upstream-updater/internal/logfields"
)

const appName = "upstream-updater"

var logger *zap.Logger

// Version is set via a ldflag on compilation
var Version = "unknown"

const (
	exitCodeSuccess         = 0
	exitCodeFatal           = 1
	exitCodeInvalidArgs     = 2
	exitCodePipelineFailure = 3
)

// exitOnErr is used before the logger is initialized.
func exitOnErr(exitCode int, msg string, err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s: %s: %s\n", appName, msg, err)
	os.Exit(exitCode)
}

// panicHandler recovers a panic of the goroutine it is deferred in, logs it
// and runs the termination hooks before exiting.
func panicHandler(goroutine string) {
	r := recover()
	if r == nil {
		return
	}

	zap.L().Error(
		"unrecovered panic, terminating",
		logfields.Event("panic_terminating"),
		zap.String("goroutine", goroutine),
		zap.Any("panic", r),
		zap.String("version", Version),
		zap.StackSkip("stacktrace", 1),
	)

	ctx, cancelFn := context.WithTimeout(context.Background(), runShutdownTimeout)
	defer cancelFn()

	goodbye.Exit(ctx, exitCodeFatal)
}

// startMetricsServer serves the prometheus metrics on listenAddr until the
// process terminates.
func startMetricsServer(listenAddr string) {
	const shutdownTimeout = 10 * time.Second

	mux := http.NewServeMux()
	mux.Handle(metricsEndpoint, promhttp.Handler())

	srv := http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	goodbye.Register(func(context.Context, os.Signal) {
		ctx, cancelFn := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelFn()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn(
				"stopping metrics server failed",
				logfields.Event("metrics_server_stop_failed"),
				zap.Error(err),
			)
		}
	})

	go func() {
		defer panicHandler("metrics_server")

		logger.Info(
			"serving metrics",
			logfields.Event("metrics_server_started"),
			zap.String("metrics_server.listen_addr", listenAddr),
			zap.String("metrics_server.path", metricsEndpoint),
		)

		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			logger.Debug("metrics server stopped", logfields.Event("metrics_server_stopped"))
			return
		}

		logger.Fatal(
			"metrics server failed",
			logfields.Event("metrics_server_failed"),
			zap.String("metrics_server.listen_addr", listenAddr),
			zap.Error(err),
		)
	}()
}

type arguments struct {
	Verbose    bool
	ConfigFile string
	DryRun     bool
	Once       bool
}

var args arguments

const defConfigFile = "/etc/upstream-updater/config.toml"

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(
		&args.Verbose,
		"verbose",
		"v",
		false,
		"enable verbose logging",
	)
	flags.StringVarP(
		&args.ConfigFile,
		"cfg-file",
		"c",
		defConfigFile,
		"path to the configuration file",
	)
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.BoolVar(
		&args.DryRun,
		"dry-run",
		false,
		"do not push changes and do not create releases, overwrites the dry_run setting",
	)
	flags.BoolVar(
		&args.Once,
		"once",
		false,
		"process all repositories once and exit, ignores the run_interval setting",
	)
}

func mustParseCfg() *cfg.Config {
	// we use exitOnErr in this function instead of logger.Fatal() because
	// the logger is not initialized yet

	file, err := os.Open(args.ConfigFile)
	exitOnErr(exitCodeFatal, "opening configuration file failed", err)
	defer file.Close()

	config, err := cfg.Load(file)
	exitOnErr(exitCodeInvalidArgs, fmt.Sprintf("loading configuration file %s failed", args.ConfigFile), err)

	config.ApplyEnv(os.LookupEnv)

	return config
}

func initLogFmtLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zapEncoderConfig(config)

	logger := zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(cfg),
		os.Stdout,
		logLevel),
	)

	return logger
}

func zapEncoderConfig(config *cfg.Config) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()

	cfg.LevelKey = "loglevel"
	cfg.TimeKey = config.LogTimeKey
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder

	return cfg
}

func mustInitZapFormatLogger(config *cfg.Config, logLevel zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.EncoderConfig = zapEncoderConfig(config)
	cfg.OutputPaths = []string{"stdout"}
	cfg.Encoding = config.LogFormat
	cfg.Level = zap.NewAtomicLevelAt(logLevel)

	logger, err := cfg.Build()
	exitOnErr(exitCodeFatal, "initializing logger failed", err)

	return logger
}

func mustInitLogger(config *cfg.Config) {
	var logLevel zapcore.Level
	if args.Verbose {
		logLevel = zapcore.DebugLevel
	} else {
		if err := (&logLevel).Set(config.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "can not set log level to %q: %s \n", config.LogLevel, err)
			os.Exit(exitCodeInvalidArgs)
		}
	}

	switch config.LogFormat {
	case "logfmt":
		logger = initLogFmtLogger(config, logLevel)
	case "console", "json":
		logger = mustInitZapFormatLogger(config, logLevel)
	default:
		fmt.Fprintf(os.Stderr, "unsupported log-format argument: %q\n", config.LogFormat)
		os.Exit(exitCodeInvalidArgs)
	}

	logger = logger.Named("main")
	zap.ReplaceGlobals(logger)

	goodbye.Register(func(context.Context, os.Signal) {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "flushing logs failed: %s\n", err)
		}
	})
}

func newRootCmd(exitCode *int) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Update repositories when their upstream repository publishes a new release",
		Long: `Processes all repositories of a GitHub organization. Repositories that contain an
update configuration file are updated when their upstream repository published a
new version: the version in their Dockerfile is replaced, the change is committed,
tagged, pushed and a GitHub release is created.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(*cobra.Command, []string) {
			*exitCode = run()
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags())
	addRunFlags(rootCmd.Flags())

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration, secrets are hidden",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				config := mustParseCfg()
				return config.Hidden().Marshal(os.Stdout)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				fmt.Printf("%s %s\n", appName, Version)
			},
		},
	)

	return rootCmd
}

func main() {
	defer panicHandler("main")

	goodbye.Notify(context.Background())

	exitCode := exitCodeSuccess

	if err := newRootCmd(&exitCode).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		exitCode = exitCodeInvalidArgs
	}

	goodbye.Exit(context.Background(), exitCode)
}
