package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/textclass/internal/classifier"
	"github.com/kailas-cloud/textclass/internal/classifier/linear"
	openaiclf "github.com/kailas-cloud/textclass/internal/classifier/openai"
	"github.com/kailas-cloud/textclass/internal/config"
	"github.com/kailas-cloud/textclass/internal/job"
	logpkg "github.com/kailas-cloud/textclass/internal/logger"
	"github.com/kailas-cloud/textclass/internal/metrics"
)

func newRunCmd() *cobra.Command {
	var (
		input      string
		output     string
		model      string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the classification job over a corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := job.Params{Input: input, Output: output, Model: model}
			if err := params.Validate(); err != nil {
				// Invocation error: cobra prints usage, the process
				// exits non-zero, nothing is submitted.
				return err
			}
			// Past parameter validation, errors are operational; usage
			// output would only bury them.
			cmd.SilenceUsage = true

			return runJob(cmd.Context(), configPath, params)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input corpus directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output corpus directory")
	cmd.Flags().StringVarP(&model, "model", "m", "", "location of the model artifact")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "job configuration file")

	return cmd
}

func runJob(parent context.Context, configPath string, params job.Params) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	env := config.GetEnv()
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(parent, syscall.SIGTERM, syscall.SIGINT)
	defer cancel()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	reg := prometheus.NewRegistry()
	sinks := metrics.Multi{metrics.NewPromSink(reg)}

	if len(cfg.Counters.Addrs) > 0 {
		valkey, err := metrics.NewValkeySink(metrics.ValkeyConfig{
			Addrs:     cfg.Counters.Addrs,
			Password:  cfg.Counters.Password,
			KeyPrefix: cfg.Counters.KeyPrefix,
			JobID:     time.Now().UTC().Format("20060102T150405Z"),
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		defer valkey.Close()
		sinks = append(sinks, valkey)
	}

	if cfg.Metrics.Port > 0 {
		srv := metrics.Serve(cfg.Metrics.Port, reg, logger)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	load, err := loaderFor(cfg.Job.Provider)
	if err != nil {
		return err
	}

	dist := job.NewFSDistributor(cfg.Job.ReplicaDir, logger)
	engine := job.NewLocalEngine(load, dist, sinks, logger)
	driver := job.NewDriver(cfg, engine, dist, logger)

	logger.Info("submitting classification job",
		zap.String("input", params.Input),
		zap.String("output", params.Output),
		zap.String("model", params.Model),
		zap.String("provider", cfg.Job.Provider),
		zap.String("feature_name", cfg.Job.FeatureName),
		zap.Bool("lowercase", cfg.Job.Lowercase),
	)

	return driver.Run(ctx, params)
}

func loaderFor(provider string) (classifier.Loader, error) {
	switch provider {
	case "linear":
		return linear.Load, nil
	case "openai":
		return openaiclf.Load, nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", provider)
	}
}
