// Command bdixprobe checks a list of FTP/media servers for reachability,
// batching the probes through the await orchestration core.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rahaaatul/await"
	"github.com/rahaaatul/await/metrics"
	"github.com/rahaaatul/await/probe"
)

var log = logrus.New()

type options struct {
	targetsPath string
	batchSize   int
	itemTimeout time.Duration
	pacingDelay time.Duration
	retries     int
	limit       int
	stream      bool
	metricsAddr string
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Fatal("probe run failed")
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "bdixprobe",
		Short:        "Probe BDIX media servers for reachability",
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if opts.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.targetsPath, "targets", "t", "targets.json", "path to the JSON target list")
	cmd.Flags().IntVarP(&opts.batchSize, "batch-size", "b", await.DefaultBatchSize, "targets probed concurrently per batch")
	cmd.Flags().DurationVar(&opts.itemTimeout, "timeout", await.DefaultItemTimeout, "per-target probe timeout")
	cmd.Flags().DurationVar(&opts.pacingDelay, "pacing", await.DefaultPacingDelay, "delay between batches")
	cmd.Flags().IntVarP(&opts.retries, "retries", "r", 0, "retries per target after the first attempt")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "cap on concurrent probes within a batch (0 = batch size)")
	cmd.Flags().BoolVar(&opts.stream, "stream", false, "report results as they complete instead of batching")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	targets, err := probe.LoadTargets(opts.targetsPath)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets in %s", opts.targetsPath)
	}
	log.WithFields(logrus.Fields{
		"targets":    len(targets),
		"batch_size": opts.batchSize,
		"timeout":    opts.itemTimeout,
	}).Info("starting probe run")

	awaitOpts := []await.Option{
		await.WithBatchSize(opts.batchSize),
		await.WithItemTimeout(opts.itemTimeout),
		await.WithPacingDelay(opts.pacingDelay),
	}
	if opts.limit > 0 {
		awaitOpts = append(awaitOpts, await.WithLimit(opts.limit))
	}
	if opts.metricsAddr != "" {
		collector := metrics.NewCollector(prometheus.DefaultRegisterer)
		awaitOpts = append(awaitOpts, collector.Options()...)
		go serveMetrics(opts.metricsAddr)
	}

	client := &http.Client{}

	check := func(ctx context.Context, t probe.Target) (probe.Report, error) {
		op := probe.HTTPCheck(client, t.URL)
		if opts.retries > 0 {
			return await.Retry(ctx, op,
				await.WithMaxRetries(opts.retries),
				await.WithInitialDelay(500*time.Millisecond),
			)
		}
		return op.Run(ctx)
	}

	if opts.stream {
		return runStreaming(ctx, targets, check, awaitOpts)
	}
	return runBatched(ctx, targets, check, awaitOpts)
}

func runBatched(
	ctx context.Context,
	targets []probe.Target,
	check func(context.Context, probe.Target) (probe.Report, error),
	awaitOpts []await.Option,
) error {
	results, err := await.ProcessBatches(ctx, targets, check, awaitOpts...)
	for i, res := range results {
		report(targets[i], res)
	}
	if err != nil {
		return fmt.Errorf("probe run aborted: %w", err)
	}
	summary(results)
	return nil
}

func runStreaming(
	ctx context.Context,
	targets []probe.Target,
	check func(context.Context, probe.Target) (probe.Report, error),
	awaitOpts []await.Option,
) error {
	ops := make([]await.Operation[probe.Report], len(targets))
	for i, t := range targets {
		t := t
		ops[i] = await.OpFunc[probe.Report](func(ctx context.Context) (probe.Report, error) {
			return check(ctx, t)
		})
	}

	stream := await.Stream(ctx, ops, awaitOpts...)
	defer stream.Close()

	var results []await.Result[probe.Report]
	for {
		item, err := stream.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("probe run aborted: %w", err)
		}
		report(targets[item.Index], item.Result())
		results = append(results, item.Result())
		log.WithFields(logrus.Fields{
			"completed": len(results),
			"total":     len(targets),
		}).Debug("progress")
	}
	summary(results)
	return nil
}

func report(t probe.Target, res await.Result[probe.Report]) {
	entry := log.WithField("target", t.Name)
	if res.Ok() {
		entry.WithField("latency", res.Value.Latency.Round(time.Millisecond)).Info("reachable")
		return
	}
	entry.WithFields(logrus.Fields{
		"kind":  await.KindOf(res.Err).String(),
		"error": res.Err,
	}).Warn("unreachable")
}

func summary(results []await.Result[probe.Report]) {
	up := 0
	for _, res := range results {
		if res.Ok() {
			up++
		}
	}
	log.WithFields(logrus.Fields{
		"reachable": up,
		"total":     len(results),
	}).Info("probe run complete")
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("metrics server stopped")
	}
}
