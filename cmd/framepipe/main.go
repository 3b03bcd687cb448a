package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/framepipe/framepipe/internal/domain/port"
	"github.com/framepipe/framepipe/internal/infra/archive"
	"github.com/framepipe/framepipe/internal/infra/config"
	"github.com/framepipe/framepipe/internal/infra/ffmpeg"
	"github.com/framepipe/framepipe/internal/infra/imaging"
	"github.com/framepipe/framepipe/internal/infra/metrics"
	miniostorage "github.com/framepipe/framepipe/internal/infra/minio"
	"github.com/framepipe/framepipe/internal/infra/tracing"
	"github.com/framepipe/framepipe/internal/usecase"
	"github.com/framepipe/framepipe/pkg/logger"
)

const version = "0.1.0"

func main() {
	keepFrames := flag.Bool("keep-frames", false, "Keep the staged frame sequence after the run")
	archiveFrames := flag.Bool("archive", false, "Bundle the staged frames into a ZIP next to them")
	fetchInputs := flag.Bool("fetch", false, "Treat inputs as object-storage keys and fetch them first")
	publishOutput := flag.Bool("publish", false, "Publish the output video (and archive) to object storage")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("framepipe %s\n", version)
		return
	}

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	inputs := args[:len(args)-1]
	output := args[len(args)-1]

	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting framepipe",
		zap.String("version", version),
		zap.Strings("inputs", inputs),
		zap.String("output", output),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if the collector is unavailable)
	if cfg.OTLPEndpoint != "" {
		tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
		if err != nil {
			log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
		} else {
			defer tp.Shutdown(ctx)
		}
	}

	var metricsSrv interface{ Shutdown(context.Context) error }
	if cfg.MetricsPort > 0 {
		metricsSrv = metrics.StartMetricsServer(ctx, cfg.MetricsPort, log)
	}

	var storage port.ObjectStorage
	if cfg.MinIOEnabled {
		s, err := miniostorage.NewStorage(miniostorage.StorageConfig{
			Endpoint:     cfg.MinIOEndpoint,
			AccessKey:    cfg.MinIOAccessKey,
			SecretKey:    cfg.MinIOSecretKey,
			UseSSL:       cfg.MinIOUseSSL,
			InputBucket:  cfg.MinIOInputBucket,
			OutputBucket: cfg.MinIOOutputBucket,
		})
		fatalOnErr(err, "create object storage")
		fatalOnErr(s.EnsureBuckets(ctx), "ensure buckets")
		storage = s
	}
	if (*fetchInputs || *publishOutput) && storage == nil {
		fatalOnErr(fmt.Errorf("MINIO_ENABLED must be set"), "configure object storage")
	}

	pipeline := usecase.NewPipeline(
		ffmpeg.NewProber(cfg.FFprobeBin, log),
		ffmpeg.NewDecoder(log),
		ffmpeg.NewEncoder(cfg.EncoderConfig(), log),
		imaging.NewPNGSink(),
		imaging.NewPNGSource(),
		imaging.NewNormalizer(),
		storage,
		archive.NewZipper(),
		log,
		usecase.PipelineConfig{
			TempDir:       cfg.TempDir,
			KeepFrames:    *keepFrames,
			FetchInputs:   *fetchInputs,
			ArchiveFrames: *archiveFrames,
			PublishOutput: *publishOutput,
		},
	)

	// Graceful shutdown: a signal cancels the run's context.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	run, err := pipeline.Run(ctx, inputs, output)

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		metricsSrv.Shutdown(shutdownCtx)
		shutdownCancel()
	}

	if err != nil {
		log.Error("pipeline run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "framepipe: %v\n", err)
		os.Exit(1)
	}

	log.Info("framepipe finished",
		zap.String("run_id", run.ID.String()),
		zap.Int("frames_extracted", run.FramesExtracted),
		zap.Int("frames_encoded", run.FramesEncoded),
		zap.String("output", output),
	)
}

func usage() {
	fmt.Fprintf(os.Stderr, `framepipe %s, a video to frame-sequence converter

Usage:
  framepipe [flags] <input video>... <output video>

All arguments but the last are input videos; their frames are extracted into
one shared staging directory and recombined into the output video.

Flags:
`, version)
	flag.PrintDefaults()
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "framepipe: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
