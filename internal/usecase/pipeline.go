package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/framepipe/framepipe/internal/domain/entity"
	"github.com/framepipe/framepipe/internal/domain/port"
	"github.com/framepipe/framepipe/internal/domain/sequence"
	"github.com/framepipe/framepipe/internal/infra/metrics"
)

// Pipeline chains the two stages: extract every input into one shared
// staging directory, then combine that directory into the output video.
// Stages run sequentially in one goroutine; a run either completes or
// aborts on the first fatal error.
type Pipeline struct {
	prober    port.VideoProber
	decoder   port.VideoDecoder
	encoder   port.VideoEncoder
	sink      port.FrameSink
	source    port.FrameSource
	converter port.FrameConverter
	storage   port.ObjectStorage
	archiver  port.Archiver
	logger    *zap.Logger
	cfg       PipelineConfig
}

type PipelineConfig struct {
	TempDir       string
	KeepFrames    bool
	FetchInputs   bool
	ArchiveFrames bool
	PublishOutput bool
}

// NewPipeline wires the pipeline's collaborators. storage and archiver may
// be nil when remote fetch/publish and frame archiving are disabled.
func NewPipeline(
	prober port.VideoProber,
	decoder port.VideoDecoder,
	encoder port.VideoEncoder,
	sink port.FrameSink,
	source port.FrameSource,
	converter port.FrameConverter,
	storage port.ObjectStorage,
	archiver port.Archiver,
	logger *zap.Logger,
	cfg PipelineConfig,
) *Pipeline {
	return &Pipeline{
		prober:    prober,
		decoder:   decoder,
		encoder:   encoder,
		sink:      sink,
		source:    source,
		converter: converter,
		storage:   storage,
		archiver:  archiver,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run executes one full extract-then-combine pass over the given inputs.
func (p *Pipeline) Run(ctx context.Context, inputs []string, outputPath string) (run *entity.PipelineRun, err error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "Pipeline.Run")
	defer span.End()

	run = entity.NewPipelineRun(inputs, outputPath)
	span.SetAttributes(
		attribute.String("run.id", run.ID.String()),
		attribute.Int("run.inputs", len(inputs)),
	)
	log := p.logger.With(zap.String("run_id", run.ID.String()))

	metrics.ActiveRuns.Inc()
	defer metrics.ActiveRuns.Dec()

	totalTimer := time.Now()
	defer func() {
		if err != nil {
			run.MarkFailed(err.Error())
			metrics.RunsTotal.WithLabelValues("failed").Inc()
			return
		}
		run.MarkCompleted()
		metrics.RunsTotal.WithLabelValues("completed").Inc()
		metrics.StageDuration.WithLabelValues("total").Observe(time.Since(totalTimer).Seconds())
	}()
	run.MarkRunning()

	workDir := filepath.Join(p.cfg.TempDir, run.ID.String())
	framesDir := filepath.Join(workDir, "frames")
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return run, fmt.Errorf("create staging dir: %w", err)
	}
	if !p.cfg.KeepFrames {
		defer os.RemoveAll(workDir)
	}

	localInputs, err := p.fetchInputs(ctx, inputs, workDir, log)
	if err != nil {
		return run, err
	}

	// Open every source before computing the shared width: the width must be
	// a single value fixed before the first frame is written.
	openCtx, spanOpen := tracer.Start(ctx, "open_sources")
	extractors := make([]*Extractor, 0, len(localInputs))
	for _, input := range localInputs {
		ex, exErr := NewExtractor(openCtx, input, p.prober, p.decoder, p.sink, log)
		if exErr != nil {
			spanOpen.End()
			return run, exErr
		}
		extractors = append(extractors, ex)
	}
	spanOpen.End()

	countCtx, spanCount := tracer.Start(ctx, "count_frames")
	counts := make([]int, len(extractors))
	total := 0
	for i, ex := range extractors {
		counts[i], err = ex.FrameCount(countCtx)
		if err != nil {
			spanCount.End()
			return run, err
		}
		total += counts[i]
	}
	spanCount.End()

	width := sequence.SharedWidth(counts...)
	run.TotalFrames = total
	run.PadWidth = width
	log.Info("computed shared pad width",
		zap.Int("total_frames", total),
		zap.Int("pad_width", width),
	)

	// Extract sequentially into the shared directory. Each source gets a
	// disjoint index range so lexical order concatenates the sources.
	exStart := time.Now()
	exCtx, spanEx := tracer.Start(ctx, "extract_frames")
	startIndex := 0
	for i, ex := range extractors {
		saved, exErr := ex.ExtractFrames(exCtx, framesDir, width, startIndex)
		run.FramesExtracted += saved
		metrics.FramesExtractedTotal.Add(float64(saved))
		if exErr != nil {
			spanEx.End()
			return run, exErr
		}
		startIndex += counts[i]
	}
	spanEx.End()
	metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(exStart).Seconds())

	combStart := time.Now()
	combCtx, spanComb := tracer.Start(ctx, "combine_frames")
	combiner := NewCombiner(framesDir, p.encoder, p.source, p.converter, log)
	encoded, err := combiner.CombineFramesToVideo(combCtx, outputPath)
	run.FramesEncoded = encoded
	metrics.FramesEncodedTotal.Add(float64(encoded))
	spanComb.End()
	if err != nil {
		return run, err
	}
	metrics.StageDuration.WithLabelValues("combine").Observe(time.Since(combStart).Seconds())

	if err := p.archiveFrames(ctx, run, framesDir, log); err != nil {
		return run, err
	}
	if err := p.publishOutput(ctx, run, outputPath, log); err != nil {
		return run, err
	}

	log.Info("pipeline run completed",
		zap.Int("frames_extracted", run.FramesExtracted),
		zap.Int("frames_encoded", run.FramesEncoded),
		zap.String("output", outputPath),
		zap.Duration("elapsed", time.Since(totalTimer)),
	)
	return run, nil
}

// fetchInputs downloads remote inputs into the workdir when configured;
// otherwise inputs are local paths and pass through untouched.
func (p *Pipeline) fetchInputs(ctx context.Context, inputs []string, workDir string, log *zap.Logger) ([]string, error) {
	if !p.cfg.FetchInputs || p.storage == nil {
		return inputs, nil
	}

	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "fetch_inputs")
	defer span.End()

	start := time.Now()
	local := make([]string, len(inputs))
	for i, key := range inputs {
		dest := filepath.Join(workDir, fmt.Sprintf("input_%d%s", i, filepath.Ext(key)))
		if err := p.storage.FetchVideo(ctx, key, dest); err != nil {
			return nil, fmt.Errorf("fetch input %s: %w", key, err)
		}
		log.Info("fetched input video", zap.String("key", key), zap.String("dest", dest))
		local[i] = dest
	}
	metrics.StageDuration.WithLabelValues("fetch").Observe(time.Since(start).Seconds())
	return local, nil
}

func (p *Pipeline) archiveFrames(ctx context.Context, run *entity.PipelineRun, framesDir string, log *zap.Logger) error {
	if !p.cfg.ArchiveFrames || p.archiver == nil {
		return nil
	}

	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "archive_frames")
	defer span.End()

	files, err := p.source.List(framesDir)
	if err != nil {
		return err
	}
	zipPath := filepath.Join(filepath.Dir(framesDir), "frames.zip")
	if err := p.archiver.CreateArchive(ctx, files, zipPath); err != nil {
		return fmt.Errorf("archive frames: %w", err)
	}
	log.Info("archived frame sequence", zap.String("path", zipPath), zap.Int("frames", len(files)))

	if p.cfg.PublishOutput && p.storage != nil {
		zipFile, err := os.Open(zipPath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer zipFile.Close()
		stat, err := zipFile.Stat()
		if err != nil {
			return fmt.Errorf("stat archive: %w", err)
		}
		key := fmt.Sprintf("%s/frames.zip", run.ID)
		if err := p.storage.PublishArchive(ctx, key, zipFile, stat.Size()); err != nil {
			return fmt.Errorf("publish archive: %w", err)
		}
		run.ArchiveKey = key
		log.Info("published frame archive", zap.String("key", key))
	}
	return nil
}

func (p *Pipeline) publishOutput(ctx context.Context, run *entity.PipelineRun, outputPath string, log *zap.Logger) error {
	if !p.cfg.PublishOutput || p.storage == nil {
		return nil
	}

	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "publish_output")
	defer span.End()

	key := fmt.Sprintf("%s/%s", run.ID, filepath.Base(outputPath))
	if err := p.storage.PublishVideo(ctx, key, outputPath); err != nil {
		return fmt.Errorf("publish output video: %w", err)
	}
	log.Info("published output video", zap.String("key", key))
	return nil
}
