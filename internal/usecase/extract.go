package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/framepipe/framepipe/internal/domain/entity"
	"github.com/framepipe/framepipe/internal/domain/port"
	"github.com/framepipe/framepipe/internal/domain/sequence"
)

// Extractor decodes every frame of one input video's primary video stream
// and writes each as a numbered lossless image. Construction opens and
// probes the container; one Extractor owns its source exclusively.
type Extractor struct {
	path    string
	info    *entity.VideoInfo
	stream  *entity.StreamInfo
	prober  port.VideoProber
	decoder port.VideoDecoder
	sink    port.FrameSink
	logger  *zap.Logger
}

func NewExtractor(
	ctx context.Context,
	path string,
	prober port.VideoProber,
	decoder port.VideoDecoder,
	sink port.FrameSink,
	logger *zap.Logger,
) (*Extractor, error) {
	info, err := prober.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	stream := info.VideoStream()
	if stream == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrNoVideoStream, path)
	}

	return &Extractor{
		path:    path,
		info:    info,
		stream:  stream,
		prober:  prober,
		decoder: decoder,
		sink:    sink,
		logger:  logger.With(zap.String("input", path)),
	}, nil
}

func (e *Extractor) Info() *entity.VideoInfo {
	return e.info
}

// FrameCount scans the whole container counting packets of the selected
// video stream. Container metadata alone is not trusted for this.
func (e *Extractor) FrameCount(ctx context.Context) (int, error) {
	return e.prober.CountVideoPackets(ctx, e.path, e.stream.Index)
}

// PadWidth returns the zero-pad width needed for this source's own frame
// count. Multi-source runs must use sequence.SharedWidth over all sources
// instead, computed before any extraction begins.
func (e *Extractor) PadWidth(ctx context.Context) (int, error) {
	count, err := e.FrameCount(ctx)
	if err != nil {
		return 0, err
	}
	return sequence.PadWidth(count), nil
}

// ExtractFrames decodes the stream from the start and saves frame i as
// <pad(startIndex+i, width)>.png in outputDir. A failed save is logged and
// skipped without stopping the run; the index still advances so filenames
// stay aligned with decode order. A broken stream aborts. Returns the
// number of frames written.
func (e *Extractor) ExtractFrames(ctx context.Context, outputDir string, width, startIndex int) (int, error) {
	stream, err := e.decoder.OpenStream(ctx, e.info)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	saved := 0
	for i := 0; ; i++ {
		frame, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return saved, err
		}

		name := sequence.FileName(startIndex+i, width)
		if err := e.sink.Save(ctx, frame, filepath.Join(outputDir, name)); err != nil {
			e.logger.Warn("skipping frame that failed to save",
				zap.String("frame", name),
				zap.Error(err),
			)
			continue
		}
		saved++
		e.logger.Info("processed frame", zap.String("frame", name))
	}

	return saved, nil
}
