package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/framepipe/framepipe/internal/domain/port"
)

// Combiner re-encodes a staged frame sequence into one output video in the
// encoder's canonical configuration. Construction performs no I/O.
type Combiner struct {
	frameDir  string
	encoder   port.VideoEncoder
	source    port.FrameSource
	converter port.FrameConverter
	logger    *zap.Logger
}

func NewCombiner(
	frameDir string,
	encoder port.VideoEncoder,
	source port.FrameSource,
	converter port.FrameConverter,
	logger *zap.Logger,
) *Combiner {
	return &Combiner{
		frameDir:  frameDir,
		encoder:   encoder,
		source:    source,
		converter: converter,
		logger:    logger.With(zap.String("frame_dir", frameDir)),
	}
}

// CombineFramesToVideo opens the encoder and output container, then encodes
// every listed frame in ascending lexical filename order with gapless pts.
// Setup failures abort before anything is written. A frame file that fails
// to decode is logged and skipped; a conversion or encode failure aborts the
// rest of the run and the partial output must be discarded by the caller.
// The trailer is written when the session closes. Returns the number of
// frames sent to the encoder.
func (c *Combiner) CombineFramesToVideo(ctx context.Context, outputPath string) (encoded int, err error) {
	cfg := c.encoder.Config()

	session, err := c.encoder.Begin(ctx, outputPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	files, err := c.source.List(c.frameDir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		c.logger.Warn("no frames found, output will be empty")
	}

	var pts int64
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return int(pts), err
		}

		frame, decodeErr := c.source.Decode(file)
		if decodeErr != nil {
			c.logger.Warn("skipping undecodable frame file",
				zap.String("file", file),
				zap.Error(decodeErr),
			)
			continue
		}

		frame, err = c.converter.Normalize(frame, cfg.Width, cfg.Height)
		if err != nil {
			return int(pts), err
		}

		if err = session.Encode(frame, pts); err != nil {
			return int(pts), err
		}
		pts++
	}

	c.logger.Info("combined frames into video",
		zap.String("output", outputPath),
		zap.Int64("frames", pts),
	)
	return int(pts), nil
}
