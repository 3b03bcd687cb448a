package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/framepipe/framepipe/internal/domain/entity"
	"github.com/framepipe/framepipe/internal/domain/port"
)

// Encoder opens output containers with a fixed target configuration and
// feeds them raw RGBA frames over stdin. The container format follows the
// output path's extension; the trailer is written when the session closes.
type Encoder struct {
	cfg    port.EncoderConfig
	logger *zap.Logger
}

func NewEncoder(cfg port.EncoderConfig, logger *zap.Logger) *Encoder {
	return &Encoder{cfg: cfg, logger: logger}
}

func (e *Encoder) Config() port.EncoderConfig {
	return e.cfg
}

func (e *Encoder) Begin(ctx context.Context, outputPath string) (port.EncodeSession, error) {
	if e.cfg.Width <= 0 || e.cfg.Height <= 0 || e.cfg.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: invalid encoder configuration %dx%d@%d",
			entity.ErrCodecInit, e.cfg.Width, e.cfg.Height, e.cfg.FrameRate)
	}

	// Fail before the encoder process starts when the destination cannot be
	// created, so no container header is ever written.
	f, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open output %s: %v", entity.ErrIO, outputPath, err)
	}
	f.Close()

	pr, pw := io.Pipe()
	graph := ffmpeggo.Input("pipe:", ffmpeggo.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", e.cfg.Width, e.cfg.Height),
		"framerate": strconv.Itoa(e.cfg.FrameRate),
	}).
		Output(outputPath, ffmpeggo.KwArgs{
			"c:v":     e.cfg.Codec,
			"b:v":     strconv.Itoa(e.cfg.BitRate),
			"r":       strconv.Itoa(e.cfg.FrameRate),
			"g":       strconv.Itoa(e.cfg.GOPSize),
			"bf":      strconv.Itoa(e.cfg.MaxBFrames),
			"pix_fmt": e.cfg.PixelFormat,
		}).
		OverWriteOutput().
		WithInput(pr).
		Silent(true)

	errCh := make(chan error, 1)
	go func() {
		err := graph.Run()
		// Unblock any pending frame write before reporting.
		pr.Close()
		errCh <- err
	}()

	e.logger.Debug("opened encode session",
		zap.String("output", outputPath),
		zap.String("codec", e.cfg.Codec),
		zap.Int("width", e.cfg.Width),
		zap.Int("height", e.cfg.Height),
	)
	return &encodeSession{
		cfg:    e.cfg,
		output: outputPath,
		writer: pw,
		errCh:  errCh,
	}, nil
}

type encodeSession struct {
	cfg      port.EncoderConfig
	output   string
	writer   *io.PipeWriter
	errCh    chan error
	nextPTS  int64
	closed   bool
	closeErr error
}

func (s *encodeSession) Encode(frame *entity.Frame, pts int64) error {
	if s.closed {
		return fmt.Errorf("%w: session already finalized", entity.ErrEncodeFrame)
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	if frame.Width != s.cfg.Width || frame.Height != s.cfg.Height {
		return fmt.Errorf("%w: frame is %dx%d, encoder expects %dx%d",
			entity.ErrEncodeFrame, frame.Width, frame.Height, s.cfg.Width, s.cfg.Height)
	}
	if pts != s.nextPTS {
		return fmt.Errorf("%w: pts %d out of order, expected %d",
			entity.ErrEncodeFrame, pts, s.nextPTS)
	}

	if _, err := s.writer.Write(frame.Data); err != nil {
		return fmt.Errorf("%w: send frame pts %d: %v", entity.ErrEncodeFrame, pts, err)
	}
	s.nextPTS++
	return nil
}

// Close flushes the encoder and writes the container trailer. It reports the
// first failure and is a no-op on repeat calls.
func (s *encodeSession) Close() error {
	if s.closed {
		return s.closeErr
	}
	s.closed = true

	s.writer.Close()
	if err := <-s.errCh; err != nil {
		s.closeErr = fmt.Errorf("%w: finalize %s: %v", entity.ErrIO, s.output, err)
	}
	return s.closeErr
}
