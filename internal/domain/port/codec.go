package port

import (
	"context"

	"github.com/framepipe/framepipe/internal/domain/entity"
)

// VideoProber opens a container far enough to enumerate its streams and to
// count the packets of one stream. Counting requires a full forward scan;
// container metadata does not reliably report total frame count.
type VideoProber interface {
	Probe(ctx context.Context, path string) (*entity.VideoInfo, error)
	CountVideoPackets(ctx context.Context, path string, streamIndex int) (int, error)
}

// FrameStream yields decoded frames in presentation order. Next returns
// io.EOF after the last frame of the stream.
type FrameStream interface {
	Next() (*entity.Frame, error)
	Close() error
}

// VideoDecoder decodes the selected video stream of a probed container into
// canonical-layout frames.
type VideoDecoder interface {
	OpenStream(ctx context.Context, info *entity.VideoInfo) (FrameStream, error)
}

// EncoderConfig is the fixed target configuration of the output video,
// independent of the resolutions and formats of the individual input frames.
type EncoderConfig struct {
	Codec       string
	BitRate     int
	Width       int
	Height      int
	FrameRate   int
	GOPSize     int
	MaxBFrames  int
	PixelFormat string
}

// EncodeSession is one open output container. Frames must arrive with
// strictly increasing, gapless pts starting at 0; Close finalizes the
// trailer exactly once and is safe to call more than once.
type EncodeSession interface {
	Encode(frame *entity.Frame, pts int64) error
	Close() error
}

// VideoEncoder creates encode sessions with its fixed configuration.
type VideoEncoder interface {
	Config() EncoderConfig
	Begin(ctx context.Context, outputPath string) (EncodeSession, error)
}

// FrameConverter normalizes a frame to the given resolution and the
// canonical pixel layout. Frames already matching are returned unchanged.
type FrameConverter interface {
	Normalize(frame *entity.Frame, width, height int) (*entity.Frame, error)
}
