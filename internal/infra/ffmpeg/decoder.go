package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"

	"github.com/framepipe/framepipe/internal/domain/entity"
	"github.com/framepipe/framepipe/internal/domain/port"
)

// Decoder streams the selected video stream of a container as raw RGBA
// frames over a pipe. The codec internals (packet demux, send/receive
// draining, colorspace conversion) stay inside the ffmpeg process.
type Decoder struct {
	logger *zap.Logger
}

func NewDecoder(logger *zap.Logger) *Decoder {
	return &Decoder{logger: logger}
}

func (d *Decoder) OpenStream(ctx context.Context, info *entity.VideoInfo) (port.FrameStream, error) {
	vs := info.VideoStream()
	if vs == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrNoVideoStream, info.Path)
	}
	if vs.Width <= 0 || vs.Height <= 0 {
		return nil, fmt.Errorf("%w: stream %d of %s reports %dx%d",
			entity.ErrStreamInfo, vs.Index, info.Path, vs.Width, vs.Height)
	}

	pr, pw := io.Pipe()
	graph := ffmpeggo.Input(info.Path).
		Output("pipe:", ffmpeggo.KwArgs{
			"format":  "rawvideo",
			"pix_fmt": "rgba",
			"map":     fmt.Sprintf("0:%d", vs.Index),
		}).
		WithOutput(pw, io.Discard).
		Silent(true)

	go func() {
		err := graph.Run()
		if err != nil {
			err = fmt.Errorf("%w: decode %s: %v", entity.ErrDecodeFrame, info.Path, err)
		}
		pw.CloseWithError(err)
	}()

	d.logger.Debug("opened decode stream",
		zap.String("path", info.Path),
		zap.Int("stream", vs.Index),
		zap.Int("width", vs.Width),
		zap.Int("height", vs.Height),
	)
	return &rawFrameStream{reader: pr, width: vs.Width, height: vs.Height}, nil
}

type rawFrameStream struct {
	reader *io.PipeReader
	width  int
	height int
}

func (s *rawFrameStream) Next() (*entity.Frame, error) {
	buf := make([]byte, s.width*s.height*4)
	if _, err := io.ReadFull(s.reader, buf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: truncated frame at end of stream", entity.ErrDecodeFrame)
		}
		return nil, err
	}
	return &entity.Frame{
		Width:  s.width,
		Height: s.height,
		Format: entity.PixelFormatRGBA,
		Data:   buf,
	}, nil
}

func (s *rawFrameStream) Close() error {
	return s.reader.Close()
}
