package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/framepipe/framepipe/internal/domain/entity"
	"github.com/framepipe/framepipe/internal/domain/port"
)

type fakeProber struct {
	infos    map[string]*entity.VideoInfo
	counts   map[string]int
	probeErr map[string]error
}

func newFakeProber() *fakeProber {
	return &fakeProber{
		infos:    map[string]*entity.VideoInfo{},
		counts:   map[string]int{},
		probeErr: map[string]error{},
	}
}

func (f *fakeProber) addVideo(path string, width, height, frames int) {
	f.infos[path] = &entity.VideoInfo{
		Path:       path,
		FormatName: "mov,mp4,m4a,3gp,3g2,mj2",
		Streams: []entity.StreamInfo{
			{Index: 0, CodecType: "video", CodecName: "h264", Width: width, Height: height},
		},
	}
	f.counts[path] = frames
}

func (f *fakeProber) Probe(_ context.Context, path string) (*entity.VideoInfo, error) {
	if err := f.probeErr[path]; err != nil {
		return nil, err
	}
	info, ok := f.infos[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrOpen, path)
	}
	return info, nil
}

func (f *fakeProber) CountVideoPackets(_ context.Context, path string, _ int) (int, error) {
	count, ok := f.counts[path]
	if !ok {
		return 0, fmt.Errorf("%w: %s", entity.ErrStreamInfo, path)
	}
	return count, nil
}

type fakeDecoder struct {
	frames map[string][]*entity.Frame
	failAt map[string]int // frame position that returns a stream error, -1 for none
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{frames: map[string][]*entity.Frame{}, failAt: map[string]int{}}
}

func (f *fakeDecoder) OpenStream(_ context.Context, info *entity.VideoInfo) (port.FrameStream, error) {
	frames, ok := f.frames[info.Path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrOpen, info.Path)
	}
	failAt := -1
	if at, ok := f.failAt[info.Path]; ok {
		failAt = at
	}
	return &fakeStream{frames: frames, failAt: failAt}, nil
}

type fakeStream struct {
	frames []*entity.Frame
	pos    int
	failAt int
}

func (s *fakeStream) Next() (*entity.Frame, error) {
	if s.failAt >= 0 && s.pos == s.failAt {
		return nil, fmt.Errorf("%w: truncated stream", entity.ErrDecodeFrame)
	}
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	return frame, nil
}

func (s *fakeStream) Close() error { return nil }

type fakeEncoder struct {
	cfg      port.EncoderConfig
	beginErr error
	session  *fakeSession
}

func newFakeEncoder(width, height int) *fakeEncoder {
	return &fakeEncoder{
		cfg: port.EncoderConfig{
			Codec: "libx264", BitRate: 8000000,
			Width: width, Height: height,
			FrameRate: 30, GOPSize: 10, MaxBFrames: 1, PixelFormat: "yuv420p",
		},
		session: &fakeSession{encodeErrAt: -1},
	}
}

func (f *fakeEncoder) Config() port.EncoderConfig { return f.cfg }

func (f *fakeEncoder) Begin(_ context.Context, outputPath string) (port.EncodeSession, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.session.output = outputPath
	return f.session, nil
}

type fakeSession struct {
	output      string
	frames      []*entity.Frame
	pts         []int64
	closes      int
	encodeErrAt int
}

func (s *fakeSession) Encode(frame *entity.Frame, pts int64) error {
	if s.encodeErrAt >= 0 && len(s.frames) == s.encodeErrAt {
		return fmt.Errorf("%w: encoder rejected frame", entity.ErrEncodeFrame)
	}
	if want := int64(len(s.pts)); pts != want {
		return fmt.Errorf("%w: pts %d, expected %d", entity.ErrEncodeFrame, pts, want)
	}
	s.frames = append(s.frames, frame)
	s.pts = append(s.pts, pts)
	return nil
}

func (s *fakeSession) Close() error {
	s.closes++
	return nil
}

func solidFrame(width, height int, r byte) *entity.Frame {
	frame := entity.NewRGBAFrame(width, height)
	for i := 0; i < len(frame.Data); i += 4 {
		frame.Data[i] = r
		frame.Data[i+3] = 0xff
	}
	return frame
}
