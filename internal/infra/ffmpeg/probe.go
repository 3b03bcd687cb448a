package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/framepipe/framepipe/internal/domain/entity"
)

// Prober opens containers with ffprobe. Probe reads the stream table;
// CountVideoPackets performs the full forward packet scan that most
// containers need before the total frame count is known.
type Prober struct {
	bin    string
	logger *zap.Logger
}

func NewProber(bin string, logger *zap.Logger) *Prober {
	return &Prober{bin: bin, logger: logger}
}

type probeStream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	Width         int    `json:"width,omitempty"`
	Height        int    `json:"height,omitempty"`
	PixFmt        string `json:"pix_fmt,omitempty"`
	TimeBase      string `json:"time_base"`
	RFrameRate    string `json:"r_frame_rate"`
	AvgFrameRate  string `json:"avg_frame_rate"`
	NbReadPackets string `json:"nb_read_packets,omitempty"`
}

type probeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

func (p *Prober) Probe(ctx context.Context, path string) (*entity.VideoInfo, error) {
	out, err := p.run(ctx,
		"-v", "error",
		"-show_format",
		"-show_streams",
		"-of", "json",
		path,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrOpen, path, err)
	}

	info, err := decodeProbeOutput(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrStreamInfo, path, err)
	}
	info.Path = path
	return info, nil
}

func (p *Prober) CountVideoPackets(ctx context.Context, path string, streamIndex int) (int, error) {
	out, err := p.run(ctx,
		"-v", "error",
		"-select_streams", strconv.Itoa(streamIndex),
		"-count_packets",
		"-show_entries", "stream=nb_read_packets",
		"-of", "json",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: count packets in %s: %v", entity.ErrStreamInfo, path, err)
	}

	count, err := decodePacketCount(out)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", entity.ErrStreamInfo, path, err)
	}
	p.logger.Debug("counted video packets",
		zap.String("path", path),
		zap.Int("stream", streamIndex),
		zap.Int("packets", count),
	)
	return count, nil
}

func (p *Prober) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, p.bin, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("ffprobe: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("ffprobe: %w", err)
	}
	return out, nil
}

func decodeProbeOutput(data []byte) (*entity.VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse probe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return nil, fmt.Errorf("no streams reported")
	}

	info := &entity.VideoInfo{
		FormatName:       out.Format.FormatName,
		VideoStreamIndex: -1,
	}
	if out.Format.Duration != "" {
		if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}
	for _, s := range out.Streams {
		info.Streams = append(info.Streams, entity.StreamInfo{
			Index:        s.Index,
			CodecType:    s.CodecType,
			CodecName:    s.CodecName,
			Width:        s.Width,
			Height:       s.Height,
			PixelFormat:  s.PixFmt,
			TimeBase:     s.TimeBase,
			FrameRate:    s.RFrameRate,
			AvgFrameRate: s.AvgFrameRate,
		})
		if s.CodecType == "video" && info.VideoStreamIndex < 0 {
			info.VideoStreamIndex = s.Index
		}
	}
	return info, nil
}

func decodePacketCount(data []byte) (int, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return 0, fmt.Errorf("parse packet count: %w", err)
	}
	if len(out.Streams) == 0 {
		return 0, fmt.Errorf("no stream selected for packet count")
	}
	count, err := strconv.Atoi(out.Streams[0].NbReadPackets)
	if err != nil {
		return 0, fmt.Errorf("parse nb_read_packets %q: %w", out.Streams[0].NbReadPackets, err)
	}
	return count, nil
}
