package imaging

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/framepipe/framepipe/internal/domain/entity"
)

// PNGSink writes one frame per file as a lossless PNG in the canonical RGBA
// layout, whatever pixel format the decoder produced upstream.
type PNGSink struct {
	encoder png.Encoder
}

func NewPNGSink() *PNGSink {
	return &PNGSink{encoder: png.Encoder{CompressionLevel: png.DefaultCompression}}
}

func (s *PNGSink) Save(ctx context.Context, frame *entity.Frame, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := frameToImage(frame)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", entity.ErrIO, path, err)
	}

	if err := s.encoder.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%w: encode %s: %v", entity.ErrEncodeFrame, path, err)
	}

	// Close only after the full payload is written; a close error means the
	// file cannot be trusted.
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: close %s: %v", entity.ErrIO, path, err)
	}
	return nil
}
