package imaging

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/framepipe/framepipe/internal/domain/entity"
)

// Normalizer rescales frames to the canonical encoder resolution. Conversion
// is unconditional on any mismatch and skipped only when format and
// dimensions already match exactly.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Normalize(frame *entity.Frame, width, height int) (*entity.Frame, error) {
	if frame.Format != entity.PixelFormatRGBA {
		return nil, fmt.Errorf("%w: unsupported pixel format %q", entity.ErrConversion, frame.Format)
	}
	if frame.Width == width && frame.Height == height {
		return frame, nil
	}

	src, err := frameToImage(frame)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return &entity.Frame{
		Width:  width,
		Height: height,
		Format: entity.PixelFormatRGBA,
		Data:   dst.Pix,
	}, nil
}
