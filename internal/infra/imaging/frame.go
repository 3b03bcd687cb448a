package imaging

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/framepipe/framepipe/internal/domain/entity"
)

// frameToImage wraps a canonical-layout frame buffer without copying.
func frameToImage(frame *entity.Frame) (*image.RGBA, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	return &image.RGBA{
		Pix:    frame.Data,
		Stride: frame.Width * 4,
		Rect:   image.Rect(0, 0, frame.Width, frame.Height),
	}, nil
}

// imageToFrame converts any decoded image to a canonical-layout frame.
// An *image.RGBA with a tight stride is adopted without copying.
func imageToFrame(img image.Image) (*entity.Frame, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty image", entity.ErrDecodeFrame)
	}

	if rgba, ok := img.(*image.RGBA); ok &&
		rgba.Stride == width*4 && bounds.Min == (image.Point{}) {
		return &entity.Frame{
			Width:  width,
			Height: height,
			Format: entity.PixelFormatRGBA,
			Data:   rgba.Pix,
		}, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &entity.Frame{
		Width:  width,
		Height: height,
		Format: entity.PixelFormatRGBA,
		Data:   dst.Pix,
	}, nil
}
