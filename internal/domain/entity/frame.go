package entity

import "fmt"

// PixelFormat tags the in-memory layout of a raster buffer.
type PixelFormat string

// PixelFormatRGBA is the canonical staging layout: packed 8-bit RGBA,
// 4 bytes per pixel, rows tightly packed.
const PixelFormatRGBA PixelFormat = "rgba"

// Frame is one decoded raster image. It lives for a single iteration of a
// decode or encode loop and is never persisted as-is.
type Frame struct {
	Width  int
	Height int
	Format PixelFormat
	Data   []byte
}

// NewRGBAFrame allocates a zeroed canonical-layout frame.
func NewRGBAFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Format: PixelFormatRGBA,
		Data:   make([]byte, width*height*4),
	}
}

// Validate checks that the buffer matches the declared geometry.
func (f *Frame) Validate() error {
	if f.Format != PixelFormatRGBA {
		return fmt.Errorf("%w: unsupported pixel format %q", ErrConversion, f.Format)
	}
	if want := f.Width * f.Height * 4; len(f.Data) != want {
		return fmt.Errorf("%w: buffer size %d, want %d for %dx%d rgba",
			ErrConversion, len(f.Data), want, f.Width, f.Height)
	}
	return nil
}
