package port

import (
	"context"

	"github.com/framepipe/framepipe/internal/domain/entity"
)

// FrameSink serializes one decoded frame losslessly to a named file. No
// partially written file survives the successful path.
type FrameSink interface {
	Save(ctx context.Context, frame *entity.Frame, path string) error
}

// FrameSource enumerates a staged frame sequence and decodes its files.
// List returns regular files with the lossless-image extension in ascending
// lexical order; that sort is the sole ordering mechanism for a combine run.
type FrameSource interface {
	List(dir string) ([]string, error)
	Decode(path string) (*entity.Frame, error)
}
