package imaging

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framepipe/framepipe/internal/domain/entity"
	"github.com/framepipe/framepipe/internal/domain/sequence"
)

// PNGSource enumerates and decodes a staged frame sequence. Ordering comes
// from the lexical sort of the zero-padded filenames, never from directory
// or creation order.
type PNGSource struct{}

func NewPNGSource() *PNGSource {
	return &PNGSource{}
}

func (s *PNGSource) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read frame dir %s: %v", entity.ErrOpen, dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), sequence.FrameExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

func (s *PNGSource) Decode(path string) (*entity.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", entity.ErrOpen, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", entity.ErrDecodeFrame, path, err)
	}
	return imageToFrame(img)
}
