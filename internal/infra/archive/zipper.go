// Package archive bundles a staged frame sequence into a single ZIP so a
// run's lossless checkpoint can be kept or published after the output video
// is written.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Zipper struct{}

func NewZipper() *Zipper {
	return &Zipper{}
}

func (z *Zipper) CreateArchive(ctx context.Context, filePaths []string, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)
	defer zipWriter.Close()

	for _, fp := range filePaths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := addFrameToArchive(zipWriter, fp); err != nil {
			return fmt.Errorf("add %s to archive: %w", fp, err)
		}
	}

	return nil
}

// addFrameToArchive stores one frame file under its base name, preserving
// the zero-padded ordering contract inside the archive.
func addFrameToArchive(zw *zip.Writer, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	header.Name = filepath.Base(filename)
	header.Method = zip.Deflate

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}
