package port

import (
	"context"
	"io"
)

// ObjectStorage fetches input videos and publishes run outputs by object key.
type ObjectStorage interface {
	FetchVideo(ctx context.Context, objectKey string, destPath string) error
	PublishVideo(ctx context.Context, objectKey string, srcPath string) error
	PublishArchive(ctx context.Context, objectKey string, reader io.Reader, size int64) error
}

// Archiver bundles a staged frame sequence into one archive file.
type Archiver interface {
	CreateArchive(ctx context.Context, filePaths []string, outputPath string) error
}
