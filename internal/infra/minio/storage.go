package minio

import (
	"context"
	"fmt"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage fetches input videos from and publishes run outputs to an
// S3-compatible object store.
type Storage struct {
	client       *miniogo.Client
	inputBucket  string
	outputBucket string
}

type StorageConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UseSSL       bool
	InputBucket  string
	OutputBucket string
}

func NewStorage(cfg StorageConfig) (*Storage, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Storage{
		client:       client,
		inputBucket:  cfg.InputBucket,
		outputBucket: cfg.OutputBucket,
	}, nil
}

func (s *Storage) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.inputBucket, s.outputBucket} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{}); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

func (s *Storage) FetchVideo(ctx context.Context, objectKey string, destPath string) error {
	return s.client.FGetObject(ctx, s.inputBucket, objectKey, destPath, miniogo.GetObjectOptions{})
}

func (s *Storage) PublishVideo(ctx context.Context, objectKey string, srcPath string) error {
	_, err := s.client.FPutObject(ctx, s.outputBucket, objectKey, srcPath, miniogo.PutObjectOptions{
		ContentType: "video/mp4",
	})
	if err != nil {
		return fmt.Errorf("publish video: %w", err)
	}
	return nil
}

func (s *Storage) PublishArchive(ctx context.Context, objectKey string, reader io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.outputBucket, objectKey, reader, size, miniogo.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return fmt.Errorf("publish archive: %w", err)
	}
	return nil
}
