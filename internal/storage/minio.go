// Package storage writes export documents to an S3 compatible bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/linskybing/formbuilder-go/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const defaultURLExpiry = time.Hour

type MinioStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinioStore connects to the endpoint and creates the bucket if it does
// not exist yet.
func NewMinioStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("bucket created", zap.String("bucket", cfg.Bucket))
	}

	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = defaultURLExpiry
	}
	log.Info("object storage connected", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
	return &MinioStore{client: client, bucket: cfg.Bucket, expiry: expiry}, nil
}

func (s *MinioStore) PutObject(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", name, err)
	}
	return nil
}

// PresignedGetURL returns a time limited download link for name.
func (s *MinioStore) PresignedGetURL(ctx context.Context, name string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, name, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", name, err)
	}
	return u.String(), nil
}
