package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const objectPrefix = "products/"

// S3Storage keeps product images in a MinIO (S3 compatible) bucket.
type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *logger.Logger
}

// NewS3Storage connects to cfg.Endpoint and creates the bucket if it is missing.
func NewS3Storage(ctx context.Context, cfg *config.MinIOConfig, log *logger.Logger) (*S3Storage, error) {
	log = log.Named("S3Storage")
	log.Info("Initializing MinIO storage",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("use_ssl", cfg.UseSSL))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("Bucket created", zap.String("bucket", cfg.Bucket))
	}

	base := strings.TrimRight(cfg.PublicURL, "/")
	if base == "" {
		base = client.EndpointURL().String()
	}

	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: base,
		logger:  log,
	}, nil
}

// Upload stores data under a fresh products/<uuid><ext> key and returns its URL.
func (s *S3Storage) Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	key := objectKey(fileName)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: map[string]string{"original-filename": filepath.Base(fileName)},
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	s.logger.Info("Image uploaded",
		zap.String("key", info.Key),
		zap.String("etag", info.ETag),
		zap.Int64("size", info.Size))
	return objectURL(s.baseURL, s.bucket, key), nil
}

// Remove deletes the object behind url. URLs outside this bucket are rejected.
func (s *S3Storage) Remove(ctx context.Context, rawURL string) error {
	key, err := objectKeyFromURL(s.bucket, rawURL)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", key, s.bucket, err)
	}
	s.logger.Debug("Image removed", zap.String("key", key))
	return nil
}

func objectKey(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return objectPrefix + uuid.NewString() + ext
}

func objectURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", baseURL, bucket, key)
}

func objectKeyFromURL(bucket, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid image url %q: %w", rawURL, err)
	}
	p := path.Clean("/" + u.Path)
	prefix := "/" + bucket + "/"
	idx := strings.Index(p, prefix)
	if idx < 0 {
		return "", fmt.Errorf("image url %q is not in bucket %s", rawURL, bucket)
	}
	key := p[idx+len(prefix):]
	if key == "" {
		return "", fmt.Errorf("image url %q has no object key", rawURL)
	}
	return key, nil
}
