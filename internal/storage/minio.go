package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sellerdesk/stockwise/backend-go/internal/config"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// MinioArchive writes provider payloads to an S3-compatible bucket,
// one object per fetch, keyed by store, dataset and write time.
type MinioArchive struct {
	client *minio.Client
	bucket string
	clock  func() time.Time
}

// NewMinioArchive connects to the configured endpoint and ensures the
// bucket exists.
func NewMinioArchive(cfg config.ArchiveConfig) (*MinioArchive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("archive client init failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("archive bucket check failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("archive bucket create failed: %w", err)
		}
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket, clock: time.Now}, nil
}

func (a *MinioArchive) ArchivePayload(ctx context.Context, dataset domain.Dataset, storeID string, payload []byte) error {
	key := fmt.Sprintf("%s/%s/%s.json", storeID, dataset, a.clock().UTC().Format("2006-01-02T15-04-05"))

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("archive upload failed: %w", err)
	}
	return nil
}

var _ SnapshotArchive = (*MinioArchive)(nil)
