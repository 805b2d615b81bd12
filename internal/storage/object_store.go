package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"siteforge/internal/util"
)

// MinioStore implements MediaStore on MinIO/S3 compatible storage. The
// returned reference is the object's public path-style URL, so the bucket
// is expected to allow anonymous reads.
type MinioStore struct {
	client *minio.Client
	bucket string
	scheme string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &MinioStore{client: client, bucket: bucket, scheme: scheme}, nil
}

// Put uploads the image under a fresh key and returns its URL.
func (m *MinioStore) Put(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := util.NewID() + extFor(filename, contentType)
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("%s://%s/%s/%s", m.scheme, m.client.EndpointURL().Host, m.bucket, key), nil
}
