package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// StorageClient abstracts the blob store so handlers and tests do not
// depend on a live bucket. A nil client is valid: file content then
// lives in the database only.
type StorageClient interface {
	Upload(ctx context.Context, objectName string, content []byte) error
	Download(ctx context.Context, objectName string) ([]byte, error)
	Delete(ctx context.Context, objectName string) error
	ListObjects(ctx context.Context, prefix string) ([]string, error)
}

// CloudStorageClient implements StorageClient on a Google Cloud Storage bucket.
type CloudStorageClient struct {
	client *storage.Client
	bucket string
}

// NewCloudStorageClient connects to the bucket named by GCS_BUCKET_NAME.
// Returns nil without error when the variable is unset, which keeps
// local development working without cloud credentials.
func NewCloudStorageClient(ctx context.Context) (*CloudStorageClient, error) {
	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &CloudStorageClient{client: client, bucket: bucket}, nil
}

func (s *CloudStorageClient) Upload(ctx context.Context, objectName string, content []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	writer := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}
	return nil
}

func (s *CloudStorageClient) Download(ctx context.Context, objectName string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	reader, err := s.client.Bucket(s.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", objectName, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectName, err)
	}
	return content, nil
}

func (s *CloudStorageClient) Delete(ctx context.Context, objectName string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.client.Bucket(s.bucket).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", objectName, err)
	}
	return nil
}

func (s *CloudStorageClient) ListObjects(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects under %s: %w", prefix, err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}
