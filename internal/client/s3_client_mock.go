package client

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// MockS3Client implements S3ClientInterface for testing without AWS credentials
type MockS3Client struct {
	Bucket string
	TTL    time.Duration

	GeneratePresignedURLFunc func(ctx context.Context, kind, ownerID, fileName, contentType string) (string, string, error)
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{Bucket: "test-bucket", TTL: 15 * time.Minute}
}

func (m *MockS3Client) GenerateFileKey(kind, ownerID, fileExt string) (string, error) {
	return generateFileKey(kind, ownerID, fileExt, time.Now().UTC())
}

func (m *MockS3Client) GeneratePresignedURL(ctx context.Context, kind, ownerID, fileName, contentType string) (string, string, error) {
	if m.GeneratePresignedURLFunc != nil {
		return m.GeneratePresignedURLFunc(ctx, kind, ownerID, fileName, contentType)
	}
	key, err := m.GenerateFileKey(kind, ownerID, filepath.Ext(fileName))
	if err != nil {
		return "", "", err
	}
	return fmt.Sprintf("https://%s.s3.mock.amazonaws.com/%s?X-Amz-Signature=mock", m.Bucket, key), key, nil
}

func (m *MockS3Client) GetFileURL(key string) string {
	return fmt.Sprintf("https://%s.s3.mock.amazonaws.com/%s", m.Bucket, key)
}

func (m *MockS3Client) PresignTTL() time.Duration {
	return m.TTL
}
