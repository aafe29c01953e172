package client

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/internal/config"
)

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Bucket:     "test-bucket",
		Region:     "ap-northeast-2",
		AccessKey:  "test-access-key",
		SecretKey:  "test-secret-key",
		PresignTTL: 5 * time.Minute,
	}
}

func TestGenerateFileKey(t *testing.T) {
	now := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		kind       string
		ownerID    string
		wantPrefix string
		wantErr    bool
	}{
		{"avatar", KindAvatar, "user-1", "avatars/user-1/2026/02/", false},
		{"workspace logo", KindWorkspaceLogo, "ws-1", "workspaces/ws-1/2026/02/", false},
		{"board background", KindBoardBackground, "board-1", "boards/board-1/2026/02/", false},
		{"card cover", KindCardCover, "card-1", "cards/card-1/2026/02/", false},
		{"unknown kind", "attachment", "x", "", true},
		{"missing owner", KindAvatar, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := generateFileKey(tt.kind, tt.ownerID, ".PNG", now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(key, tt.wantPrefix), key)
			assert.True(t, strings.HasSuffix(key, ".png"), key)
		})
	}
}

func TestGenerateFileKey_Uniqueness(t *testing.T) {
	client, err := NewS3Client(testS3Config())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := client.GenerateFileKey(KindCardCover, "card", ".jpg")
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestGeneratePresignedURL(t *testing.T) {
	client, err := NewS3Client(testS3Config())
	require.NoError(t, err)

	url, key, err := client.GeneratePresignedURL(context.Background(), KindBoardBackground, "board-1", "sunset.jpg", "image/jpeg")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "boards/board-1/"))
	assert.Contains(t, url, "test-bucket")
	assert.Contains(t, url, key)
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=300")
	assert.Equal(t, 5*time.Minute, client.PresignTTL())
}

func TestGeneratePresignedURL_PublicEndpointRewrite(t *testing.T) {
	cfg := testS3Config()
	cfg.Endpoint = "http://minio:9000"
	cfg.PublicEndpoint = "http://localhost:9000"

	client, err := NewS3Client(cfg)
	require.NoError(t, err)

	url, key, err := client.GeneratePresignedURL(context.Background(), KindAvatar, "user-1", "me.png", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/test-bucket/"), url)
	assert.Equal(t, "http://localhost:9000/test-bucket/"+key, client.GetFileURL(key))
}

func TestNewS3Client_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*config.S3Config)
		errContains string
	}{
		{"missing bucket", func(c *config.S3Config) { c.Bucket = "" }, "bucket is required"},
		{"missing region", func(c *config.S3Config) { c.Region = "" }, "region is required"},
		{"endpoint without keys", func(c *config.S3Config) {
			c.Endpoint = "http://minio:9000"
			c.AccessKey = ""
		}, "access key and secret key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testS3Config()
			tt.mutate(cfg)
			_, err := NewS3Client(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestGetFileURL_AWS(t *testing.T) {
	client, err := NewS3Client(testS3Config())
	require.NoError(t, err)
	assert.Equal(t, "https://test-bucket.s3.ap-northeast-2.amazonaws.com/avatars/a.png", client.GetFileURL("avatars/a.png"))
}

func TestMockS3Client(t *testing.T) {
	m := NewMockS3Client()
	url, key, err := m.GeneratePresignedURL(context.Background(), KindCardCover, "card-1", "c.webp", "image/webp")
	require.NoError(t, err)
	assert.Contains(t, url, key)

	_, _, err = m.GeneratePresignedURL(context.Background(), "bogus", "card-1", "c.webp", "image/webp")
	assert.Error(t, err)
}
