package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	appConfig "taskboard-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Upload kinds accepted by GenerateFileKey
const (
	KindAvatar          = "avatar"
	KindWorkspaceLogo   = "workspace_logo"
	KindBoardBackground = "board_background"
	KindCardCover       = "card_cover"
)

var validKinds = map[string]string{
	KindAvatar:          "avatars",
	KindWorkspaceLogo:   "workspaces",
	KindBoardBackground: "boards",
	KindCardCover:       "cards",
}

// S3ClientInterface defines the interface for S3 operations
type S3ClientInterface interface {
	GenerateFileKey(kind, ownerID, fileExt string) (string, error)
	GeneratePresignedURL(ctx context.Context, kind, ownerID, fileName, contentType string) (url string, key string, err error)
	GetFileURL(key string) string
	PresignTTL() time.Duration
}

// S3Client wraps AWS S3 client and implements S3ClientInterface
type S3Client struct {
	presignClient  *s3.PresignClient
	bucket         string
	region         string
	endpoint       string
	publicEndpoint string
	ttl            time.Duration
}

// NewS3Client creates a new S3 client. With an endpoint (MinIO and friends)
// static credentials are required and path-style addressing is used.
func NewS3Client(cfg *appConfig.S3Config) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &S3Client{
		presignClient:  s3.NewPresignClient(s3Client),
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		publicEndpoint: cfg.PublicEndpoint,
		ttl:            ttl,
	}, nil
}

// GenerateFileKey generates a unique object key
// Format: {prefix}/{ownerId}/{year}/{month}/{uuid}{ext}
func (c *S3Client) GenerateFileKey(kind, ownerID, fileExt string) (string, error) {
	return generateFileKey(kind, ownerID, fileExt, time.Now().UTC())
}

func generateFileKey(kind, ownerID, fileExt string, now time.Time) (string, error) {
	prefix, ok := validKinds[kind]
	if !ok {
		return "", fmt.Errorf("invalid upload kind: %q", kind)
	}
	if ownerID == "" {
		return "", fmt.Errorf("owner id is required")
	}
	return fmt.Sprintf("%s/%s/%s/%s/%s%s",
		prefix, ownerID, now.Format("2006"), now.Format("01"), uuid.New().String(), strings.ToLower(fileExt)), nil
}

// GeneratePresignedURL returns a presigned PUT URL and the key it uploads to
func (c *S3Client) GeneratePresignedURL(ctx context.Context, kind, ownerID, fileName, contentType string) (string, string, error) {
	fileKey, err := c.GenerateFileKey(kind, ownerID, filepath.Ext(fileName))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate file key: %w", err)
	}

	presignedReq, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(fileKey),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = c.ttl
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return c.rewriteHost(presignedReq.URL), fileKey, nil
}

// rewriteHost swaps the internal endpoint for the one browsers can reach
func (c *S3Client) rewriteHost(url string) string {
	if c.endpoint == "" || c.publicEndpoint == "" {
		return url
	}
	return strings.Replace(url, strings.TrimSuffix(c.endpoint, "/"), strings.TrimSuffix(c.publicEndpoint, "/"), 1)
}

// GetFileURL returns the public URL for a key
func (c *S3Client) GetFileURL(key string) string {
	if c.endpoint != "" {
		base := c.endpoint
		if c.publicEndpoint != "" {
			base = c.publicEndpoint
		}
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base, "/"), c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

func (c *S3Client) PresignTTL() time.Duration {
	return c.ttl
}
