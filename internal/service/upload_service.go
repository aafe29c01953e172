package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard-api/internal/client"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// MaxImageSize is the largest image accepted for direct upload (10MB)
const MaxImageSize = 10 * 1024 * 1024

// AllowedImageTypes maps accepted content types to their file extensions
var AllowedImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
	"image/webp": {".webp"},
}

// UploadService issues presigned URLs for image uploads
type UploadService interface {
	CreatePresignedURL(ctx context.Context, actorID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error)
}

type uploadServiceImpl struct {
	s3Client client.S3ClientInterface
	cardRepo repository.CardRepository
	listRepo repository.ListRepository
	guard    *accessGuard
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewUploadService creates a new instance of UploadService. A nil S3 client
// makes every request fail with an internal error.
func NewUploadService(
	s3Client client.S3ClientInterface,
	cardRepo repository.CardRepository,
	listRepo repository.ListRepository,
	boardRepo repository.BoardRepository,
	workspaceRepo repository.WorkspaceRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) UploadService {
	return &uploadServiceImpl{
		s3Client: s3Client,
		cardRepo: cardRepo,
		listRepo: listRepo,
		guard:    newAccessGuard(boardRepo, workspaceRepo),
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *uploadServiceImpl) CreatePresignedURL(ctx context.Context, actorID uuid.UUID, req *dto.PresignedURLRequest) (*dto.PresignedURLResponse, error) {
	if s.s3Client == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "File storage is not configured", "")
	}
	if err := validateImage(req.FileName, req.ContentType, req.FileSize); err != nil {
		return nil, err
	}

	ownerID, err := s.authorizeOwner(ctx, actorID, req.Kind, req.OwnerID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	url, key, err := s.s3Client.GeneratePresignedURL(ctx, req.Kind, ownerID.String(), req.FileName, req.ContentType)
	if s.metrics != nil {
		status := 200
		if err != nil {
			status = 500
		}
		s.metrics.RecordExternalCall(metrics.TargetS3, "presign_put", status, time.Since(start), err)
	}
	if err != nil {
		s.logger.Error("Failed to generate presigned URL",
			zap.String("kind", req.Kind),
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, internalError("Failed to generate upload URL", err)
	}

	return &dto.PresignedURLResponse{
		UploadURL: url,
		FileKey:   key,
		FileURL:   s.s3Client.GetFileURL(key),
		ExpiresAt: s.now().Add(s.s3Client.PresignTTL()).UTC(),
	}, nil
}

// authorizeOwner checks the actor may change the image of the owning entity
// and returns the id used in the object key.
func (s *uploadServiceImpl) authorizeOwner(ctx context.Context, actorID uuid.UUID, kind string, ownerID uuid.UUID) (uuid.UUID, error) {
	if kind == client.KindAvatar {
		return actorID, nil
	}
	if ownerID == uuid.Nil {
		return uuid.Nil, response.NewValidationError("ownerId is required", kind)
	}

	switch kind {
	case client.KindWorkspaceLogo:
		if _, err := s.guard.requireWorkspaceAdmin(ctx, ownerID, actorID, "Only workspace admins can change the logo"); err != nil {
			return uuid.Nil, err
		}
	case client.KindBoardBackground:
		if _, _, err := s.guard.requireBoardAdmin(ctx, ownerID, actorID, "Only board admins can change the background"); err != nil {
			return uuid.Nil, err
		}
	case client.KindCardCover:
		card, err := s.cardRepo.FindByID(ctx, ownerID)
		if err != nil {
			return uuid.Nil, repoError(err, fmt.Sprintf("Card with ID %s not found", ownerID), "Failed to fetch card")
		}
		list, err := s.listRepo.FindByIDAny(ctx, card.ListID)
		if err != nil {
			return uuid.Nil, repoError(err, fmt.Sprintf("List with ID %s not found", card.ListID), "Failed to fetch list")
		}
		if _, _, err := s.guard.requireBoardMember(ctx, list.BoardID, actorID); err != nil {
			return uuid.Nil, err
		}
	default:
		return uuid.Nil, response.NewValidationError("Invalid upload kind", kind)
	}
	return ownerID, nil
}

func validateImage(fileName, contentType string, size int64) error {
	if size <= 0 {
		return response.NewValidationError("Invalid file size", "")
	}
	if size > MaxImageSize {
		return response.NewValidationError("File size exceeds 10MB limit", fmt.Sprintf("%d", size))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return response.NewValidationError("Invalid file name", "File must have an extension")
	}
	exts, ok := AllowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return response.NewValidationError("Unsupported file type", "Supported types: jpg, jpeg, png, gif, webp")
	}
	for _, e := range exts {
		if e == ext {
			return nil
		}
	}
	return response.NewValidationError("File extension does not match content type", ext)
}
