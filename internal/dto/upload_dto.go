package dto

import (
	"time"

	"github.com/google/uuid"
)

// PresignedURLRequest asks for a direct upload URL
// @Description kind is one of avatar, workspace_logo, board_background, card_cover
// @Description ownerId is the workspace, board or card the image belongs to (ignored for avatar)
type PresignedURLRequest struct {
	Kind        string    `json:"kind" binding:"required,oneof=avatar workspace_logo board_background card_cover" example:"board_background"`
	OwnerID     uuid.UUID `json:"ownerId" example:"539167fb-b599-41ba-9ead-344a6d0b3a2f"`
	FileName    string    `json:"fileName" binding:"required,min=1,max=255" example:"sunset.png"`
	ContentType string    `json:"contentType" binding:"required" example:"image/png"`
	FileSize    int64     `json:"fileSize" binding:"required,min=1" example:"204800"`
}

// PresignedURLResponse carries the upload URL and the public URL of the object
type PresignedURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	FileURL   string    `json:"fileUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}
