package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateNewsRequest represents the request to publish a news post
type CreateNewsRequest struct {
	Title      string   `json:"title" binding:"required,max=255"`
	FileURL    string   `json:"fileUrl" binding:"required"`
	Thumbnail  *string  `json:"thumbnail,omitempty"`
	PreviewURL *string  `json:"previewUrl,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// NewsResponse represents a full news post
type NewsResponse struct {
	NewsID     uuid.UUID `json:"newsId"`
	Title      string    `json:"title"`
	FileURL    string    `json:"fileUrl"`
	Thumbnail  *string   `json:"thumbnail,omitempty"`
	PreviewURL *string   `json:"previewUrl,omitempty"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewsSummaryResponse is the trimmed projection used by the landing feed
type NewsSummaryResponse struct {
	NewsID     uuid.UUID `json:"newsId"`
	Title      string    `json:"title"`
	Thumbnail  *string   `json:"thumbnail,omitempty"`
	PreviewURL *string   `json:"previewUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
