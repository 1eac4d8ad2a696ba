package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// News represents a published news post that activities hang off of
type News struct {
	BaseModel
	AuthorID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_news_author_id" json:"authorId"`
	Title      string         `gorm:"type:varchar(255);not null" json:"title"`
	FileURL    string         `gorm:"not null;default:''" json:"fileUrl"`
	Thumbnail  *string        `json:"thumbnail,omitempty"`
	PreviewURL *string        `json:"previewUrl,omitempty"`
	Tags       datatypes.JSON `gorm:"type:jsonb" json:"tags"`

	// Relations
	Activities []Activity `gorm:"foreignKey:NewsID" json:"activities,omitempty"`
}

// TableName specifies the table name for News
func (News) TableName() string {
	return "news"
}
