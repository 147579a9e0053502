package models

import "time"

// Media type values for posts and stories.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Post is a piece of user content with optional attached media.
//
// UserID is a plain column, not an association: rows referencing a deleted
// or nonexistent user are permitted and never cleaned up.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	MediaURL  *string   `json:"media_url,omitempty"`
	MediaType *string   `json:"media_type,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
