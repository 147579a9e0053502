package models

import (
	"time"

	"gorm.io/gorm"
)

// StoryTTL is how long a story stays visible after creation.
const StoryTTL = 24 * time.Hour

// Story is an ephemeral media post. ExpiresAt is fixed at creation and never
// refreshed; expired rows are filtered out of reads, not deleted.
type Story struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	MediaURL  string    `gorm:"not null" json:"media_url"`
	MediaType string    `gorm:"not null" json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

// BeforeCreate stamps the expiry when the caller did not set one.
func (s *Story) BeforeCreate(_ *gorm.DB) error {
	if s.ExpiresAt.IsZero() {
		base := s.CreatedAt
		if base.IsZero() {
			base = time.Now().UTC()
			s.CreatedAt = base
		}
		s.ExpiresAt = base.Add(StoryTTL)
	}
	return nil
}
