// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered user. Identity is established by an outside
// provider; ExternalID is the join key to it and is never generated here.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;not null" json:"external_id"`
	Name       string    `gorm:"not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}
