package models

import "time"

// Comment is a comment on a post. A non-nil ParentCommentID marks it as a
// reply to another comment on the same post; nesting depth is not enforced
// and the parent is never validated, so dangling parent references can occur.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PostID          uint      `gorm:"not null;index" json:"post_id"`
	UserID          uint      `gorm:"not null" json:"user_id"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id,omitempty"`
	Content         string    `gorm:"not null" json:"content"`
	CreatedAt       time.Time `json:"created_at"`
}
