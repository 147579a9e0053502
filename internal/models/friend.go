package models

import "time"

// FriendshipStatus is the state of a friend edge.
type FriendshipStatus string

const (
	// FriendshipStatusPending marks a request that has not been answered.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted marks an accepted friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	// FriendshipStatusBlocked is declared for schema compatibility but no
	// operation ever sets or checks it.
	FriendshipStatusBlocked FriendshipStatus = "blocked"
)

// Friendship is a directed friend edge: the row (UserID, FriendID) means
// UserID sent the request to FriendID.
//
// The direction matters for some queries and not others: friend and story
// listings follow outgoing accepted edges only, while removal matches the
// edge in either direction. Both behaviors are load-bearing for API
// consumers and must not be normalized to a single model.
type Friendship struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	FriendID  uint             `gorm:"not null;index" json:"friend_id"`
	Status    FriendshipStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}
