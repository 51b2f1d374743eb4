package models

import (
	"time"
)

// Vote records one upvote. The (user_id, post_id) unique pair is what
// makes Upvote a no-op on repeat calls from the same user.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post_vote" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post_vote" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
