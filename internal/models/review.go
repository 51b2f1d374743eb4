package models

import (
	"time"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Rid       string    `gorm:"uniqueIndex;size:8;not null" json:"rid"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   Product   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"` // Markdown source
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Denormalized comment counter, maintained by the counter side channel.
	CommentCount int `gorm:"default:0" json:"comment_count"`
}
