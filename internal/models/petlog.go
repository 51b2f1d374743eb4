package models

import (
	"time"
)

// PetLog is one feeding/health diary entry. Comment threads and Q&A
// threads both hang off a log.
type PetLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Lid       string    `gorm:"uniqueIndex;size:8;not null" json:"lid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	PetName   string    `gorm:"size:50;not null" json:"pet_name"`
	PetKind   string    `gorm:"size:30" json:"pet_kind"` // dog, cat, ...
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	ProductID *uint     `gorm:"index" json:"product_id"` // Fed product, optional
	Product   *Product  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Denormalized comment counter, maintained by the counter side channel.
	CommentCount int `gorm:"default:0" json:"comment_count"`
}
