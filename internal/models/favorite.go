package models

import (
	"time"
)

// Favorite bookmarks a product for a user.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_product_fav" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_user_product_fav" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
