package models

import (
	"time"
)

// Thread groups one root question post with its answers and
// comments-on-answers, scoped to a single pet log.
type Thread struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LogID     uint      `gorm:"not null;index" json:"log_id"`
	Log       PetLog    `gorm:"foreignKey:LogID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"log"`
	Title     string    `gorm:"not null" json:"title"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
