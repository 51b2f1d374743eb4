package models

import (
	"time"
)

type Brand struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;unique" json:"name"`
	Country     string    `gorm:"size:50" json:"country"`
	Description string    `json:"description"`
	SiteURL     string    `json:"site_url"` // Optional official site
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
