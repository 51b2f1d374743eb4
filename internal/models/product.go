package models

import (
	"time"
)

type ProductCategory string

const (
	CategoryFeed       ProductCategory = "feed"
	CategorySnack      ProductCategory = "snack"
	CategorySupplement ProductCategory = "supplement"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BrandID     uint            `gorm:"not null;index" json:"brand_id"`
	Brand       Brand           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"brand"`
	Name        string          `gorm:"not null" json:"name"`
	Category    ProductCategory `gorm:"type:varchar(20);not null;default:'feed'" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Not database columns, filled at query time
	ReviewCount int     `gorm:"-" json:"review_count"`
	AvgRating   float64 `gorm:"-" json:"avg_rating"`
}
