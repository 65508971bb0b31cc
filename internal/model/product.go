package model

import "time"

// Product is read by the AI product-lookup tool. There is no HTTP CRUD
// surface for it; rows are managed out of band.
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	BusinessID  int64     `gorm:"column:business_id;index"`
	Name        string    `gorm:"column:name;size:120"`
	Description string    `gorm:"column:description;type:text"`
	Price       float64   `gorm:"column:price"`
	ImageURL    *string   `gorm:"column:image_url;size:255"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}
