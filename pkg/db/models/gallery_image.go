package models

import "time"

// GalleryImage is one picture on the gallery page.
type GalleryImage struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Title         string    `gorm:"column:title;not null"`
	ImageFilename string    `gorm:"column:image_filename;not null"`
	Category      string    `gorm:"column:category;not null;default:all"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (GalleryImage) TableName() string {
	return "gallery"
}
