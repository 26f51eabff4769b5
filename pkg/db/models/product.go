package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry shown on the home page.
type Product struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string          `gorm:"column:name;not null"`
	Description   string          `gorm:"column:description;not null"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	ImageFilename string          `gorm:"column:image_filename;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string {
	return "products"
}
