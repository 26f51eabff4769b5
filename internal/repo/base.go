package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Base is embedded by the studio repositories. A Base built on a
// transaction handle keeps every call inside that transaction.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// FindByID loads the row of type T with the given primary key.
func FindByID[T any](ctx context.Context, b Base, id uint64) (*T, error) {
	var row T
	if err := b.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteByID removes the row of type T and reports how many rows went away.
// Zero means another caller got there first or the id never existed.
func DeleteByID[T any](ctx context.Context, b Base, id uint64) (int64, error) {
	var model T
	res := b.DB(ctx).Where("id = ?", id).Delete(&model)
	return res.RowsAffected, res.Error
}

// IsNotFound reports whether err means the lookup matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
