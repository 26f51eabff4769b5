package migrate

import (
	"fmt"

	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&models.Product{},
		&models.GalleryImage{},
		&models.ConsultationRequest{},
	}
}

// AutoMigrate builds the schema from the gorm models. The goose files are
// Postgres SQL, so embedded SQLite databases (local runs and tests) use this
// instead.
func AutoMigrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db is required")
	}
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
