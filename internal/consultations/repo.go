package consultations

import (
	"context"

	"github.com/pawar-yoga/studio-backend/internal/repo"
	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"github.com/pawar-yoga/studio-backend/pkg/enums"
	"gorm.io/gorm"
)

// reviewOrder puts undecided requests first, then the newest.
const reviewOrder = "CASE WHEN status = 'pending' THEN 1 ELSE 2 END, requested_on DESC, id DESC"

// Repository persists consultation requests.
type Repository struct {
	repo.Base
}

// NewRepository binds a consultation repository to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository that runs inside tx.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

func (r *Repository) Create(ctx context.Context, req *models.ConsultationRequest) error {
	return r.DB(ctx).Create(req).Error
}

func (r *Repository) FindByID(ctx context.Context, id uint64) (*models.ConsultationRequest, error) {
	return repo.FindByID[models.ConsultationRequest](ctx, r.Base, id)
}

// List returns every request in review order.
func (r *Repository) List(ctx context.Context) ([]models.ConsultationRequest, error) {
	var rows []models.ConsultationRequest
	if err := r.DB(ctx).Order(reviewOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets the status and reports how many rows matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uint64, status enums.ConsultationStatus) (int64, error) {
	res := r.DB(ctx).
		Model(&models.ConsultationRequest{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}
