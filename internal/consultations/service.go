package consultations

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pawar-yoga/studio-backend/internal/repo"
	"github.com/pawar-yoga/studio-backend/pkg/db/models"
	"github.com/pawar-yoga/studio-backend/pkg/enums"
	pkgerrors "github.com/pawar-yoga/studio-backend/pkg/errors"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Column widths of consultation_requests.name and contact.
const (
	MaxNameLen    = 100
	MaxContactLen = 100
)

type txRunner interface {
	DB() *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SubmitInput is a visitor's consultation request.
type SubmitInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Notes   string `json:"notes"`
}

// Service runs the consultation review workflow: visitors submit, the
// administrator accepts or rejects.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (uint64, error)
	Transition(ctx context.Context, id uint64, action string) (enums.ConsultationStatus, error)
	List(ctx context.Context) ([]models.ConsultationRequest, error)
	Get(ctx context.Context, id uint64) (*models.ConsultationRequest, error)
}

type service struct {
	db      txRunner
	repo    *Repository
	metrics *metrics.StudioMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs the workflow. metrics may be nil.
func NewService(db txRunner, m *metrics.StudioMetrics, logg *logger.Logger) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		db:      db,
		repo:    NewRepository(db.DB()),
		metrics: m,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (uint64, error) {
	name := strings.TrimSpace(input.Name)
	contact := strings.TrimSpace(input.Contact)
	if name == "" || contact == "" {
		s.metrics.IncFailure("consultation.submit", string(pkgerrors.CodeValidation))
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Name and Contact are required.")
	}
	if err := checkLengths(name, contact); err != nil {
		s.metrics.IncFailure("consultation.submit", string(pkgerrors.CodeValidation))
		return 0, err
	}

	req := &models.ConsultationRequest{
		Name:        name,
		Contact:     contact,
		Notes:       strings.TrimSpace(input.Notes),
		Status:      enums.ConsultationStatusPending,
		RequestedOn: s.now().UTC(),
	}
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, req)
	})
	if err != nil {
		s.metrics.IncFailure("consultation.submit", string(pkgerrors.CodeStorage))
		s.logg.Error(ctx, "consultation.submit_failed", err)
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "insert consultation request")
	}

	s.metrics.IncSubmission()
	s.logg.Info(s.logg.WithField(ctx, "consultation_id", req.ID), "consultation.submitted")
	return req.ID, nil
}

// Transition applies an administrator decision. Decided requests may be
// decided again so a mistake can be corrected.
func (s *service) Transition(ctx context.Context, id uint64, action string) (enums.ConsultationStatus, error) {
	parsed, err := enums.ParseConsultationAction(action)
	if err != nil {
		s.metrics.IncFailure("consultation.transition", string(pkgerrors.CodeInvalidAction))
		return "", pkgerrors.Wrap(pkgerrors.CodeInvalidAction, err, "Invalid action.")
	}
	status, _ := parsed.TargetStatus()

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).UpdateStatus(ctx, id, status)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "update consultation status")
		}
		if affected == 0 {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "Request ID %d not found.", id)
		}
		return nil
	})
	if err != nil {
		s.metrics.IncFailure("consultation.transition", string(codeOf(err)))
		return "", err
	}

	s.metrics.IncTransition(status.String())
	ctx = s.logg.WithFields(ctx, map[string]any{"consultation_id": id, "status": status.String()})
	s.logg.Info(ctx, "consultation.transitioned")
	return status, nil
}

func (s *service) List(ctx context.Context) ([]models.ConsultationRequest, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "list consultation requests")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uint64) (*models.ConsultationRequest, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "Request ID %d not found.", id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load consultation request")
	}
	return req, nil
}

func codeOf(err error) pkgerrors.Code {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Code()
	}
	return pkgerrors.CodeInternal
}

func checkLengths(name, contact string) error {
	if utf8.RuneCountInString(name) > MaxNameLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Name must be at most %d characters", MaxNameLen))
	}
	if utf8.RuneCountInString(contact) > MaxContactLen {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("Contact must be at most %d characters", MaxContactLen))
	}
	return nil
}
