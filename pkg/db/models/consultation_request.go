package models

import (
	"time"

	"github.com/pawar-yoga/studio-backend/pkg/enums"
)

// ConsultationRequest is a visitor asking to be contacted.
type ConsultationRequest struct {
	ID          uint64                   `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                   `gorm:"column:name;not null"`
	Contact     string                   `gorm:"column:contact;not null"`
	Notes       string                   `gorm:"column:notes;not null;default:''"`
	Status      enums.ConsultationStatus `gorm:"column:status;not null;default:pending;index"`
	RequestedOn time.Time                `gorm:"column:requested_on;not null"`
}

func (ConsultationRequest) TableName() string {
	return "consultation_requests"
}
