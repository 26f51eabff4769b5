package consultations

import (
	"time"

	"github.com/pawar-yoga/studio-backend/pkg/db/models"
)

// RequestDTO is a consultation request as the admin dashboard shows it.
type RequestDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	RequestedOn time.Time `json:"requested_on"`
}

func NewRequestDTOs(rows []models.ConsultationRequest) []RequestDTO {
	out := make([]RequestDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, RequestDTO{
			ID:          r.ID,
			Name:        r.Name,
			Contact:     r.Contact,
			Notes:       r.Notes,
			Status:      r.Status.String(),
			RequestedOn: r.RequestedOn,
		})
	}
	return out
}
