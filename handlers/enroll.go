package handlers

import (
	"time"

	"github.com/sahilchouksey/actividades-api/services"
)

// EnrollRequest optionally overrides the state of a new enrollment request.
// Both owning sides of the activity/student relation accept it.
type EnrollRequest struct {
	Status      *string    `json:"estado" validate:"omitempty,oneof=pendiente aceptada rechazada"`
	RequestedAt *time.Time `json:"fecha"`
}

func (r EnrollRequest) Options() services.EnrollOptions {
	return services.EnrollOptions{Status: r.Status, RequestedAt: r.RequestedAt}
}
