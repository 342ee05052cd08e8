package enrollment

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/repository"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/query"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"github.com/sahilchouksey/actividades-api/utils/validation"
	"gorm.io/gorm"
)

const notFoundMessage = "Solicitud not found"

// EnrollmentHandler exposes the enrollment requests created by attaching students to activities
type EnrollmentHandler struct {
	store     repository.Store[model.EnrollmentRequest]
	validator *validation.Validator
	log       *utils.Logger
}

func NewEnrollmentHandler(db *gorm.DB, log *utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		store:     repository.NewEnrollmentStore(db),
		validator: validation.NewValidator(),
		log:       log.With("handler", "enrollment"),
	}
}

// UpdateEnrollmentRequest changes the state or date of a request
type UpdateEnrollmentRequest struct {
	Status      *string    `json:"estado" validate:"omitempty,oneof=pendiente aceptada rechazada"`
	RequestedAt *time.Time `json:"fecha"`
}

// ListEnrollments handles GET /api/v1/solicitudes
func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.store.List(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, enrollments)
}

// GetEnrollment handles GET /api/v1/solicitudes/:id
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	enrollment, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, enrollment)
}

// UpdateEnrollment handles PUT /api/v1/solicitudes/:id
func (h *EnrollmentHandler) UpdateEnrollment(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	var req UpdateEnrollmentRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	enrollment, err := h.store.Update(c.UserContext(), id, query.UpdateFields(req))
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("enrollment request updated", "id", id, "estado", enrollment.Status)
	return response.SuccessWithMessage(c, "Enrollment request updated successfully", enrollment)
}
