package activity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/repository"
	"github.com/sahilchouksey/actividades-api/services"
	"github.com/sahilchouksey/actividades-api/services/storage"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/query"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"github.com/sahilchouksey/actividades-api/utils/validation"
	"gorm.io/gorm"
)

const notFoundMessage = "Actividad not found"

// ActivityHandler handles activity-related requests
type ActivityHandler struct {
	store        repository.Store[model.Activity]
	associations *services.AssociationService
	images       storage.ImageStore
	validator    *validation.Validator
	log          *utils.Logger
}

// NewActivityHandler creates a new activity handler. images may be nil,
// in which case uploads answer 503.
func NewActivityHandler(db *gorm.DB, images storage.ImageStore, log *utils.Logger) *ActivityHandler {
	return &ActivityHandler{
		store:        repository.NewActivityStore(db),
		associations: services.NewAssociationService(db),
		images:       images,
		validator:    validation.NewValidator(),
		log:          log.With("handler", "activity"),
	}
}

// CreateActivityRequest represents the request body for creating an activity
type CreateActivityRequest struct {
	Title          string  `json:"titulo" validate:"required,max=255"`
	Description    string  `json:"descripcion" validate:"required"`
	Schedule       string  `json:"horario" validate:"required,max=255"`
	EducationStage string  `json:"etapa_educativa" validate:"required,max=255"`
	Fee            *int    `json:"cuota" validate:"required,gte=0"`
	Image          *string `json:"image" validate:"omitempty,max=255"`
}

// UpdateActivityRequest represents the request body for updating an activity
type UpdateActivityRequest struct {
	Title          *string `json:"titulo" validate:"omitempty,min=1,max=255"`
	Description    *string `json:"descripcion" validate:"omitempty,min=1"`
	Schedule       *string `json:"horario" validate:"omitempty,min=1,max=255"`
	EducationStage *string `json:"etapa_educativa" validate:"omitempty,min=1,max=255"`
	Fee            *int    `json:"cuota" validate:"omitempty,gte=0"`
	Image          *string `json:"image" validate:"omitempty,max=255"`
}

// ListActivities handles GET /api/v1/actividades
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	activities, err := h.store.List(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, activities)
}

// GetActivity handles GET /api/v1/actividades/:id
func (h *ActivityHandler) GetActivity(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	activity, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, activity)
}

// CreateActivity handles POST /api/v1/actividades
func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	var req CreateActivityRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Sanitize inputs
	req.Title = validation.SanitizeString(req.Title)
	req.Description = validation.SanitizeString(req.Description)
	req.Schedule = validation.SanitizeString(req.Schedule)
	req.EducationStage = validation.SanitizeString(req.EducationStage)
	req.Image = validation.SanitizePtr(req.Image)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	activity := model.Activity{
		Title:          req.Title,
		Description:    req.Description,
		Schedule:       req.Schedule,
		EducationStage: req.EducationStage,
		Fee:            *req.Fee,
		Image:          req.Image,
	}
	if err := h.store.Create(c.UserContext(), &activity); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("activity created", "id", activity.ID)
	return response.CreatedWithMessage(c, "Activity created successfully", activity)
}

// UpdateActivity handles PUT /api/v1/actividades/:id
func (h *ActivityHandler) UpdateActivity(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	var req UpdateActivityRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Title = validation.SanitizePtr(req.Title)
	req.Description = validation.SanitizePtr(req.Description)
	req.Schedule = validation.SanitizePtr(req.Schedule)
	req.EducationStage = validation.SanitizePtr(req.EducationStage)
	req.Image = validation.SanitizePtr(req.Image)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	fields := query.UpdateFields(req)
	query.NullFields(c.Body(), fields, "image")

	activity, err := h.store.Update(c.UserContext(), id, fields)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Activity updated successfully", activity)
}

// DeleteActivity handles DELETE /api/v1/actividades/:id
func (h *ActivityHandler) DeleteActivity(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("activity deleted", "id", id)
	return response.NoContent(c)
}
