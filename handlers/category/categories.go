package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/repository"
	"github.com/sahilchouksey/actividades-api/services"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/query"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"github.com/sahilchouksey/actividades-api/utils/validation"
	"gorm.io/gorm"
)

const notFoundMessage = "Categoria not found"

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	store        repository.Store[model.Category]
	associations *services.AssociationService
	validator    *validation.Validator
	log          *utils.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB, log *utils.Logger) *CategoryHandler {
	return &CategoryHandler{
		store:        repository.NewCategoryStore(db),
		associations: services.NewAssociationService(db),
		validator:    validation.NewValidator(),
		log:          log.With("handler", "category"),
	}
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"nombre" validate:"required,max=255"`
	Description string `json:"descripcion" validate:"required,max=255"`
}

// UpdateCategoryRequest represents the request body for updating a category
type UpdateCategoryRequest struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=255"`
	Description *string `json:"descripcion" validate:"omitempty,min=1,max=255"`
}

// ListCategories handles GET /api/v1/categorias
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.store.List(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, categories)
}

// GetCategory handles GET /api/v1/categorias/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	category, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, category)
}

// CreateCategory handles POST /api/v1/categorias
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Description = validation.SanitizeString(req.Description)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	category := model.Category{Name: req.Name, Description: req.Description}
	if err := h.store.Create(c.UserContext(), &category); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("category created", "id", category.ID)
	return response.CreatedWithMessage(c, "Category created successfully", category)
}

// UpdateCategory handles PUT /api/v1/categorias/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	var req UpdateCategoryRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizePtr(req.Name)
	req.Description = validation.SanitizePtr(req.Description)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	category, err := h.store.Update(c.UserContext(), id, query.UpdateFields(req))
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Category updated successfully", category)
}

// DeleteCategory handles DELETE /api/v1/categorias/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("category deleted", "id", id)
	return response.NoContent(c)
}

// ListActivities handles GET /api/v1/categorias/:id/actividades
func (h *CategoryHandler) ListActivities(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	activities, err := h.associations.ActivitiesOfCategory(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, activities)
}

// AttachActivity handles POST /api/v1/categorias/:id/actividades/:actividadId
func (h *CategoryHandler) AttachActivity(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	activityID, err := query.ParseID(c, "actividadId")
	if err != nil {
		return response.NotFound(c, "Actividad not found")
	}

	if err := h.associations.AttachCategory(c.UserContext(), activityID, id); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Activity associated with category successfully.", nil)
}

// DetachActivity handles DELETE /api/v1/categorias/:id/actividades/:actividadId
func (h *CategoryHandler) DetachActivity(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	activityID, err := query.ParseID(c, "actividadId")
	if err != nil {
		return response.NotFound(c, "Actividad not found")
	}

	if err := h.associations.DetachCategoryActivity(c.UserContext(), id, activityID); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Activity disassociated from category successfully.", nil)
}
