package book

import (
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

const notFoundMessage = "Book not found"

type BookHandler struct {
	store     repository.Store[model.Book]
	validator *validation.Validator
	log       *utils.Logger
}

func NewBookHandler(db *gorm.DB, log *utils.Logger) *BookHandler {
	return &BookHandler{
		store:     repository.NewBookStore(db),
		validator: validation.NewValidator(),
		log:       log.With("handler", "book"),
	}
}

type CreateBookRequest struct {
	Title  string `json:"title" validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=255"`
}

type UpdateBookRequest struct {
	Title  *string `json:"title" validate:"omitempty,min=1,max=255"`
	Author *string `json:"author" validate:"omitempty,min=1,max=255"`
}

// ListBooks handles GET /api/v1/books
func (h *BookHandler) ListBooks(c *fiber.Ctx) error {
	books, err := h.store.List(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, books)
}

// GetBook handles GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	book, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, book)
}

// CreateBook handles POST /api/v1/books
func (h *BookHandler) CreateBook(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Title = validation.SanitizeString(req.Title)
	req.Author = validation.SanitizeString(req.Author)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	book := model.Book{Title: req.Title, Author: req.Author}
	if err := h.store.Create(c.UserContext(), &book); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Created(c, book)
}

// UpdateBook handles PUT /api/v1/books/:id
func (h *BookHandler) UpdateBook(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	var req UpdateBookRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Title = validation.SanitizePtr(req.Title)
	req.Author = validation.SanitizePtr(req.Author)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	book, err := h.store.Update(c.UserContext(), id, query.UpdateFields(req))
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, book)
}

// DeleteBook handles DELETE /api/v1/books/:id
func (h *BookHandler) DeleteBook(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Book deleted successfully", nil)
}
