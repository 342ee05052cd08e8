package product

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/database"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/repository"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/query"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"github.com/sahilchouksey/actividades-api/utils/validation"
	"gorm.io/gorm"
)

// PerPage is the size of a product listing page
const PerPage = 10

const notFoundMessage = "Product Not Found"

// ProductHandler handles product requests. Writes run in a transaction.
type ProductHandler struct {
	db        *gorm.DB
	store     repository.Store[model.Product]
	validator *validation.Validator
	log       *utils.Logger
}

func NewProductHandler(db *gorm.DB, log *utils.Logger) *ProductHandler {
	return &ProductHandler{
		db:        db,
		store:     repository.NewProductStore(db),
		validator: validation.NewValidator(),
		log:       log.With("handler", "product"),
	}
}

// ProductRequest is used for both create and update; both fields are always required
type ProductRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Details string `json:"details" validate:"required"`
}

// ListProducts handles GET /api/v1/products?page=N
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	page := query.Page(c)

	products, total, err := h.store.Paginate(c.UserContext(), page, PerPage)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	message := ""
	if total == 0 {
		message = "No Products Available"
	}
	return response.Paginated(c, message, products, response.CalculatePagination(page, PerPage, total))
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	product, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) parse(c *fiber.Ctx) (*ProductRequest, map[string]string, error) {
	var req ProductRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return nil, nil, err
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Details = validation.SanitizeString(req.Details)

	if err := h.validator.ValidateStruct(req); err != nil {
		return nil, validation.FormatValidationErrors(err), nil
	}
	return &req, nil, nil
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	req, fieldErrs, err := h.parse(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fieldErrs != nil {
		return response.ValidationError(c, fieldErrs)
	}

	product := model.Product{Name: req.Name, Details: req.Details}
	ctx := c.UserContext()
	err = database.WithTransaction(ctx, h.db, func(tx *gorm.DB) error {
		return h.store.WithTx(tx).Create(ctx, &product)
	})
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	return response.CreatedWithMessage(c, "Product Create Successful", product)
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	req, fieldErrs, err := h.parse(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if fieldErrs != nil {
		return response.ValidationError(c, fieldErrs)
	}

	var product *model.Product
	ctx := c.UserContext()
	err = database.WithTransaction(ctx, h.db, func(tx *gorm.DB) error {
		var err error
		product, err = h.store.WithTx(tx).Update(ctx, id, map[string]interface{}{
			"name":    req.Name,
			"details": req.Details,
		})
		return err
	})
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	return response.SuccessWithMessage(c, "Product Update Successful", product)
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Product Deleted Successfully", nil)
}
