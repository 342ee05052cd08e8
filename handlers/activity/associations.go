package activity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/utils/query"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"github.com/sahilchouksey/actividades-api/utils/validation"
)

// ListCategories handles GET /api/v1/actividades/:id/categorias
func (h *ActivityHandler) ListCategories(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	categories, err := h.associations.CategoriesOfActivity(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, categories)
}

// AttachCategory handles POST /api/v1/actividades/:id/categorias/:categoriaId
func (h *ActivityHandler) AttachCategory(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	categoryID, err := query.ParseID(c, "categoriaId")
	if err != nil {
		return response.NotFound(c, "Categoria not found")
	}

	if err := h.associations.AttachCategory(c.UserContext(), id, categoryID); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Category associated with activity successfully.", nil)
}

// DetachCategory handles DELETE /api/v1/actividades/:id/categorias/:categoriaId
func (h *ActivityHandler) DetachCategory(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	categoryID, err := query.ParseID(c, "categoriaId")
	if err != nil {
		return response.NotFound(c, "Categoria not found")
	}

	if err := h.associations.DetachActivityCategory(c.UserContext(), id, categoryID); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Category disassociated from activity successfully.", nil)
}

// ListStudents handles GET /api/v1/actividades/:id/alumnos
func (h *ActivityHandler) ListStudents(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	students, err := h.associations.StudentsOfActivity(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, students)
}

// AttachStudent handles POST /api/v1/actividades/:id/alumnos/:alumnoId
func (h *ActivityHandler) AttachStudent(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	studentID, err := query.ParseID(c, "alumnoId")
	if err != nil {
		return response.NotFound(c, "Alumno not found")
	}

	var req handlers.EnrollRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	enrollment, err := h.associations.Enroll(c.UserContext(), id, studentID, req.Options())
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Student associated with activity successfully.", enrollment)
}

// DetachStudent handles DELETE /api/v1/actividades/:id/alumnos/:alumnoId
func (h *ActivityHandler) DetachStudent(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	studentID, err := query.ParseID(c, "alumnoId")
	if err != nil {
		return response.NotFound(c, "Alumno not found")
	}

	if err := h.associations.DetachActivityStudent(c.UserContext(), id, studentID); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Student disassociated from activity successfully.", nil)
}
