package student

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

const notFoundMessage = "Alumno not found"

// StudentHandler handles student-related requests
type StudentHandler struct {
	store        repository.Store[model.Student]
	students     *services.StudentService
	associations *services.AssociationService
	validator    *validation.Validator
	log          *utils.Logger
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB, log *utils.Logger) *StudentHandler {
	return &StudentHandler{
		store:        repository.NewStudentStore(db),
		students:     services.NewStudentService(db),
		associations: services.NewAssociationService(db),
		validator:    validation.NewValidator(),
		log:          log.With("handler", "student"),
	}
}

// CreateStudentRequest represents the request body for creating a student
type CreateStudentRequest struct {
	Name            string `json:"nombre" validate:"required,max=255"`
	Surname         string `json:"apellidos" validate:"required,max=255"`
	GuardianName    string `json:"nombre_responsable" validate:"required,max=255"`
	GuardianSurname string `json:"apellido_responsable" validate:"required,max=255"`
	GuardianEmail   string `json:"email_responsable" validate:"required,email,max=255"`
	GuardianPhone   string `json:"telefono_responsable" validate:"required,max=15"`
}

// UpdateStudentRequest represents the request body for updating a student
type UpdateStudentRequest struct {
	Name            *string `json:"nombre" validate:"omitempty,min=1,max=255"`
	Surname         *string `json:"apellidos" validate:"omitempty,min=1,max=255"`
	GuardianName    *string `json:"nombre_responsable" validate:"omitempty,min=1,max=255"`
	GuardianSurname *string `json:"apellido_responsable" validate:"omitempty,min=1,max=255"`
	GuardianEmail   *string `json:"email_responsable" validate:"omitempty,email,max=255"`
	GuardianPhone   *string `json:"telefono_responsable" validate:"omitempty,min=1,max=15"`
}

// ListStudents handles GET /api/v1/alumnos
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.store.List(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, students)
}

// GetStudent handles GET /api/v1/alumnos/:id
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	student, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, student)
}

// CreateStudent handles POST /api/v1/alumnos
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Surname = validation.SanitizeString(req.Surname)
	req.GuardianName = validation.SanitizeString(req.GuardianName)
	req.GuardianSurname = validation.SanitizeString(req.GuardianSurname)
	req.GuardianEmail = validation.SanitizeString(req.GuardianEmail)
	req.GuardianPhone = validation.SanitizeString(req.GuardianPhone)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	student := model.Student{
		Name:            req.Name,
		Surname:         req.Surname,
		GuardianName:    req.GuardianName,
		GuardianSurname: req.GuardianSurname,
		GuardianEmail:   req.GuardianEmail,
		GuardianPhone:   req.GuardianPhone,
	}
	if err := h.students.Create(c.UserContext(), &student); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("student created", "id", student.ID, "email_responsable", student.GuardianEmail)
	return response.CreatedWithMessage(c, "Student created successfully", student)
}

// UpdateStudent handles PUT /api/v1/alumnos/:id
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	var req UpdateStudentRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Name = validation.SanitizePtr(req.Name)
	req.Surname = validation.SanitizePtr(req.Surname)
	req.GuardianName = validation.SanitizePtr(req.GuardianName)
	req.GuardianSurname = validation.SanitizePtr(req.GuardianSurname)
	req.GuardianEmail = validation.SanitizePtr(req.GuardianEmail)
	req.GuardianPhone = validation.SanitizePtr(req.GuardianPhone)

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	student, err := h.students.Update(c.UserContext(), id, query.UpdateFields(req))
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Student updated successfully", student)
}

// DeleteStudent handles DELETE /api/v1/alumnos/:id
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	if err := h.store.Delete(c.UserContext(), id); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("student deleted", "id", id)
	return response.NoContent(c)
}

// ListActivities handles GET /api/v1/alumnos/:id/actividades
func (h *StudentHandler) ListActivities(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	activities, err := h.associations.ActivitiesOfStudent(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.Success(c, activities)
}

// AttachActivity handles POST /api/v1/alumnos/:id/actividades/:actividadId
func (h *StudentHandler) AttachActivity(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	activityID, err := query.ParseID(c, "actividadId")
	if err != nil {
		return response.NotFound(c, "Actividad not found")
	}

	var req handlers.EnrollRequest
	if err := handlers.ParseBody(c, &req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	enrollment, err := h.associations.Enroll(c.UserContext(), activityID, id, req.Options())
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Activity associated with student successfully.", enrollment)
}

// DetachActivity handles DELETE /api/v1/alumnos/:id/actividades/:actividadId
func (h *StudentHandler) DetachActivity(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}
	activityID, err := query.ParseID(c, "actividadId")
	if err != nil {
		return response.NotFound(c, "Actividad not found")
	}

	if err := h.associations.DetachStudentActivity(c.UserContext(), id, activityID); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Activity disassociated from student successfully.", nil)
}
