package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/database"
	"github.com/sahilchouksey/actividades-api/handlers"
	activity_handlers "github.com/sahilchouksey/actividades-api/handlers/activity"
	audit_handlers "github.com/sahilchouksey/actividades-api/handlers/audit"
	book_handlers "github.com/sahilchouksey/actividades-api/handlers/book"
	category_handlers "github.com/sahilchouksey/actividades-api/handlers/category"
	enrollment_handlers "github.com/sahilchouksey/actividades-api/handlers/enrollment"
	product_handlers "github.com/sahilchouksey/actividades-api/handlers/product"
	stats_handlers "github.com/sahilchouksey/actividades-api/handlers/stats"
	student_handlers "github.com/sahilchouksey/actividades-api/handlers/student"
	"github.com/sahilchouksey/actividades-api/services/storage"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/cache"
	"github.com/sahilchouksey/actividades-api/utils/middleware"
)

// Dependencies are the optional collaborators of the HTTP layer
type Dependencies struct {
	Logger *utils.Logger
	// Images stores uploaded activity images. nil disables uploads.
	Images storage.ImageStore
	// Cache backs the rate limiter and is reported by /ping. nil keeps the limiter in memory.
	Cache    *cache.RedisCache
	Security middleware.SecurityConfig
}

func SetupRoutes(app *fiber.App, store database.Storage, deps Dependencies) {
	log := deps.Logger
	if log == nil {
		log = utils.NewNopLogger()
	}
	db := store.GetDB()

	// Initialize handlers
	activityHandler := activity_handlers.NewActivityHandler(db, deps.Images, log)
	categoryHandler := category_handlers.NewCategoryHandler(db, log)
	studentHandler := student_handlers.NewStudentHandler(db, log)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(db, log)
	productHandler := product_handlers.NewProductHandler(db, log)
	bookHandler := book_handlers.NewBookHandler(db, log)
	auditHandler := audit_handlers.NewAuditHandler(db, log)
	statsHandler := stats_handlers.NewStatsHandler(db, log)

	var pinger handlers.Pinger
	if deps.Cache != nil {
		pinger = deps.Cache
	}
	healthHandler := handlers.NewHealthHandler(store, pinger)

	// Apply security middleware
	security := deps.Security
	if security.Storage == nil && deps.Cache != nil {
		security.Storage = cache.NewStorage(deps.Cache, "limiter:")
	}
	middleware.SetupSecurity(app, security)

	// API v1 group
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/ping", healthHandler.Check)

	// Activities routes
	auditActivities := middleware.AuditLog(db, "actividades", log)
	activities := api.Group("/actividades")
	activities.Get("/", activityHandler.ListActivities)
	activities.Get("/:id", activityHandler.GetActivity)
	activities.Post("/", auditActivities, activityHandler.CreateActivity)
	activities.Put("/:id", auditActivities, activityHandler.UpdateActivity)
	activities.Delete("/:id", auditActivities, activityHandler.DeleteActivity)
	activities.Post("/:id/image", auditActivities, activityHandler.UploadImage)

	activities.Get("/:id/categorias", activityHandler.ListCategories)
	activities.Post("/:id/categorias/:categoriaId", auditActivities, activityHandler.AttachCategory)
	activities.Delete("/:id/categorias/:categoriaId", auditActivities, activityHandler.DetachCategory)

	activities.Get("/:id/alumnos", activityHandler.ListStudents)
	activities.Post("/:id/alumnos/:alumnoId", auditActivities, activityHandler.AttachStudent)
	activities.Delete("/:id/alumnos/:alumnoId", auditActivities, activityHandler.DetachStudent)

	// Categories routes
	auditCategories := middleware.AuditLog(db, "categorias", log)
	categories := api.Group("/categorias")
	categories.Get("/", categoryHandler.ListCategories)
	categories.Get("/:id", categoryHandler.GetCategory)
	categories.Post("/", auditCategories, categoryHandler.CreateCategory)
	categories.Put("/:id", auditCategories, categoryHandler.UpdateCategory)
	categories.Delete("/:id", auditCategories, categoryHandler.DeleteCategory)

	categories.Get("/:id/actividades", categoryHandler.ListActivities)
	categories.Post("/:id/actividades/:actividadId", auditCategories, categoryHandler.AttachActivity)
	categories.Delete("/:id/actividades/:actividadId", auditCategories, categoryHandler.DetachActivity)

	// Students routes
	auditStudents := middleware.AuditLog(db, "alumnos", log)
	students := api.Group("/alumnos")
	students.Get("/", studentHandler.ListStudents)
	students.Get("/:id", studentHandler.GetStudent)
	students.Post("/", auditStudents, studentHandler.CreateStudent)
	students.Put("/:id", auditStudents, studentHandler.UpdateStudent)
	students.Delete("/:id", auditStudents, studentHandler.DeleteStudent)

	students.Get("/:id/actividades", studentHandler.ListActivities)
	students.Post("/:id/actividades/:actividadId", auditStudents, studentHandler.AttachActivity)
	students.Delete("/:id/actividades/:actividadId", auditStudents, studentHandler.DetachActivity)

	// Enrollment requests routes
	auditEnrollments := middleware.AuditLog(db, "solicitudes", log)
	enrollments := api.Group("/solicitudes")
	enrollments.Get("/", enrollmentHandler.ListEnrollments)
	enrollments.Get("/:id", enrollmentHandler.GetEnrollment)
	enrollments.Put("/:id", auditEnrollments, enrollmentHandler.UpdateEnrollment)

	// Products routes
	auditProducts := middleware.AuditLog(db, "products", log)
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", auditProducts, productHandler.CreateProduct)
	products.Put("/:id", auditProducts, productHandler.UpdateProduct)
	products.Delete("/:id", auditProducts, productHandler.DeleteProduct)

	// Books routes
	auditBooks := middleware.AuditLog(db, "books", log)
	books := api.Group("/books")
	books.Get("/", bookHandler.ListBooks)
	books.Get("/:id", bookHandler.GetBook)
	books.Post("/", auditBooks, bookHandler.CreateBook)
	books.Put("/:id", auditBooks, bookHandler.UpdateBook)
	books.Delete("/:id", auditBooks, bookHandler.DeleteBook)

	api.Get("/stats", statsHandler.GetOverview)

	// Audit trail (read only)
	auditLogs := api.Group("/audit-logs")
	auditLogs.Get("/", auditHandler.ListAuditLogs)
	auditLogs.Get("/:id", auditHandler.GetAuditLog)
}
