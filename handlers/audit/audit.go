package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/repository"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/query"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"gorm.io/gorm"
)

const notFoundMessage = "Audit log not found"

// AuditHandler exposes the write trail recorded by the audit middleware
type AuditHandler struct {
	db    *gorm.DB
	store repository.Store[model.AuditLog]
	log   *utils.Logger
}

func NewAuditHandler(db *gorm.DB, log *utils.Logger) *AuditHandler {
	return &AuditHandler{
		db:    db,
		store: repository.NewGormStore[model.AuditLog](db, nil),
		log:   log.With("handler", "audit"),
	}
}

// ListAuditLogs retrieves audit logs with pagination, newest first
// GET /api/v1/audit-logs?page=&limit=&action=&resource=&resource_id=
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	page := query.Page(c)
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	// Filters
	q := h.db.WithContext(c.UserContext()).Model(&model.AuditLog{})
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		q = q.Where("resource = ?", resource)
	}
	if raw := c.Query("resource_id"); raw != "" {
		if resourceID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			q = q.Where("resource_id = ?", resourceID)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	logs := []model.AuditLog{}
	if err := q.Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	return response.Paginated(c, "Audit logs retrieved successfully", logs, response.CalculatePagination(page, limit, total))
}

// GetAuditLog retrieves a specific audit log entry
// GET /api/v1/audit-logs/:id
func (h *AuditHandler) GetAuditLog(c *fiber.Ctx) error {
	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	entry, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}
	return response.SuccessWithMessage(c, "Audit log retrieved successfully", entry)
}
