package stats

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/services"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"gorm.io/gorm"
)

type StatsHandler struct {
	service *services.StatisticsService
	log     *utils.Logger
}

func NewStatsHandler(db *gorm.DB, log *utils.Logger) *StatsHandler {
	return &StatsHandler{
		service: services.NewStatisticsService(db),
		log:     log.With("handler", "stats"),
	}
}

// GetOverview retrieves system-wide row counts
// GET /api/v1/stats
func (h *StatsHandler) GetOverview(c *fiber.Ctx) error {
	stats, err := h.service.Collect(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, h.log, err, "")
	}
	return response.SuccessWithMessage(c, "Overview statistics retrieved successfully", stats)
}
