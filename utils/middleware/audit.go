package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog records every write served by the wrapped route.
// It must be registered on the route itself so the :id param is visible.
func AuditLog(db *gorm.DB, resource string, log *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		// Copy before Next; fasthttp reuses the buffers
		body := append([]byte(nil), c.Body()...)
		resourceID, _ := strconv.ParseUint(c.Params("id"), 10, 64)
		path := c.Path()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		entry := model.AuditLog{
			Action:     c.Method(),
			Resource:   resource,
			ResourceID: uint(resourceID),
			Path:       path,
			StatusCode: status,
			RequestID:  c.GetRespHeader(fiber.HeaderXRequestID),
			IPAddress:  c.IP(),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
		}
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) && sonic.Valid(body) {
			if redacted, rErr := utils.RedactJSON(body); rErr == nil {
				entry.Payload = datatypes.JSON(redacted)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if dbErr := db.WithContext(ctx).Create(&entry).Error; dbErr != nil {
			log.Warn("audit log write failed", "resource", resource, "path", path, "error", dbErr)
		}

		return err
	}
}
