package activity

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/handlers"
	"github.com/sahilchouksey/actividades-api/services/storage"
	"github.com/sahilchouksey/actividades-api/utils/query"
	"github.com/sahilchouksey/actividades-api/utils/response"
)

// MaxImageSize is the largest accepted activity image
const MaxImageSize = 5 * 1024 * 1024

// UploadImage handles POST /api/v1/actividades/:id/image (multipart field "image")
func (h *ActivityHandler) UploadImage(c *fiber.Ctx) error {
	if h.images == nil {
		return response.ServiceUnavailable(c, "Image storage is not configured")
	}

	id, err := query.ParseID(c, "id")
	if err != nil {
		return response.NotFound(c, notFoundMessage)
	}

	ctx := c.UserContext()
	if _, err := h.store.Get(ctx, id); err != nil {
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return response.ValidationError(c, map[string]string{"image": "image is required"})
	}
	if file.Size > MaxImageSize {
		return response.ValidationError(c, map[string]string{"image": fmt.Sprintf("image must be at most %d bytes", MaxImageSize)})
	}
	contentType, ok := storage.ImageContentType(file.Filename)
	if !ok {
		return response.ValidationError(c, map[string]string{"image": "image must be a jpg, png, gif or webp file"})
	}

	src, err := file.Open()
	if err != nil {
		return response.BadRequest(c, "Unable to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return response.BadRequest(c, "Unable to read uploaded file")
	}

	key := storage.GenerateKey(fmt.Sprintf("actividades/%d", id), file.Filename)
	url, err := h.images.UploadFile(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		h.log.Error("image upload failed", "id", id, "key", key, "error", err)
		return response.InternalServerError(c, "Failed to upload image")
	}

	activity, err := h.store.Update(ctx, id, map[string]interface{}{"image": url})
	if err != nil {
		// Don't leave an orphaned object behind
		if delErr := h.images.DeleteFile(ctx, key); delErr != nil {
			h.log.Warn("orphaned image not removed", "key", key, "error", delErr)
		}
		return handlers.RespondError(c, h.log, err, notFoundMessage)
	}

	h.log.Info("activity image uploaded", "id", id, "key", key)
	return response.SuccessWithMessage(c, "Image uploaded successfully", activity)
}
