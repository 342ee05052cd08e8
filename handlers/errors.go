package handlers

import (
	"bytes"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/repository"
	"github.com/sahilchouksey/actividades-api/services"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/response"
	"github.com/sahilchouksey/actividades-api/utils/validation"
)

// RespondError renders err with the status its kind maps to.
// notFound is used when the error carries no resource name of its own.
func RespondError(c *fiber.Ctx, log *utils.Logger, err error, notFound string) error {
	var fieldErrs validation.Errors
	var missing *services.MissingError

	switch {
	case errors.As(err, &fieldErrs):
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	case errors.As(err, &missing):
		return response.NotFound(c, missing.Error())
	case errors.Is(err, repository.ErrNotFound):
		return response.NotFound(c, notFound)
	case errors.Is(err, context.DeadlineExceeded):
		return response.ServiceUnavailable(c, "Request timed out")
	}

	log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return response.InternalServerError(c, "")
}

// ParseBody decodes the request body into dst. An empty body leaves dst untouched.
func ParseBody(c *fiber.Ctx, dst interface{}) error {
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return nil
	}
	return c.BodyParser(dst)
}
