package server

import (
	"errors"

	"pharmacy-manager/core/store"

	"github.com/gofiber/fiber/v2"
)

// RespondError maps the store's typed errors onto HTTP statuses and writes a
// JSON error body. Anything untyped is a 500.
func RespondError(c *fiber.Ctx, err error) error {
	var (
		notFound     *store.NotFoundError
		duplicate    *store.DuplicateKeyError
		noCollection *store.CollectionNotFoundError
		noIndex      *store.IndexNotFoundError
		validation   *store.ValidationError
	)

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = fiber.StatusNotFound
	case errors.As(err, &duplicate):
		status = fiber.StatusConflict
	case errors.As(err, &validation):
		status = fiber.StatusUnprocessableEntity
	case errors.As(err, &noCollection), errors.As(err, &noIndex):
		status = fiber.StatusBadRequest
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
