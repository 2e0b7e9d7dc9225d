package handlers

import (
	"strconv"

	apperr "marketplace/internal/errors"
	"marketplace/internal/models"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the request body, reporting decode failures as 400.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &apperr.DomainError{
			Code:    "PARSE_ERROR",
			Message: "JSON parse error - " + err.Error(),
			Status:  fiber.StatusBadRequest,
		}
	}
	return nil
}

// idParam reads a positive numeric path parameter. Anything else is not found.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.ErrNotFound
	}
	return uint(id), nil
}

func caller(c *fiber.Ctx) (*models.Identity, error) {
	id, err := utils.GetIdentity(c)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	return id, nil
}
