package utils

import (
	apperr "marketplace/internal/errors"
	"marketplace/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Detail sends {"detail": message} with the given status.
func Detail(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, fiber.Map{"detail": message})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Detail(c, fiber.StatusBadRequest, message)
}

func NotFound(c *fiber.Ctx) error {
	return Detail(c, fiber.StatusNotFound, apperr.ErrNotFound.Message)
}

// Error maps err onto the HTTP error taxonomy. Unclassified errors are
// logged and hidden behind a generic 500.
func Error(c *fiber.Ctx, err error) error {
	if v, ok := apperr.AsValidation(err); ok {
		return Respond(c, fiber.StatusBadRequest, v.Fields)
	}
	if d, ok := apperr.AsDomain(err); ok {
		return Detail(c, d.Status, d.Message)
	}

	logger.FromCtx(c).Error("request failed",
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return Detail(c, fiber.StatusInternalServerError, "internal server error")
}
