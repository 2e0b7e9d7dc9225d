package handlers

import (
	apperr "marketplace/internal/errors"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the caller's public identity and role.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, id.Response())
}

// Merchant returns the caller's merchant profile, 404 for anyone else.
func (h *UserHandler) Merchant(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	profile, ok := id.Merchant()
	if !ok {
		return utils.Error(c, apperr.ErrNotFound)
	}
	return utils.Success(c, profile.Response())
}
