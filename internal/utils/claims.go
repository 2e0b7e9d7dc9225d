package utils

import (
	"errors"

	"marketplace/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalsClaims   = "claims"
	LocalsIdentity = "identity"
)

// GetUserClaims extracts the access token claims stored by the auth middleware.
func GetUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(LocalsClaims).(*models.UserClaims)
	if !ok || claims == nil {
		return nil, errors.New("claims not found in context")
	}
	return claims, nil
}

// GetIdentity extracts the resolved caller identity.
func GetIdentity(c *fiber.Ctx) (*models.Identity, error) {
	id, ok := c.Locals(LocalsIdentity).(*models.Identity)
	if !ok || id == nil {
		return nil, errors.New("identity not found in context")
	}
	return id, nil
}
