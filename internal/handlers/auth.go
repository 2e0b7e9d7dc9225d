package handlers

import (
	"marketplace/internal/models"
	"marketplace/internal/services/auth"
	"marketplace/internal/services/registration"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService         auth.Service
	registrationService registration.Service
}

func NewAuthHandler(authService auth.Service, registrationService registration.Service) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		registrationService: registrationService,
	}
}

// RegisterCustomer handles POST /register/customer/.
func (h *AuthHandler) RegisterCustomer(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	account, err := h.registrationService.RegisterCustomer(c.UserContext(), &input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, account.Public())
}

// RegisterMerchant handles POST /register/merchant/.
func (h *AuthHandler) RegisterMerchant(c *fiber.Ctx) error {
	var input models.RegisterInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	account, err := h.registrationService.RegisterMerchant(c.UserContext(), &input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, account.Public())
}

// Login returns an access and refresh token pair.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	pair, err := h.authService.Login(c.UserContext(), &input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, pair)
}

// Refresh returns a new access token for a valid refresh token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input models.RefreshInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}
	if input.Refresh == "" {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"refresh": []string{"This field is required."}})
	}

	access, err := h.authService.Refresh(c.UserContext(), input.Refresh)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, fiber.Map{"access": access})
}

// Logout revokes the presented access token and the given refresh token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input models.RefreshInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}
	if input.Refresh == "" {
		return utils.Respond(c, fiber.StatusBadRequest, fiber.Map{"refresh": []string{"This field is required."}})
	}

	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Error(c, err)
	}
	if err := h.authService.Logout(c.UserContext(), claims, input.Refresh); err != nil {
		return utils.Error(c, err)
	}
	return utils.NoContent(c)
}
