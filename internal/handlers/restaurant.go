package handlers

import (
	"marketplace/internal/models"
	"marketplace/internal/services/restaurant"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RestaurantHandler struct {
	restaurantService restaurant.Service
}

func NewRestaurantHandler(restaurantService restaurant.Service) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService}
}

func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	restaurants, err := h.restaurantService.List(c.UserContext(), id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, restaurants)
}

func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	var input models.RestaurantInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	r, err := h.restaurantService.Create(c.UserContext(), id, &input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, r)
}

func (h *RestaurantHandler) Get(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	restaurantID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}

	r, err := h.restaurantService.Get(c.UserContext(), id, restaurantID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, r)
}

// Update serves PUT.
func (h *RestaurantHandler) Update(c *fiber.Ctx) error {
	return h.update(c, false)
}

// Patch serves PATCH.
func (h *RestaurantHandler) Patch(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *RestaurantHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	restaurantID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}
	var input models.RestaurantInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	r, err := h.restaurantService.Update(c.UserContext(), id, restaurantID, &input, partial)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, r)
}

func (h *RestaurantHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	restaurantID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}

	if err := h.restaurantService.Delete(c.UserContext(), id, restaurantID); err != nil {
		return utils.Error(c, err)
	}
	return utils.NoContent(c)
}
