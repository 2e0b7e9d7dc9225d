package handlers

import (
	"marketplace/internal/models"
	"marketplace/internal/services/order"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	orders, err := h.orderService.List(c.UserContext(), id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, orders)
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	var input models.OrderInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	o, err := h.orderService.Create(c.UserContext(), id, &input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, o)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	orderID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}

	o, err := h.orderService.Get(c.UserContext(), id, orderID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, o)
}

func (h *OrderHandler) Update(c *fiber.Ctx) error { return h.update(c, false) }

func (h *OrderHandler) Patch(c *fiber.Ctx) error { return h.update(c, true) }

func (h *OrderHandler) update(c *fiber.Ctx, partial bool) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	orderID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}
	var input models.OrderInput
	if err := parseBody(c, &input); err != nil {
		return utils.Error(c, err)
	}

	o, err := h.orderService.Update(c.UserContext(), id, orderID, &input, partial)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, o)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return utils.Error(c, err)
	}
	orderID, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}

	if err := h.orderService.Delete(c.UserContext(), id, orderID); err != nil {
		return utils.Error(c, err)
	}
	return utils.NoContent(c)
}
