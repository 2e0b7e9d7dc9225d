package handlers

import (
	"marketplace/internal/services/catalog"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) MembershipLevels(c *fiber.Ctx) error {
	levels, err := h.catalogService.ListMembershipLevels(c.UserContext())
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, levels)
}

func (h *CatalogHandler) Services(c *fiber.Ctx) error {
	services, err := h.catalogService.ListServices(c.UserContext())
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, services)
}

func (h *CatalogHandler) Service(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return utils.Error(c, err)
	}
	svc, err := h.catalogService.GetService(c.UserContext(), id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, svc)
}
