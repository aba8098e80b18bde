package handler

import (
	"go-marketplace-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	items, err := h.service.ListCart(getUserUUID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var req service.AddCartLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.AddOrMergeLine(getUserUUID(c), &req)
	if err != nil {
		return serviceError(c, err)
	}
	if item == nil {
		return c.JSON(fiber.Map{"message": "Line removed"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Line added", "data": item})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart item ID"})
	}

	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.UpdateLineQuantity(getUserUUID(c), itemID, req.Quantity)
	if err != nil {
		return serviceError(c, err)
	}
	if item == nil {
		return c.JSON(fiber.Map{"message": "Line removed"})
	}
	return c.JSON(fiber.Map{"message": "Line updated", "data": item})
}

func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid cart item ID"})
	}

	if err := h.service.RemoveLine(getUserUUID(c), itemID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Line removed"})
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(getUserUUID(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
