package handler

import (
	"go-marketplace-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HoursHandler struct {
	service service.HoursService
}

func NewHoursHandler(s service.HoursService) *HoursHandler {
	return &HoursHandler{service: s}
}

func (h *HoursHandler) SetWindow(c *fiber.Ctx) error {
	var req service.SetHoursRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	window, err := h.service.SetWindow(&req, getUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Operating hours set", "data": window.ToResponse()})
}

func (h *HoursHandler) DeleteWindow(c *fiber.Ctx) error {
	windowID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid window ID"})
	}

	if err := h.service.DeleteWindow(windowID, getUserID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Operating hours removed"})
}

func (h *HoursHandler) GetBranchHours(c *fiber.Ctx) error {
	branchID, err := parseUUID(c.Params("branchId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	windows, err := h.service.GetBranchHours(branchID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(windows)
}
