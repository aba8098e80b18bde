package handler

import (
	"strconv"

	"go-marketplace-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	orgID, ok := getOrgID(c)
	if !ok {
		return c.Status(403).JSON(fiber.Map{"error": "Account is not attached to an organization"})
	}

	stats, err := h.service.GetStats(orgID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

func (h *DashboardHandler) GetOrderCounts(c *fiber.Ctx) error {
	orgID, ok := getOrgID(c)
	if !ok {
		return c.Status(403).JSON(fiber.Map{"error": "Account is not attached to an organization"})
	}

	counts, err := h.service.GetOrderCounts(orgID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(counts)
}

func (h *DashboardHandler) GetRevenueSeries(c *fiber.Ctx) error {
	orgID, ok := getOrgID(c)
	if !ok {
		return c.Status(403).JSON(fiber.Map{"error": "Account is not attached to an organization"})
	}

	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	series, err := h.service.GetRevenueSeries(orgID, days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(series)
}

func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	orgID, ok := getOrgID(c)
	if !ok {
		return c.Status(403).JSON(fiber.Map{"error": "Account is not attached to an organization"})
	}

	threshold, err := strconv.Atoi(c.Query("threshold", "5"))
	if err != nil || threshold < 0 {
		threshold = 5
	}

	products, err := h.service.GetLowStock(orgID, threshold)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}
