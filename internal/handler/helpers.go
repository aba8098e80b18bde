package handler

import (
	"errors"

	"go-marketplace-ws/internal/repository"
	"go-marketplace-ws/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from the JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserUUID(c *fiber.Ctx) uuid.UUID {
	id, err := uuid.Parse(getUserID(c))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func getOrgID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw := c.Locals("organization_id")
	if raw == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// serviceError maps service-layer errors onto HTTP responses: 422 for
// invalid transitions/input, 409 for insufficient stock, 404 for missing
// rows, 500 for everything else.
func serviceError(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(422).JSON(fiber.Map{"error": validationErr.Reason})
	}

	if errors.Is(err, repository.ErrStatusConflict) {
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}

	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(409).JSON(fiber.Map{
			"error":      stockErr.Error(),
			"product_id": stockErr.ProductID,
			"available":  stockErr.Available,
			"requested":  stockErr.Requested,
		})
	}

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrBranchNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrHoursNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrBranchClosed),
		errors.Is(err, service.ErrMixedBranches),
		errors.Is(err, service.ErrSKUExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrInvalidTimeFormat),
		errors.Is(err, service.ErrInvalidWeekday),
		errors.Is(err, service.ErrSameOpenClose):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
