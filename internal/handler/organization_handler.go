package handler

import (
	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"
	"go-marketplace-ws/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// OrganizationHandler is thin CRUD over the tenancy tables; no business
// rules live here beyond ownership scoping.
type OrganizationHandler struct {
	orgRepo repository.OrganizationRepository
}

func NewOrganizationHandler(orgRepo repository.OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{orgRepo: orgRepo}
}

func (h *OrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	var org model.Organization
	if err := c.BodyParser(&org); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&org); len(errs) > 0 {
		return c.Status(422).JSON(fiber.Map{"error": "Validation failed", "field": errs[0].FailedField})
	}

	org.CreatedBy = getUserID(c)
	org.UpdatedBy = getUserID(c)
	if err := h.orgRepo.Create(&org); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create organization"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Organization created", "data": org})
}

func (h *OrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	orgID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid organization ID"})
	}

	org, err := h.orgRepo.FindByID(orgID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Organization not found"})
	}
	return c.JSON(org)
}

func (h *OrganizationHandler) CreateBranch(c *fiber.Ctx) error {
	var branch model.Branch
	if err := c.BodyParser(&branch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if orgID, ok := getOrgID(c); ok {
		branch.OrganizationID = orgID
	}
	if errs := validator.ValidateStruct(&branch); len(errs) > 0 {
		return c.Status(422).JSON(fiber.Map{"error": "Validation failed", "field": errs[0].FailedField})
	}

	branch.CreatedBy = getUserID(c)
	branch.UpdatedBy = getUserID(c)
	if err := h.orgRepo.CreateBranch(&branch); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create branch"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Branch created", "data": branch})
}

func (h *OrganizationHandler) GetBranches(c *fiber.Ctx) error {
	orgID, ok := getOrgID(c)
	if !ok {
		return c.Status(403).JSON(fiber.Map{"error": "Account is not attached to an organization"})
	}

	branches, err := h.orgRepo.FindBranchesByOrg(orgID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(branches)
}
