package portal

import (
	"errors"

	"github.com/random-lottery/AIPortal/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type PortalController struct {
	PortalService PortalService
}

func NewPortalController(portalService PortalService) *PortalController {
	return &PortalController{
		PortalService: portalService,
	}
}

type CommandRequest struct {
	Command string `json:"command"`
}

func claimsFromCtx(c *fiber.Ctx) (*utils.UserClaims, bool) {
	claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	return claims, ok && claims != nil && claims.UserID != ""
}

// Command interprets a free-text command against the user's portal
func (ctrl *PortalController) Command(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Command == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Command is required",
		})
	}

	result, err := ctrl.PortalService.ExecuteCommand(c.Context(), claims.UserID, req.Command)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(result)
}

// Action executes a structured action produced by a richer resolver
func (ctrl *PortalController) Action(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var raw StructuredAction
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if raw.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Action is required",
		})
	}

	result, err := ctrl.PortalService.ExecuteAction(c.Context(), claims.UserID, ResolveStructured(raw))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(result)
}

// GetSettings returns the user's portal settings, creating defaults on
// first access
func (ctrl *PortalController) GetSettings(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	settings, err := ctrl.PortalService.GetSettings(c.Context(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(settings)
}

// UpdateSettings replaces the user's portal settings wholesale
func (ctrl *PortalController) UpdateSettings(c *fiber.Ctx) error {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var incoming PortalSettings
	if err := c.BodyParser(&incoming); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	stored, err := ctrl.PortalService.UpdateSettings(c.Context(), claims.UserID, &incoming)
	if err != nil {
		if errors.Is(err, ErrForbiddenUser) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden: Cannot update settings for another user",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(stored)
}
