package portal

import (
	"github.com/random-lottery/AIPortal/internal/config"
	"github.com/random-lottery/AIPortal/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type PortalApi struct {
	controller *PortalController
	config     *config.Config
}

func NewPortalApi(controller *PortalController, config *config.Config) *PortalApi {
	return &PortalApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the settings and AI agent routes
func (h *PortalApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Get("/api/user/settings", auth, h.controller.GetSettings)
	app.Put("/api/user/settings", auth, h.controller.UpdateSettings)

	app.Post("/api/ai-agent/command", auth, h.controller.Command)
	app.Post("/api/ai-agent/action", auth, h.controller.Action)
}
