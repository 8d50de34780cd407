package handlers

import (
	"event-reward-system/middleware"
	"event-reward-system/models"
	"event-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRoutes(app *fiber.App, items *services.ItemService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())
	authed := secured.Group("/", middleware.RequireRoles(
		models.RoleUser, models.RoleOperator, models.RoleAuditor, models.RoleAdmin,
	))
	admin := secured.Group("/admin", middleware.RequireRoles(models.RoleAdmin))

	authed.Get("/items", func(c *fiber.Ctx) error {
		list, err := items.List()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"items": list})
	})

	admin.Post("/items", func(c *fiber.Ctx) error {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		item, err := items.Create(req.Name, req.Description)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	})
}
