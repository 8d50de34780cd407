package handlers

import (
	"event-reward-system/middleware"
	"event-reward-system/models"
	"event-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGroupRoutes(app *fiber.App, groups *services.GroupService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())
	authed := secured.Group("/", middleware.RequireRoles(
		models.RoleUser, models.RoleOperator, models.RoleAuditor, models.RoleAdmin,
	))
	admin := secured.Group("/admin", middleware.RequireRoles(models.RoleOperator, models.RoleAdmin))

	authed.Get("/groups", func(c *fiber.Ctx) error {
		list, err := groups.List()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"groups": list})
	})

	authed.Get("/groups/:id", func(c *fiber.Ctx) error {
		detail, err := groups.Get(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(detail)
	})

	admin.Post("/groups", func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		group, err := groups.Create(req.Name)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "group created",
			"group_id": group.ID,
		})
	})

	admin.Put("/groups/:id", func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if err := groups.Update(c.Params("id"), req.Name); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "group updated", "group_id": c.Params("id")})
	})

	admin.Delete("/groups/:id", func(c *fiber.Ctx) error {
		cascade := c.Query("cascade") == "true"

		if err := groups.Delete(c.Params("id"), cascade); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "group deleted", "group_id": c.Params("id")})
	})
}
