package handlers

import (
	"event-reward-system/middleware"
	"event-reward-system/models"
	"event-reward-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRequestRoutes(app *fiber.App, requests *services.RequestService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())
	authed := secured.Group("/", middleware.RequireRoles(
		models.RoleUser, models.RoleOperator, models.RoleAuditor, models.RoleAdmin,
	))
	privileged := secured.Group("/", middleware.RequireRoles(
		models.RoleOperator, models.RoleAuditor, models.RoleAdmin,
	))

	authed.Post("/events/:id/request", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		if err := requests.RequestReward(c.Params("id"), userID); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "reward granted"})
	})

	privileged.Get("/requests", func(c *fiber.Ctx) error {
		list, err := requests.List(parseRequestQuery(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"requests": list})
	})

	authed.Get("/requests/users/:id", func(c *fiber.Ctx) error {
		callerID, _ := c.Locals("user_id").(string)
		callerRole, _ := c.Locals("user_role").(string)

		list, err := requests.ListForUser(c.Params("id"), callerID, callerRole, parseRequestQuery(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"requests": list})
	})
}

func parseRequestQuery(c *fiber.Ctx) *services.RequestQuery {
	q := services.RequestQuery{
		EventID: c.Query("eventId"),
		UserID:  c.Query("userId"),
		SortBy:  c.Query("sortBy"),
		Order:   c.Query("order"),
	}

	switch c.Query("status") {
	case "true":
		granted := true
		q.Status = &granted
	case "false":
		denied := false
		q.Status = &denied
	}

	return &q
}
