package handlers

import (
	"fmt"
	"path/filepath"

	"event-reward-system/middleware"
	"event-reward-system/models"
	"event-reward-system/services"
	"event-reward-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, events *services.EventService, attendance *services.AttendanceService) {
	secured := app.Group("/s", middleware.UserContextMiddleware())
	authed := secured.Group("/", middleware.RequireRoles(
		models.RoleUser, models.RoleOperator, models.RoleAuditor, models.RoleAdmin,
	))
	admin := secured.Group("/admin", middleware.RequireRoles(models.RoleOperator, models.RoleAdmin))

	authed.Get("/events", func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)

		list, err := events.List(role)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"events": list})
	})

	authed.Get("/events/:id", func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)

		detail, err := events.Get(c.Params("id"), role)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(detail)
	})

	admin.Post("/events", func(c *fiber.Ctx) error {
		var payload services.EventPayload
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		eventID, err := events.Create(&payload)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "event created",
			"event_id": eventID,
		})
	})

	admin.Put("/events/:id", func(c *fiber.Ctx) error {
		var payload services.EventPayload
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if err := events.Update(c.Params("id"), &payload); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "event updated", "event_id": c.Params("id")})
	})

	admin.Delete("/events/:id", func(c *fiber.Ctx) error {
		if err := events.Delete(c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "event deleted", "event_id": c.Params("id")})
	})

	admin.Post("/events/:id/banner", func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "banner file is required"})
		}

		key := fmt.Sprintf("events/%s/banner%s", c.Params("id"), filepath.Ext(fileHeader.Filename))
		url, err := utils.UploadEventAsset(fileHeader, key)
		if err != nil {
			return respondError(c, err)
		}

		if err := events.SetBannerURL(c.Params("id"), url); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"message": "banner uploaded", "banner_url": url})
	})

	authed.Post("/attendance", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		record, err := attendance.CheckIn(userID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "checked in",
			"date":    record.Date,
		})
	})
}
