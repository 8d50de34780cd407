package services

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Services return *fiber.Error values so handlers (and the request audit log)
// see one taxonomy: 400 validation, 401 missing identity, 403 forbidden,
// 404 missing resource, 409 state conflict.

const msgResourceNotFound = "resource not found"

func errBadRequest(msg string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

func errUnauthorized(msg string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, msg)
}

func errForbidden(msg string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, msg)
}

func errNotFound() *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, msgResourceNotFound)
}

func errConflict(msg string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, msg)
}

// validateID rejects ids that are not well-formed UUIDs before any query runs.
func validateID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errBadRequest("invalid " + field)
	}
	return nil
}
