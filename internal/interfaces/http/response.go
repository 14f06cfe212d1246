package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sucursal-api/internal/domain"
)

// envelope is the uniform response body: {success, data?, message?}.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ok writes a 200 success envelope.
func ok(c *fiber.Ctx, data any) error {
	return c.JSON(envelope{Success: true, Data: data})
}

// okMessage writes a 200 success envelope with a human-readable message.
func okMessage(c *fiber.Ctx, data any, message string) error {
	return c.JSON(envelope{Success: true, Data: data, Message: message})
}

// created writes a 201 success envelope.
func created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(envelope{Success: true, Data: data, Message: message})
}

// fail writes a failure envelope with the given status.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Success: false, Message: message})
}

// failErr maps domain sentinel errors to HTTP statuses and writes the
// failure envelope. Unknown errors become 500 without leaking internals.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "duplicate resource")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, fiber.StatusBadRequest, "insufficient stock")
	case errors.Is(err, domain.ErrBranchMismatch):
		return fail(c, fiber.StatusBadRequest, "product does not belong to the source branch")
	case errors.Is(err, domain.ErrSameBranch):
		return fail(c, fiber.StatusBadRequest, "source and destination branch must differ")
	case errors.Is(err, domain.ErrTransferNotPending):
		return fail(c, fiber.StatusConflict, "transfer is not pending")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrConflict):
		return fail(c, fiber.StatusConflict, "conflict")
	default:
		return fail(c, fiber.StatusInternalServerError, "internal server error")
	}
}
