package server

import (
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// asAppError unwraps err into target, reporting success.
func asAppError(err error, target **models.AppError) bool {
	return errors.As(err, target)
}

// appErrorStatus maps an error to an HTTP status using the AppError taxonomy.
func appErrorStatus(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "CONFLICT":
		return fiber.StatusConflict
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// currentUserID returns the authenticated user ID placed in locals by the
// session middleware.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
