package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadAvatar handles POST /upload: store the uploaded profile image under a
// server-generated filename and record it on the user.
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	userID := currentUserID(c)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	if _, err := s.avatarService.Store(c.UserContext(), userID, file.Filename, file.Size, src); err != nil {
		return models.RespondWithError(c, appErrorStatus(err), err)
	}

	return c.Redirect("/profile", fiber.StatusSeeOther)
}
