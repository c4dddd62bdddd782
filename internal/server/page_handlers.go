package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// IndexPage handles GET /.
func (s *Server) IndexPage(c *fiber.Ctx) error {
	return s.views.render(c, "index.html", nil)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.views.render(c, "login.html", nil)
}

// UploadPage handles GET /profile/upload.
func (s *Server) UploadPage(c *fiber.Ctx) error {
	return s.views.render(c, "upload.html", nil)
}

// Profile handles GET /profile: the caller's own profile with their posts.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithError(c, appErrorStatus(err), err)
	}

	posts, err := s.postRepo.GetByUserID(ctx, userID, userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return s.views.render(c, "profile.html", fiber.Map{
		"User":  user,
		"Posts": posts,
	})
}
