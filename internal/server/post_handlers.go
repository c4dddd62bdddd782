package server

import (
	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /post: create a post owned by the caller and go
// back to the profile.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	post := &models.Post{
		Content: req.Content,
		UserID:  userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Redirect("/profile", fiber.StatusSeeOther)
}

// EditPostPage handles GET /edit/:id: render the edit form for an owned post.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, appErrorStatus(err), err)
	}
	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only edit your own posts"))
	}

	return s.views.render(c, "edit.html", fiber.Map{"Post": post})
}

// UpdatePost handles POST /update/:id: replace the content of an owned post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content" form:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Content is required"))
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return models.RespondWithError(c, appErrorStatus(err), err)
	}
	if post.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only update your own posts"))
	}

	if err := s.postRepo.UpdateContent(ctx, postID, req.Content); err != nil {
		return models.RespondWithError(c, appErrorStatus(err), err)
	}

	return c.Redirect("/profile", fiber.StatusSeeOther)
}

// ToggleLike handles GET /like/:id: flip the caller's membership in the
// post's liked-by set and return to the profile. The repository performs the
// toggle atomically.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return models.RespondWithError(c, appErrorStatus(err), err)
	}

	liked, err := s.postRepo.ToggleLike(ctx, userID, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	action := "unliked"
	if liked {
		action = "liked"
	}
	observability.LikeToggles.WithLabelValues(action).Inc()

	return c.Redirect("/profile", fiber.StatusSeeOther)
}
