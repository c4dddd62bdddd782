package server

import (
	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /register. A duplicate email is a conflict; success
// creates the user, issues a session cookie, and reports 201.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Name     string `json:"name" form:"name"`
		Age      int    `json:"age" form:"age"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}
	if err := validation.ValidateRegistration(req.Username, req.Email, req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		observability.Registrations.WithLabelValues("conflict").Inc()
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("User already registered"))
	}

	// Cost 10 matches the salt rounds used since the first release.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Age:      req.Age,
		Email:    req.Email,
		Password: string(hashedPassword),
		Avatar:   models.DefaultAvatar,
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		// The unique index catches a concurrent registration of the same email.
		var appErr *models.AppError
		status := fiber.StatusInternalServerError
		if ok := asAppError(createErr, &appErr); ok && appErr.Code == "CONFLICT" {
			observability.Registrations.WithLabelValues("conflict").Inc()
			status = fiber.StatusConflict
		}
		return models.RespondWithError(c, status, createErr)
	}

	token, err := auth.Mint(s.config.JWTSecret, user.ID, user.Email, auth.DefaultTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	observability.Registrations.WithLabelValues("success").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles POST /login. Unknown emails get a deliberately generic
// failure message; a wrong password redirects back to the login page; a
// correct one issues the session cookie and redirects to the profile.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		observability.LoginAttempts.WithLabelValues("unknown_email").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Something went wrong"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		observability.LoginAttempts.WithLabelValues("bad_password").Inc()
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	token, err := auth.Mint(s.config.JWTSecret, user.ID, user.Email, auth.DefaultTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	observability.LoginAttempts.WithLabelValues("success").Inc()
	return c.Redirect("/profile", fiber.StatusSeeOther)
}

// Logout handles GET /logout: expire the cookie and send the client back to
// the login page. The token itself stays valid until its expiry claim; only
// the cookie is dropped.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/login", fiber.StatusSeeOther)
}
