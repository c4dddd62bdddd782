package server

import (
	"context"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie slot carrying the session token.
const SessionCookieName = "token"

// SessionRequired returns the session gate middleware. It reads the session
// cookie, verifies it, and redirects to the login page on any failure. The
// cause (absent, invalid, expired) is recorded in metrics but deliberately
// not surfaced to the client.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, state := auth.Verify(s.config.JWTSecret, c.Cookies(SessionCookieName))
		if state != auth.StateValid {
			observability.SessionRejections.WithLabelValues(state.String()).Inc()
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		c.Locals("userID", identity.UserID)
		c.Locals("email", identity.Email)

		// Sync to UserContext for logging and downstream layers.
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, identity.UserID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// setSessionCookie attaches a freshly minted session token to the response.
// The cookie expiry mirrors the token's own expiry claim.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.DefaultTTL),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
