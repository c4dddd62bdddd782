package server

import (
	"net/http"
	"testing"
	"time"

	"inkwell/internal/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	s, _, _ := newTestServer(t)
	app := fiber.New()
	app.Get("/profile", s.SessionRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID": currentUserID(c),
			"email":  c.Locals("email"),
		})
	})
	return app, s
}

func TestSessionRequired_RedirectsToLogin(t *testing.T) {
	wrongSecret, err := auth.Mint("some-other-secret", 7, "inkling@example.com", time.Hour)
	require.NoError(t, err)
	expired, err := auth.Mint("test_secret", 7, "inkling@example.com", -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
	}{
		{name: "No cookie", cookie: ""},
		{name: "Garbage token", cookie: "not-a-jwt"},
		{name: "Wrong signing secret", cookie: wrongSecret},
		{name: "Expired token", cookie: expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := sessionTestApp(t)

			req, _ := http.NewRequest(http.MethodGet, "/profile", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get("Location"))
		})
	}
}

func TestSessionRequired_ValidTokenPasses(t *testing.T) {
	app, _ := sessionTestApp(t)

	token, err := auth.Mint("test_secret", 42, "inkling@example.com", time.Hour)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
