package server

import (
	"bytes"
	"embed"
	"html/template"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

//go:embed views/*.html
var viewsFS embed.FS

// views renders the embedded HTML templates. Rendering is glue: the pages
// carry no contract beyond status codes and redirects.
type views struct {
	t *template.Template
}

func newViews() (*views, error) {
	t, err := template.ParseFS(viewsFS, "views/*.html")
	if err != nil {
		return nil, err
	}
	return &views{t: t}, nil
}

func (v *views) render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := v.t.ExecuteTemplate(&buf, name, data); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
