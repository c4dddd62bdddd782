package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var storedAvatarRe = regexp.MustCompile(`^[0-9a-f]{24}\.png$`)

func multipartImageRequest(t *testing.T, field, filename string, payload []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadAvatar(t *testing.T) {
	s, userRepo, _ := newTestServer(t)

	uploadDir := t.TempDir()
	s.avatarService = service.NewAvatarService(userRepo, &config.Config{UploadDir: uploadDir})

	var stored string
	userRepo.On("SetAvatar", mock.Anything, uint(7), mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			stored = args.String(2)
		}).Return(nil)

	app := fiber.New()
	app.Post("/upload", asUser(7), s.UploadAvatar)

	resp, err := app.Test(multipartImageRequest(t, "image", "me.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile", resp.Header.Get("Location"))

	// A random name with the lowercased original extension was written to disk.
	require.Regexp(t, storedAvatarRe, stored)
	data, err := os.ReadFile(filepath.Join(uploadDir, stored))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	userRepo.AssertExpectations(t)
}

func TestUploadAvatar_NoFile(t *testing.T) {
	s, userRepo, _ := newTestServer(t)
	s.avatarService = service.NewAvatarService(userRepo, &config.Config{UploadDir: t.TempDir()})

	app := fiber.New()
	app.Post("/upload", asUser(7), s.UploadAvatar)

	resp, err := app.Test(formRequest(http.MethodPost, "/upload", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	userRepo.AssertNotCalled(t, "SetAvatar", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadAvatar_WrongField(t *testing.T) {
	s, userRepo, _ := newTestServer(t)
	s.avatarService = service.NewAvatarService(userRepo, &config.Config{UploadDir: t.TempDir()})

	app := fiber.New()
	app.Post("/upload", asUser(7), s.UploadAvatar)

	resp, err := app.Test(multipartImageRequest(t, "file", "me.png", []byte("png-bytes")))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
