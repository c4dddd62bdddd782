// Package service contains application services that sit between handlers and
// repositories.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	// randomNameBytes is the entropy of generated filenames; 12 bytes yields
	// a 24-character hex name.
	randomNameBytes = 12

	defaultUploadDir       = "public/images/uploads"
	defaultMaxUploadSizeMB = 10
)

// AvatarService stores uploaded profile images and records them on the user.
type AvatarService struct {
	users              repository.UserRepository
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewAvatarService creates an AvatarService using the configured upload
// directory and size limit.
func NewAvatarService(users repository.UserRepository, cfg *config.Config) *AvatarService {
	uploadDir := defaultUploadDir
	maxUploadSizeMB := defaultMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.UploadMaxSizeMB > 0 {
			maxUploadSizeMB = cfg.UploadMaxSizeMB
		}
	}

	return &AvatarService{
		users:              users,
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// UploadDir returns the directory uploaded files are written to.
func (s *AvatarService) UploadDir() string {
	return s.uploadDir
}

// Store writes the uploaded file under a server-generated random filename and
// records it as the user's avatar. The filename is random hex plus the
// extension of the client-supplied name, so user input never influences the
// storage path. Returns the stored filename.
func (s *AvatarService) Store(ctx context.Context, userID uint, originalName string, size int64, content io.Reader) (string, error) {
	if userID == 0 {
		return "", models.NewUnauthorizedError("Missing identity")
	}
	if size <= 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if size > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	filename, err := randomFilename(originalName)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	dst, err := os.Create(filepath.Join(s.uploadDir, filename))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, io.LimitReader(content, s.maxUploadSizeBytes)); err != nil {
		return "", models.NewInternalError(err)
	}

	if err := s.users.SetAvatar(ctx, userID, filename); err != nil {
		return "", err
	}

	return filename, nil
}

// randomFilename generates a random hex name keeping only the extension of
// the client-supplied filename.
func randomFilename(originalName string) (string, error) {
	buf := make([]byte, randomNameBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	return hex.EncodeToString(buf) + ext, nil
}
