package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SetAvatar(ctx context.Context, id uint, filename string) error {
	args := m.Called(ctx, id, filename)
	return args.Error(0)
}

func newTestService(t *testing.T, repo *MockUserRepository) *AvatarService {
	t.Helper()
	return NewAvatarService(repo, &config.Config{
		UploadDir:       t.TempDir(),
		UploadMaxSizeMB: 1,
	})
}

var hexNameRe = regexp.MustCompile(`^[0-9a-f]{24}\.png$`)

func TestAvatarService_Store(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(t, repo)

	repo.On("SetAvatar", mock.Anything, uint(1), mock.MatchedBy(func(name string) bool {
		return hexNameRe.MatchString(name)
	})).Return(nil)

	content := strings.NewReader("fake image bytes")
	filename, err := svc.Store(context.Background(), 1, "selfie.PNG", int64(content.Len()), content)
	require.NoError(t, err)

	assert.Regexp(t, hexNameRe, filename)

	data, err := os.ReadFile(filepath.Join(svc.UploadDir(), filename))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	repo.AssertExpectations(t)
}

func TestAvatarService_Store_RandomNamesDiffer(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(t, repo)

	repo.On("SetAvatar", mock.Anything, uint(1), mock.Anything).Return(nil)

	first, err := svc.Store(context.Background(), 1, "a.png", 4, strings.NewReader("aaaa"))
	require.NoError(t, err)
	second, err := svc.Store(context.Background(), 1, "a.png", 4, strings.NewReader("bbbb"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAvatarService_Store_StripsUserSuppliedPath(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(t, repo)

	repo.On("SetAvatar", mock.Anything, uint(1), mock.Anything).Return(nil)

	filename, err := svc.Store(context.Background(), 1, "../../etc/passwd", 4, strings.NewReader("data"))
	require.NoError(t, err)

	assert.NotContains(t, filename, "/")
	assert.NotContains(t, filename, "..")

	// The file landed inside the upload dir, nowhere else.
	_, err = os.Stat(filepath.Join(svc.UploadDir(), filename))
	assert.NoError(t, err)
}

func TestAvatarService_Store_Validation(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestService(t, repo)

	_, err := svc.Store(context.Background(), 0, "a.png", 4, strings.NewReader("data"))
	assert.Error(t, err)

	_, err = svc.Store(context.Background(), 1, "a.png", 0, strings.NewReader(""))
	assert.Error(t, err)

	_, err = svc.Store(context.Background(), 1, "a.png", 2*1024*1024, strings.NewReader("big"))
	assert.Error(t, err)

	repo.AssertNotCalled(t, "SetAvatar", mock.Anything, mock.Anything, mock.Anything)
}
