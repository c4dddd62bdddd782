package server

import (
	"context"

	"inkwell/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
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

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, userID, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *MockPostRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) LikerIDs(ctx context.Context, postID uint) ([]uint, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// sessionCookieValue extracts the session cookie value from a response, or ""
// when none was set.
func sessionCookieValue(cookies []string) string {
	for _, raw := range cookies {
		if len(raw) > len(SessionCookieName)+1 && raw[:len(SessionCookieName)+1] == SessionCookieName+"=" {
			value := raw[len(SessionCookieName)+1:]
			for i := 0; i < len(value); i++ {
				if value[i] == ';' {
					return value[:i]
				}
			}
			return value
		}
	}
	return ""
}
