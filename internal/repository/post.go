// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and their liked-by sets.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByUserID(ctx context.Context, userID uint, currentUserID uint) ([]*models.Post, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	ToggleLike(ctx context.Context, userID, postID uint) (liked bool, err error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	LikeCount(ctx context.Context, postID uint) (int64, error)
	LikerIDs(ctx context.Context, postID uint) ([]uint, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch the like count and the requesting
// user's liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *postRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("content", content)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ToggleLike flips the user's membership in the post's liked-by set in a
// single statement. The DELETE and the guarded INSERT run atomically, so
// concurrent toggles cannot produce duplicate rows or lost updates; the
// composite unique index backs the ON CONFLICT clause as a second guard.
// Returns true when the toggle resulted in a like, false when it removed one.
func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`WITH removed AS (
			DELETE FROM likes WHERE user_id = ? AND post_id = ? RETURNING 1
		)
		INSERT INTO likes (user_id, post_id, created_at)
		SELECT ?, ?, NOW()
		WHERE NOT EXISTS (SELECT 1 FROM removed)
		ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID, userID, postID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	cache.InvalidatePost(ctx, postID)
	// RowsAffected reflects the INSERT: one row means the like was added.
	return result.RowsAffected > 0, nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) LikerIDs(ctx context.Context, postID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
