package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPost(t *testing.T, repo PostRepository, userID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostRepository_CreateAndGet(t *testing.T) {
	users := NewUserRepository(testDB)
	posts := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, users)
	post := createTestPost(t, posts, author.ID, "hello")

	found, err := posts.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Content)
	assert.Equal(t, author.ID, found.UserID)
	assert.Equal(t, 0, found.LikesCount)
	assert.False(t, found.Liked)
}

func TestPostRepository_GetByID_Missing(t *testing.T) {
	posts := NewPostRepository(testDB)

	_, err := posts.GetByID(context.Background(), 999999999, 0)
	assert.True(t, models.IsNotFound(err))
}

func TestPostRepository_UpdateContent(t *testing.T) {
	users := NewUserRepository(testDB)
	posts := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, users)
	post := createTestPost(t, posts, author.ID, "before")

	require.NoError(t, posts.UpdateContent(ctx, post.ID, "after"))

	found, err := posts.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "after", found.Content)
}

func TestPostRepository_ToggleLike_Idempotence(t *testing.T) {
	users := NewUserRepository(testDB)
	posts := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, users)
	liker := createTestUser(t, users)
	post := createTestPost(t, posts, author.ID, "toggle me")

	// absent -> present
	liked, err := posts.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ids, err := posts.LikerIDs(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{liker.ID}, ids)

	// present -> absent
	liked, err = posts.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	count, err = posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPostRepository_ToggleLike_DistinctUsers(t *testing.T) {
	users := NewUserRepository(testDB)
	posts := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, users)
	post := createTestPost(t, posts, author.ID, "popular")

	const n = 5
	likerIDs := make(map[uint]bool, n)
	for i := 0; i < n; i++ {
		liker := createTestUser(t, users)
		liked, err := posts.ToggleLike(ctx, liker.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, liked)
		likerIDs[liker.ID] = true
	}

	count, err := posts.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)

	ids, err := posts.LikerIDs(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, ids, n)
	for _, id := range ids {
		assert.True(t, likerIDs[id], "unexpected liker %d", id)
	}
}

func TestPostRepository_LikedFlagForRequestingUser(t *testing.T) {
	users := NewUserRepository(testDB)
	posts := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, users)
	liker := createTestUser(t, users)
	post := createTestPost(t, posts, author.ID, "flagged")

	_, err := posts.ToggleLike(ctx, liker.ID, post.ID)
	require.NoError(t, err)

	asLiker, err := posts.GetByID(ctx, post.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, asLiker.Liked)
	assert.Equal(t, 1, asLiker.LikesCount)

	asAuthor, err := posts.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, asAuthor.Liked)
}

func TestPostRepository_GetByUserID_Ordering(t *testing.T) {
	users := NewUserRepository(testDB)
	posts := NewPostRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, users)
	first := createTestPost(t, posts, author.ID, "first")
	second := createTestPost(t, posts, author.ID, "second")

	list, err := posts.GetByUserID(ctx, author.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Newest first.
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
