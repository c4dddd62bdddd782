// Package seed provides helpers to create demo data for development
// databases. These helpers are not used by the server itself.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password shared by every seeded user.
const DemoPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db           *gorm.DB
	rng          *rand.Rand
	passwordHash string
}

// NewFactory creates a Factory bound to the provided Gorm DB. Hashing the
// shared password once keeps large seeds fast.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	return &Factory{
		db:           db,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// BuildUser constructs a user without persisting it. The index keeps
// usernames and emails unique across a run.
func (f *Factory) BuildUser(i int) *models.User {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, i))

	return &models.User{
		Username: username,
		Name:     fmt.Sprintf("%s %s", first, last),
		Age:      f.rng.Intn(50) + 16,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: f.passwordHash,
		Avatar:   models.DefaultAvatar,
	}
}

// BuildPost constructs a post for the given user without persisting it.
// Creation times are spread over the last 90 days so profile ordering has
// something to show.
func (f *Factory) BuildPost(user *models.User) *models.Post {
	post := &models.Post{
		Content: gofakeit.Paragraph(1, f.rng.Intn(3)+1, f.rng.Intn(12)+3, " "),
		UserID:  user.ID,
	}
	post.CreatedAt = time.Now().Add(-time.Duration(f.rng.Intn(90*24)) * time.Hour)
	return post
}

// CreateUsers persists count generated users.
func (f *Factory) CreateUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user := f.BuildUser(i)
		if err := f.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", user.Username, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// CreatePosts persists count posts spread across the given users.
func (f *Factory) CreatePosts(users []*models.User, count int) ([]*models.Post, error) {
	if len(users) == 0 {
		if count == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot create posts without users")
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		post := f.BuildPost(users[f.rng.Intn(len(users))])
		if err := f.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// CreateLikes persists roughly count likes over random user/post pairs.
// Pairs are deduplicated up front so the unique index never trips.
func (f *Factory) CreateLikes(users []*models.User, posts []*models.Post, count int) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		if count == 0 {
			return 0, nil
		}
		return 0, fmt.Errorf("cannot create likes without users and posts")
	}

	seen := make(map[[2]uint]struct{}, count)
	created := 0

	for attempts := 0; created < count && attempts < count*4; attempts++ {
		user := users[f.rng.Intn(len(users))]
		post := posts[f.rng.Intn(len(posts))]

		pair := [2]uint{user.ID, post.ID}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}

		like := &models.Like{UserID: user.ID, PostID: post.ID}
		if err := f.db.Create(like).Error; err != nil {
			return created, fmt.Errorf("failed to create like: %w", err)
		}
		created++
	}

	return created, nil
}
