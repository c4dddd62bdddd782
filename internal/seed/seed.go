package seed

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumLikes    int
	ShouldClean bool
}

// Seed populates the database with demo users, posts, and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d posts, %d likes...",
		opts.NumUsers, opts.NumPosts, opts.NumLikes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users, err := factory.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := factory.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	likes, err := factory.CreateLikes(users, posts, opts.NumLikes)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", likes)

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	return db.Exec(`TRUNCATE TABLE likes, posts, users RESTART IDENTITY CASCADE;`).Error
}
