// Command main runs the database seeder for Inkwell.
package main

import (
	"flag"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	numLikes := flag.Int("likes", 300, "Number of likes to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		NumLikes:    *numLikes,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All seeded users share the password %q", seed.DemoPassword)
}
