// Command main runs the database seeder for Vitrine.
package main

import (
	"flag"
	"log"

	"vitrine/internal/config"
	"vitrine/internal/database"
	"vitrine/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 25, "Number of blog posts to create")
	numProjects := flag.Int("projects", 8, "Number of portfolio projects to create")
	shouldClean := flag.Bool("clean", true, "Clean content tables before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumPosts:    *numPosts,
		NumProjects: *numProjects,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. Staff login: admin / %s", seed.AdminPassword)
}
