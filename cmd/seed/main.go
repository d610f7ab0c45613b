// Command seed populates the database with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/logger"
	"yatube/internal/seed"
	"yatube/internal/services"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numGroups := flag.Int("groups", 4, "Number of groups to create")
	numPosts := flag.Int("posts", 60, "Number of posts to create")
	maxComments := flag.Int("comments", 3, "Maximum comments per post")
	randSeed := flag.Int64("seed", 0, "Random seed (0 for random data)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg.Env)
	defer logger.Sync()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	feedCache, err := cache.New(cfg)
	if err != nil {
		log.Fatalf("Failed to init feed cache: %v", err)
	}

	res, err := seed.New(services.New(conn, feedCache, cfg)).Run(context.Background(), seed.Options{
		Users:    *numUsers,
		Groups:   *numGroups,
		Posts:    *numPosts,
		Comments: *maxComments,
		Seed:     *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Created %d users, %d groups, %d posts", len(res.Users), len(res.Groups), res.Posts)
	log.Printf("All seeded users have the password: %s", seed.Password)
}
