// Command main runs the database seeder for Heartbeat.
package main

import (
	"flag"
	"log"

	"heartbeat/internal/config"
	"heartbeat/internal/database"
	"heartbeat/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numFeelings := flag.Int("feelings", 200, "Number of feelings to record")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plain-text passwords for faster seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d feelings, clean=%v\n", *numUsers, *numFeelings, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Seed(seed.Options{
		NumUsers:    *numUsers,
		NumFeelings: *numFeelings,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
