// Command migrate applies the schema for the backend.
package main

import (
	"flag"
	"fmt"
	"log"

	"heartbeat/internal/config"
	"heartbeat/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	// Connect already automigrates outside production; run explicitly so
	// production deployments get the same schema.
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	log.Println("migrations applied")
	return nil
}
