package main

import (
	"errors"
	"log"
	"os"

	"hotel/internal/config"
	"hotel/internal/database"

	"github.com/joho/godotenv"
)

// migrate applies the schema without starting the API, for deploy pipelines
// that run migrations as a separate step.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	var tables []string
	for _, table := range []string{"users", "rooms", "guests", "bookings", "payments"} {
		if db.Migrator().HasTable(table) {
			tables = append(tables, table)
		}
	}
	log.Printf("migration completed: tables=%v", tables)
}
