package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"snapvault/config"
	"snapvault/internal/domain/media"
	"snapvault/internal/domain/user"
	"snapvault/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

const usage = `
SnapVault - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Create or update all tables
  status      Show database connection status
  seed-dev    Seed with development/test data
  reset       Drop all tables and re-run migrations (DANGEROUS)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev
  go run cmd/migrate/main.go reset
`

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	database.Connect(cfg)

	switch flag.Arg(0) {
	case "up":
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		if err := database.HealthCheck(); err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		log.Printf("Database OK at %s", cfg.DBPath)
	case "seed-dev":
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		if err := seedDev(); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Development data seeded")
	case "reset":
		if err := database.DB.Migrator().DropTable(&media.Like{}, &media.Media{}, &user.User{}); err != nil {
			log.Fatalf("Drop failed: %v", err)
		}
		if err := database.Migrate(database.DB); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Database reset")
	default:
		fmt.Print(usage)
		os.Exit(1)
	}
}

func seedDev() error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Dev12345!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	dev := &user.User{
		Username:     "dev",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	return database.DB.FirstOrCreate(dev, user.User{Username: "dev"}).Error
}
