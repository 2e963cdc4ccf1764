package main

import (
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/osaa-analytics/unga-readout/internal/infrastructure/database"
	"github.com/osaa-analytics/unga-readout/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewSQLiteDB(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.CloseDB(db)

	migrations := &migrate.FileMigrationSource{
		Dir: "migrations",
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	n, err := migrate.Exec(sqlDB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("Applied %d migration(s)", n)
}
