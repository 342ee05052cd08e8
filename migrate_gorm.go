// migrate_gorm.go - Run this file to check the schema against the configured database
// Usage: go run migrate_gorm.go

//go:build ignore

package main

import (
	"log"

	"github.com/sahilchouksey/actividades-api/config"
	"github.com/sahilchouksey/actividades-api/database"
)

func main() {
	log.Println("=== GORM Migration Check ===")

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatal("Failed to load environment variables:", err)
	}

	// Initialize GORM connection
	store, err := database.StartGORM()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	// Run migrations
	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Health check
	if err := store.HealthCheck(); err != nil {
		log.Fatal("Database health check failed:", err)
	}

	log.Println("All migrations completed successfully")
	log.Println("Tables:")
	for _, table := range []string{
		"actividades", "categorias", "alumnos",
		"actividad_pertence", "solicitud_actividades",
		"products", "books",
		"audit_logs", "cron_job_logs",
	} {
		log.Println("  -", table)
	}
}
