package main

import (
	"log"

	"go-parts-inventory/internal/config"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/pkg/database"
	"go-parts-inventory/pkg/logger"
)

func main() {
	// 1. Load Env
	if err := config.LoadEnvFiles(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logger.Init(cfg.AppName, true)
	logger.SetLevel("warn")

	dbCfg, err := cfg.Database()
	if err != nil {
		log.Fatalf("❌ Invalid database configuration: %v", err)
	}
	log.Printf("Database driver: %s", dbCfg.Driver)

	// 2. Connect
	db, err := database.Connect(dbCfg)
	if err != nil {
		log.Fatalf("❌ Connection failed: %v", err)
	}
	defer database.Close(db)

	version, err := database.Version(db)
	if err != nil {
		log.Fatalf("❌ Failed to read server version: %v", err)
	}
	log.Printf("✅ Connected successfully! Version: %s", version)

	// 3. Migrate
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Schema is up to date. Your database is ready to use.")
}
