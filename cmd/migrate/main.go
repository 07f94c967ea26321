package main

import (
	"flag"
	"log"

	"quiz-forge/internal/config"
	"quiz-forge/internal/database"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "", "migrations base directory (defaults to db.migrations_dir)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	baseDir := cfg.DB.MigrationsDir
	if *dir != "" {
		baseDir = *dir
	}

	db, err := database.Open(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db.DB, cfg.DB.Driver, baseDir); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err), zap.String("dir", baseDir))
	}
	l.Info("Database is up to date", zap.String("driver", cfg.DB.Driver))
}
