package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"goresample/adapters/fit"
	"goresample/adapters/postgres"
	"goresample/adapters/rng"
	"goresample/app"
	"goresample/internal"
	"goresample/internal/config"
	"goresample/ports"
	"goresample/ui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	var repo ports.StudyRepositoryPort
	if cfg.Database.Enabled {
		store, db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect study store: %v", err)
		}
		defer db.Close()
		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatalf("failed to migrate study store: %v", err)
		}
		repo = store
		logger.Info("study store connected")
	} else {
		logger.Warn("DATABASE_URL not set, studies will not be persisted")
	}

	studies := app.NewStudyService(rng.New(), fit.NewOLSFitter(), repo, logger)
	studies.UseParallel(cfg.Simulation.Workers)
	server := ui.NewServer(studies, repo, logger)

	if err := server.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
