package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gocmmi/adapters/catalog"
	"gocmmi/adapters/db"
	"gocmmi/app"
	"gocmmi/domain/assessment"
	"gocmmi/internal"
	"gocmmi/internal/config"
	"gocmmi/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	conn, err := db.Open(appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer conn.Close()

	if err := db.EnsureSchema(conn); err != nil {
		log.Fatalf("Failed to bootstrap schema: %v", err)
	}

	catalogRepo := catalog.NewFSRepository(appConfig.Catalog.DataDir)
	if err := catalogRepo.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load catalogs from %s: %v", appConfig.Catalog.DataDir, err)
	}
	logger.Info("catalogs loaded from %s", appConfig.Catalog.DataDir)

	assessmentRepo := db.NewAssessmentRepository(conn)
	projectRepo := db.NewProjectRepository(conn)

	thresholds := assessment.Thresholds{
		KPA:    appConfig.Thresholds.KPA,
		Global: appConfig.Thresholds.Global,
	}
	logger.Info("thresholds: kpa=%.2f global=%.2f", thresholds.KPA, thresholds.Global)

	assessmentService := app.NewAssessmentService(catalogRepo, assessmentRepo, thresholds)
	portfolioService := app.NewPortfolioService(projectRepo, assessmentRepo)

	webApp := ui.NewApp(ui.Config{
		Port:        appConfig.Server.Port,
		CORSOrigins: appConfig.Server.CORSOrigins,
	}, catalogRepo, projectRepo, assessmentService, portfolioService, logger)

	if err := webApp.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
