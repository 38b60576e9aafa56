package main

import (
	"log"

	"fairlens/adapters/postgres"
	"fairlens/app"
	"fairlens/domain/fairness"
	"fairlens/internal"
	"fairlens/internal/api"
	"fairlens/internal/config"
	"fairlens/internal/engine"
	"fairlens/internal/errors"
	"fairlens/internal/testkit"
	"fairlens/ports"
	"fairlens/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and runs migrations. An empty
// DATABASE_URL means the caller wants in-memory storage.
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger
	gin.SetMode(cfg.Server.GinMode)

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var repository ports.ReportRepositoryPort
	if db != nil {
		defer db.Close()
		repository = postgres.NewReportRepository(db)
		logger.Info("using PostgreSQL report storage")
	} else {
		repository = testkit.NewInMemoryReportRepository()
		logger.Info("DATABASE_URL not set, using in-memory report storage")
	}

	eng := engine.New(engine.Config{
		Policy: fairness.Policy{
			Threshold: cfg.Audit.Threshold,
			WarnBand:  cfg.Audit.WarnBand,
		},
		PredictionColumn: cfg.Audit.PredictionColumn,
		Logger:           logger,
	})
	service := app.NewAuditService(eng, repository, logger)

	uiApp := ui.NewApp(repository, logger)
	go func() {
		if err := uiApp.Run(cfg.UI.Port); err != nil {
			log.Fatalf("UI server failed: %v", err)
		}
	}()

	server := api.NewServer(service, repository, logger)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
