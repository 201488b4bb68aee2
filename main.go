package main

import (
	"context"
	"embed"
	"log"
	"time"

	"homecare-booking/cmd"
	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/wire"
	"homecare-booking/internal/worker"
	"homecare-booking/pkg/database"
	"homecare-booking/pkg/utils"

	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.Migrate(context.Background(), db, migrations); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	logger.Info("Migrations applied")

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, config, logger)

	sweeper := worker.NewSweeper(
		app.Service.Booking,
		time.Duration(config.Sweeper.IntervalMinutes)*time.Minute,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper.Start(ctx)
	defer sweeper.Stop()

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server stopped")
}
