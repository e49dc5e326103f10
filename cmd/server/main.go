package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/kovilapp/temple-admin/internal/application/service"
	"github.com/kovilapp/temple-admin/internal/assistant"
	"github.com/kovilapp/temple-admin/internal/config"
	openaiadapter "github.com/kovilapp/temple-admin/internal/infrastructure/external/openai"
	"github.com/kovilapp/temple-admin/internal/infrastructure/persistence/repository"
	httpserver "github.com/kovilapp/temple-admin/internal/interfaces/http"
	"github.com/kovilapp/temple-admin/internal/notification"
	"github.com/kovilapp/temple-admin/internal/render"
	"github.com/kovilapp/temple-admin/internal/report"
	"github.com/kovilapp/temple-admin/pkg/database"
	"github.com/kovilapp/temple-admin/pkg/utils"
)

func main() {
	// Local development credentials from .env, if present
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting temple administration server",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	sugar := utils.NewSugarAdapter(logger)

	// Repositories and record services
	receiptRepo := repository.NewReceiptRepository(db.DB, logger)
	staffRepo := repository.NewStaffRepository(db.DB, logger)
	receiptService := service.NewReceiptService(receiptRepo, sugar)
	staffService := service.NewStaffService(staffRepo, sugar)

	// Assistant: language-model completer behind the interpretation engine
	completer := openaiadapter.NewCompleter(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.Temperature,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Timeout,
		logger,
	)
	engine := assistant.New(completer, logger)

	dispatcher := notification.NewDispatcher(logger)
	conversation := service.NewConversationService(engine, receiptService, staffService, dispatcher, sugar)

	// Document output
	renderer := render.NewPdfRenderer(cfg.Temple.Name, cfg.Temple.Address)
	exporter := report.NewExcelExporter(logger)

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		receiptService,
		staffService,
		conversation,
		renderer,
		exporter,
		sugar,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited")
}
