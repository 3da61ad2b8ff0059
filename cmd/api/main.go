package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ovenledger/bakery-api/docs"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/config"
	"github.com/ovenledger/bakery-api/internal/database"
	"github.com/ovenledger/bakery-api/internal/http/handler"
	"github.com/ovenledger/bakery-api/internal/http/middleware"
	"github.com/ovenledger/bakery-api/internal/http/router"
	"github.com/ovenledger/bakery-api/internal/jobs"
	"github.com/ovenledger/bakery-api/internal/logger"
	"github.com/ovenledger/bakery-api/internal/repository"
	"github.com/ovenledger/bakery-api/internal/service"
	"github.com/ovenledger/bakery-api/internal/storage"
	"go.uber.org/zap"
)

// @title OvenLedger API
// @version 1.0
// @description Back office API for small bakery businesses: contacts, orders, quotes, finances, recipes and data import

// @contact.name API Support
// @contact.email support@ovenledger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Repositories
	contactRepo := repository.NewContactRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)

	// Services
	contactService := service.NewContactService(contactRepo, log)
	orderService := service.NewOrderService(orderRepo, contactRepo, sequenceRepo, log)
	quoteService := service.NewQuoteService(quoteRepo, orderRepo, contactRepo, sequenceRepo, log)
	expenseService := service.NewExpenseService(expenseRepo, log)
	incomeService := service.NewIncomeService(incomeRepo, log)
	ingredientService := service.NewIngredientService(ingredientRepo, log)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo, log)
	taskService := service.NewTaskService(taskRepo, log)
	enquiryService := service.NewEnquiryService(enquiryRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, taxRateRepo, log)
	reportService := service.NewReportService(orderRepo, expenseRepo, incomeRepo, enquiryRepo, log)
	importService := service.NewImportService(
		contactRepo,
		orderRepo,
		quoteRepo,
		expenseRepo,
		incomeRepo,
		ingredientRepo,
		recipeRepo,
		taskRepo,
		enquiryRepo,
		settingsRepo,
		sequenceRepo,
		fileStorage,
		cfg.Import,
		log,
	)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Handlers
	contactHandler := handler.NewContactHandler(contactService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)
	quoteHandler := handler.NewQuoteHandler(quoteService, log)
	expenseHandler := handler.NewExpenseHandler(expenseService, log)
	incomeHandler := handler.NewIncomeHandler(incomeService, log)
	ingredientHandler := handler.NewIngredientHandler(ingredientService, log)
	recipeHandler := handler.NewRecipeHandler(recipeService, log)
	taskHandler := handler.NewTaskHandler(taskService, log)
	enquiryHandler := handler.NewEnquiryHandler(enquiryService, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	importHandler := handler.NewImportHandler(importService, cfg.Storage, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		contactHandler,
		orderHandler,
		quoteHandler,
		expenseHandler,
		incomeHandler,
		ingredientHandler,
		recipeHandler,
		taskHandler,
		enquiryHandler,
		settingsHandler,
		reportHandler,
		importHandler,
	)

	// Background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler, err = jobs.NewScheduler(cfg.Jobs, expenseRepo, log)
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		scheduler.Start()
		log.Info("Scheduler started",
			zap.String("recurring_expense_cron", cfg.Jobs.RecurringExpenseCron),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			scheduler.Stop()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
