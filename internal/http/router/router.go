package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ovenledger/bakery-api/internal/auth"
	"github.com/ovenledger/bakery-api/internal/config"
	"github.com/ovenledger/bakery-api/internal/database"
	"github.com/ovenledger/bakery-api/internal/http/handler"
	"github.com/ovenledger/bakery-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/ovenledger/bakery-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	contactHandler    *handler.ContactHandler
	orderHandler      *handler.OrderHandler
	quoteHandler      *handler.QuoteHandler
	expenseHandler    *handler.ExpenseHandler
	incomeHandler     *handler.IncomeHandler
	ingredientHandler *handler.IngredientHandler
	recipeHandler     *handler.RecipeHandler
	taskHandler       *handler.TaskHandler
	enquiryHandler    *handler.EnquiryHandler
	settingsHandler   *handler.SettingsHandler
	reportHandler     *handler.ReportHandler
	importHandler     *handler.ImportHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	contactHandler *handler.ContactHandler,
	orderHandler *handler.OrderHandler,
	quoteHandler *handler.QuoteHandler,
	expenseHandler *handler.ExpenseHandler,
	incomeHandler *handler.IncomeHandler,
	ingredientHandler *handler.IngredientHandler,
	recipeHandler *handler.RecipeHandler,
	taskHandler *handler.TaskHandler,
	enquiryHandler *handler.EnquiryHandler,
	settingsHandler *handler.SettingsHandler,
	reportHandler *handler.ReportHandler,
	importHandler *handler.ImportHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		contactHandler:    contactHandler,
		orderHandler:      orderHandler,
		quoteHandler:      quoteHandler,
		expenseHandler:    expenseHandler,
		incomeHandler:     incomeHandler,
		ingredientHandler: ingredientHandler,
		recipeHandler:     recipeHandler,
		taskHandler:       taskHandler,
		enquiryHandler:    enquiryHandler,
		settingsHandler:   settingsHandler,
		reportHandler:     reportHandler,
		importHandler:     importHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with pool stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(r.Context(), rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(r.Context(), rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		status := http.StatusOK
		overall := "healthy"
		if !allHealthy {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": overall,
			"checks": checks,
		})
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.rateLimiter.Limit)

		// Contacts
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", rt.contactHandler.ListContacts)
			r.Post("/", rt.contactHandler.CreateContact)
			r.Get("/{id}", rt.contactHandler.GetContact)
			r.Put("/{id}", rt.contactHandler.UpdateContact)
			r.Delete("/{id}", rt.contactHandler.DeleteContact)
		})

		// Orders
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", rt.orderHandler.ListOrders)
			r.Post("/", rt.orderHandler.CreateOrder)
			r.Get("/{id}", rt.orderHandler.GetOrder)
			r.Put("/{id}", rt.orderHandler.UpdateOrder)
			r.Delete("/{id}", rt.orderHandler.DeleteOrder)
		})

		// Quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.ListQuotes)
			r.Post("/", rt.quoteHandler.CreateQuote)
			r.Get("/{id}", rt.quoteHandler.GetQuote)
			r.Put("/{id}", rt.quoteHandler.UpdateQuote)
			r.Delete("/{id}", rt.quoteHandler.DeleteQuote)
			r.Post("/{id}/convert", rt.quoteHandler.ConvertQuote)
		})

		// Expenses
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", rt.expenseHandler.ListExpenses)
			r.Post("/", rt.expenseHandler.CreateExpense)
			r.Get("/{id}", rt.expenseHandler.GetExpense)
			r.Put("/{id}", rt.expenseHandler.UpdateExpense)
			r.Delete("/{id}", rt.expenseHandler.DeleteExpense)
		})

		// Income
		r.Route("/income", func(r chi.Router) {
			r.Get("/", rt.incomeHandler.ListIncome)
			r.Post("/", rt.incomeHandler.CreateIncome)
			r.Get("/{id}", rt.incomeHandler.GetIncome)
			r.Put("/{id}", rt.incomeHandler.UpdateIncome)
			r.Delete("/{id}", rt.incomeHandler.DeleteIncome)
		})

		// Ingredients
		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", rt.ingredientHandler.ListIngredients)
			r.Post("/", rt.ingredientHandler.CreateIngredient)
			r.Get("/{id}", rt.ingredientHandler.GetIngredient)
			r.Put("/{id}", rt.ingredientHandler.UpdateIngredient)
			r.Delete("/{id}", rt.ingredientHandler.DeleteIngredient)
		})

		// Recipes
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", rt.recipeHandler.ListRecipes)
			r.Post("/", rt.recipeHandler.CreateRecipe)
			r.Get("/{id}", rt.recipeHandler.GetRecipe)
			r.Put("/{id}", rt.recipeHandler.UpdateRecipe)
			r.Delete("/{id}", rt.recipeHandler.DeleteRecipe)
			r.Get("/{id}/cost", rt.recipeHandler.GetRecipeCost)
		})

		// Tasks
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", rt.taskHandler.ListTasks)
			r.Post("/", rt.taskHandler.CreateTask)
			r.Get("/{id}", rt.taskHandler.GetTask)
			r.Put("/{id}", rt.taskHandler.UpdateTask)
			r.Delete("/{id}", rt.taskHandler.DeleteTask)
			r.Post("/{id}/complete", rt.taskHandler.CompleteTask)
		})

		// Enquiries
		r.Route("/enquiries", func(r chi.Router) {
			r.Get("/", rt.enquiryHandler.ListEnquiries)
			r.Post("/", rt.enquiryHandler.CreateEnquiry)
			r.Get("/{id}", rt.enquiryHandler.GetEnquiry)
			r.Put("/{id}/status", rt.enquiryHandler.UpdateEnquiryStatus)
			r.Delete("/{id}", rt.enquiryHandler.DeleteEnquiry)
		})

		// Settings, tax rates and feature toggles
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", rt.settingsHandler.GetSettings)
			r.Put("/", rt.settingsHandler.UpdateSettings)
			r.Get("/tax-rates", rt.settingsHandler.ListTaxRates)
			r.Post("/tax-rates", rt.settingsHandler.CreateTaxRate)
			r.Delete("/tax-rates/{id}", rt.settingsHandler.DeleteTaxRate)
			r.Get("/features", rt.settingsHandler.ListFeatures)
			r.Get("/features/{key}", rt.settingsHandler.GetFeature)
			r.Put("/features/{key}", rt.settingsHandler.SetFeature)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", rt.reportHandler.GetSummary)
			r.Get("/monthly", rt.reportHandler.GetMonthly)
		})

		// Data import
		r.Post("/data/import", rt.importHandler.ImportData)
		r.Post("/data/import/json", rt.importHandler.ImportDataJSON)
		r.Route("/import", func(r chi.Router) {
			r.Post("/orders", rt.importHandler.ImportOrders)
			r.Post("/quotes", rt.importHandler.ImportQuotes)
			r.Post("/order-items", rt.importHandler.ImportOrderItems)
		})
		r.Post("/expenses-import", rt.importHandler.ImportExpenses)
	})

	return r
}
