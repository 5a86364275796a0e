package main

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"jbucks/internal/config"
	"jbucks/internal/database"
	"jbucks/internal/flash"
	"jbucks/internal/handlers"
	"jbucks/internal/logger"
	"jbucks/internal/middleware"
	"jbucks/internal/services"
	"jbucks/internal/validator"
	"jbucks/web"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Create the schema if absent
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom form validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	expenseService := services.NewExpenseService(db)
	reportService := services.NewReportService(db)

	// Initialize handlers
	flashCodec := flash.NewCodec(cfg.SecretKey)
	expenseHandler := handlers.NewExpenseHandler(expenseService, reportService, flashCodec)
	reportHandler := handlers.NewReportHandler(reportService, flashCodec)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// Server-rendered views and static assets, embedded in the binary
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("failed to mount static assets: %w", err)
	}
	router.StaticFS("/static", http.FS(staticFS))

	// Health check endpoint
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Report routes
	router.GET("/", reportHandler.Dashboard)
	router.GET("/payees", reportHandler.PayeeTotals)
	router.GET("/payee/*name", reportHandler.PayeeDetail)

	// Expense routes
	router.GET("/expenses", expenseHandler.ListExpenses)
	router.GET("/add", expenseHandler.NewExpenseForm)
	router.POST("/add", expenseHandler.CreateExpense)
	router.GET("/edit/:id", expenseHandler.EditExpenseForm)
	router.POST("/edit/:id", expenseHandler.UpdateExpense)
	router.POST("/delete/:id", expenseHandler.DeleteExpense)

	log.Infof("Starting jbucks server on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
