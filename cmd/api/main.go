package main

import (
	_ "churchadmin/api/swagger" // swagger docs
	"churchadmin/internal/config"
	"churchadmin/internal/database"
	"churchadmin/internal/handler"
	"churchadmin/internal/middleware"
	"churchadmin/internal/model"
	"churchadmin/internal/permission"
	"churchadmin/internal/repository"
	"churchadmin/internal/service"
	"churchadmin/internal/upload"
	"churchadmin/internal/websocket"
	"churchadmin/pkg/response"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Church Finance API
// @version         1.0
// @description     Income, expense and budget workflow for church administration.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if err := cfg.ApplyTimezone(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.NewConnection(cfg.DSN(), cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	var store upload.Store
	switch cfg.UploadDriver {
	case config.UploadOSS:
		ossStore, err := upload.NewOSSStore(upload.OSSConfig{
			Endpoint:        cfg.OSS.Endpoint,
			AccessKeyID:     cfg.OSS.AccessKeyID,
			AccessKeySecret: cfg.OSS.AccessKeySecret,
			Bucket:          cfg.OSS.Bucket,
			Prefix:          cfg.OSS.Prefix,
		})
		if err != nil {
			log.Fatalf("Receipt storage failed: %v", err)
		}
		store = ossStore
	default:
		store = upload.NewLocalStore(cfg.UploadDir)
	}
	receipts := upload.New(store)

	// Set up dependencies (Repository -> Service -> Handler)
	activityRepo := repository.NewActivityRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTransactionManager(db)
	txids := repository.NewTransactionIDGenerator(db, map[string]string{
		model.IncomePrefix:  model.TableIncome,
		model.ExpensePrefix: model.TableExpense,
	})

	settings := service.DefaultSettings()
	settings.DefaultCurrency = cfg.DefaultCurrency
	settings.AutoApprovalLimit = cfg.AutoApprovalLimit
	settings.ReceiptMaxBytes = cfg.UploadMaxBytes
	publish := service.WithPublisher(wsHub)

	incomeService := service.NewIncomeService(incomeRepo, categoryRepo, activityRepo, txids, txManager, settings, publish)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, activityRepo, txids, txManager, receipts, settings, publish)
	categoryService := service.NewCategoryService(categoryRepo, incomeRepo, expenseRepo, activityRepo, txManager, publish)
	reportService := service.NewReportService(reportRepo, incomeRepo, expenseRepo, categoryRepo, publish)
	exportService := service.NewExportService(incomeService, expenseService)
	activityService := service.NewActivityService(activityRepo)

	// Initialize Handlers
	incomeHandler := handler.NewIncomeHandler(incomeService, exportService)
	expenseHandler := handler.NewExpenseHandler(expenseService, exportService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	reportHandler := handler.NewReportHandler(reportService)
	activityHandler := handler.NewActivityHandler(activityService)

	// Set up Gin Router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.UploadMaxBytes

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	secret := []byte(cfg.JWTSecret)
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, secret)
	})

	// API Routing
	api := router.Group("/api", middleware.RequireAuth(secret))
	api.GET("/settings", func(c *gin.Context) {
		c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
			"default_currency":          cfg.DefaultCurrency,
			"auto_approval_limit":       cfg.AutoApprovalLimit.StringFixed(2),
			"large_amount_confirmation": cfg.LargeAmountConfirmation.StringFixed(2),
		}))
	})
	incomeHandler.RegisterRoutes(api)
	expenseHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)
	reportHandler.RegisterRoutes(api)
	activityHandler.RegisterRoutes(api)

	if cfg.UploadDriver == config.UploadLocal {
		api.Group("/receipts", middleware.RequirePermission(permission.Expense, permission.View)).
			Static("/", cfg.UploadDir+"/"+settings.ReceiptDir)
	}

	log.Printf("Server listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
