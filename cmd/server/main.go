package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"chapterfund-backend/internal/auth"
	"chapterfund-backend/internal/backup"
	"chapterfund-backend/internal/cache"
	"chapterfund-backend/internal/config"
	"chapterfund-backend/internal/database"
	"chapterfund-backend/internal/db"
	"chapterfund-backend/internal/handlers"
	"chapterfund-backend/internal/health"
	h "chapterfund-backend/internal/http"
	"chapterfund-backend/internal/middleware"
	"chapterfund-backend/internal/monitoring"
	"chapterfund-backend/internal/repositories"
	"chapterfund-backend/internal/services"
	"chapterfund-backend/internal/stream"
	"chapterfund-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations from the embedded filesystem
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.Files)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Start the ledger snapshot scheduler when archival is configured
	if cfg.Archive.Enabled {
		archiver := backup.NewScheduler(pool, cfg.Archive)
		archiver.Start()
		defer archiver.Stop()
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	chapterRepo := repositories.NewChapterRepository(pool)
	memberRepo := repositories.NewMemberRepository(pool)
	purposeRepo := repositories.NewPurposeRepository(pool)
	transactionRepo := repositories.NewTransactionRepository(pool)
	custodyRepo := repositories.NewCustodyRepository(pool)
	movementRepo := repositories.NewBankMovementRepository(pool)

	// Live event hub for dashboards
	hub := stream.NewHub()

	// Initialize services
	userService := services.NewUserService(userRepo, loginLogRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo, totpRepo)
	memberService := services.NewMemberService(memberRepo, chapterRepo)
	purposeService := services.NewPurposeService(purposeRepo)
	transactionService := services.NewTransactionService(transactionRepo, memberRepo, purposeRepo, hub)
	custodyService := services.NewCustodyService(custodyRepo, purposeRepo, hub)
	movementService := services.NewBankMovementService(movementRepo, purposeRepo, hub)
	summaryService := services.NewSummaryService(transactionRepo, memberRepo, purposeRepo, custodyRepo, movementRepo)
	receiptService := services.NewReceiptService(custodyRepo, userRepo)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, jwtManager)
	userHandler := handlers.NewUserHandler(userService)
	chapterHandler := handlers.NewChapterHandler(chapterRepo)
	memberHandler := handlers.NewMemberHandler(memberService, transactionService)
	purposeHandler := handlers.NewPurposeHandler(purposeService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	custodyHandler := handlers.NewCustodyHandler(custodyService)
	movementHandler := handlers.NewBankMovementHandler(movementService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	totpHandler := handlers.NewTOTPHandler(totpService, userRepo)
	loginLogHandler := handlers.NewLoginLogHandler(loginLogRepo)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		chapterHandler,
		memberHandler,
		purposeHandler,
		transactionHandler,
		custodyHandler,
		movementHandler,
		summaryHandler,
		receiptHandler,
		totpHandler,
		loginLogHandler,
		healthHandler,
		authMiddleware,
		hub,
	)

	// Wrap with panic recovery, request logging and metrics middleware
	handler := middleware.PanicRecovery(
		middleware.APILogging(
			middleware.MetricsMiddleware(
				corsMiddleware(router))))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
