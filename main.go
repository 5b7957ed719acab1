package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"frontdesk-backend/config"
	"frontdesk-backend/controllers"
	"frontdesk-backend/routes"
	"frontdesk-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if err := config.ConnectDatabase(); err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	db := config.DB
	if db == nil {
		logger.Fatal("config.DB is nil after ConnectDatabase()")
	}
	logger.Info("database connection established, migrations applied")

	// Services
	guestService := services.NewGuestService(db)
	ledgerService := services.NewLedgerService(db)
	identityService := services.NewIdentityService(db)
	orderService := services.NewOrderService(db)
	paymentService := services.NewPaymentService(db)
	customItemService := services.NewCustomItemService(db)
	expenseService := services.NewExpenseService(db)

	// Remote sync is optional; unset REMOTE_SYNC_URL disables it.
	syncURL := os.Getenv("REMOTE_SYNC_URL")
	controllers.Sync = services.NewSyncPublisher(db, syncURL, logger)
	if controllers.Sync.Enabled() {
		logger.Info("remote sync enabled", zap.String("url", syncURL))
		if err := controllers.Sync.Pull(); err != nil {
			logger.Warn("initial sync pull failed", zap.Error(err))
		}
	}

	// Controllers
	guestController := controllers.NewGuestController(guestService)
	ledgerController := controllers.NewLedgerController(ledgerService, identityService, guestService)
	entryController := controllers.NewEntryController(orderService, paymentService, customItemService)
	expenseController := controllers.NewExpenseController(expenseService)

	router := routes.SetupRouter(guestController, ledgerController, entryController, expenseController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped gracefully")
}
