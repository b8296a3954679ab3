package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/finbook/finbook-be/internal/api"
	"github.com/finbook/finbook-be/internal/auth"
	"github.com/finbook/finbook-be/internal/config"
	"github.com/finbook/finbook-be/internal/database"
	"github.com/finbook/finbook-be/internal/logger"
	"github.com/finbook/finbook-be/internal/monitoring"
	"github.com/finbook/finbook-be/internal/services"
	"github.com/finbook/finbook-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// The token manager is built once from config and passed down; there is
	// no process-global signing key.
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db)
	transactionService := services.NewTransactionService(db, eventService)
	categoryService := services.NewCategoryService(db, eventService)
	budgetService := services.NewBudgetService(db, eventService)
	goalService := services.NewGoalService(db, eventService)
	summaryService := services.NewSummaryService(db)

	// Set up and run the background event pruner
	pruner, err := monitoring.NewPruner(eventService, cfg.PruneSchedule, cfg.EventRetentionDays)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize event pruner")
	}
	go pruner.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Tokens:         tokens,
		Hub:            hub,
		AllowedOrigins: cfg.AllowedOrigins,
		Users:          userService,
		Transactions:   transactionService,
		Categories:     categoryService,
		Budgets:        budgetService,
		Goals:          goalService,
		Events:         eventService,
		Summary:        summaryService,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
