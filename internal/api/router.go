package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/finbook/finbook-be/internal/api/handlers"
	"github.com/finbook/finbook-be/internal/auth"
	"github.com/finbook/finbook-be/internal/services"
	"github.com/finbook/finbook-be/internal/websocket"
)

// Deps bundles everything the router needs.
type Deps struct {
	Tokens         *auth.TokenManager
	Hub            *websocket.Hub
	AllowedOrigins []string

	Users        services.UserServiceProvider
	Transactions services.TransactionServiceProvider
	Categories   services.CategoryServiceProvider
	Budgets      services.BudgetServiceProvider
	Goals        services.GoalServiceProvider
	Events       services.EventServiceProvider
	Summary      services.SummaryServiceProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.Users, deps.Tokens)
	transactionHandler := handlers.NewTransactionHandler(deps.Transactions)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)
	budgetHandler := handlers.NewBudgetHandler(deps.Budgets)
	goalHandler := handlers.NewGoalHandler(deps.Goals)
	eventHandler := handlers.NewEventHandler(deps.Events)
	summaryHandler := handlers.NewSummaryHandler(deps.Summary)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	requireAuth := deps.Tokens.Middleware()

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", userHandler.Register)
		r.Post("/users/login", userHandler.Login)

		// Everything below requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", userHandler.GetMe)
				r.Put("/", userHandler.UpdateMe)
				r.Put("/password", userHandler.ChangePassword)
				r.Delete("/", userHandler.DeleteMe)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", transactionHandler.GetAll)
				r.Post("/", transactionHandler.Create)
				r.Get("/category/{categoryID}", transactionHandler.GetByCategory)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", transactionHandler.Get)
					r.Put("/", transactionHandler.Update)
					r.Delete("/", transactionHandler.Delete)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.GetAll)
				r.Post("/", categoryHandler.Create)
				r.Get("/type/{type}", categoryHandler.GetByType)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", categoryHandler.Get)
					r.Put("/", categoryHandler.Update)
					r.Delete("/", categoryHandler.Delete)
				})
			})

			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", budgetHandler.GetAll)
				r.Post("/", budgetHandler.Create)
				r.Get("/active", budgetHandler.GetActive)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", budgetHandler.Get)
					r.Put("/", budgetHandler.Update)
					r.Delete("/", budgetHandler.Delete)
				})
			})

			r.Route("/goals", func(r chi.Router) {
				r.Get("/", goalHandler.GetAll)
				r.Post("/", goalHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", goalHandler.Get)
					r.Put("/", goalHandler.Update)
					r.Delete("/", goalHandler.Delete)
				})
			})

			r.Get("/events", eventHandler.GetRecent)
			r.Get("/summary", summaryHandler.Get)

			// Live activity feed
			r.Get("/ws", wsHandler.Serve)
		})
	})

	return r
}
